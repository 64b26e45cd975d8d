package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/SiriusScan/mcp-redis/internal/connection"
)

// ParamType is the JSON type a parameter accepts.
type ParamType string

const (
	ParamString ParamType = "string"
	ParamNumber ParamType = "number"
)

// ConnectionParam is the optional parameter every store-backed command takes
// to pick an instance.
const ConnectionParam = "connection"

// Param describes one named argument of a command.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
}

// Definition is the advertised shape of a command.
type Definition struct {
	Name        string
	Description string
	Params      []Param
}

// Env carries the shared dependencies handed to every command invocation.
type Env struct {
	Logger      *zap.Logger
	Connections *connection.Registry
	// ScanCount is the server ceiling for keys and members returned per call.
	ScanCount uint32
	// AllowWrite reports whether write mode was enabled at startup. It is
	// informational only: every registered command is read-only and none
	// reads it.
	AllowWrite bool
}

// Resolve picks the connection named by the "connection" argument.
func (e Env) Resolve(args Args) (*connection.Entry, error) {
	name, _, err := args.String(ConnectionParam)
	if err != nil {
		return nil, err
	}
	return e.Connections.Resolve(name)
}

// Command is a named, read-only operation.
type Command interface {
	// Definition describes the command name, purpose and parameters.
	Definition() Definition

	// Execute runs the command. A string result is returned to the caller
	// verbatim; anything else is encoded as JSON.
	Execute(ctx context.Context, env Env, args Args) (any, error)
}

// ConnectionParameter is the Param for ConnectionParam.
func ConnectionParameter() Param {
	return Param{
		Name:        ConnectionParam,
		Type:        ParamString,
		Description: "Connection name from list_connections. Optional when only one instance is configured.",
	}
}
