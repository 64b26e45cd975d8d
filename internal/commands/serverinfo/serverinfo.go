// Package serverinfo registers the instance-level commands: connection
// listing, INFO, DBSIZE, SLOWLOG and CLIENT LIST.
package serverinfo

import (
	"context"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	"github.com/SiriusScan/mcp-redis/internal/connection"
	"github.com/SiriusScan/mcp-redis/internal/inspect"
)

func init() {
	commands.Register(&ListConnectionsCommand{})
	commands.Register(&InfoCommand{})
	commands.Register(&DBSizeCommand{})
	commands.Register(&SlowlogCommand{})
	commands.Register(&ClientListCommand{})
}

// DBSizeResult is the reply of dbsize.
type DBSizeResult struct {
	DBSize int64 `json:"dbsize"`
}

// SlowlogResult is the reply of slowlog.
type SlowlogResult struct {
	Entries []inspect.SlowlogEntry `json:"entries"`
	Count   int                    `json:"count"`
}

// ClientListResult is the reply of client_list.
type ClientListResult struct {
	Clients []map[string]string `json:"clients"`
	Count   int                 `json:"count"`
}

// ListConnectionsCommand lists the configured instances.
type ListConnectionsCommand struct{}

var _ commands.Command = (*ListConnectionsCommand)(nil)

func (c *ListConnectionsCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "list_connections",
		Description: "List the configured Redis connections. Use a name as the connection parameter of other tools.",
	}
}

func (c *ListConnectionsCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	if env.Connections == nil {
		return []connection.Description{}, nil
	}
	return env.Connections.Describe(), nil
}

// InfoCommand returns raw INFO output.
type InfoCommand struct{}

var _ commands.Command = (*InfoCommand)(nil)

func (c *InfoCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "info",
		Description: "Get server information and statistics from INFO.",
		Params: []commands.Param{
			commands.ConnectionParameter(),
			{Name: "section", Type: commands.ParamString, Description: "INFO section, e.g. server, memory, stats, keyspace"},
		},
	}
}

func (c *InfoCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	section, _, err := args.String("section")
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}
	return inspect.GetInfo(ctx, entry.Client, section)
}

// DBSizeCommand counts keys in the selected database.
type DBSizeCommand struct{}

var _ commands.Command = (*DBSizeCommand)(nil)

func (c *DBSizeCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "dbsize",
		Description: "Get the number of keys in the current database.",
		Params:      []commands.Param{commands.ConnectionParameter()},
	}
}

func (c *DBSizeCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}
	size, err := inspect.GetDBSize(ctx, entry.Client)
	if err != nil {
		return nil, err
	}
	return DBSizeResult{DBSize: size}, nil
}

// SlowlogCommand returns recent slow commands.
type SlowlogCommand struct{}

var _ commands.Command = (*SlowlogCommand)(nil)

func (c *SlowlogCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "slowlog",
		Description: "Get recent slow log entries.",
		Params: []commands.Param{
			commands.ConnectionParameter(),
			{Name: "count", Type: commands.ParamNumber, Description: "Number of entries to return (default 10)"},
		},
	}
}

func (c *SlowlogCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	count, err := args.Int64("count", inspect.DefaultSlowlogCount)
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}

	entries, err := inspect.GetSlowlog(ctx, entry.Client, count)
	if err != nil {
		return nil, err
	}
	return SlowlogResult{Entries: entries, Count: len(entries)}, nil
}

// ClientListCommand lists connected clients.
type ClientListCommand struct{}

var _ commands.Command = (*ClientListCommand)(nil)

func (c *ClientListCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "client_list",
		Description: "List clients connected to the server.",
		Params:      []commands.Param{commands.ConnectionParameter()},
	}
}

func (c *ClientListCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}
	clients, err := inspect.GetClients(ctx, entry.Client)
	if err != nil {
		return nil, err
	}
	return ClientListResult{Clients: clients, Count: len(clients)}, nil
}
