// Package keys registers the key enumeration and retrieval commands.
package keys

import (
	"github.com/SiriusScan/mcp-redis/internal/commands"
)

const absentMessage = "Key does not exist"

// AbsentResult is returned in place of a value when the key does not exist.
type AbsentResult struct {
	Error string `json:"error"`
	Key   string `json:"key"`
}

func absent(key string) AbsentResult {
	return AbsentResult{Error: absentMessage, Key: key}
}

func init() {
	commands.Register(&ScanKeysCommand{})
	commands.Register(&SearchKeysCommand{})
	commands.Register(&GetCommand{})
	commands.Register(&KeyInfoCommand{})
	commands.Register(&HashFieldsCommand{})
	commands.Register(&ListRangeCommand{})
	commands.Register(&SetMembersCommand{})
}

func keyParam() commands.Param {
	return commands.Param{Name: "key", Type: commands.ParamString, Required: true, Description: "Key name"}
}

func patternParam() commands.Param {
	return commands.Param{
		Name:        "pattern",
		Type:        commands.ParamString,
		Description: "Glob-style pattern (*, ?, [abc]). Defaults to *.",
	}
}

func countParam(what string) commands.Param {
	return commands.Param{
		Name:        "count",
		Type:        commands.ParamNumber,
		Description: "Maximum number of " + what + " to return, capped by the server limit.",
	}
}
