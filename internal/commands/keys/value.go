package keys

import (
	"context"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	"github.com/SiriusScan/mcp-redis/internal/inspect"
)

// ValueResult is the reply of get.
type ValueResult struct {
	Key   string        `json:"key"`
	Type  string        `json:"type"`
	Value inspect.Value `json:"value"`
}

// GetCommand reads a whole key value of any supported type.
type GetCommand struct{}

var _ commands.Command = (*GetCommand)(nil)

func (c *GetCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "get",
		Description: "Get the value of a key. Strings, lists, sets, sorted sets and hashes are supported.",
		Params:      []commands.Param{commands.ConnectionParameter(), keyParam()},
	}
}

func (c *GetCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	key, err := args.RequiredString("key")
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}

	v, err := inspect.GetValue(ctx, entry.Client, key)
	if err != nil {
		return nil, err
	}
	if _, missing := v.(inspect.Absent); missing {
		return absent(key), nil
	}
	return ValueResult{Key: key, Type: v.Type(), Value: v}, nil
}

// KeyInfoCommand reports key metadata.
type KeyInfoCommand struct{}

var _ commands.Command = (*KeyInfoCommand)(nil)

func (c *KeyInfoCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "key_info",
		Description: "Get the type, TTL, encoding and memory usage of a key.",
		Params:      []commands.Param{commands.ConnectionParameter(), keyParam()},
	}
}

func (c *KeyInfoCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	key, err := args.RequiredString("key")
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}
	return inspect.GetKeyInfo(ctx, entry.Client, key)
}
