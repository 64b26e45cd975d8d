package keys

import (
	"context"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	"github.com/SiriusScan/mcp-redis/internal/inspect"
)

// HashFieldsResult is the reply of get_hash_fields.
type HashFieldsResult struct {
	Key    string                `json:"key"`
	Fields []inspect.FieldResult `json:"fields"`
}

// ListRangeResult is the reply of get_list_range.
type ListRangeResult struct {
	Key      string   `json:"key"`
	Start    int64    `json:"start"`
	Stop     int64    `json:"stop"`
	Elements []string `json:"elements"`
	Count    int      `json:"count"`
}

// MembersResult is the reply of get_set_members.
type MembersResult struct {
	Key     string        `json:"key"`
	Type    string        `json:"type"`
	Members inspect.Value `json:"members"`
	Count   int           `json:"count"`
}

// HashFieldsCommand reads selected fields of a hash.
type HashFieldsCommand struct{}

var _ commands.Command = (*HashFieldsCommand)(nil)

func (c *HashFieldsCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "get_hash_fields",
		Description: "Get specific fields from a hash without loading the whole hash.",
		Params: []commands.Param{
			commands.ConnectionParameter(),
			keyParam(),
			{Name: "fields", Type: commands.ParamString, Required: true, Description: "Comma-separated field names"},
		},
	}
}

func (c *HashFieldsCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	key, err := args.RequiredString("key")
	if err != nil {
		return nil, err
	}
	list, err := args.RequiredString("fields")
	if err != nil {
		return nil, err
	}
	fields, err := inspect.ParseFieldList(list)
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}

	results, err := inspect.GetHashFields(ctx, entry.Client, key, fields)
	if err != nil {
		return nil, err
	}
	return HashFieldsResult{Key: key, Fields: results}, nil
}

// ListRangeCommand reads a slice of a list.
type ListRangeCommand struct{}

var _ commands.Command = (*ListRangeCommand)(nil)

func (c *ListRangeCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "get_list_range",
		Description: "Get a range of list elements by index. Negative indexes count from the end.",
		Params: []commands.Param{
			commands.ConnectionParameter(),
			keyParam(),
			{Name: "start", Type: commands.ParamNumber, Description: "Start index (default 0)"},
			{Name: "stop", Type: commands.ParamNumber, Description: "Stop index, inclusive (default -1)"},
		},
	}
}

func (c *ListRangeCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	key, err := args.RequiredString("key")
	if err != nil {
		return nil, err
	}
	start, err := args.Int64("start", inspect.DefaultListStart)
	if err != nil {
		return nil, err
	}
	stop, err := args.Int64("stop", inspect.DefaultListStop)
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}

	r, err := inspect.GetListRange(ctx, entry.Client, key, start, stop)
	if err != nil {
		return nil, err
	}
	return ListRangeResult{
		Key:      key,
		Start:    r.Start,
		Stop:     r.Stop,
		Elements: r.Elements,
		Count:    len(r.Elements),
	}, nil
}

// SetMembersCommand reads members of a set or sorted set up to a cap.
type SetMembersCommand struct{}

var _ commands.Command = (*SetMembersCommand)(nil)

func (c *SetMembersCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "get_set_members",
		Description: "Get members of a set or sorted set. Sorted set members include their scores.",
		Params:      []commands.Param{commands.ConnectionParameter(), keyParam(), countParam("members")},
	}
}

func (c *SetMembersCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	key, err := args.RequiredString("key")
	if err != nil {
		return nil, err
	}
	requested, err := args.Cap("count")
	if err != nil {
		return nil, err
	}
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}

	v, err := inspect.GetMembers(ctx, entry.Client, key, requested, env.ScanCount)
	if err != nil {
		return nil, err
	}
	if _, missing := v.(inspect.Absent); missing {
		return absent(key), nil
	}
	return MembersResult{Key: key, Type: v.Type(), Members: v, Count: inspect.Len(v)}, nil
}
