package keys

import (
	"context"

	"go.uber.org/zap"

	"github.com/SiriusScan/mcp-redis/internal/commands"
	"github.com/SiriusScan/mcp-redis/internal/inspect"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// ScanKeysResult is the reply of scan_keys.
type ScanKeysResult struct {
	Pattern string   `json:"pattern"`
	Keys    []string `json:"keys"`
	Count   int      `json:"count"`
}

// SearchKeysResult is the reply of search_keys.
type SearchKeysResult struct {
	Pattern string             `json:"pattern"`
	Keys    []inspect.TypedKey `json:"keys"`
	Count   int                `json:"count"`
}

// ScanKeysCommand lists keys matching a pattern.
type ScanKeysCommand struct{}

var _ commands.Command = (*ScanKeysCommand)(nil)

func (c *ScanKeysCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "scan_keys",
		Description: "List keys matching a pattern using non-blocking SCAN iteration.",
		Params:      []commands.Param{commands.ConnectionParameter(), patternParam(), countParam("keys")},
	}
}

func (c *ScanKeysCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	res, err := scan(ctx, env, args)
	if err != nil {
		return nil, err
	}
	return ScanKeysResult{Pattern: res.Pattern, Keys: res.Keys, Count: len(res.Keys)}, nil
}

// SearchKeysCommand lists keys matching a pattern together with their types.
type SearchKeysCommand struct{}

var _ commands.Command = (*SearchKeysCommand)(nil)

func (c *SearchKeysCommand) Definition() commands.Definition {
	return commands.Definition{
		Name:        "search_keys",
		Description: "Search keys matching a pattern and report the type of each key.",
		Params:      []commands.Param{commands.ConnectionParameter(), patternParam(), countParam("keys")},
	}
}

func (c *SearchKeysCommand) Execute(ctx context.Context, env commands.Env, args commands.Args) (any, error) {
	entry, err := env.Resolve(args)
	if err != nil {
		return nil, err
	}
	res, err := scanEntry(ctx, env, entry.Client, args)
	if err != nil {
		return nil, err
	}

	types, err := inspect.ResolveTypes(ctx, entry.Client, res.Keys)
	if err != nil {
		env.Logger.Warn("Type lookup failed, reporting keys as unknown",
			zap.String("connection", entry.Name),
			zap.Int("keys", len(res.Keys)),
			zap.Error(err))
	}

	return SearchKeysResult{
		Pattern: res.Pattern,
		Keys:    inspect.ZipTypes(res.Keys, types),
		Count:   len(res.Keys),
	}, nil
}

func scan(ctx context.Context, env commands.Env, args commands.Args) (inspect.ScanResult, error) {
	entry, err := env.Resolve(args)
	if err != nil {
		return inspect.ScanResult{}, err
	}
	return scanEntry(ctx, env, entry.Client, args)
}

func scanEntry(ctx context.Context, env commands.Env, client store.Client, args commands.Args) (inspect.ScanResult, error) {
	pattern, _, err := args.String("pattern")
	if err != nil {
		return inspect.ScanResult{}, err
	}
	requested, err := args.Cap("count")
	if err != nil {
		return inspect.ScanResult{}, err
	}

	res, err := inspect.Scan(ctx, client, pattern, requested, env.ScanCount)
	if err != nil {
		return inspect.ScanResult{}, err
	}
	if !res.Complete && len(res.Keys) < int(res.Cap) {
		env.Logger.Debug("Scan stopped at iteration ceiling",
			zap.String("pattern", res.Pattern),
			zap.Int("iterations", res.Iterations))
	}
	return res, nil
}
