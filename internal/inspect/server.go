package inspect

import (
	"context"
	"strings"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// GetInfo returns the raw INFO text, restricted to section when given.
func GetInfo(ctx context.Context, client store.Client, section string) (string, error) {
	section = strings.TrimSpace(section)
	if strings.ContainsAny(section, " \x00") {
		return "", apperrors.Validation("invalid info section %q", section)
	}

	info, err := client.Info(ctx, section)
	if err != nil {
		return "", apperrors.Store(err)
	}
	return info, nil
}

// GetDBSize returns the number of keys in the selected database.
func GetDBSize(ctx context.Context, client store.Client) (int64, error) {
	size, err := client.DBSize(ctx)
	if err != nil {
		return 0, apperrors.Store(err)
	}
	return size, nil
}
