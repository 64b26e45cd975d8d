package inspect

import (
	"context"
	"strings"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// GetClients returns one attribute map per connected client.
func GetClients(ctx context.Context, client store.Client) ([]map[string]string, error) {
	text, err := client.ClientList(ctx)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return ParseClientList(text), nil
}

// ParseClientList parses CLIENT LIST output: one client per line made of
// space separated name=value pairs.
func ParseClientList(text string) []map[string]string {
	clients := []map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		attrs := make(map[string]string)
		for _, pair := range strings.Fields(line) {
			name, value, _ := strings.Cut(pair, "=")
			attrs[name] = value
		}
		clients = append(clients, attrs)
	}
	return clients
}
