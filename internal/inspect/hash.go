package inspect

import (
	"context"
	"strings"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
	"github.com/SiriusScan/mcp-redis/internal/store"
)

// FieldResult is one requested hash field. Value is nil when the field does
// not exist.
type FieldResult struct {
	Field  string  `json:"field"`
	Value  *string `json:"value"`
	Exists bool    `json:"exists"`
}

// ParseFieldList splits a comma separated field list, trimming spaces and
// dropping empty items.
func ParseFieldList(list string) ([]string, error) {
	var fields []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return nil, apperrors.Validation("at least one field name is required")
	}
	return fields, nil
}

// GetHashFields reads fields from the hash at key with a single HMGET,
// reporting each field in request order.
func GetHashFields(ctx context.Context, client store.Client, key string, fields []string) ([]FieldResult, error) {
	if len(fields) == 0 {
		return nil, apperrors.Validation("at least one field name is required")
	}

	values, err := client.HMGet(ctx, key, fields)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	results := make([]FieldResult, len(fields))
	for i, field := range fields {
		results[i] = FieldResult{Field: field}
		if i < len(values) && values[i].Found {
			v := values[i].Value
			results[i].Value = &v
			results[i].Exists = true
		}
	}
	return results, nil
}
