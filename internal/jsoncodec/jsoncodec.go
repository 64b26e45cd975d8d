// Package jsoncodec encodes operation results. Map keys are sorted so
// repeated reads of the same data produce identical text.
package jsoncodec

import "github.com/bytedance/sonic"

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

// MarshalPretty renders v with two-space indentation.
func MarshalPretty(v any) (string, error) {
	data, err := defaultConfig.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
