package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/ptree/internal/output"
	"github.com/salmonumbrella/ptree/internal/portabletext"
)

func validateErrorFormat(format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto", "text", "json", "yaml":
		return nil
	default:
		return usageError{msg: fmt.Sprintf("invalid --error-format %q (expected auto|text|json|yaml)", format)}
	}
}

func effectiveErrorFormat(ctx context.Context) string {
	format := strings.ToLower(strings.TrimSpace(ErrorFormatFromContext(ctx)))
	if format == "" || format == "auto" {
		switch output.FormatFromContext(ctx) {
		case output.FormatJSON, output.FormatNDJSON:
			return "json"
		case output.FormatYAML:
			return "yaml"
		default:
			return "text"
		}
	}
	return format
}

func printCommandError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	switch effectiveErrorFormat(ctx) {
	case "json":
		enc := json.NewEncoder(stderrFromContext(ctx))
		enc.SetEscapeHTML(false)
		_ = enc.Encode(buildErrorEnvelope(err))
		return
	case "yaml":
		enc := yaml.NewEncoder(stderrFromContext(ctx))
		enc.SetIndent(2)
		_ = enc.Encode(buildErrorEnvelope(err))
		_ = enc.Close()
		return
	}

	_, _ = fmt.Fprintln(stderrFromContext(ctx), err)
}

func buildErrorEnvelope(err error) map[string]interface{} {
	errMap := map[string]interface{}{
		"message":  err.Error(),
		"category": "system",
		"type":     "error",
	}

	var decodeErr *portabletext.DecodeError
	if errors.As(err, &decodeErr) {
		errMap["type"] = "decode"
		errMap["category"] = "user"
		if decodeErr.Path != "" {
			errMap["path"] = decodeErr.Path
		}
	}

	var cfgErr configError
	if errors.As(err, &cfgErr) {
		errMap["type"] = "config"
		errMap["category"] = "user"
	}

	var usageErr usageError
	if errors.As(err, &usageErr) {
		errMap["type"] = "usage"
		errMap["category"] = "user"
	}

	return map[string]interface{}{"error": errMap}
}
