package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	logx "github.com/brb-shop/storefront/pkg/logger"
)

// sanitizeArguments normalises tool arguments produced by the model. It never
// fails: arguments that are not a JSON object are passed through unchanged.
func sanitizeArguments(_ context.Context, name, arguments string) (string, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments, nil
	}

	switch name {
	case ToolSearchProduct:
		// query is required; an absent query means "everything"
		if v, ok := m["query"]; ok {
			m["query"] = trimmedString(v)
		} else {
			m["query"] = ""
		}
		for _, key := range []string{"category", "sort"} {
			if v, ok := m[key]; ok {
				if s, isString := v.(string); isString {
					m[key] = strings.TrimSpace(s)
				} else {
					delete(m, key)
				}
			}
		}
		if v, ok := m["max_results"]; ok {
			switch vv := v.(type) {
			case float64:
				// JSON numbers decode as float64
				m["max_results"] = clampInt(int(vv), 1, maxMaxResults)
			case string:
				if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
					m["max_results"] = clampInt(n, 1, maxMaxResults)
				} else {
					delete(m, "max_results")
				}
			default:
				delete(m, "max_results")
			}
		}
	case ToolGetProductDetails, ToolAddToCart:
		if v, ok := m["product_id"]; ok {
			m["product_id"] = trimmedString(v)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return arguments, nil
	}
	return string(b), nil
}

// unknownTool answers hallucinated tool calls with a structured note the
// model can recover from.
func unknownTool(_ context.Context, name, input string) (string, error) {
	logx.Warn().
		Str("tool_name", name).
		Str("arguments", input).
		Msg("Unknown or invalid tool call; returning fallback result")
	return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
}

func trimmedString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// clampInt returns v limited to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
