package capability

// Typed accessors for normalized input maps. Safe to use inside executors:
// validation has already guaranteed that present values carry the declared
// type, so these only need to distinguish present from absent.

// StringArg returns the string value for name, or fallback when absent.
func StringArg(input map[string]any, name, fallback string) string {
	if v, ok := input[name].(string); ok {
		return v
	}
	return fallback
}

// IntArg returns the integer value for name, or fallback when absent.
func IntArg(input map[string]any, name string, fallback int64) int64 {
	if v, ok := input[name].(int64); ok {
		return v
	}
	return fallback
}

// FloatArg returns the number value for name, or fallback when absent.
func FloatArg(input map[string]any, name string, fallback float64) float64 {
	if v, ok := input[name].(float64); ok {
		return v
	}
	return fallback
}

// BoolArg returns the boolean value for name, or fallback when absent.
func BoolArg(input map[string]any, name string, fallback bool) bool {
	if v, ok := input[name].(bool); ok {
		return v
	}
	return fallback
}

// StringListArg returns the string elements of a list field, or nil when the
// field is absent.
func StringListArg(input map[string]any, name string) []string {
	items, ok := input[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ObjectArg returns the nested object value for name, or nil when absent.
func ObjectArg(input map[string]any, name string) map[string]any {
	if v, ok := input[name].(map[string]any); ok {
		return v
	}
	return nil
}

// ListArg returns the raw list value for name, or nil when absent.
func ListArg(input map[string]any, name string) []any {
	if v, ok := input[name].([]any); ok {
		return v
	}
	return nil
}
