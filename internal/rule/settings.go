package rule

import "fmt"

// Float reads a numeric setting. YAML integers decode as int, so both int
// and float kinds are accepted.
func Float(ruleName, key string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s: %s must be a number, got %T", ruleName, key, v)
}

// Int reads an integer setting. Floats with a fractional part are
// rejected.
func Int(ruleName, key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%s: %s must be an integer, got %v", ruleName, key, v)
}

// String reads a string setting.
func String(ruleName, key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: %s must be a string, got %T", ruleName, key, v)
	}
	return s, nil
}

// UnknownSetting is the error for a settings key a rule does not define.
func UnknownSetting(ruleName, key string) error {
	return fmt.Errorf("%s: unknown setting %q", ruleName, key)
}
