package checker

import "fmt"

// Severity of a checker or violation, 1-3.
type Severity int

const (
	SeverityLow    Severity = 1
	SeverityMedium Severity = 2
	SeverityHigh   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity accepts the spellings configuration documents produce:
// "low"/"medium"/"high" or the integers 1-3.
func ParseSeverity(v any) (Severity, error) {
	switch val := v.(type) {
	case string:
		switch val {
		case "low":
			return SeverityLow, nil
		case "medium":
			return SeverityMedium, nil
		case "high":
			return SeverityHigh, nil
		}
	case int:
		if val >= 1 && val <= 3 {
			return Severity(val), nil
		}
	case int64:
		if val >= 1 && val <= 3 {
			return Severity(val), nil
		}
	case uint64:
		if val >= 1 && val <= 3 {
			return Severity(val), nil
		}
	case float64:
		if val == float64(int(val)) && val >= 1 && val <= 3 {
			return Severity(val), nil
		}
	}
	return 0, fmt.Errorf("invalid severity %v, want low/medium/high or 1-3", v)
}

// Checker categories.
const (
	CategoryOperations = "operations"
	CategoryComplexity = "complexity"
	CategoryCompliance = "compliance"
)

// Config is the per-checker configuration. Each checker has a compiled-in
// default which the resolver overlays once per run; the result is immutable
// for the duration of that run.
type Config struct {
	Enabled    bool
	Severity   Severity
	Categories []string

	// Params holds checker-specific scalar fields, e.g. "max_complexity".
	Params map[string]any
}

// Clone returns a deep copy so overlays never alias the defaults.
func (c Config) Clone() Config {
	out := c
	out.Categories = append([]string(nil), c.Categories...)
	if c.Params != nil {
		out.Params = make(map[string]any, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return out
}

// HasCategory reports whether the config carries the given category tag.
func (c *Config) HasCategory(cat string) bool {
	for _, have := range c.Categories {
		if have == cat {
			return true
		}
	}
	return false
}

// Int returns an integer param. The resolver guarantees every param present
// in a default config survives resolution with its type intact, so a missing
// key means the checker asked for a param it never declared.
func (c *Config) Int(key string) int {
	switch v := c.Params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// String returns a string param.
func (c *Config) String(key string) string {
	if v, ok := c.Params[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns a boolean param.
func (c *Config) Bool(key string) bool {
	if v, ok := c.Params[key].(bool); ok {
		return v
	}
	return false
}
