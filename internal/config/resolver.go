package config

import (
	"fmt"
	"sort"
	"strings"

	"ferrolint/internal/checker"
	"ferrolint/internal/registry"
)

// RunRequest carries the selection parameters supplied by the caller.
// Immutable for the duration of a run.
type RunRequest struct {
	// All forces every checker on, regardless of defaults and document.
	All bool
	// Include, when non-empty, makes the enabled set exactly the checkers
	// matching one of the listed codes/prefixes.
	Include []string
	// Exclude disables matching checkers, applied after Include.
	Exclude []string
	// MinSeverity disables checkers whose resolved severity is below it.
	// Zero means no floor.
	MinSeverity checker.Severity
	// Categories, when non-empty, disables checkers whose resolved category
	// set does not intersect it.
	Categories []string
}

// Warning kinds produced during resolution. Configuration problems degrade
// gracefully to defaults instead of aborting the run.
type WarningKind string

const (
	// UnknownConfigKey marks a document key matching no registered checker.
	UnknownConfigKey WarningKind = "unknown_config_key"
	// InvalidConfigValue marks a field whose value has the wrong type; the
	// field keeps the value of the previous, less specific layer.
	InvalidConfigValue WarningKind = "invalid_config_value"
)

// Warning is one non-fatal configuration problem.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Key    string      `json:"key"`
	Field  string      `json:"field,omitempty"`
	Detail string      `json:"detail"`
}

// Effective maps every registered checker code to its final resolved config.
type Effective struct {
	byCode map[string]checker.Config
}

// For returns the resolved config for a code. Every code in the registry the
// Effective was resolved against has exactly one entry.
func (e *Effective) For(code string) checker.Config {
	return e.byCode[code]
}

// EnabledCodes returns the codes left enabled, in the order given.
func (e *Effective) EnabledCodes(order []registry.Entry) []string {
	var out []string
	for _, entry := range order {
		if e.byCode[entry.Meta.Code].Enabled {
			out = append(out, entry.Meta.Code)
		}
	}
	return out
}

// Resolve merges compiled-in defaults, the loaded document and run-time
// overrides, in that order of precedence, into one effective config per
// registered checker.
func Resolve(reg *registry.Registry, doc *Document, req RunRequest) (*Effective, []Warning) {
	eff := &Effective{byCode: make(map[string]checker.Config, reg.Len())}
	var warnings []Warning

	// Layer 1: defaults.
	for _, entry := range reg.All() {
		eff.byCode[entry.Meta.Code] = entry.Default.Clone()
	}

	// Layer 2: document entries, least specific first. Sorting by key length
	// (ties broken lexicographically for determinism) means a short prefix is
	// applied before the longer prefixes and exact codes that refine it, so
	// the narrowest entry always wins per field.
	if doc != nil {
		keys := make([]string, 0, len(doc.Checkers))
		for k := range doc.Checkers {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) < len(keys[j])
			}
			return keys[i] < keys[j]
		})

		for _, key := range keys {
			matched := matchEntries(reg, key)
			if len(matched) == 0 {
				warnings = append(warnings, Warning{
					Kind:   UnknownConfigKey,
					Key:    key,
					Detail: fmt.Sprintf("config key %q matches no registered checker", key),
				})
				continue
			}
			exact := len(matched) == 1 && matched[0].Meta.Code == strings.ToLower(key)
			for _, entry := range matched {
				cfg := eff.byCode[entry.Meta.Code]
				warnings = append(warnings, applyFields(&cfg, entry, key, doc.Checkers[key], exact)...)
				eff.byCode[entry.Meta.Code] = cfg
			}
		}
	}

	// Layer 3: run-time overrides.
	for _, entry := range reg.All() {
		code := entry.Meta.Code
		cfg := eff.byCode[code]

		if req.All {
			cfg.Enabled = true
		}
		if len(req.Include) > 0 {
			// Include narrows the enabled set to exactly the listed
			// codes/prefixes, also when combined with All.
			cfg.Enabled = matchesAny(code, req.Include)
		}
		if matchesAny(code, req.Exclude) {
			cfg.Enabled = false
		}
		if req.MinSeverity > 0 && cfg.Severity < req.MinSeverity {
			cfg.Enabled = false
		}
		if len(req.Categories) > 0 && !hasAnyCategory(&cfg, req.Categories) {
			cfg.Enabled = false
		}

		eff.byCode[code] = cfg
	}

	return eff, warnings
}

// matchEntries resolves a document key to registered checkers. A key is
// either an exact code or a category prefix; both reduce to string prefixing.
func matchEntries(reg *registry.Registry, key string) []registry.Entry {
	return reg.ByPrefix(strings.ToLower(key))
}

// applyFields overlays one document entry on a config. Only fields present in
// the entry are overwritten; a type-mismatched field is reported and keeps
// the previous layer's value.
func applyFields(cfg *checker.Config, entry registry.Entry, key string, fields map[string]any, exact bool) []Warning {
	var warnings []Warning
	invalid := func(field, detail string) {
		warnings = append(warnings, Warning{
			Kind:   InvalidConfigValue,
			Key:    key,
			Field:  field,
			Detail: fmt.Sprintf("checker %s: %s", entry.Meta.Code, detail),
		})
	}

	for field, value := range fields {
		switch field {
		case "enabled":
			b, ok := value.(bool)
			if !ok {
				invalid(field, fmt.Sprintf("enabled must be a boolean, got %v", value))
				continue
			}
			cfg.Enabled = b

		case "severity":
			sev, err := checker.ParseSeverity(value)
			if err != nil {
				invalid(field, err.Error())
				continue
			}
			cfg.Severity = sev

		case "categories":
			cats, ok := toStringSlice(value)
			if !ok {
				invalid(field, fmt.Sprintf("categories must be a list of strings, got %v", value))
				continue
			}
			cfg.Categories = cats

		default:
			def, declared := entry.Default.Params[field]
			if !declared {
				// Prefix entries broadcast to every matching checker, so a
				// param only some of them declare is not a problem there.
				// An exact-code entry naming an undeclared param is.
				if exact {
					warnings = append(warnings, Warning{
						Kind:   UnknownConfigKey,
						Key:    key,
						Field:  field,
						Detail: fmt.Sprintf("checker %s has no field %q", entry.Meta.Code, field),
					})
				}
				continue
			}
			coerced, ok := coerceParam(def, value)
			if !ok {
				invalid(field, fmt.Sprintf("field %q must be %T, got %v", field, def, value))
				continue
			}
			if cfg.Params == nil {
				cfg.Params = make(map[string]any)
			}
			cfg.Params[field] = coerced
		}
	}
	return warnings
}

// coerceParam converts a document value to the type of the compiled-in
// default. YAML hands integers over as int, TOML as int64; both are accepted
// wherever the default is numeric.
func coerceParam(def, v any) (any, bool) {
	switch def.(type) {
	case int:
		switch val := v.(type) {
		case int:
			return val, true
		case int64:
			return int(val), true
		case uint64:
			return int(val), true
		case float64:
			if val == float64(int(val)) {
				return int(val), true
			}
		}
	case float64:
		switch val := v.(type) {
		case float64:
			return val, true
		case int:
			return float64(val), true
		case int64:
			return float64(val), true
		}
	case bool:
		if val, ok := v.(bool); ok {
			return val, true
		}
	case string:
		if val, ok := v.(string); ok {
			return val, true
		}
	}
	return nil, false
}

func toStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func matchesAny(code string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.HasPrefix(code, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func hasAnyCategory(cfg *checker.Config, want []string) bool {
	for _, w := range want {
		if cfg.HasCategory(w) {
			return true
		}
	}
	return false
}
