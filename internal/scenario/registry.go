// Package scenario provides the typed variable registry for the digital-twin
// estimator. Each scenario category declares its variable definitions once;
// every value map crossing a process boundary is sanitized against those
// definitions before scoring. The registry is a pure configuration and
// coercion layer and holds no scoring logic.
package scenario

import (
	"fmt"
	"strconv"
	"strings"
)

// VariableType enumerates the supported variable kinds
type VariableType string

// Supported variable types
const (
	TypeSelect  VariableType = "select"
	TypeBoolean VariableType = "boolean"
	TypeNumber  VariableType = "number"
)

// VariableDefinition declares one typed scenario variable
type VariableDefinition struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Type        VariableType `json:"type"`
	Default     Value        `json:"default"`
	Options     []string     `json:"options,omitempty"` // select only
	Min         float64      `json:"min,omitempty"`     // number only
	Max         float64      `json:"max,omitempty"`
	Step        float64      `json:"step,omitempty"`
}

// Value is the tagged variable value: exactly one of the payload fields is
// meaningful, selected by Type.
type Value struct {
	Type   VariableType `json:"type"`
	Select string       `json:"select,omitempty"`
	Bool   bool         `json:"bool,omitempty"`
	Number float64      `json:"number,omitempty"`
}

// SelectValue constructs a select-typed value
func SelectValue(option string) Value {
	return Value{Type: TypeSelect, Select: option}
}

// BoolValue constructs a boolean-typed value
func BoolValue(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

// NumberValue constructs a number-typed value
func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Number: n}
}

// ValueMap maps variable ids to sanitized values. After Sanitize, its key set
// always equals the category's definition set exactly.
type ValueMap map[string]Value

// Registry holds variable definitions per scenario category. Categories are
// registered at startup; the registry is read-only afterwards and safe for
// concurrent use.
type Registry struct {
	categories map[string][]VariableDefinition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{categories: make(map[string][]VariableDefinition)}
}

// Register adds a category and its definitions. Invalid definitions and
// duplicate registrations are configuration errors surfaced immediately.
func (r *Registry) Register(category string, defs []VariableDefinition) error {
	if category == "" {
		return fmt.Errorf("scenario category is empty")
	}
	if _, exists := r.categories[category]; exists {
		return fmt.Errorf("scenario category %q already registered", category)
	}
	if len(defs) == 0 {
		return fmt.Errorf("scenario category %q has no variable definitions", category)
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("category %q: variable with empty id", category)
		}
		if seen[def.ID] {
			return fmt.Errorf("category %q: duplicate variable id %q", category, def.ID)
		}
		seen[def.ID] = true

		switch def.Type {
		case TypeSelect:
			if len(def.Options) == 0 {
				return fmt.Errorf("category %q: select variable %q has no options", category, def.ID)
			}
			if !contains(def.Options, def.Default.Select) {
				return fmt.Errorf("category %q: variable %q default %q not among options", category, def.ID, def.Default.Select)
			}
		case TypeNumber:
			if def.Min > def.Max {
				return fmt.Errorf("category %q: variable %q has min > max", category, def.ID)
			}
			if def.Default.Number < def.Min || def.Default.Number > def.Max {
				return fmt.Errorf("category %q: variable %q default out of range", category, def.ID)
			}
		case TypeBoolean:
			// nothing extra to validate
		default:
			return fmt.Errorf("category %q: variable %q has unknown type %q", category, def.ID, def.Type)
		}
	}

	r.categories[category] = defs
	return nil
}

// Categories returns the registered category names
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for name := range r.categories {
		names = append(names, name)
	}
	return names
}

// Definitions returns the variable definitions for a category
func (r *Registry) Definitions(category string) ([]VariableDefinition, error) {
	defs, ok := r.categories[category]
	if !ok {
		return nil, fmt.Errorf("unknown scenario category %q", category)
	}
	return defs, nil
}

// Defaults returns a value map holding every variable's default
func (r *Registry) Defaults(category string) (ValueMap, error) {
	defs, err := r.Definitions(category)
	if err != nil {
		return nil, err
	}
	values := make(ValueMap, len(defs))
	for _, def := range defs {
		values[def.ID] = def.Default
	}
	return values, nil
}

// Sanitize coerces a raw, untrusted value map against the category's
// definitions. It iterates the definitions rather than the raw keys, so
// unknown variables can never be injected; missing or uncoercible values fall
// back to the definition default, numbers are clamped to [min, max], and
// select values outside the option list are replaced by the default.
// Sanitize is idempotent.
func (r *Registry) Sanitize(category string, raw map[string]any) (ValueMap, error) {
	defs, err := r.Definitions(category)
	if err != nil {
		return nil, err
	}

	values := make(ValueMap, len(defs))
	for _, def := range defs {
		values[def.ID] = sanitizeOne(def, raw[def.ID])
	}
	return values, nil
}

// FormatForPrompt renders "Label: value" lines for inclusion in an external
// generator prompt, in definition order.
func (r *Registry) FormatForPrompt(category string, values ValueMap) ([]string, error) {
	defs, err := r.Definitions(category)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		value, ok := values[def.ID]
		if !ok {
			value = def.Default
		}
		lines = append(lines, fmt.Sprintf("%s: %s", def.Label, formatValue(value)))
	}
	return lines, nil
}

func sanitizeOne(def VariableDefinition, raw any) Value {
	switch def.Type {
	case TypeBoolean:
		if b, ok := coerceBool(raw); ok {
			return BoolValue(b)
		}
	case TypeNumber:
		if n, ok := coerceNumber(raw); ok {
			if n < def.Min {
				n = def.Min
			}
			if n > def.Max {
				n = def.Max
			}
			return NumberValue(n)
		}
	case TypeSelect:
		if s, ok := coerceString(raw); ok && contains(def.Options, s) {
			return SelectValue(s)
		}
	}
	return def.Default
}

// coerceBool applies the fixed truth table for booleans crossing a JSON or
// form boundary
func coerceBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case Value:
		if v.Type == TypeBoolean {
			return v.Bool, true
		}
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "y":
			return true, true
		case "false", "0", "no", "n":
			return false, true
		}
	}
	return false, false
}

func coerceNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case Value:
		if v.Type == TypeNumber {
			return v.Number, true
		}
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func coerceString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case Value:
		if v.Type == TypeSelect {
			return v.Select, true
		}
	}
	return "", false
}

func formatValue(v Value) string {
	switch v.Type {
	case TypeSelect:
		return v.Select
	case TypeBoolean:
		if v.Bool {
			return "yes"
		}
		return "no"
	case TypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return ""
	}
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
