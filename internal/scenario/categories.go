package scenario

// Built-in scenario category names. The registry accepts arbitrary
// additional categories; these four ship with the engine.
const (
	CategoryTail          = "tail"
	CategoryBackground    = "background"
	CategoryCorporate     = "corporate"
	CategoryMissingPerson = "missing-person"
)

// Builtin returns a registry preloaded with the four built-in categories.
// Registration errors here are build defects, so Builtin panics on them.
func Builtin() *Registry {
	r := NewRegistry()

	register := func(category string, defs []VariableDefinition) {
		if err := r.Register(category, defs); err != nil {
			panic(err)
		}
	}

	register(CategoryTail, []VariableDefinition{
		{
			ID:      "target-alertness",
			Label:   "Target alertness",
			Type:    TypeSelect,
			Options: []string{"low", "normal", "high"},
			Default: SelectValue("normal"),
		},
		{
			ID:      "has-photo",
			Label:   "Recent photo available",
			Type:    TypeBoolean,
			Default: BoolValue(false),
		},
		{
			ID:      "observation-days",
			Label:   "Planned observation days",
			Type:    TypeNumber,
			Min:     1,
			Max:     14,
			Step:    1,
			Default: NumberValue(3),
		},
		{
			ID:      "secondary-vehicle",
			Label:   "Secondary vehicle on standby",
			Type:    TypeBoolean,
			Default: BoolValue(false),
		},
	})

	register(CategoryBackground, []VariableDefinition{
		{
			ID:      "subject-consent",
			Label:   "Subject consent on file",
			Type:    TypeBoolean,
			Default: BoolValue(false),
		},
		{
			ID:      "record-depth",
			Label:   "Record check depth",
			Type:    TypeSelect,
			Options: []string{"basic", "standard", "deep"},
			Default: SelectValue("standard"),
		},
		{
			ID:      "region-count",
			Label:   "Regions to cover",
			Type:    TypeNumber,
			Min:     1,
			Max:     10,
			Step:    1,
			Default: NumberValue(1),
		},
	})

	register(CategoryCorporate, []VariableDefinition{
		{
			ID:      "insider-contact",
			Label:   "Cooperative insider contact",
			Type:    TypeBoolean,
			Default: BoolValue(false),
		},
		{
			ID:      "document-access",
			Label:   "Internal document access",
			Type:    TypeSelect,
			Options: []string{"none", "partial", "full"},
			Default: SelectValue("partial"),
		},
		{
			ID:      "staff-interviews",
			Label:   "Planned staff interviews",
			Type:    TypeNumber,
			Min:     0,
			Max:     20,
			Step:    1,
			Default: NumberValue(2),
		},
	})

	register(CategoryMissingPerson, []VariableDefinition{
		{
			ID:      "days-since-contact",
			Label:   "Days since last contact",
			Type:    TypeNumber,
			Min:     0,
			Max:     90,
			Step:    1,
			Default: NumberValue(2),
		},
		{
			ID:      "last-location-known",
			Label:   "Last location known",
			Type:    TypeBoolean,
			Default: BoolValue(true),
		},
		{
			ID:      "vulnerable-person",
			Label:   "Vulnerable person involved",
			Type:    TypeBoolean,
			Default: BoolValue(false),
		},
		{
			ID:      "search-radius",
			Label:   "Search radius",
			Type:    TypeSelect,
			Options: []string{"local", "regional", "national"},
			Default: SelectValue("local"),
		},
	})

	return r
}
