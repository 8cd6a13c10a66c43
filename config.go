package hiertab

const (
	// DefaultSearchRadius is how many rows below a record start are searched
	// for field labels and values.
	DefaultSearchRadius = 10

	// DefaultColumnSearchRadius is how many columns right of a field label
	// are searched for its value.
	DefaultColumnSearchRadius = 5
)

// Config describes how hierarchical data is scanned into records.
type Config struct {
	// SkipRows drops the first N rows before scanning.
	SkipRows int

	// DropColumns lists column positions removed before scanning.
	DropColumns []int

	// IdentifierField marks the start of a new record when it appears,
	// trimmed, in any cell of a row. Required.
	IdentifierField string

	// TargetFields are the fields extracted for each record, in output
	// column order. Required.
	TargetFields []string

	// FieldAliases maps alternative labels to their canonical field name.
	// An alias matches anywhere its canonical field would.
	FieldAliases map[string]string

	// DateColumns names target fields coerced to dates in the output table.
	DateColumns []string

	// SearchRadius is the row window per record; zero means
	// DefaultSearchRadius.
	SearchRadius int

	// ColumnSearchRadius is the rightward column window per field label;
	// zero means DefaultColumnSearchRadius.
	ColumnSearchRadius int
}

// Validate reports configuration errors. It is called by Transform before
// the grid is touched.
func (c Config) Validate() error {
	if c.IdentifierField == "" {
		return ErrMissingIdentifierField
	}
	if len(c.TargetFields) == 0 {
		return ErrMissingTargetFields
	}
	return nil
}

// withDefaults returns the config with zero radii replaced by defaults.
func (c Config) withDefaults() Config {
	if c.SearchRadius <= 0 {
		c.SearchRadius = DefaultSearchRadius
	}
	if c.ColumnSearchRadius <= 0 {
		c.ColumnSearchRadius = DefaultColumnSearchRadius
	}
	return c
}

// aliasesFor returns the set of labels that identify the given field: the
// field name itself plus every alias mapping to it.
func (c Config) aliasesFor(field string) map[string]bool {
	aliases := map[string]bool{field: true}
	for alias, canonical := range c.FieldAliases {
		if canonical == field {
			aliases[alias] = true
		}
	}
	return aliases
}
