package main

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hiertab/hiertab"
)

// fileConfig mirrors the YAML config file. Unknown keys are ignored.
type fileConfig struct {
	Transform transformSection `koanf:"transform"`
	Validate  validateSection  `koanf:"validate"`
}

type transformSection struct {
	SkipRows           int               `koanf:"skip_rows"`
	DropColumns        []int             `koanf:"drop_columns"`
	IdentifierField    string            `koanf:"identifier_field"`
	TargetFields       []string          `koanf:"target_fields"`
	FieldAliases       map[string]string `koanf:"field_aliases"`
	DateColumns        []string          `koanf:"date_columns"`
	SearchRadius       int               `koanf:"search_radius"`
	ColumnSearchRadius int               `koanf:"column_search_radius"`
}

type validateSection struct {
	RequiredColumns []string           `koanf:"required_columns"`
	DateFormat      map[string]string  `koanf:"date_format"`
	NumericColumns  []string           `koanf:"numeric_columns"`
	MinValue        map[string]float64 `koanf:"min_value"`
	MaxValue        map[string]float64 `koanf:"max_value"`
	UniqueColumns   []string           `koanf:"unique_columns"`
	Expressions     []exprRule         `koanf:"expressions"`
}

// exprRule is an expression-based custom validation declared in the config
// file.
type exprRule struct {
	Expr    string `koanf:"expr"`
	Message string `koanf:"message"`
}

// loadConfig reads and unmarshals the YAML config file.
func loadConfig(path string) (*fileConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	var cfg fileConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// transformConfig converts the transform section to a library Config.
func (c *fileConfig) transformConfig() hiertab.Config {
	t := c.Transform
	return hiertab.Config{
		SkipRows:           t.SkipRows,
		DropColumns:        t.DropColumns,
		IdentifierField:    t.IdentifierField,
		TargetFields:       t.TargetFields,
		FieldAliases:       t.FieldAliases,
		DateColumns:        t.DateColumns,
		SearchRadius:       t.SearchRadius,
		ColumnSearchRadius: t.ColumnSearchRadius,
	}
}

// validationRules converts the validate section to a library rule set.
func (c *fileConfig) validationRules() hiertab.Rules {
	v := c.Validate
	rules := hiertab.Rules{
		RequiredColumns: v.RequiredColumns,
		DateFormat:      v.DateFormat,
		NumericColumns:  v.NumericColumns,
		MinValue:        v.MinValue,
		MaxValue:        v.MaxValue,
		UniqueColumns:   v.UniqueColumns,
	}
	for _, e := range v.Expressions {
		rules.CustomValidations = append(rules.CustomValidations,
			hiertab.ExprValidation(e.Expr, e.Message))
	}
	return rules
}
