package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gopak/gopak-query/internal/assets"
	"github.com/xeipuuv/gojsonschema"
)

// Issue is one schema violation. Field is the dotted path of the offending
// key, "(root)" for the document itself.
type Issue struct {
	Field       string
	Description string
}

// SchemaError lists every violation found in a configuration.
type SchemaError struct {
	Issues []Issue
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Field + ": " + is.Description
	}
	return "schema validation failed: " + strings.Join(msgs, "; ")
}

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	if len(assets.Schema) == 0 {
		return nil, errors.New("schema not embedded")
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(assets.Schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return s, nil
})

// ValidateAgainstSchema checks cfg against the embedded JSON schema. The
// schema is compiled on first use. Violations come back as a *SchemaError,
// sorted by field.
func ValidateAgainstSchema(cfg Config) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	res, err := schema.Validate(gojsonschema.NewGoLoader(cfg))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, e := range res.Errors() {
		se.Issues = append(se.Issues, Issue{Field: e.Field(), Description: e.Description()})
	}
	sort.SliceStable(se.Issues, func(i, j int) bool { return se.Issues[i].Field < se.Issues[j].Field })
	return se
}
