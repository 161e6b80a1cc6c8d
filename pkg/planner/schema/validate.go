package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// Validate strictly decodes raw against the definition. Syntactically
// invalid JSON yields a SCHEMA_PARSE_FAILED error; JSON that parses but has
// unknown fields, mistyped fields, or missing required fields at any nesting
// depth yields a SCHEMA_VALIDATION_FAILED error with every missing field
// reported.
func (d *Definition) Validate(raw []byte) (interface{}, error) {
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSchemaParse,
			fmt.Sprintf("response is not valid JSON for %s", d.Name), err)
	}

	missing := checkRequired(generic, d.Parameters, "", nil)
	if err := missing.ErrorOrNil(); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSchemaValidation,
			fmt.Sprintf("response does not conform to %s", d.Name), err)
	}

	value := d.New()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSchemaValidation,
			fmt.Sprintf("response does not conform to %s", d.Name), err)
	}

	return value, nil
}

// ValidateMap is Validate over an already-decoded argument map, as returned
// by a model tool call.
func (d *Definition) ValidateMap(args map[string]interface{}) (interface{}, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSchemaParse,
			fmt.Sprintf("tool arguments for %s cannot be re-encoded", d.Name), err)
	}
	return d.Validate(raw)
}

// checkRequired walks the schema alongside the decoded value and records
// every absent required field, however deeply nested. Missing fields would
// otherwise decode to zero values and slip through the strict decoder.
func checkRequired(value interface{}, params map[string]interface{}, path string, errs *multierror.Error) *multierror.Error {
	if items, ok := params["items"].(map[string]interface{}); ok {
		elements, ok := value.([]interface{})
		if !ok {
			return errs
		}
		for i, element := range elements {
			errs = checkRequired(element, items, fmt.Sprintf("%s[%d]", path, i), errs)
		}
		return errs
	}

	// Mistyped values are left for the strict decoder to report.
	obj, ok := value.(map[string]interface{})
	if !ok {
		return errs
	}

	properties, _ := params["properties"].(map[string]interface{})
	for _, name := range requiredFields(params) {
		fieldPath := name
		if path != "" {
			fieldPath = path + "." + name
		}
		nested, present := obj[name]
		if !present {
			errs = multierror.Append(errs, fmt.Errorf("missing required field %q", fieldPath))
			continue
		}
		if prop, ok := properties[name].(map[string]interface{}); ok {
			errs = checkRequired(nested, prop, fieldPath, errs)
		}
	}
	return errs
}

func requiredFields(params map[string]interface{}) []string {
	required, ok := params["required"].([]string)
	if ok {
		return required
	}
	// required may arrive as []interface{} after a JSON round trip
	if anys, ok := params["required"].([]interface{}); ok {
		names := make([]string, 0, len(anys))
		for _, a := range anys {
			names = append(names, fmt.Sprint(a))
		}
		return names
	}
	return nil
}

// FieldNames returns the top-level property names of the definition, in
// required order. Useful for merging extraction results into session state.
func (d *Definition) FieldNames() []string {
	return requiredFields(d.Parameters)
}

// Describe renders a short human-readable summary of the definition, used
// in prompt construction.
func (d *Definition) Describe() string {
	return fmt.Sprintf("%s (%s): fields %s", d.Name, d.Description, strings.Join(d.FieldNames(), ", "))
}
