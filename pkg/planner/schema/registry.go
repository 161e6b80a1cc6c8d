package schema

import (
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
)

// Definition describes one structured-extraction target: the name the model
// sees, a JSON Schema for its fields, and a constructor for the Go value the
// strict decoder fills.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	New         func() interface{}
}

// Registered extraction targets.
var (
	ItineraryDef = Define("Itinerary", "A complete travel itinerary", func() interface{} { return &Itinerary{} })

	PromptsListDef = Define("PromptsList", "A list of short trip idea prompts", func() interface{} { return &PromptsList{} })

	ItineraryRequestDef = Define("ItineraryRequest", "Concrete trip parameters extracted from a trip idea", func() interface{} { return &ItineraryRequest{} })

	ActivitiesDef = Define("ActivitiesAnswer", "The activities the user wants on the trip", func() interface{} { return &ActivitiesAnswer{} })

	DestinationDef = Define("DestinationAnswer", "Where the user wants to travel", func() interface{} { return &DestinationAnswer{} })

	DatesDef = Define("DatesAnswer", "When the user wants to travel", func() interface{} { return &DatesAnswer{} })

	PartyDef = Define("PartyAnswer", "How many adults and children are travelling", func() interface{} { return &PartyAnswer{} })
)

var registry = map[string]*Definition{}

// Define builds a Definition for the value produced by newFn, deriving the
// JSON Schema from its struct shape, and registers it by name.
func Define(name, description string, newFn func() interface{}) *Definition {
	def := &Definition{
		Name:        name,
		Description: description,
		Parameters:  schemaFor(reflect.TypeOf(newFn())),
		New:         newFn,
	}
	registry[name] = def
	return def
}

// Lookup returns the Definition registered under name, or nil.
func Lookup(name string) *Definition {
	return registry[name]
}

// schemaFor derives a strict JSON Schema from a struct type: every field is
// required and no additional properties are allowed.
func schemaFor(t reflect.Type) map[string]interface{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		properties := map[string]interface{}{}
		required := []string{}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue
			}
			name := fieldName(field)
			prop := schemaFor(field.Type)
			if desc := field.Tag.Get("description"); desc != "" {
				prop["description"] = desc
			}
			properties[name] = prop
			required = append(required, name)
		}
		return map[string]interface{}{
			"type":                 "object",
			"properties":           properties,
			"required":             required,
			"additionalProperties": false,
		}
	case reflect.Slice, reflect.Array:
		return map[string]interface{}{
			"type":  "array",
			"items": schemaFor(t.Elem()),
		}
	case reflect.String:
		return map[string]interface{}{"type": "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]interface{}{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]interface{}{"type": "number"}
	case reflect.Bool:
		return map[string]interface{}{"type": "boolean"}
	default:
		return map[string]interface{}{}
	}
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag != "" {
		if name := strings.Split(tag, ",")[0]; name != "" && name != "-" {
			return name
		}
	}
	return strcase.SnakeCase(field.Name)
}
