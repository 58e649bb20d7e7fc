package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DataDefinitions returns the JSON document tools (rule-based validation and
// transformation). Both operate on raw JSON via gjson/sjson so payload
// documents keep their original field ordering and number formatting.
func DataDefinitions() []Definition {
	return []Definition{
		{
			Name:        "validate_data",
			Description: "Validate a JSON document against per-field rules (required, type, min_length, max_length).",
			InputSchema: GenerateSchema[ValidateDataInput](),
			Handler:     validateData,
		},
		{
			Name:        "transform_data",
			Description: "Apply set, delete, and rename transformations to a JSON document.",
			InputSchema: GenerateSchema[TransformDataInput](),
			Handler:     transformData,
		},
	}
}

// FieldRule describes the checks applied to one field by validate_data.
type FieldRule struct {
	Required  bool   `json:"required,omitempty"`
	Type      string `json:"type,omitempty" jsonschema_description:"Expected JSON type: string, number, boolean, array, or object."`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// ValidateDataInput is the payload for the validate_data tool.
type ValidateDataInput struct {
	Data  json.RawMessage      `json:"data" jsonschema_description:"The JSON document to validate."`
	Rules map[string]FieldRule `json:"rules" jsonschema_description:"Field path to rule."`
}

type validationResults struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

func validateData(_ context.Context, input json.RawMessage) *Result {
	var in ValidateDataInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}

	results := validationResults{IsValid: true, Errors: []string{}}

	addError := func(format string, args ...any) {
		results.IsValid = false
		results.Errors = append(results.Errors, fmt.Sprintf(format, args...))
	}

	for field, rule := range in.Rules {
		value := gjson.GetBytes(in.Data, field)

		if rule.Required && !value.Exists() {
			addError("%s is required", field)
		}
		if !value.Exists() {
			continue
		}

		if rule.Type != "" && !typeMatches(value, rule.Type) {
			addError("%s must be of type %s", field, rule.Type)
		}
		if rule.MinLength > 0 && len(value.String()) < rule.MinLength {
			addError("%s must be at least %d characters", field, rule.MinLength)
		}
		if rule.MaxLength > 0 && len(value.String()) > rule.MaxLength {
			addError("%s must be at most %d characters", field, rule.MaxLength)
		}
	}

	return Success("data validated", results)
}

// typeMatches reports whether a gjson value has the named JSON type.
func typeMatches(value gjson.Result, typeName string) bool {
	switch typeName {
	case "string":
		return value.Type == gjson.String
	case "number":
		return value.Type == gjson.Number
	case "boolean":
		return value.IsBool()
	case "array":
		return value.IsArray()
	case "object":
		return value.IsObject()
	default:
		return false
	}
}

// Transformation is one step applied by transform_data.
type Transformation struct {
	Operation string          `json:"operation" jsonschema_description:"One of set, delete, rename."`
	Field     string          `json:"field"`
	Value     json.RawMessage `json:"value,omitempty" jsonschema_description:"New value for set."`
	NewField  string          `json:"new_field,omitempty" jsonschema_description:"Target field for rename."`
}

// TransformDataInput is the payload for the transform_data tool.
type TransformDataInput struct {
	Data            json.RawMessage  `json:"data" jsonschema_description:"The JSON document to transform."`
	Transformations []Transformation `json:"transformations"`
}

type transformDataOutput struct {
	TransformedData json.RawMessage `json:"transformed_data"`
}

func transformData(_ context.Context, input json.RawMessage) *Result {
	var in TransformDataInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}

	doc := []byte(in.Data)
	if len(doc) == 0 {
		doc = []byte(`{}`)
	}

	var err error
	for _, t := range in.Transformations {
		switch t.Operation {
		case "set":
			value := t.Value
			if len(value) == 0 {
				// A set with no value stores JSON null; splicing an empty
				// raw token would corrupt the document.
				value = json.RawMessage(`null`)
			}
			doc, err = sjson.SetRawBytes(doc, t.Field, value)
		case "delete":
			doc, err = sjson.DeleteBytes(doc, t.Field)
		case "rename":
			value := gjson.GetBytes(doc, t.Field)
			if !value.Exists() {
				continue
			}
			doc, err = sjson.DeleteBytes(doc, t.Field)
			if err == nil {
				doc, err = sjson.SetRawBytes(doc, t.NewField, []byte(value.Raw))
			}
		default:
			return Errorf("unknown transformation operation: %s", t.Operation)
		}
		if err != nil {
			return Errorf("transformation failed for field %s: %v", t.Field, err)
		}
	}

	return Success("data transformed", transformDataOutput{TransformedData: doc})
}
