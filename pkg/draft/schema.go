package draft

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
)

// Schema builds the response schema for a category: every narrative key is a
// required string, tabular keys are arrays of objects, list keys are arrays.
// The two-key shape of table entries is checked separately with
// case-insensitive lookup, which a JSON schema cannot express.
func Schema(cat category.Category) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Required = append(schema.Required, cat.Narrative...)

	for _, key := range cat.Narrative {
		schema.Properties[key] = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	}
	for _, key := range cat.Tables {
		rows := openapi3.NewArraySchema()
		rows.Items = openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
		schema.Properties[key] = openapi3.NewSchemaRef("", rows)
	}
	for _, key := range cat.Lists {
		schema.Properties[key] = openapi3.NewSchemaRef("", openapi3.NewArraySchema())
	}
	return schema
}

// validate runs the category schema over a decoded response payload.
func validate(cat category.Category, payload map[string]any) error {
	if err := Schema(cat).VisitJSON(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return nil
}
