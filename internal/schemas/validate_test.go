package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-editor/internal/types"
)

const validDocument = `{
  "sections": [
    {"name": "Summary", "type": "text", "content": "Backend engineer"},
    {"name": "Work", "type": "experience", "content": [
      {"company": "Acme", "title": "Engineer", "dates": "2020-2024", "description": ["Built APIs"]}
    ]},
    {"name": "School", "type": "education", "content": [
      {"degree": "BSc", "school": "State", "year": "2019", "field_of_study": "CS"}
    ]},
    {"name": "Skills", "type": "bulleted-list", "content": ["Go", {"text": "Rust"}]},
    {"name": "Links", "type": "icon-list", "content": [{"text": "github.com/me", "icon": "github"}]},
    {"name": "Custom", "type": "timeline", "content": ["2020: started"]},
    {"name": "Empty", "type": "inline-list", "content": null}
  ]
}`

func TestValidateSections_Valid(t *testing.T) {
	assert.NoError(t, ValidateSections([]byte(validDocument)))
	assert.NoError(t, ValidateSections([]byte(`{"sections": []}`)))
}

func TestValidateSections_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing sections", `{}`},
		{"extra top-level field", `{"sections": [], "version": 2}`},
		{"section without name", `{"sections": [{"type": "text", "content": ""}]}`},
		{"empty type", `{"sections": [{"name": "A", "type": "", "content": ""}]}`},
		{"text with list content", `{"sections": [{"name": "A", "type": "text", "content": ["x"]}]}`},
		{"experience with text content", `{"sections": [{"name": "A", "type": "experience", "content": "x"}]}`},
		{"experience description not strings", `{"sections": [{"name": "A", "type": "experience", "content": [{"description": [1]}]}]}`},
		{"list item object without text", `{"sections": [{"name": "A", "type": "bulleted-list", "content": [{"icon": "x"}]}]}`},
		{"not JSON", `{"sections": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSections([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidationError_FieldPaths(t *testing.T) {
	err := ValidateSections([]byte(`{"sections": [{"name": "A", "type": "text", "content": 5}]}`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "validation failed")

	fields := make([]string, len(validationErr.Errors))
	for i, fe := range validationErr.Errors {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "sections.0.content")
}

func TestDecodeSections(t *testing.T) {
	sections, err := DecodeSections([]byte(validDocument))
	require.NoError(t, err)
	require.Len(t, sections, 7)

	assert.Equal(t, types.TextContent("Backend engineer"), sections[0].Content)

	work, ok := sections[1].Content.(types.ExperienceContent)
	require.True(t, ok)
	assert.Equal(t, "Acme", work[0].Company)

	skills, ok := sections[3].Content.(types.ListContent)
	require.True(t, ok)
	assert.Equal(t, types.ListContent{{Text: "Go"}, {Text: "Rust"}}, skills)

	assert.Equal(t, types.SectionType("timeline"), sections[5].Type)
	assert.Equal(t, types.ListContent{}, sections[6].Content, "null content gets the type default")
}

func TestDecodeSections_RejectsInvalid(t *testing.T) {
	sections, err := DecodeSections([]byte(`{"sections": [{"name": "A"}]}`))
	assert.Nil(t, sections)
	assert.Error(t, err)
}

func TestDecodeSections_EmptyListIsNotNil(t *testing.T) {
	sections, err := DecodeSections([]byte(`{"sections": []}`))
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))

	err := ValidateJSONString(schema, `{"name": 1}`)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
