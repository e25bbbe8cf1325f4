//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionType_DisplayName(t *testing.T) {
	tests := []struct {
		input    SectionType
		expected string
	}{
		{SectionText, "Text"},
		{SectionExperience, "Experience"},
		{SectionBulletedList, "Bulleted List"},
		{SectionDynamicColumnList, "Dynamic Column List"},
		{SectionType("custom_awards"), "Custom Awards"},
		{SectionType("éxitos"), "Éxitos"},
		{SectionType("über-uns"), "Über Uns"},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.DisplayName())
		})
	}
}

func TestSectionType_IsKnown(t *testing.T) {
	assert.True(t, SectionIconList.IsKnown())
	assert.False(t, SectionType("publications").IsKnown())
}

func TestDefaultContent(t *testing.T) {
	assert.Equal(t, TextContent(""), DefaultContent(SectionText))
	assert.Equal(t, ExperienceContent{}, DefaultContent(SectionExperience))
	assert.Equal(t, EducationContent{}, DefaultContent(SectionEducation))
	assert.Equal(t, ListContent{}, DefaultContent(SectionInlineList))
	assert.Equal(t, ListContent{}, DefaultContent(SectionType("publications")))
}

func TestSection_UnmarshalJSON_DecodesContentByType(t *testing.T) {
	input := `[
		{"name": "Summary", "type": "text", "content": "Backend engineer"},
		{"name": "Work", "type": "experience", "content": [
			{"company": "Acme", "title": "SWE", "dates": "2020-2023", "description": ["Built APIs"]}
		]},
		{"name": "School", "type": "education", "content": [
			{"degree": "BSc", "school": "State", "year": "2019", "field_of_study": "CS"}
		]},
		{"name": "Skills", "type": "icon-list", "content": ["Go", {"text": "Docker", "icon": "whale"}]},
		{"name": "Empty", "type": "bulleted-list", "content": null}
	]`

	var sections []Section
	require.NoError(t, json.Unmarshal([]byte(input), &sections))
	require.Len(t, sections, 5)

	assert.Equal(t, TextContent("Backend engineer"), sections[0].Content)

	work, ok := sections[1].Content.(ExperienceContent)
	require.True(t, ok, "experience section should decode to ExperienceContent")
	assert.Equal(t, "Acme", work[0].Company)
	assert.Equal(t, []string{"Built APIs"}, work[0].Description)

	school, ok := sections[2].Content.(EducationContent)
	require.True(t, ok)
	assert.Equal(t, "CS", school[0].FieldOfStudy)

	assert.Equal(t, ListContent{{Text: "Go"}, {Text: "Docker", Icon: "whale"}}, sections[3].Content)
	assert.Equal(t, ListContent{}, sections[4].Content)
}

func TestSection_UnmarshalJSON_RejectsShapeMismatch(t *testing.T) {
	var s Section
	err := json.Unmarshal([]byte(`{"name": "Summary", "type": "text", "content": ["a"]}`), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match type")
}

func TestSection_MarshalJSON_PlainListItemsAsStrings(t *testing.T) {
	s := Section{
		Name:    "Skills",
		Type:    SectionBulletedList,
		Content: ListContent{{Text: "Go"}, {Text: "Rust", Icon: "crab"}},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Skills","type":"bulleted-list","content":["Go",{"text":"Rust","icon":"crab"}]}`,
		string(data))
}

func TestSection_MarshalJSON_NilContentUsesDefault(t *testing.T) {
	data, err := json.Marshal(Section{Name: "Summary", Type: SectionText})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Summary","type":"text","content":""}`, string(data))
}

func TestItemCount(t *testing.T) {
	n, ok := ItemCount(ListContent{{Text: "a"}, {Text: "b"}})
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ItemCount(TextContent("hello"))
	assert.False(t, ok, "text content has no items")
}
