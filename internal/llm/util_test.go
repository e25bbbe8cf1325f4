package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain answer", "Software Engineer, Backend Engineer", "Software Engineer, Backend Engineer"},
		{"generic fence", "```\nSoftware Engineer\n```", "Software Engineer"},
		{"fence with language", "```text\nData Engineer, Analytics Engineer\n```", "Data Engineer, Analytics Engineer"},
		{"surrounding whitespace", "  \n Product Manager \n", "Product Manager"},
		{"single line fence", "```Site Reliability Engineer```", "Site Reliability Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
