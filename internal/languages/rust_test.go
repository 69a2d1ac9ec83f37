package languages

import (
	"reflect"
	"testing"
)

func TestExtractKeysFromRust(t *testing.T) {
	callees := map[string]bool{"t": true}

	tests := []struct {
		name     string
		matches  []map[string]string
		expected []string
	}{
		{
			name:     "macro",
			matches:  []map[string]string{{"fn": "t", "key": `"quizOverview.title"`}},
			expected: []string{"quizOverview.title"},
		},
		{
			name:     "scoped function",
			matches:  []map[string]string{{"fn": "i18n::t", "key": `"quizOverview.title"`}},
			expected: []string{"quizOverview.title"},
		},
		{
			name:     "println is not a translation call",
			matches:  []map[string]string{{"fn": "println", "key": `"quizOverview.title"`}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractKeysFromRust(tt.matches, callees)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ExtractKeysFromRust() = %v, want %v", result, tt.expected)
			}
		})
	}
}
