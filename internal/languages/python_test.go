package languages

import (
	"reflect"
	"testing"
)

func TestExtractKeysFromPython(t *testing.T) {
	callees := map[string]bool{"t": true, "_": true}

	tests := []struct {
		name     string
		matches  []map[string]string
		expected []string
	}{
		{
			name:     "double quotes",
			matches:  []map[string]string{{"fn": "t", "key": `"quizOverview.title"`}},
			expected: []string{"quizOverview.title"},
		},
		{
			name:     "attribute call with single quotes",
			matches:  []map[string]string{{"fn": "i18n.t", "key": `'quizOverview.title'`}},
			expected: []string{"quizOverview.title"},
		},
		{
			name:     "raw prefix",
			matches:  []map[string]string{{"fn": "_", "key": `r"quizOverview.path"`}},
			expected: []string{"quizOverview.path"},
		},
		{
			name:     "triple quotes",
			matches:  []map[string]string{{"fn": "t", "key": `"""quizOverview.long"""`}},
			expected: []string{"quizOverview.long"},
		},
		{
			name:     "f-string is dynamic",
			matches:  []map[string]string{{"fn": "t", "key": `f"quizOverview.{name}"`}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractKeysFromPython(tt.matches, callees)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ExtractKeysFromPython() = %v, want %v", result, tt.expected)
			}
		})
	}
}
