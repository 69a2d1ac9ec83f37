package languages

import (
	"reflect"
	"testing"
)

func TestExtractKeysFromGo(t *testing.T) {
	callees := map[string]bool{"T": true}

	tests := []struct {
		name     string
		matches  []map[string]string
		expected []string
	}{
		{
			name:     "interpreted string",
			matches:  []map[string]string{{"fn": "T", "key": `"quizOverview.title"`}},
			expected: []string{"quizOverview.title"},
		},
		{
			name:     "raw string through selector",
			matches:  []map[string]string{{"fn": "i18n.T", "key": "`quizOverview.title`"}},
			expected: []string{"quizOverview.title"},
		},
		{
			name: "multiple calls",
			matches: []map[string]string{
				{"fn": "T", "key": `"quizOverview.a"`},
				{"fn": "T", "key": `"quizOverview.b"`},
			},
			expected: []string{"quizOverview.a", "quizOverview.b"},
		},
		{
			name:     "wrong callee",
			matches:  []map[string]string{{"fn": "fmt.Sprintf", "key": `"quizOverview.title"`}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractKeysFromGo(tt.matches, callees)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ExtractKeysFromGo() = %v, want %v", result, tt.expected)
			}
		})
	}
}
