package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatKeys(&buf, []string{"questions.count", "title"}, Options{}))
	assert.Equal(t, "Required keys (2):\n  questions.count\n  title\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatKeys(&buf, nil, Options{}))
	assert.Equal(t, "Required keys: None\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatKeys(&buf, nil, Options{JSON: true}))
	assert.JSONEq(t, `{"required": []}`, buf.String())
}

func TestFormatFind(t *testing.T) {
	results := []FindResult{
		{Label: "EN", Key: "label", Found: true, Path: "quizOverview.tags[1].label", Resolves: true, Value: `string "Hard"`, Parent: "object (1 key)"},
		{Label: "VI", Key: "label"},
		{Label: "FR", Key: "label", Found: true, Path: "quiz.label"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatFind(&buf, results, Options{}))
	expected := `EN: quizOverview.tags[1].label  string "Hard"  in object (1 key)
VI: "label" not found
FR: quiz.label  does not resolve
`
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	require.NoError(t, FormatFind(&buf, results, Options{JSON: true}))
	var decoded []FindResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, results, decoded)
}

func TestFormatParity(t *testing.T) {
	r := ParityResult{
		Prefix: "quizOverview",
		LabelA: "EN",
		LabelB: "VI",
		OnlyA:  []string{"quizOverview.start"},
		OnlyB:  []string{},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatParity(&buf, r, Options{}))
	assert.Equal(t, "Only in EN (1):\n  quizOverview.start\n\nOnly in VI: None\n\n✗ EN and VI differ in 1 key(s) under quizOverview.\n", buf.String())
	assert.False(t, r.InSync())

	r.OnlyA = nil
	r.Prefix = ""
	buf.Reset()
	require.NoError(t, FormatParity(&buf, r, Options{}))
	assert.Contains(t, buf.String(), "✓ EN and VI define the same keys.")
}
