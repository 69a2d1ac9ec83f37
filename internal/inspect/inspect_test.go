package inspect

import (
	"bytes"
	"testing"

	"github.com/jenian/keygrd/internal/analyzer"
	"github.com/jenian/keygrd/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locales() (analyzer.Locale, analyzer.Locale) {
	en := analyzer.Locale{Label: "EN", Path: "en/common.json", Tree: tree.NewObject(
		tree.Entry{Key: "quizOverview", Value: tree.NewObject(
			tree.Entry{Key: "title", Value: tree.NewString("Quiz")},
			tree.Entry{Key: "questions", Value: tree.NewObject(
				tree.Entry{Key: "count", Value: tree.NewString("{{count}} questions")},
			)},
			tree.Entry{Key: "tags", Value: tree.NewArray(tree.NewString("easy"), tree.NewString("hard"))},
		)},
	)}
	vi := analyzer.Locale{Label: "VI", Path: "vi/common.json", Tree: tree.NewObject(
		tree.Entry{Key: "quizOverview", Value: tree.NewObject(
			tree.Entry{Key: "title", Value: tree.NewString("Bài kiểm tra")},
			tree.Entry{Key: "questions", Value: tree.NewObject(
				tree.Entry{Key: "count", Value: tree.NewString("{{count}} câu hỏi")},
				tree.Entry{Key: "empty", Value: tree.NewString("Chưa có câu hỏi")},
			)},
		)},
	)}
	return en, vi
}

func TestInspect(t *testing.T) {
	en, _ := locales()

	shape := Inspect(en, "quizOverview")
	require.True(t, shape.Found)
	assert.Equal(t, "object (3 keys)", shape.Summary)
	assert.Equal(t, []Child{
		{Key: "title", Kind: tree.KindString, Summary: `string "Quiz"`},
		{Key: "questions", Kind: tree.KindObject, Summary: "object (1 key)"},
		{Key: "tags", Kind: tree.KindArray, Summary: "array (2 items)"},
	}, shape.Children)

	arr := Inspect(en, "quizOverview.tags")
	require.True(t, arr.Found)
	assert.Equal(t, "[1]", arr.Children[1].Key)

	leaf := Inspect(en, "quizOverview.title")
	assert.True(t, leaf.Found)
	assert.Empty(t, leaf.Children)

	root := Inspect(en, "")
	assert.True(t, root.Found)
	assert.Len(t, root.Children, 1)

	missing := Inspect(en, "settings")
	assert.False(t, missing.Found)
	assert.Empty(t, missing.Children)
}

func TestRender(t *testing.T) {
	en, vi := locales()
	var buf bytes.Buffer
	Render(&buf, []Shape{Inspect(en, "quizOverview"), Inspect(vi, "settings")})

	expected := `EN (en/common.json):
  quizOverview: object (3 keys)
    title: string "Quiz"
    questions: object (1 key)
    tags: array (2 items)

VI (vi/common.json):
  settings: not found
`
	assert.Equal(t, expected, buf.String())
}

func TestDiff(t *testing.T) {
	en, vi := locales()
	diff := Diff(Inspect(en, "quizOverview"), Inspect(vi, "quizOverview"))

	assert.Contains(t, diff, "--- EN\n+++ VI\n")
	assert.Contains(t, diff, "  title: string\n")
	assert.Contains(t, diff, "- questions: object (1 key)\n")
	assert.Contains(t, diff, "- tags: array (2 items)\n")
	assert.Contains(t, diff, "+ questions: object (2 keys)\n")
	assert.NotContains(t, diff, "Quiz", "scalar values must not be compared")

	expected := `--- EN
+++ VI
  title: string
- questions: object (1 key)
+ questions: object (2 keys)
- tags: array (2 items)
`
	assert.Equal(t, expected, diff)
}

func TestDiff_AlignsByKey(t *testing.T) {
	a := Shape{Label: "EN", Found: true, Children: []Child{
		{Key: "intro", Kind: tree.KindString},
		{Key: "body", Kind: tree.KindString},
		{Key: "outro", Kind: tree.KindString},
	}}
	b := Shape{Label: "VI", Found: true, Children: []Child{
		{Key: "body", Kind: tree.KindString},
		{Key: "footer", Kind: tree.KindString},
		{Key: "outro", Kind: tree.KindNumber},
	}}

	expected := `--- EN
+++ VI
- intro: string
  body: string
+ footer: string
- outro: string
+ outro: number
`
	assert.Equal(t, expected, Diff(a, b))
}

func TestDiff_SameStructure(t *testing.T) {
	en, vi := locales()
	// titles differ only in text
	assert.Empty(t, Diff(Inspect(en, "quizOverview.title"), Inspect(vi, "quizOverview.title")))
}

func TestDiff_NotFound(t *testing.T) {
	en, vi := locales()
	diff := Diff(Inspect(en, "quizOverview.tags"), Inspect(vi, "quizOverview.tags"))

	assert.Contains(t, diff, "+ quizOverview.tags: not found\n")
	assert.Contains(t, diff, "- [0]: string\n")
	assert.Contains(t, diff, "- [1]: string\n")
}
