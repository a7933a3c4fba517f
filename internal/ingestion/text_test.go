package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n## Subtitle\nContent here"
	result := CleanText(input)

	assert.Contains(t, result, "# Title")
	assert.Contains(t, result, "## Subtitle")
	assert.Contains(t, result, "Content here")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3\n• Item 4"
	result := CleanText(input)

	assert.Equal(t, "- Item 1\n- Item 2\n* Item 3\n• Item 4", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with    multiple    spaces"
	result := CleanText(input)

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	// Paragraph boundary survives as exactly one blank line
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_BlankLinesWithSpaces(t *testing.T) {
	input := "Line 1\n   \n\t\nLine 2"
	result := CleanText(input)

	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	result1 := CleanText(input)
	result2 := CleanText(input)

	assert.Equal(t, result1, result2)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Empty(t, CleanText(""))
}

func TestCleanText_OnlyWhitespace(t *testing.T) {
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "ঢাকা মেট্রো   রেল 🚆 and spéciàl chàracters"
	result := CleanText(input)

	assert.Equal(t, "ঢাকা মেট্রো রেল 🚆 and spéciàl chàracters", result)
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	input := "Intro\n    Indented   line\n  - nested bullet"
	result := CleanText(input)

	assert.Equal(t, "Intro\n    Indented line\n  - nested bullet", result)
}

func TestCleanText_ComplexFormatting(t *testing.T) {
	content, err := os.ReadFile(filepath.Join("testdata", "complex_formatting.txt"))
	require.NoError(t, err)

	result := CleanText(string(content))

	// Headings and bullets survive
	assert.Contains(t, result, "# Budget 2025: what changes for you")
	assert.Contains(t, result, "## Key measures")
	assert.Contains(t, result, "- VAT on mobile data cut")
	assert.Contains(t, result, "* Tax-free income threshold raised")
	assert.Contains(t, result, "    • Pension top-up for retirees")

	// Whitespace normalized, paragraphs kept
	assert.Contains(t, result, "The finance minister placed a Tk 7.9 lakh crore budget in parliament on Thursday.")
	assert.NotContains(t, result, "\n\n\n")
	assert.Contains(t, result, "\n\nAnalysts said the plan relies on optimistic revenue targets.")
}

func TestIngestFromFile_TextFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "story.txt")
	err := os.WriteFile(testFile, []byte("  Budget passed  \n\nParliament   approved the plan."), 0644)
	require.NoError(t, err)

	article, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "Budget passed\n\nParliament approved the plan.", article.Text)
	assert.Equal(t, "Budget passed", article.Title)
	assert.Equal(t, ExtractorText, article.Extractor)
	assert.Nil(t, article.Headings)

	assert.Len(t, metadata.Hash, 64)
	assert.Equal(t, computeHash(article.Text), metadata.Hash)
	assert.Equal(t, "text", metadata.Extractor)
	assert.NotEmpty(t, metadata.Timestamp)
}

func TestIngestFromFile_HTMLFile(t *testing.T) {
	article, metadata, err := IngestFromFile(filepath.Join("testdata", "story.html"))
	require.NoError(t, err)

	assert.Contains(t, article.Text, "Dhaka metro rail will run until midnight")
	assert.Contains(t, article.Text, "Trains every eight minutes after 9pm")
	assert.NotContains(t, article.Text, "Copyright")
	assert.NotEqual(t, ExtractorText, article.Extractor)
	require.NotNil(t, article.Headings)
	assert.Equal(t, metadata.Title, article.Title)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	article, metadata, err := IngestFromFile("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Nil(t, article)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_HashUniqueness(t *testing.T) {
	tmpDir := t.TempDir()
	testFile1 := filepath.Join(tmpDir, "test1.txt")
	testFile2 := filepath.Join(tmpDir, "test2.txt")
	require.NoError(t, os.WriteFile(testFile1, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(testFile2, []byte("Content 2"), 0644))

	_, metadata1, err := IngestFromFile(testFile1)
	require.NoError(t, err)
	_, metadata1Again, err := IngestFromFile(testFile1)
	require.NoError(t, err)
	_, metadata2, err := IngestFromFile(testFile2)
	require.NoError(t, err)

	assert.Equal(t, metadata1.Hash, metadata1Again.Hash)
	assert.NotEqual(t, metadata1.Hash, metadata2.Hash)
}

func TestWriteOutput(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	article := &Article{Title: "Budget passed", Text: "Budget passed\n\nBody."}
	metadata := NewMetadata(article.Text, "")
	metadata.ApplyArticle(article)

	require.NoError(t, WriteOutput(outDir, article, metadata))

	text, err := os.ReadFile(filepath.Join(outDir, "article.cleaned.txt"))
	require.NoError(t, err)
	assert.Equal(t, article.Text, string(text))

	meta, err := os.ReadFile(filepath.Join(outDir, "article.meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"title": "Budget passed"`)
}
