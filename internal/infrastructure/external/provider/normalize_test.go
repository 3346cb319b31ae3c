package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText_ChoicesShape(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"Hello there"}}]}`)

	assert.Equal(t, "Hello there", ExtractText(body, nil))
}

func TestExtractText_FallbackFieldPriority(t *testing.T) {
	// "response" outranks "text" in the default order
	body := []byte(`{"response":"from response","text":"from text"}`)
	assert.Equal(t, "from response", ExtractText(body, nil))

	body = []byte(`{"output":"from output","content":"from content"}`)
	assert.Equal(t, "from output", ExtractText(body, nil))
}

func TestExtractText_ChoicesOutranksFallbacks(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"from choices"}}],"response":"from response"}`)

	assert.Equal(t, "from choices", ExtractText(body, nil))
}

func TestExtractText_RawFallback(t *testing.T) {
	// No extractor matches: the whole body is returned as-is
	body := []byte(`{"unexpected":42}`)
	assert.Equal(t, `{"unexpected":42}`, ExtractText(body, nil))

	// Not JSON at all
	assert.Equal(t, "plain text answer", ExtractText([]byte("plain text answer"), nil))
}

func TestExtractText_EmptyContentSkipped(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":""}}],"response":"fallback"}`)

	assert.Equal(t, "fallback", ExtractText(body, nil))
}

func TestExtractText_CustomExtractorOrder(t *testing.T) {
	body := []byte(`{"response":"from response","text":"from text"}`)

	extractors := []Extractor{extractField("text"), extractField("response")}
	assert.Equal(t, "from text", ExtractText(body, extractors))
}

func TestStripReasoning(t *testing.T) {
	assert.Equal(t, "Answer text", StripReasoning("<think>reasoning</think>Answer text"))
}

func TestStripReasoning_Multiline(t *testing.T) {
	in := "<think>first line\nsecond line\nthird line</think>\nAnswer text"

	assert.Equal(t, "Answer text", StripReasoning(in))
}

func TestStripReasoning_NoMarker(t *testing.T) {
	assert.Equal(t, "Answer text", StripReasoning("  Answer text\n"))
}

func TestStripReasoning_AppliedDuringExtraction(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"<think>reasoning</think>Answer text"}}]}`)

	assert.Equal(t, "Answer text", ExtractText(body, nil))
}
