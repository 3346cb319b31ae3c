package provider

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extractor attempts to pull the assistant's text out of a decoded provider
// body. Extractors are tried in priority order; the first match wins.
type Extractor func(body map[string]any) (string, bool)

// DefaultExtractors is the priority order used when a client does not
// configure its own: the model-specific nested completion field first, then
// the generic fallback fields seen across providers.
var DefaultExtractors = []Extractor{
	extractChoices,
	extractField("response"),
	extractField("output"),
	extractField("text"),
	extractField("content"),
}

// ExtractText normalizes a provider response body into plain assistant text.
// If no extractor matches, or the body is not a JSON object, the raw
// serialization of the whole body is returned. The reasoning segment is
// stripped in every case.
func ExtractText(raw []byte, extractors []Extractor) string {
	if len(extractors) == 0 {
		extractors = DefaultExtractors
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, extract := range extractors {
			if text, ok := extract(body); ok {
				return StripReasoning(text)
			}
		}
	}

	return StripReasoning(string(raw))
}

// reasoningPattern matches a delimited chain-of-thought segment, including
// one spanning multiple lines.
var reasoningPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes the delimited reasoning segment from the text and
// trims surrounding whitespace.
func StripReasoning(text string) string {
	return strings.TrimSpace(reasoningPattern.ReplaceAllString(text, ""))
}

// extractChoices reads choices[0].message.content, the standard chat
// completion shape.
func extractChoices(body map[string]any) (string, bool) {
	choices, ok := body["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", false
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].(string)
	if !ok || content == "" {
		return "", false
	}
	return content, true
}

// extractField reads a top-level string field by name.
func extractField(name string) Extractor {
	return func(body map[string]any) (string, bool) {
		value, ok := body[name].(string)
		if !ok || value == "" {
			return "", false
		}
		return value, true
	}
}
