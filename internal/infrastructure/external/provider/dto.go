package provider

import "encoding/json"

// Message is one entry of the ordered message list sent to the completion
// endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the wire format of the outbound completion call.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
}

// Result is the outcome of a completion call.
type Result struct {
	// Text is the assistant text extracted from the response body, with any
	// delimited reasoning segment removed.
	Text string

	// Raw is the unmodified provider response body.
	Raw json.RawMessage
}

// providerErrorBody covers the error payload shapes providers return
// alongside a non-2xx status.
type providerErrorBody struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}
