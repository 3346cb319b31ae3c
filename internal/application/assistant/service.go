package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/record-hub/student-record-hub/internal/domain/student"
	"github.com/record-hub/student-record-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSISTANT SERVICE
// Validates the inbound question, assembles the prompt from the dataset
// context plus a bounded slice of conversation history, forwards it to the
// completion provider, and classifies failures into user-facing categories.
//
// One outbound call per request, no retries: failure is surfaced immediately.
// ══════════════════════════════════════════════════════════════════════════════

// Turn is one prior message of the conversation, supplied by the caller.
// Turns are not persisted by this system.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AskRequest is the inbound assistant payload.
type AskRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
}

// AskResult is the successful assistant outcome.
type AskResult struct {
	// Response is the normalized assistant text.
	Response string

	// Raw is the unmodified provider response body, forwarded to the client.
	Raw json.RawMessage
}

// PromptMessage is one entry of the ordered message list sent to the
// completion provider.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the normalized provider result.
type Completion struct {
	// Text is the extracted assistant text with any reasoning segment
	// already stripped.
	Text string

	// Raw is the full provider response body.
	Raw json.RawMessage
}

// Completer is the outbound boundary to the completion provider.
type Completer interface {
	Complete(ctx context.Context, messages []PromptMessage) (*Completion, error)
}

// statusCarrier is implemented by completer errors that carry a
// provider-returned HTTP status.
type statusCarrier interface {
	ProviderStatus() int
	ProviderDetail() string
}

// dnsCarrier is implemented by completer errors caused by a name-resolution
// failure against the provider host.
type dnsCarrier interface {
	FailedHost() string
}

// AskError carries a classified failure for the request boundary: the HTTP
// status to surface, a short category label, and a displayable detail.
type AskError struct {
	Status   int
	Category string
	Detail   string
}

// Error implements the error interface.
func (e *AskError) Error() string {
	return e.Category + ": " + e.Detail
}

// Config holds assistant service settings.
type Config struct {
	// APIKey is the provider credential. Empty or placeholder values fail
	// each request with a configuration error; the rest of the service
	// stays available.
	APIKey string

	// MockMode skips the provider call and echoes a canned reply.
	MockMode bool

	// HistoryLimit caps how many trailing history turns are forwarded.
	HistoryLimit int
}

// Service is the assistant proxy.
type Service struct {
	records   student.Repository
	completer Completer
	context   *ContextBuilder
	cfg       Config
	logger    *logger.Logger
}

// NewService creates the assistant service. A nil context builder selects
// the default reference text; a zero history limit defaults to 10.
func NewService(records student.Repository, completer Completer, ctxBuilder *ContextBuilder, cfg Config, log *logger.Logger) *Service {
	if ctxBuilder == nil {
		ctxBuilder = NewContextBuilder("")
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		records:   records,
		completer: completer,
		context:   ctxBuilder,
		cfg:       cfg,
		logger:    log.With(logger.Component("assistant")),
	}
}

// Ask answers a user question about the dataset.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, &AskError{
			Status:   http.StatusBadRequest,
			Category: "missing message",
			Detail:   "message must be a non-empty string",
		}
	}

	if s.cfg.MockMode {
		return &AskResult{Response: fmt.Sprintf("Mock reply: %q", message)}, nil
	}

	if isPlaceholderKey(s.cfg.APIKey) {
		return nil, &AskError{
			Status:   http.StatusInternalServerError,
			Category: "assistant not configured",
			Detail:   "ASSISTANT_API_KEY is not set",
		}
	}

	// A snapshot read failure degrades the context instead of failing the
	// request: the provider is still consulted, just without live data.
	contextText := ContextFallback
	if snapshot, err := s.records.List(ctx); err != nil {
		s.logger.Warn("record snapshot unavailable, answering without dataset context", logger.Err(err))
	} else {
		contextText = s.context.Build(snapshot)
	}

	completion, err := s.completer.Complete(ctx, s.assemble(contextText, req.History, message))
	if err != nil {
		return nil, s.classify(err)
	}

	return &AskResult{Response: completion.Text, Raw: completion.Raw}, nil
}

// assemble builds the ordered prompt: one system instruction embedding the
// dataset context, at most the last HistoryLimit prior turns, then the
// current user message.
func (s *Service) assemble(contextText string, history []Turn, message string) []PromptMessage {
	if len(history) > s.cfg.HistoryLimit {
		history = history[len(history)-s.cfg.HistoryLimit:]
	}

	messages := make([]PromptMessage, 0, len(history)+2)
	messages = append(messages, PromptMessage{Role: "system", Content: systemPrompt(contextText)})
	for _, turn := range history {
		messages = append(messages, PromptMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, PromptMessage{Role: "user", Content: message})
	return messages
}

// classify maps a completer failure onto a status/category/detail triple.
// DNS failure is checked first: it can surface either as a typed resolution
// error or embedded in a generic transport error message.
func (s *Service) classify(err error) *AskError {
	var dnsErr dnsCarrier
	if errors.As(err, &dnsErr) {
		s.logger.Error("provider host could not be resolved", logger.String("host", dnsErr.FailedHost()))
		return &AskError{
			Status:   http.StatusBadGateway,
			Category: "DNS resolution failed",
			Detail:   fmt.Sprintf("could not resolve provider host %q", dnsErr.FailedHost()),
		}
	}

	var statusErr statusCarrier
	if errors.As(err, &statusErr) {
		s.logger.Error("provider returned an error status",
			logger.ProviderStatus(statusErr.ProviderStatus()))
		return &AskError{
			Status:   statusErr.ProviderStatus(),
			Category: "provider error",
			Detail:   statusErr.ProviderDetail(),
		}
	}

	s.logger.Error("assistant request failed", logger.Err(err))
	return &AskError{
		Status:   http.StatusInternalServerError,
		Category: "assistant request failed",
		Detail:   err.Error(),
	}
}

func systemPrompt(contextText string) string {
	return "You are the assistant for the student record hub. " +
		"Answer questions about the student dataset using the information below. " +
		"Be concise and factual.\n\n" + contextText
}

// isPlaceholderKey reports whether the credential is absent or a template
// value left unchanged.
func isPlaceholderKey(key string) bool {
	switch strings.TrimSpace(key) {
	case "", "your-api-key-here", "changeme":
		return true
	}
	return false
}

// round1 rounds to one fractional digit, matching the statistics views.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
