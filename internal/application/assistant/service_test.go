package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/record-hub/student-record-hub/internal/domain/student"
)

// fakeRepository returns a fixed snapshot.
type fakeRepository struct {
	records []student.Record
	err     error
}

func (f *fakeRepository) List(ctx context.Context) ([]student.Record, error) {
	return f.records, f.err
}

func (f *fakeRepository) Get(ctx context.Context, id int) (*student.Record, error) {
	return nil, nil
}

func (f *fakeRepository) Create(ctx context.Context, rec student.Record) (*student.Record, error) {
	return &rec, nil
}

func (f *fakeRepository) Update(ctx context.Context, id int, patch student.UpdatePatch) (*student.Record, error) {
	return nil, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int) error {
	return nil
}

// fakeCompleter records the messages it receives and counts calls.
type fakeCompleter struct {
	calls    int
	messages []PromptMessage
	result   *Completion
	err      error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []PromptMessage) (*Completion, error) {
	f.calls++
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &Completion{Text: "ok", Raw: json.RawMessage(`{}`)}, nil
}

// statusFailure mimics a provider error carrying an HTTP status.
type statusFailure struct {
	status int
	detail string
}

func (e *statusFailure) Error() string { return e.detail }

func (e *statusFailure) ProviderStatus() int { return e.status }

func (e *statusFailure) ProviderDetail() string { return e.detail }

// dnsFailure mimics a name-resolution failure.
type dnsFailure struct {
	host string
}

func (e *dnsFailure) Error() string { return "no such host" }

func (e *dnsFailure) FailedHost() string { return e.host }

func newTestService(repo student.Repository, completer Completer, cfg Config) *Service {
	return NewService(repo, completer, nil, cfg, nil)
}

func TestAsk_MockMode(t *testing.T) {
	completer := &fakeCompleter{}
	svc := newTestService(&fakeRepository{}, completer, Config{MockMode: true})

	result, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, `Mock reply: "hello"`, result.Response)
	// No outbound call in mock mode
	assert.Equal(t, 0, completer.calls)
}

func TestAsk_MissingMessage(t *testing.T) {
	completer := &fakeCompleter{}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	for _, message := range []string{"", "   "} {
		result, err := svc.Ask(context.Background(), AskRequest{Message: message})

		require.Error(t, err)
		assert.Nil(t, result)

		var askErr *AskError
		require.ErrorAs(t, err, &askErr)
		assert.Equal(t, http.StatusBadRequest, askErr.Status)
		assert.Equal(t, "missing message", askErr.Category)
	}

	// Validation failures never reach the provider
	assert.Equal(t, 0, completer.calls)
}

func TestAsk_MissingCredential(t *testing.T) {
	completer := &fakeCompleter{}

	for _, key := range []string{"", "your-api-key-here", "changeme"} {
		svc := newTestService(&fakeRepository{}, completer, Config{APIKey: key})

		_, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

		var askErr *AskError
		require.ErrorAs(t, err, &askErr)
		assert.Equal(t, http.StatusInternalServerError, askErr.Status)
		assert.Equal(t, "assistant not configured", askErr.Category)
	}

	assert.Equal(t, 0, completer.calls)
}

func TestAsk_HistoryCappedAtLimit(t *testing.T) {
	completer := &fakeCompleter{}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	history := make([]Turn, 15)
	for i := range history {
		history[i] = Turn{Role: "user", Content: string(rune('a' + i))}
	}

	_, err := svc.Ask(context.Background(), AskRequest{Message: "question", History: history})
	require.NoError(t, err)

	// system prompt + 10 history turns + current message
	require.Len(t, completer.messages, 12)
	assert.Equal(t, "system", completer.messages[0].Role)
	// The oldest five turns are dropped: first forwarded turn is history[5]
	assert.Equal(t, history[5].Content, completer.messages[1].Content)
	assert.Equal(t, history[14].Content, completer.messages[10].Content)
	assert.Equal(t, "question", completer.messages[11].Content)
	assert.Equal(t, "user", completer.messages[11].Role)
}

func TestAsk_ShortHistoryForwardedWhole(t *testing.T) {
	completer := &fakeCompleter{}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	history := []Turn{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	_, err := svc.Ask(context.Background(), AskRequest{Message: "follow-up", History: history})
	require.NoError(t, err)

	require.Len(t, completer.messages, 4)
	assert.Equal(t, "earlier question", completer.messages[1].Content)
	assert.Equal(t, "earlier answer", completer.messages[2].Content)
}

func TestAsk_ContextEmbeddedInSystemPrompt(t *testing.T) {
	repo := &fakeRepository{records: []student.Record{
		{ID: 1, Name: "Ruhan", Course: "Vue 3 Lab", Score: 95, Semester: "Spring 2025", Status: student.StatusActive},
	}}
	completer := &fakeCompleter{}
	svc := newTestService(repo, completer, Config{APIKey: "sk-test"})

	_, err := svc.Ask(context.Background(), AskRequest{Message: "who scored highest?"})
	require.NoError(t, err)

	require.NotEmpty(t, completer.messages)
	system := completer.messages[0]
	assert.Equal(t, "system", system.Role)
	assert.Contains(t, system.Content, "1: Ruhan | Vue 3 Lab | Spring 2025 | 95 | Active")
}

func TestAsk_SnapshotFailureDegradesContext(t *testing.T) {
	repo := &fakeRepository{err: errors.New("connection refused")}
	completer := &fakeCompleter{}
	svc := newTestService(repo, completer, Config{APIKey: "sk-test"})

	result, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	// The request still succeeds, just without live data
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Response)
	require.NotEmpty(t, completer.messages)
	assert.Contains(t, completer.messages[0].Content, ContextFallback)
}

func TestAsk_DNSFailureClassification(t *testing.T) {
	completer := &fakeCompleter{err: &dnsFailure{host: "api.deepseek.com"}}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	_, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	var askErr *AskError
	require.ErrorAs(t, err, &askErr)
	assert.Equal(t, http.StatusBadGateway, askErr.Status)
	assert.Equal(t, "DNS resolution failed", askErr.Category)
	assert.Contains(t, askErr.Detail, "api.deepseek.com")
}

func TestAsk_ProviderStatusForwarded(t *testing.T) {
	completer := &fakeCompleter{err: &statusFailure{status: http.StatusUnauthorized, detail: "invalid api key"}}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	_, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	var askErr *AskError
	require.ErrorAs(t, err, &askErr)
	assert.Equal(t, http.StatusUnauthorized, askErr.Status)
	assert.Equal(t, "provider error", askErr.Category)
	assert.Equal(t, "invalid api key", askErr.Detail)
}

func TestAsk_LocalFailureFallsBack(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("connection reset by peer")}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	_, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	var askErr *AskError
	require.ErrorAs(t, err, &askErr)
	assert.Equal(t, http.StatusInternalServerError, askErr.Status)
	assert.Equal(t, "assistant request failed", askErr.Category)
	assert.Equal(t, "connection reset by peer", askErr.Detail)
}

func TestAsk_RawBodyForwarded(t *testing.T) {
	raw := json.RawMessage(`{"choices":[{"message":{"content":"Answer"}}]}`)
	completer := &fakeCompleter{result: &Completion{Text: "Answer", Raw: raw}}
	svc := newTestService(&fakeRepository{}, completer, Config{APIKey: "sk-test"})

	result, err := svc.Ask(context.Background(), AskRequest{Message: "hello"})

	require.NoError(t, err)
	assert.Equal(t, "Answer", result.Response)
	assert.JSONEq(t, string(raw), string(result.Raw))
}
