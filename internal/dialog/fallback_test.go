package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/openai/openai-go"

	"github.com/kolhapurmc/civicbot/internal/genai"
	"github.com/kolhapurmc/civicbot/internal/models"
)

// mockGenAI returns scripted tool responses in order, then the plain
// message response if the tool budget runs out.
type mockGenAI struct {
	toolResponses []*genai.ToolCallResponse
	toolErr       error
	plainText     string
	plainErr      error

	toolCallCount    int
	plainCallCount   int
	lastToolMessages []openai.ChatCompletionMessageParamUnion
	lastTools        []openai.ChatCompletionToolParam
}

func (m *mockGenAI) GenerateWithMessages(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	m.plainCallCount++
	return m.plainText, m.plainErr
}

func (m *mockGenAI) GenerateWithTools(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, tools []openai.ChatCompletionToolParam) (*genai.ToolCallResponse, error) {
	m.toolCallCount++
	m.lastToolMessages = messages
	m.lastTools = tools
	if m.toolErr != nil {
		return nil, m.toolErr
	}
	if len(m.toolResponses) == 0 {
		return &genai.ToolCallResponse{}, nil
	}
	resp := m.toolResponses[0]
	m.toolResponses = m.toolResponses[1:]
	return resp, nil
}

func newTestBridge(client genai.ClientInterface) *Bridge {
	b := NewBridge(client)
	b.now = func() time.Time { return time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC) }
	return b
}

func TestGenerateDirectAnswer(t *testing.T) {
	mock := &mockGenAI{toolResponses: []*genai.ToolCallResponse{{Content: "the office opens at 10"}}}
	b := newTestBridge(mock)
	got, err := b.Generate(context.Background(), "when does the office open?", nil, models.LanguageEnglish)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "the office opens at 10" {
		t.Errorf("got %q", got)
	}
	if mock.toolCallCount != 1 {
		t.Errorf("tool call count = %d, want 1", mock.toolCallCount)
	}
	if len(mock.lastTools) != 1 {
		t.Fatalf("expected the lookup tool to be attached, got %d tools", len(mock.lastTools))
	}
}

func TestGenerateRunsToolLoop(t *testing.T) {
	mock := &mockGenAI{toolResponses: []*genai.ToolCallResponse{
		{ToolCalls: []genai.ToolCall{{
			ID:   "call_1",
			Type: "function",
			Function: genai.FunctionCall{
				Name:      lookupToolName,
				Arguments: json.RawMessage(`{"category":"water"}`),
			},
		}}},
		{Content: "pay your water bill at the citizen portal"},
	}}
	b := newTestBridge(mock)
	got, err := b.Generate(context.Background(), "how do I pay my water bill?", nil, models.LanguageEnglish)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "pay your water bill at the citizen portal" {
		t.Errorf("got %q", got)
	}
	if mock.toolCallCount != 2 {
		t.Errorf("tool rounds = %d, want 2", mock.toolCallCount)
	}
	// Second round must see the assistant tool-call message plus the tool
	// result appended after the original messages.
	if len(mock.lastToolMessages) < 4 {
		t.Errorf("expected grown message context, got %d messages", len(mock.lastToolMessages))
	}
}

func TestGenerateHistoryAndSystemPromptIncluded(t *testing.T) {
	mock := &mockGenAI{toolResponses: []*genai.ToolCallResponse{{Content: "ok"}}}
	b := newTestBridge(mock)
	history := []models.Turn{
		{Role: models.RoleUser, Content: "earlier question"},
		{Role: models.RoleAssistant, Content: "earlier answer"},
	}
	if _, err := b.Generate(context.Background(), "follow-up", history, models.LanguageMarathi); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// system + 2 history turns + current message
	if len(mock.lastToolMessages) != 4 {
		t.Errorf("message count = %d, want 4", len(mock.lastToolMessages))
	}
}

func TestGenerateFailureReturnsError(t *testing.T) {
	mock := &mockGenAI{toolErr: errors.New("service unavailable")}
	b := newTestBridge(mock)
	if _, err := b.Generate(context.Background(), "anything", nil, models.LanguageEnglish); err == nil {
		t.Fatal("expected error on generation failure")
	}
}

func TestGenerateEmptyCompletionReturnsError(t *testing.T) {
	mock := &mockGenAI{toolResponses: []*genai.ToolCallResponse{{}}}
	b := newTestBridge(mock)
	if _, err := b.Generate(context.Background(), "anything", nil, models.LanguageEnglish); err == nil {
		t.Fatal("expected error on empty completion")
	}
}

func TestGenerateToolBudgetExhaustedFallsBackToPlainCall(t *testing.T) {
	loopCall := &genai.ToolCallResponse{ToolCalls: []genai.ToolCall{{
		ID:       "call_x",
		Type:     "function",
		Function: genai.FunctionCall{Name: lookupToolName, Arguments: json.RawMessage(`{"category":"water"}`)},
	}}}
	mock := &mockGenAI{
		toolResponses: []*genai.ToolCallResponse{loopCall, loopCall, loopCall, loopCall, loopCall},
		plainText:     "final answer without tools",
	}
	b := newTestBridge(mock)
	got, err := b.Generate(context.Background(), "looping question", nil, models.LanguageEnglish)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "final answer without tools" {
		t.Errorf("got %q", got)
	}
	if mock.toolCallCount != maxToolRounds {
		t.Errorf("tool rounds = %d, want %d", mock.toolCallCount, maxToolRounds)
	}
	if mock.plainCallCount != 1 {
		t.Errorf("plain call count = %d, want 1", mock.plainCallCount)
	}
}

func TestSystemPromptLanguageRule(t *testing.T) {
	b := newTestBridge(&mockGenAI{})
	unset := b.systemPrompt(models.LanguageUnset)
	if !strings.Contains(unset, "not chosen a language") {
		t.Error("unset-language prompt should ask for a language")
	}
	marathi := b.systemPrompt(models.LanguageMarathi)
	if !strings.Contains(marathi, "Respond only in Marathi.") {
		t.Error("prompt should pin replies to the session language")
	}
	if !strings.Contains(marathi, "15 July 2026") {
		t.Error("prompt should embed the current date")
	}
}

func TestExecuteLookup(t *testing.T) {
	result := executeLookup(json.RawMessage(`{"category":"disaster","subcategory":"shelters"}`))
	if !strings.Contains(result, "Shahu Stadium Hall") {
		t.Errorf("lookup result missing shelter data: %s", result)
	}

	unknown := executeLookup(json.RawMessage(`{"category":"parking"}`))
	if !strings.Contains(unknown, "unknown category") {
		t.Errorf("expected error sentinel, got %s", unknown)
	}
	if !strings.Contains(unknown, "known_categories") {
		t.Errorf("error sentinel should list known categories: %s", unknown)
	}

	malformed := executeLookup(json.RawMessage(`not json`))
	if !strings.Contains(malformed, "malformed") {
		t.Errorf("expected malformed-arguments sentinel, got %s", malformed)
	}
}
