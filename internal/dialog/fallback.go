package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/kolhapurmc/civicbot/internal/genai"
	"github.com/kolhapurmc/civicbot/internal/kb"
	"github.com/kolhapurmc/civicbot/internal/models"
)

// maxToolRounds bounds the lookup loop so a misbehaving completion cannot
// spin forever.
const maxToolRounds = 5

const lookupToolName = "municipal_lookup"

// FallbackGenerator produces a free-text answer from the conversation
// history and current message. Implemented by Bridge; mocked in tests.
type FallbackGenerator interface {
	Generate(ctx context.Context, userMessage string, history []models.Turn, lang models.Language) (string, error)
}

// Bridge packages free-text questions into completion requests with the
// municipal knowledge base attached as a retrieval tool.
type Bridge struct {
	client genai.ClientInterface
	now    func() time.Time
}

// NewBridge creates a fallback bridge over the given completion client.
func NewBridge(client genai.ClientInterface) *Bridge {
	return &Bridge{client: client, now: time.Now}
}

var languageNames = map[models.Language]string{
	models.LanguageEnglish: "English",
	models.LanguageMarathi: "Marathi",
	models.LanguageHindi:   "Hindi",
}

func (b *Bridge) systemPrompt(lang models.Language) string {
	languageRule := "The user has not chosen a language yet; ask them to pick English, Marathi or Hindi."
	if name, ok := languageNames[lang]; ok {
		languageRule = fmt.Sprintf("Respond only in %s.", name)
	}
	return fmt.Sprintf(`You are the official chat assistant of Kolhapur Municipal Corporation (KMC).
Current date and time: %s.

Rules:
- Only answer questions about KMC's municipal services (water, property tax, certificates, trade licenses, complaints, disaster management, office contacts). For anything else, politely refuse and redirect the user to municipal topics.
- %s
- Use the %s tool to fetch accurate service details before answering questions about a specific service. Do not invent fees, phone numbers or addresses.
- Keep replies short and readable on a phone. Remind the user they can type "menu" to see all services.`,
		b.now().Format("Monday, 2 January 2006, 15:04 MST"), languageRule, lookupToolName)
}

func lookupToolDefinition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: shared.FunctionDefinitionParam{
			Name:        lookupToolName,
			Description: openai.String("Look up Kolhapur Municipal Corporation service information: procedures, documents, fees, contacts, shelters and rainfall status"),
			Parameters: shared.FunctionParameters{
				"type": "object",
				"properties": map[string]interface{}{
					"category": map[string]interface{}{
						"type":        "string",
						"enum":        kb.Categories(),
						"description": "Service category to look up",
					},
					"subcategory": map[string]interface{}{
						"type":        "string",
						"description": "Optional topic within the category, e.g. 'shelters' or 'rainfall_status' under 'disaster'",
					},
				},
				"required": []string{"category"},
			},
		},
	}
}

// executeLookup runs one municipal_lookup call and returns the JSON result
// handed back to the model. Errors are reported in-band so the model can
// recover.
func executeLookup(args json.RawMessage) string {
	var req struct {
		Category    string `json:"category"`
		Subcategory string `json:"subcategory"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		slog.Warn("Bridge.executeLookup: malformed arguments", "error", err)
		return `{"error":"malformed arguments"}`
	}
	facts, err := kb.Lookup(req.Category, req.Subcategory)
	if err != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"error":            "unknown category",
			"known_categories": kb.Categories(),
		})
		return string(payload)
	}
	payload, err := json.Marshal(facts)
	if err != nil {
		return `{"error":"internal"}`
	}
	return string(payload)
}

// Generate answers a free-text message. It runs a bounded tool loop: each
// round the model may request knowledge base lookups, whose results are
// appended before the next round. A failed or empty generation returns an
// error; the caller substitutes the apology text.
func (b *Bridge) Generate(ctx context.Context, userMessage string, history []models.Turn, lang models.Language) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(b.systemPrompt(lang))}
	for _, turn := range history {
		switch turn.Role {
		case models.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case models.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(userMessage))
	tools := []openai.ChatCompletionToolParam{lookupToolDefinition()}

	for round := 1; round <= maxToolRounds; round++ {
		resp, err := b.client.GenerateWithTools(ctx, messages, tools)
		if err != nil {
			slog.Error("Bridge.Generate: generation failed", "error", err, "round", round)
			return "", fmt.Errorf("free-text generation failed: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			if resp.Content == "" {
				slog.Warn("Bridge.Generate: empty completion", "round", round)
				return "", fmt.Errorf("free-text generation returned empty text")
			}
			return resp.Content, nil
		}

		slog.Debug("Bridge.Generate: executing tool calls", "round", round, "count", len(resp.ToolCalls))
		messages = append(messages, assistantMessageWithToolCalls(resp))
		for _, tc := range resp.ToolCalls {
			result := executeLookup(tc.Function.Arguments)
			messages = append(messages, openai.ToolMessage(result, tc.ID))
		}
	}

	// Tool budget exhausted; force a plain answer from the gathered context.
	text, err := b.client.GenerateWithMessages(ctx, messages)
	if err != nil {
		slog.Error("Bridge.Generate: final generation failed", "error", err)
		return "", fmt.Errorf("free-text generation failed: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("free-text generation returned empty text")
	}
	return text, nil
}

func assistantMessageWithToolCalls(resp *genai.ToolCallResponse) openai.ChatCompletionMessageParamUnion {
	var toolCalls []openai.ChatCompletionMessageToolCallParam
	for _, tc := range resp.ToolCalls {
		toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
			ID:   tc.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Function.Name,
				Arguments: string(tc.Function.Arguments),
			},
		})
	}
	assistant := openai.ChatCompletionAssistantMessageParam{
		Content: openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: param.NewOpt(resp.Content),
		},
		ToolCalls: toolCalls,
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}
