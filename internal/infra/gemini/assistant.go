// Package gemini implements domain.AIAssistant on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kanban-board/kanban/internal/domain"
	"google.golang.org/genai"
)

// Ensure Assistant implements domain.AIAssistant interface.
var _ domain.AIAssistant = (*Assistant)(nil)

// Assistant operation names, used as AssistantError.Op.
const (
	opSubtasks    = "generate subtasks"
	opPriority    = "suggest priority"
	opDescription = "generate description"
	opTags        = "suggest tags"
	opInsight     = "generate insight"
)

const noDescription = "No description provided."

// User-facing failure messages.
const (
	msgNoAPIKey   = "API key not configured"
	msgEmptyTitle = "task title cannot be empty"
)

// generator is the subset of *genai.Models used by Assistant.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Assistant asks a Gemini model for task suggestions.
// Structured answers are requested as JSON with a response schema.
type Assistant struct {
	gen   generator // nil when no API key is configured
	model string
}

// New creates an Assistant for the given model.
// An empty apiKey yields an Assistant whose calls all fail with an AssistantError.
func New(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if model == "" {
		model = domain.DefaultAIModel
	}
	if apiKey == "" {
		return &Assistant{model: model}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Assistant{gen: client.Models, model: model}, nil
}

// Model returns the model name used for requests.
func (a *Assistant) Model() string {
	return a.model
}

// GenerateSubtasks breaks a task title into short actionable subtasks.
func (a *Assistant) GenerateSubtasks(ctx context.Context, title string) ([]string, error) {
	if err := a.precheck(opSubtasks, title); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Break down the following high-level task into a short list of simple, actionable subtasks. Task: %q", title)

	var resp struct {
		Subtasks []string `json:"subtasks"`
	}
	if err := a.generateJSON(ctx, opSubtasks, prompt, stringListSchema("subtasks", "A single, actionable subtask."), &resp); err != nil {
		return nil, err
	}
	return nonBlank(resp.Subtasks), nil
}

// SuggestPriority proposes one of the known priorities for a task.
func (a *Assistant) SuggestPriority(ctx context.Context, title, description string) (domain.Priority, error) {
	if err := a.precheck(opPriority, title); err != nil {
		return "", err
	}
	names := make([]string, 0, 4)
	for _, p := range domain.AllPriorities() {
		names = append(names, string(p))
	}
	prompt := fmt.Sprintf("Based on the following task, suggest a priority level.\nTask Title: %q\nDescription: %q\n\nChoose one of the following priority levels: %s.",
		title, orDefault(description, noDescription), strings.Join(names, ", "))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"priority": {
				Type:        genai.TypeString,
				Description: "The suggested priority for the task.",
				Enum:        names,
			},
		},
		Required: []string{"priority"},
	}
	var resp struct {
		Priority string `json:"priority"`
	}
	if err := a.generateJSON(ctx, opPriority, prompt, schema, &resp); err != nil {
		return "", err
	}
	p, err := domain.ParsePriority(resp.Priority)
	if err != nil {
		return "", domain.NewAssistantError(opPriority, "received an invalid priority", err)
	}
	return p, nil
}

// GenerateDescription writes a one to two sentence description for a task title.
func (a *Assistant) GenerateDescription(ctx context.Context, title string) (string, error) {
	if err := a.precheck(opDescription, title); err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("Generate a brief, one to two-sentence description for a task titled: %q", title)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString, Description: "The generated task description."},
		},
		Required: []string{"description"},
	}
	var resp struct {
		Description string `json:"description"`
	}
	if err := a.generateJSON(ctx, opDescription, prompt, schema, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Description), nil
}

// SuggestTags proposes 3-5 single-word tags for a task.
func (a *Assistant) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	if err := a.precheck(opTags, title); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf("Based on the following task, suggest 3-5 relevant, single-word tags for categorization.\nTask Title: %q\nDescription: %q",
		title, orDefault(description, noDescription))

	var resp struct {
		Tags []string `json:"tags"`
	}
	if err := a.generateJSON(ctx, opTags, prompt, stringListSchema("tags", "A single relevant tag."), &resp); err != nil {
		return nil, err
	}
	return nonBlank(resp.Tags), nil
}

// GenerateProjectInsight returns one short productivity suggestion for the board.
func (a *Assistant) GenerateProjectInsight(ctx context.Context, summary domain.BoardSummary) (string, error) {
	if a.gen == nil {
		return "", domain.NewAssistantError(opInsight, msgNoAPIKey, nil)
	}
	prompt := "Based on this project status summary, provide one brief, actionable productivity insight or suggestion for the project manager. Be encouraging and concise.\n\n" +
		summary.String()

	return a.generate(ctx, opInsight, prompt, nil)
}

func (a *Assistant) precheck(op, title string) error {
	if a.gen == nil {
		return domain.NewAssistantError(op, msgNoAPIKey, nil)
	}
	if strings.TrimSpace(title) == "" {
		return domain.NewAssistantError(op, msgEmptyTitle, nil)
	}
	return nil
}

// generate sends prompt and returns the trimmed response text.
func (a *Assistant) generate(ctx context.Context, op, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(prompt), config)
	if err != nil {
		return "", domain.NewAssistantError(op, "request failed", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", domain.NewAssistantError(op, "empty response", nil)
	}
	return text, nil
}

// generateJSON sends prompt with a JSON response schema and decodes the answer into out.
func (a *Assistant) generateJSON(ctx context.Context, op, prompt string, schema *genai.Schema, out any) error {
	text, err := a.generate(ctx, op, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return domain.NewAssistantError(op, "malformed response", err)
	}
	return nil
}

// stringListSchema describes {"<key>": ["...", ...]}.
func stringListSchema(key, itemDescription string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			key: {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString, Description: itemDescription},
			},
		},
		Required: []string{key},
	}
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
