package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tickethawk.app/ingest/common/llm"
	"tickethawk.app/ingest/internal/match"
	"tickethawk.app/ingest/internal/model"
)

// ErrSuggestDisabled is returned when no LLM credentials are configured.
var ErrSuggestDisabled = errors.New("keyword suggestion is not configured")

const suggestSystemPrompt = `You help a customer support team configure keyword-based ticket routing
for inbound WhatsApp messages. Detection is exact single-token matching:
a keyword fires when it equals one whole word of a message, compared
case-insensitively after stripping trailing punctuation. Suggest single
lowercase words customers actually write, never phrases. Assign each
suggestion one of the categories: Urgent, Support, Feedback, General.`

// KeywordSuggestion is one proposed registry entry.
type KeywordSuggestion struct {
	Term      string `json:"term" jsonschema_description:"Single lowercase word to match against message tokens"`
	Category  string `json:"category" jsonschema:"enum=Urgent,enum=Support,enum=Feedback,enum=General"`
	Rationale string `json:"rationale" jsonschema_description:"One sentence on why customers would write this word"`
}

type suggestionList struct {
	Suggestions []KeywordSuggestion `json:"suggestions"`
}

var suggestionSchema = llm.GenerateSchema[suggestionList]()

// SuggestService proposes registry keywords for a described support scenario.
// Suggestions are advisory; nothing enters the registry until an operator
// creates it explicitly.
type SuggestService interface {
	Suggest(ctx context.Context, description string, existing []model.Keyword) ([]KeywordSuggestion, error)
}

type suggestService struct {
	llm llm.Client
}

func NewSuggestService(client llm.Client) SuggestService {
	return &suggestService{llm: client}
}

func (s *suggestService) Suggest(ctx context.Context, description string, existing []model.Keyword) ([]KeywordSuggestion, error) {
	if s.llm == nil {
		return nil, ErrSuggestDisabled
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Support scenario: %s\n\n", description)
	if len(existing) > 0 {
		prompt.WriteString("Keywords already registered (do not repeat them):\n")
		for _, kw := range existing {
			fmt.Fprintf(&prompt, "- %s (%s)\n", kw.Term, kw.Category)
		}
	}
	prompt.WriteString("\nSuggest up to 5 new keywords.")

	var out suggestionList
	_, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   prompt.String(),
		SchemaName:   "keyword_suggestions",
		Schema:       suggestionSchema,
		Temperature:  llm.Temp(0.3),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("suggesting keywords: %w", err)
	}

	suggestions := make([]KeywordSuggestion, 0, len(out.Suggestions))
	for _, sug := range out.Suggestions {
		tokens := match.Tokenize(sug.Term)
		if len(tokens) != 1 {
			continue // multi-word suggestions can never fire
		}
		sug.Term = tokens[0]
		suggestions = append(suggestions, sug)
	}
	return suggestions, nil
}
