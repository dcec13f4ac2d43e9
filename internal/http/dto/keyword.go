package dto

import (
	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/service"
)

type CreateKeywordRequest struct {
	Term            string `json:"term" binding:"required,min=1,max=64"`
	Category        string `json:"category" binding:"required,oneof=Urgent Support Feedback General"`
	AssignedAdminID string `json:"assigned_admin_id" binding:"required"`
}

type KeywordResponse struct {
	ID              string `json:"id"`
	Term            string `json:"term"`
	Category        string `json:"category"`
	AssignedAdminID string `json:"assigned_admin_id"`
}

func ToKeywordResponse(kw *model.Keyword) *KeywordResponse {
	return &KeywordResponse{
		ID:              kw.ID,
		Term:            kw.Term,
		Category:        string(kw.Category),
		AssignedAdminID: kw.AssignedAdminID,
	}
}

func ToKeywordResponses(keywords []model.Keyword) []KeywordResponse {
	out := make([]KeywordResponse, 0, len(keywords))
	for i := range keywords {
		out = append(out, *ToKeywordResponse(&keywords[i]))
	}
	return out
}

type SuggestKeywordsRequest struct {
	Description string `json:"description" binding:"required,min=3,max=2000"`
}

type KeywordSuggestionResponse struct {
	Term      string `json:"term"`
	Category  string `json:"category"`
	Rationale string `json:"rationale"`
}

func ToKeywordSuggestionResponses(suggestions []service.KeywordSuggestion) []KeywordSuggestionResponse {
	out := make([]KeywordSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, KeywordSuggestionResponse(s))
	}
	return out
}
