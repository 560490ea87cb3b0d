package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cleansky/cleansky/internal/api/models"
	"github.com/cleansky/cleansky/internal/api/response"
	"github.com/cleansky/cleansky/internal/insight"
	"github.com/cleansky/cleansky/internal/locale"
)

// MaxChatMessageLength bounds assistant chat messages.
const MaxChatMessageLength = 1000

// AssistantHandler handles assistant chat endpoints.
type AssistantHandler struct {
	insight *insight.Service
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(svc *insight.Service) *AssistantHandler {
	return &AssistantHandler{insight: svc}
}

// Chat handles POST /v1/assistant/chat. AI trouble surfaces as a localized
// placeholder reply, never as an error status.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		response.BadRequest(w, r, "message must not be empty", []models.FieldError{
			{Field: "message", Message: "required", Code: "required"},
		})
		return
	}
	if len(message) > MaxChatMessageLength {
		response.BadRequest(w, r, "message too long", []models.FieldError{
			{Field: "message", Message: "must be at most 1000 characters", Code: "too_long"},
		})
		return
	}

	lang := languageFromQuery(r)
	if req.Lang != "" {
		lang = locale.Parse(req.Lang)
	}
	reply := h.insight.Chat(r.Context(), message, req.Context, lang)

	response.JSON(w, r, http.StatusOK, models.ChatResponse{Reply: reply})
}
