package http

import (
	"encoding/json"
	"net/http"

	"github.com/PraveshYadav900/codenest-website/internal/chatbot"
)

type ChatbotHandler struct {
	bot *chatbot.Bot
}

func NewChatbotHandler(bot *chatbot.Bot) *ChatbotHandler {
	return &ChatbotHandler{bot: bot}
}

type ChatRequestDTO struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
}

type ChatResponseDTO struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// POST /api/v1/chatbot
func (h *ChatbotHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	reply, conversationID := h.bot.Chat(r.Context(), req.ConversationID, req.Message)

	respondJSON(w, http.StatusOK, ChatResponseDTO{
		Response:       reply,
		ConversationID: conversationID,
	})
}
