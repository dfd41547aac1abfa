package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/internal/rest"
	log "github.com/sirupsen/logrus"
)

type MessageDTO struct {
	Id        string `json:"id"`
	Text      string `json:"text"`
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
}

type SendMessageDTO struct {
	Text string `json:"text"`
}

type ClearedDTO struct {
	Deleted int `json:"deleted"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMessages godoc
// @Summary List the chat history of the current chat user
// @Tags Chat
// @Produce json
// @Param X-Chat-User header string false "Chat user, anonymous when missing"
// @Success 200 {array} MessageDTO
// @Router /api/chat/messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.ListMessages(r.Context())
	if err != nil {
		log.Errorf("failed to list chat messages: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, messagesToDTO(messages))
}

// SendMessage godoc
// @Summary Send a message to the assistant
// @Description Returns the stored user message followed by the assistant reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param X-Chat-User header string false "Chat user, anonymous when missing"
// @Param message body SendMessageDTO true "Message"
// @Success 200 {array} MessageDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/chat/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var dto SendMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	messages, err := h.service.Send(r.Context(), dto.Text)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			rest.WriteBadRequest(w, "Message text is required", "")
			return
		}
		log.Errorf("failed to send chat message: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, messagesToDTO(messages))
}

// DeleteMessage godoc
// @Summary Delete a single chat message
// @Tags Chat
// @Param messageId path string true "Message ID"
// @Success 204
// @Failure 404 {string} string "Message not found"
// @Router /api/chat/messages/{messageId} [delete]
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageId := mux.Vars(r)["messageId"]
	if err := h.service.DeleteMessage(r.Context(), messageId); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearMessages godoc
// @Summary Delete the whole chat history of the current chat user
// @Tags Chat
// @Produce json
// @Success 200 {object} ClearedDTO
// @Router /api/chat/messages [delete]
func (h *Handler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ClearMessages(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ClearedDTO{Deleted: count})
}

func messagesToDTO(messages []Message) []MessageDTO {
	dtos := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, MessageDTO{
			Id:        m.Id,
			Text:      m.Text,
			Sender:    string(m.Sender),
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return dtos
}
