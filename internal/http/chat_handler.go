package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-advisor/internal/repository"
	"learning-advisor/internal/service"
)

// ChatHandler mantiene dependencias para sesiones y el webhook de mensajes.
type ChatHandler struct {
	logger        *zap.Logger
	sessions      *service.SessionService
	conversations *service.ConversationService
	messages      *service.MessageService
	limiter       service.MessageRateLimiter
}

// NewChatHandler crea una instancia de ChatHandler. limiter puede ser nil.
func NewChatHandler(
	logger *zap.Logger,
	sessions *service.SessionService,
	conversations *service.ConversationService,
	messages *service.MessageService,
	limiter service.MessageRateLimiter,
) *ChatHandler {
	return &ChatHandler{
		logger:        logger,
		sessions:      sessions,
		conversations: conversations,
		messages:      messages,
		limiter:       limiter,
	}
}

type webhookRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Message string `json:"message"`
}

type webhookReply struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// Webhook maneja POST /webhooks/rest/webhook con el formato REST de Rasa.
func (h *ChatHandler) Webhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid webhook request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	sender := strings.TrimSpace(req.Sender)
	if sender == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !authorizeSession(c, sender) {
		return
	}
	if h.limiter != nil && !h.limiter.Allow(sender) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	replies, err := h.conversations.Handle(c.Request.Context(), sender, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSender) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("handle message failed", zap.Error(err), zap.String("sender_id", sender))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	out := make([]webhookReply, 0, len(replies))
	for _, text := range replies {
		out = append(out, webhookReply{RecipientID: sender, Text: text})
	}
	c.JSON(http.StatusOK, out)
}

// GetProfile maneja GET /session/:id/profile.
func (h *ChatHandler) GetProfile(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if !authorizeSession(c, id) {
		return
	}
	conv, err := h.conversations.Conversation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			h.savedProfile(c, id)
			return
		}
		h.logger.Error("load conversation failed", zap.Error(err), zap.String("sender_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":     conv.SenderID,
		"profile":        conv.Profile,
		"requested_slot": conv.RequestedSlot,
		"complete":       conv.Profile.NextMissing() == "",
	})
}

// savedProfile responde con el snapshot persistido cuando la conversación ya expiró.
func (h *ChatHandler) savedProfile(c *gin.Context, id string) {
	snapshot, err := h.conversations.Snapshot(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("load profile snapshot failed", zap.Error(err), zap.String("sender_id", id))
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":     snapshot.SessionID,
		"profile":        snapshot.Profile,
		"requested_slot": "",
		"complete":       true,
		"saved_at":       snapshot.SavedAt,
	})
}

// ListMessages maneja GET /session/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if !authorizeSession(c, id) {
		return
	}
	msgs, err := h.messages.ListBySession(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err), zap.String("sender_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// DeleteSession maneja DELETE /session/:id.
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if !authorizeSession(c, id) {
		return
	}
	if err := h.conversations.End(c.Request.Context(), id); err != nil {
		h.logger.Error("delete session failed", zap.Error(err), zap.String("sender_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete session"})
		return
	}
	c.Status(http.StatusNoContent)
}
