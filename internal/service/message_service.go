package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"learning-advisor/internal/domain"
	"learning-advisor/internal/repository"
)

// MessageService guarda la transcripción de cada sesión de chat: el texto del
// usuario seguido de las respuestas del bot, en orden.
type MessageService struct {
	repo repository.MessageRepository
	now  func() time.Time
}

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrMessageInvalidInput         = errors.New("message invalid input")
)

func NewMessageService(repo repository.MessageRepository) *MessageService {
	return &MessageService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Save guarda una línea de la transcripción. Solo se aceptan los roles user y bot.
func (s *MessageService) Save(ctx context.Context, msg domain.Message) error {
	if s == nil || s.repo == nil {
		return ErrMessageServiceNotConfigured
	}

	msg.SessionID = strings.TrimSpace(msg.SessionID)
	msg.Role = strings.ToLower(strings.TrimSpace(msg.Role))
	msg.Content = strings.TrimSpace(msg.Content)

	if msg.SessionID == "" || msg.Content == "" {
		return ErrMessageInvalidInput
	}
	if msg.Role != domain.RoleUser && msg.Role != domain.RoleBot {
		return ErrMessageInvalidInput
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}

	return s.repo.Create(ctx, msg)
}

// RecordTurn guarda un turno completo. Las líneas vacías se omiten y el primer
// error del repositorio corta el turno.
func (s *MessageService) RecordTurn(ctx context.Context, sessionID, userText string, replies []string) error {
	if s == nil || s.repo == nil {
		return ErrMessageServiceNotConfigured
	}
	// Un mismo instante base con offsets conserva el orden al listar por created_at.
	base := s.now()
	lines := append([]string{userText}, replies...)
	for i, content := range lines {
		role := domain.RoleBot
		if i == 0 {
			role = domain.RoleUser
		}
		err := s.Save(ctx, domain.Message{
			SessionID: sessionID,
			Role:      role,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Microsecond),
		})
		if errors.Is(err, ErrMessageInvalidInput) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ListBySession devuelve la transcripción; un id vacío da una lista vacía.
func (s *MessageService) ListBySession(ctx context.Context, sessionID string) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrMessageServiceNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return []domain.Message{}, nil
	}
	return s.repo.ListBySessionID(ctx, sessionID)
}
