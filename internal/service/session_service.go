package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"learning-advisor/internal/domain"
	"learning-advisor/internal/repository"
)

// SessionService abre sesiones anónimas de chat.
type SessionService struct {
	conversations *ConversationService
	tokens        *SessionTokenService
	repo          repository.SessionRepository
	ttl           time.Duration
	now           func() time.Time
}

func NewSessionService(
	conversations *ConversationService,
	tokens *SessionTokenService,
	repo repository.SessionRepository,
	ttl time.Duration,
) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if repo == nil {
		repo = repository.NoopSessionRepository{}
	}
	return &SessionService{
		conversations: conversations,
		tokens:        tokens,
		repo:          repo,
		ttl:           ttl,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Create genera un sender id nuevo y, si hay secreto configurado, su token.
func (s *SessionService) Create(ctx context.Context) (domain.Session, error) {
	now := s.now()
	session := domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if s.tokens.Enabled() {
		token, expiresAt, err := s.tokens.Issue(session.ID, now)
		if err != nil {
			return domain.Session{}, err
		}
		session.Token = token
		session.ExpiresAt = expiresAt
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	if err := s.conversations.Begin(ctx, session.ID); err != nil {
		return domain.Session{}, fmt.Errorf("begin conversation: %w", err)
	}
	return session, nil
}
