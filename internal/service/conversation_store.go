package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"learning-advisor/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationStore guarda el estado del formulario por remitente.
type ConversationStore interface {
	Load(ctx context.Context, senderID string) (domain.Conversation, error)
	Save(ctx context.Context, conv domain.Conversation) error
	Delete(ctx context.Context, senderID string) error
}

type memoryConversationStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryConversation
}

type memoryConversation struct {
	conv      domain.Conversation
	expiresAt time.Time
}

// NewMemoryConversationStore crea un store en memoria con expiración.
func NewMemoryConversationStore(ttl time.Duration) ConversationStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryConversationStore{
		ttl:   ttl,
		items: make(map[string]memoryConversation),
	}
}

func (s *memoryConversationStore) Load(_ context.Context, senderID string) (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[senderID]
	if !ok {
		return domain.Conversation{}, ErrConversationNotFound
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(s.items, senderID)
		return domain.Conversation{}, ErrConversationNotFound
	}
	return cloneConversation(item.conv), nil
}

func (s *memoryConversationStore) Save(_ context.Context, conv domain.Conversation) error {
	if strings.TrimSpace(conv.SenderID) == "" {
		return ErrInvalidSender
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[conv.SenderID] = memoryConversation{
		conv:      cloneConversation(conv),
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return nil
}

func (s *memoryConversationStore) Delete(_ context.Context, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, senderID)
	return nil
}

// cloneConversation evita compartir los slices del perfil con quien llama.
func cloneConversation(c domain.Conversation) domain.Conversation {
	if c.Profile.Skills != nil {
		c.Profile.Skills = append([]string{}, c.Profile.Skills...)
	}
	if c.Profile.Interests != nil {
		c.Profile.Interests = append([]string{}, c.Profile.Interests...)
	}
	return c
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisConversationStore struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

// NewRedisConversationStore guarda cada conversación como JSON con TTL.
func NewRedisConversationStore(client *redis.Client, ttl time.Duration) ConversationStore {
	if client == nil {
		return nil
	}
	return newRedisConversationStore(client, ttl)
}

func newRedisConversationStore(client redisKV, ttl time.Duration) *redisConversationStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisConversationStore{
		client: client,
		ttl:    ttl,
		prefix: "advisor:conv:",
	}
}

func (s *redisConversationStore) Load(ctx context.Context, senderID string) (domain.Conversation, error) {
	raw, err := s.client.Get(ctx, s.prefix+senderID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Conversation{}, ErrConversationNotFound
	}
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("redis get: %w", err)
	}
	var conv domain.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return domain.Conversation{}, fmt.Errorf("decode conversation: %w", err)
	}
	return conv, nil
}

func (s *redisConversationStore) Save(ctx context.Context, conv domain.Conversation) error {
	if strings.TrimSpace(conv.SenderID) == "" {
		return ErrInvalidSender
	}
	raw, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+conv.SenderID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *redisConversationStore) Delete(ctx context.Context, senderID string) error {
	if err := s.client.Del(ctx, s.prefix+senderID).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
