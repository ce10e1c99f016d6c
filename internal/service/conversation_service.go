package service

import (
	"context"
	"errors"
	"hash/fnv"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"learning-advisor/internal/domain"
	"learning-advisor/internal/intake"
	"learning-advisor/internal/repository"
)

var ErrInvalidSender = errors.New("sender id is required")

const (
	replyGreeting = "Hi! I'm your learning advisor. I can build your student profile and recommend a learning path, " +
		"courses, projects and career options. Say \"start my profile\" to begin."
	replyHelp = "I can build your profile and recommend a learning path, courses, projects or career paths. " +
		"Try \"start my profile\" or \"What should I learn next?\"."
	replyReset        = "Your profile has been reset. Say \"start my profile\" whenever you want to begin again."
	replyFormStart    = "Great, let's build your profile."
	replyFormPaused   = "Okay, I've paused your profile. Say \"start my profile\" to continue where we left off."
	replyProfileReady = "Thanks! Your profile is complete. Ask me \"What should I learn next?\" for a personalized " +
		"learning path, or ask for courses, projects or career paths."

	replyClosingAfterPath = "You're welcome! Glad the learning path helped. Happy learning, ask me for courses or project ideas anytime."
	replyClosingDefault   = "You're welcome, happy to help! Let me know if you'd like anything else."
)

var slotQuestions = map[string]string{
	domain.SlotDegree:         "Which degree are you pursuing?",
	domain.SlotSemester:       "Which semester are you currently in?",
	domain.SlotGPA:            "What is your current GPA?",
	domain.SlotSkills:         "Which technical skills do you already have? (comma separated, e.g. Python, SQL)",
	domain.SlotTimeCommitment: "How much time can you commit to learning daily? (e.g., 1 hour)",
	domain.SlotInterests:      "What are your areas of interest? (e.g., AI, Web Development)",
	domain.SlotLearningGoal:   "What is your main learning goal? (e.g., 'Learn AI', 'Become a web developer')",
}

const (
	closingPhrases = `thank you|thankyou|thanks|thank u|thank|thx|ty|no thanks|its okay|it's okay|im okay|i'm okay|i am okay|its fine|it's fine`
	resetPhrases   = `reset|restart|start over|new chat`
)

// Comandos por palabra clave, evaluados en orden sobre el texto en minúsculas.
// Con un slot pendiente solo cuentan las variantes *Command, que exigen que el
// mensaje entero sea el comando.
var (
	closingPattern        = regexp.MustCompile(`\b(` + closingPhrases + `)\b`)
	closingCommandPattern = regexp.MustCompile(`^(` + closingPhrases + `)[\s!.,]*$`)
	resetPattern          = regexp.MustCompile(`\b(` + resetPhrases + `)\b`)
	resetCommandPattern   = regexp.MustCompile(`^(` + resetPhrases + `)[\s!.]*$`)
	greetingPattern       = regexp.MustCompile(`^(hi|hello|hey|hiya|good morning|good afternoon|good evening)( there)?[\s!.,]*$`)
	pausePattern          = regexp.MustCompile(`^(stop|cancel|pause)[\s!.]*$`)
	pathPattern           = regexp.MustCompile(`learn next|learning path|roadmap|what should i learn|study plan`)
	coursePattern         = regexp.MustCompile(`\bcourses?\b`)
	projectPattern        = regexp.MustCompile(`\bprojects?\b`)
	careerPattern         = regexp.MustCompile(`\b(careers?|jobs?)\b`)
	showPattern           = regexp.MustCompile(`\b(show|see|view)\b.*\bprofile\b|^my profile`)
	startPattern          = regexp.MustCompile(`\b(profile|student|want to learn|start|begin)\b`)
)

const lockStripes = 64

// ConversationService conduce el formulario del perfil y las recomendaciones.
type ConversationService struct {
	logger   *zap.Logger
	store    ConversationStore
	advisor  *AdvisorService
	messages *MessageService
	profiles repository.ProfileRepository
	locks    [lockStripes]sync.Mutex
	now      func() time.Time
}

func NewConversationService(
	logger *zap.Logger,
	store ConversationStore,
	advisor *AdvisorService,
	messages *MessageService,
	profiles repository.ProfileRepository,
) *ConversationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryConversationStore(0)
	}
	if advisor == nil {
		advisor = NewAdvisorService(nil, "")
	}
	if profiles == nil {
		profiles = repository.NoopProfileRepository{}
	}
	return &ConversationService{
		logger:   logger,
		store:    store,
		advisor:  advisor,
		messages: messages,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle procesa un mensaje del usuario y devuelve las respuestas del bot.
// Los mensajes de un mismo remitente se procesan de a uno.
func (s *ConversationService) Handle(ctx context.Context, senderID, text string) ([]string, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, ErrInvalidSender
	}

	lock := s.lockFor(senderID)
	lock.Lock()
	defer lock.Unlock()

	conv := s.load(ctx, senderID)
	replies := s.route(&conv, text)
	if len(replies) > 0 {
		conv.LastReply = replies[len(replies)-1]
	}
	conv.UpdatedAt = s.now()

	if err := s.store.Save(ctx, conv); err != nil {
		s.logger.Warn("conversation save failed", zap.String("sender_id", senderID), zap.Error(err))
	}
	s.record(ctx, senderID, text, replies)
	return replies, nil
}

// Conversation devuelve el estado guardado de un remitente.
func (s *ConversationService) Conversation(ctx context.Context, senderID string) (domain.Conversation, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return domain.Conversation{}, ErrInvalidSender
	}
	return s.store.Load(ctx, senderID)
}

// Snapshot devuelve el último perfil completo persistido del remitente.
func (s *ConversationService) Snapshot(ctx context.Context, senderID string) (domain.ProfileSnapshot, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return domain.ProfileSnapshot{}, ErrInvalidSender
	}
	return s.profiles.GetBySessionID(ctx, senderID)
}

// Begin registra una conversación vacía para un remitente nuevo.
func (s *ConversationService) Begin(ctx context.Context, senderID string) error {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return ErrInvalidSender
	}
	now := s.now()
	return s.store.Save(ctx, domain.Conversation{SenderID: senderID, CreatedAt: now, UpdatedAt: now})
}

// End olvida la conversación. La transcripción y el snapshot persistidos se conservan.
func (s *ConversationService) End(ctx context.Context, senderID string) error {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return ErrInvalidSender
	}
	lock := s.lockFor(senderID)
	lock.Lock()
	defer lock.Unlock()
	return s.store.Delete(ctx, senderID)
}

func (s *ConversationService) load(ctx context.Context, senderID string) domain.Conversation {
	conv, err := s.store.Load(ctx, senderID)
	if err == nil {
		return conv
	}
	if !errors.Is(err, ErrConversationNotFound) {
		s.logger.Warn("conversation load failed, starting fresh", zap.String("sender_id", senderID), zap.Error(err))
	}
	now := s.now()
	return domain.Conversation{SenderID: senderID, CreatedAt: now, UpdatedAt: now}
}

func (s *ConversationService) route(conv *domain.Conversation, text string) []string {
	lower := strings.ToLower(strings.TrimSpace(text))

	// Dentro del formulario una respuesta como "Restart my career in AI" es un
	// valor para el slot, no un comando.
	closing, reset := closingPattern, resetPattern
	if conv.RequestedSlot != "" {
		closing, reset = closingCommandPattern, resetCommandPattern
	}

	switch {
	case closing.MatchString(lower):
		return []string{closingReply(conv.LastReply)}
	case reset.MatchString(lower):
		conv.Reset()
		return []string{replyReset}
	case greetingPattern.MatchString(lower):
		conv.Reset()
		return []string{replyGreeting}
	}

	if conv.RequestedSlot != "" {
		if pausePattern.MatchString(lower) {
			conv.RequestedSlot = ""
			return []string{replyFormPaused}
		}
		return s.fillSlot(conv, text)
	}

	switch {
	case pathPattern.MatchString(lower):
		reply, _, _ := s.advisor.LearningPath(conv.Profile)
		return []string{reply}
	case coursePattern.MatchString(lower):
		return []string{s.advisor.Courses(conv.Profile)}
	case projectPattern.MatchString(lower):
		return []string{s.advisor.Projects(conv.Profile)}
	case careerPattern.MatchString(lower):
		return []string{s.advisor.Careers(conv.Profile)}
	case showPattern.MatchString(lower):
		return []string{s.advisor.ShowProfile(conv.Profile)}
	case startPattern.MatchString(lower):
		return s.startForm(conv, text)
	}
	return []string{replyHelp}
}

func (s *ConversationService) startForm(conv *domain.Conversation, text string) []string {
	if name, ok := s.advisor.Catalog().FindIn(text); ok {
		conv.Profile.Set(domain.SlotTargetDomain, name)
	}
	next := conv.Profile.NextMissing()
	if next == "" {
		conv.RequestedSlot = ""
		return []string{replyProfileReady}
	}
	conv.RequestedSlot = next
	return []string{replyFormStart, slotQuestions[next]}
}

func (s *ConversationService) fillSlot(conv *domain.Conversation, text string) []string {
	slot := conv.RequestedSlot
	res := intake.Validate(slot, strings.TrimSpace(text))
	if !res.Accepted || !conv.Profile.Set(slot, res.Value) {
		return []string{res.Reprompt}
	}

	next := conv.Profile.NextMissing()
	if next != "" {
		conv.RequestedSlot = next
		return []string{slotQuestions[next]}
	}
	conv.RequestedSlot = ""
	s.persist(conv)
	return []string{replyProfileReady}
}

// persist guarda el snapshot del perfil; un fallo no interrumpe la conversación.
func (s *ConversationService) persist(conv *domain.Conversation) {
	snapshot := domain.ProfileSnapshot{
		SessionID: conv.SenderID,
		Profile:   conv.Profile,
		SavedAt:   s.now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.profiles.Save(ctx, snapshot); err != nil {
		s.logger.Warn("profile snapshot save failed", zap.String("sender_id", conv.SenderID), zap.Error(err))
	}
}

func (s *ConversationService) record(ctx context.Context, senderID, text string, replies []string) {
	if s.messages == nil {
		return
	}
	if err := s.messages.RecordTurn(ctx, senderID, text, replies); err != nil {
		s.logger.Warn("transcript save failed", zap.String("sender_id", senderID), zap.Error(err))
	}
}

func (s *ConversationService) lockFor(senderID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(senderID))
	return &s.locks[h.Sum32()%lockStripes]
}

func closingReply(lastReply string) string {
	if strings.Contains(strings.ToLower(lastReply), "here is a recommended learning path") {
		return replyClosingAfterPath
	}
	return replyClosingDefault
}
