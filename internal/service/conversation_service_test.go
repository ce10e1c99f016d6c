package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"learning-advisor/internal/catalog"
	"learning-advisor/internal/domain"
)

type mockProfileRepo struct {
	mu      sync.Mutex
	saved   []domain.ProfileSnapshot
	saveErr error
}

func (m *mockProfileRepo) Save(_ context.Context, snapshot domain.ProfileSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, snapshot)
	return nil
}

func (m *mockProfileRepo) GetBySessionID(_ context.Context, sessionID string) (domain.ProfileSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].SessionID == sessionID {
			return m.saved[i], nil
		}
	}
	return domain.ProfileSnapshot{}, errors.New("not found")
}

type failingConversationStore struct{}

func (failingConversationStore) Load(context.Context, string) (domain.Conversation, error) {
	return domain.Conversation{}, errors.New("store down")
}

func (failingConversationStore) Save(context.Context, domain.Conversation) error {
	return errors.New("store down")
}

func (failingConversationStore) Delete(context.Context, string) error {
	return errors.New("store down")
}

func newTestConversationService() (*ConversationService, *mockProfileRepo, *mockMessageServiceRepo) {
	profiles := &mockProfileRepo{}
	messages := &mockMessageServiceRepo{}
	svc := NewConversationService(
		nil,
		NewMemoryConversationStore(0),
		NewAdvisorService(catalog.Default(), "1 hour"),
		NewMessageService(messages),
		profiles,
	)
	return svc, profiles, messages
}

func say(t *testing.T, svc *ConversationService, sender, text string) []string {
	t.Helper()
	replies, err := svc.Handle(context.Background(), sender, text)
	if err != nil {
		t.Fatalf("handle %q: %v", text, err)
	}
	if len(replies) == 0 {
		t.Fatalf("expected replies for %q", text)
	}
	return replies
}

func lastReply(replies []string) string {
	return replies[len(replies)-1]
}

func TestConversation_FullProfileFlow(t *testing.T) {
	svc, profiles, messages := newTestConversationService()
	ctx := context.Background()

	if got := say(t, svc, "u1", "hi"); got[0] != replyGreeting {
		t.Fatalf("expected greeting, got %q", got)
	}

	got := say(t, svc, "u1", "i am computer engineering student and i want to learn AI")
	if lastReply(got) != slotQuestions[domain.SlotDegree] {
		t.Fatalf("expected degree question, got %q", got)
	}

	steps := []struct {
		answer string
		next   string
	}{
		{"computer engineering", slotQuestions[domain.SlotSemester]},
		{"5", slotQuestions[domain.SlotGPA]},
		{"3.22", slotQuestions[domain.SlotSkills]},
		{"Python", slotQuestions[domain.SlotTimeCommitment]},
		{"1 hour", slotQuestions[domain.SlotInterests]},
		{"AI", slotQuestions[domain.SlotLearningGoal]},
		{"Learn AI", replyProfileReady},
	}
	for _, step := range steps {
		if got := say(t, svc, "u1", step.answer); lastReply(got) != step.next {
			t.Fatalf("after %q expected %q, got %q", step.answer, step.next, got)
		}
	}

	conv, err := svc.Conversation(ctx, "u1")
	if err != nil {
		t.Fatalf("load conversation: %v", err)
	}
	want := domain.Profile{
		Degree:         "computer engineering",
		Semester:       "5",
		GPA:            "3.22",
		Skills:         []string{"Python"},
		TimeCommitment: "1 hour",
		Interests:      []string{"AI"},
		TargetDomain:   "AI",
		LearningGoal:   "Learn AI",
	}
	if conv.Profile.Degree != want.Degree || conv.Profile.Semester != want.Semester ||
		conv.Profile.GPA != want.GPA || conv.Profile.TargetDomain != want.TargetDomain ||
		conv.Profile.LearningGoal != want.LearningGoal || strings.Join(conv.Profile.Skills, ",") != "Python" {
		t.Fatalf("unexpected profile: %+v", conv.Profile)
	}
	if conv.RequestedSlot != "" {
		t.Fatalf("expected form closed, got %q", conv.RequestedSlot)
	}

	if len(profiles.saved) != 1 || profiles.saved[0].SessionID != "u1" {
		t.Fatalf("expected one snapshot for u1, got %+v", profiles.saved)
	}

	path := say(t, svc, "u1", "What should I learn next?")
	text := path[0]
	if !strings.HasPrefix(text, "Here is a recommended learning path for AI based on your profile:") {
		t.Fatalf("unexpected path reply: %q", text)
	}
	if strings.Contains(text, "Start with Python: ") {
		t.Fatalf("expected python stage removed: %q", text)
	}
	if !strings.Contains(text, "Estimated total time: ~32 week(s)") {
		t.Fatalf("expected 32 weeks total: %q", text)
	}

	if got := say(t, svc, "u1", "thanks!"); got[0] != replyClosingAfterPath {
		t.Fatalf("expected closing after path, got %q", got)
	}

	if err := svc.End(ctx, "u1"); err != nil {
		t.Fatalf("end: %v", err)
	}
	snapshot, err := svc.Snapshot(ctx, "u1")
	if err != nil || snapshot.Profile.LearningGoal != "Learn AI" {
		t.Fatalf("expected persisted snapshot after end, got %+v (%v)", snapshot, err)
	}

	if len(messages.created) < 20 {
		t.Fatalf("expected transcript recorded, got %d messages", len(messages.created))
	}
	if messages.created[0].Role != domain.RoleUser || messages.created[1].Role != domain.RoleBot {
		t.Fatalf("expected user then bot roles, got %q %q", messages.created[0].Role, messages.created[1].Role)
	}
}

func TestConversation_RepromptsKeepSlot(t *testing.T) {
	svc, _, _ := newTestConversationService()
	say(t, svc, "u1", "start my profile")
	say(t, svc, "u1", "Computer Science")

	got := say(t, svc, "u1", "no idea")
	if got[0] != "Please provide your semester as a number (for example: 5 or '5th')." {
		t.Fatalf("expected semester reprompt, got %q", got)
	}
	got = say(t, svc, "u1", "fifth? I mean 5th")
	if got[0] != slotQuestions[domain.SlotGPA] {
		t.Fatalf("expected gpa question, got %q", got)
	}
	got = say(t, svc, "u1", "11")
	if got[0] != "Please provide your GPA as a number (for example: 3.5 or 7.2)." {
		t.Fatalf("expected gpa reprompt, got %q", got)
	}

	conv, _ := svc.Conversation(context.Background(), "u1")
	if conv.RequestedSlot != domain.SlotGPA || conv.Profile.Semester != "5" {
		t.Fatalf("unexpected state: slot=%q semester=%q", conv.RequestedSlot, conv.Profile.Semester)
	}
}

func TestConversation_ResetAndPause(t *testing.T) {
	svc, _, _ := newTestConversationService()
	say(t, svc, "u1", "I'm a student")
	say(t, svc, "u1", "Computer Science")

	if got := say(t, svc, "u1", "stop"); got[0] != replyFormPaused {
		t.Fatalf("expected pause reply, got %q", got)
	}
	if got := say(t, svc, "u1", "show my profile"); !strings.Contains(got[0], "Degree: Computer Science") {
		t.Fatalf("expected profile summary, got %q", got)
	}
	if got := say(t, svc, "u1", "start my profile"); lastReply(got) != slotQuestions[domain.SlotSemester] {
		t.Fatalf("expected to resume at semester, got %q", got)
	}

	if got := say(t, svc, "u1", "Start over!"); got[0] != replyReset {
		t.Fatalf("expected reset reply, got %q", got)
	}
	conv, _ := svc.Conversation(context.Background(), "u1")
	if conv.Profile.Degree != "" || conv.RequestedSlot != "" {
		t.Fatalf("expected cleared profile, got %+v", conv)
	}
}

func TestConversation_RecommendationsOutsideForm(t *testing.T) {
	svc, _, _ := newTestConversationService()

	if got := say(t, svc, "u1", "what should I learn next?"); got[0] != msgPathNeedsDomain {
		t.Fatalf("expected clarifying question, got %q", got)
	}
	if got := say(t, svc, "u1", "recommend me some courses"); got[0] != msgCoursesNeedsDomain {
		t.Fatalf("expected course clarifying question, got %q", got)
	}
	if got := say(t, svc, "u1", "tell me something"); got[0] != replyHelp {
		t.Fatalf("expected help, got %q", got)
	}
	if got := say(t, svc, "u1", "thank you"); got[0] != replyClosingDefault {
		t.Fatalf("expected default closing, got %q", got)
	}

	say(t, svc, "u2", "I want to learn web development")
	for _, answer := range []string{"CS", "3", "8.1", "HTML", "2 hours", "Web Development", "Become a web developer"} {
		say(t, svc, "u2", answer)
	}
	if got := say(t, svc, "u2", "any project ideas?"); !strings.HasPrefix(got[0], "Here are some project ideas for Web Development:") {
		t.Fatalf("unexpected projects reply: %q", got)
	}
	if got := say(t, svc, "u2", "career options?"); !strings.HasPrefix(got[0], "Here are some career paths in Web Development:") {
		t.Fatalf("unexpected careers reply: %q", got)
	}
}

func TestConversation_Validation(t *testing.T) {
	svc, _, _ := newTestConversationService()
	if _, err := svc.Handle(context.Background(), "  ", "hi"); !errors.Is(err, ErrInvalidSender) {
		t.Fatalf("expected ErrInvalidSender, got %v", err)
	}
	if _, err := svc.Conversation(context.Background(), "missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestConversation_DegradedDependencies(t *testing.T) {
	profiles := &mockProfileRepo{saveErr: errors.New("db down")}
	messages := &mockMessageServiceRepo{createErr: errors.New("db down")}
	svc := NewConversationService(nil, failingConversationStore{}, nil, NewMessageService(messages), profiles)

	replies, err := svc.Handle(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("expected store failures to be absorbed, got %v", err)
	}
	if replies[0] != replyGreeting {
		t.Fatalf("expected greeting, got %q", replies)
	}
}

func TestConversation_ConcurrentSenders(t *testing.T) {
	svc, _, _ := newTestConversationService()
	say(t, svc, "u1", "start my profile")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Handle(context.Background(), "u1", "Computer Science")
		}()
	}
	wg.Wait()

	conv, err := svc.Conversation(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// La primera respuesta llena degree; las siguientes se validan contra semester.
	if conv.Profile.Degree != "Computer Science" || conv.RequestedSlot != domain.SlotSemester {
		t.Fatalf("unexpected state after concurrent turns: %+v", conv)
	}
}

func TestConversation_RedisStoreKeepsEmptySkills(t *testing.T) {
	store := newRedisConversationStore(newMockRedisKV(), time.Minute)
	svc := NewConversationService(nil, store, NewAdvisorService(catalog.Default(), ""), nil, nil)

	var got []string
	for _, text := range []string{"start my profile", "CS", "5", "3.5", ";", "1 hour"} {
		got = say(t, svc, "u1", text)
	}
	if lastReply(got) != slotQuestions[domain.SlotInterests] {
		t.Fatalf("expected interests question, got %q", got)
	}

	conv, err := svc.Conversation(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load conversation: %v", err)
	}
	if conv.RequestedSlot != domain.SlotInterests || conv.Profile.Skills == nil {
		t.Fatalf("expected empty skills kept, got slot=%q skills=%#v", conv.RequestedSlot, conv.Profile.Skills)
	}
}

func TestConversation_SlotAnswersWithCommandWords(t *testing.T) {
	svc, _, _ := newTestConversationService()
	say(t, svc, "u1", "start my profile")
	for _, answer := range []string{"Computer Science", "4", "3.1", "SQL", "2 hours"} {
		say(t, svc, "u1", answer)
	}

	if got := say(t, svc, "u1", "I am okay with AI, thanks"); got[0] != slotQuestions[domain.SlotLearningGoal] {
		t.Fatalf("expected interests answer accepted, got %q", got)
	}
	if got := say(t, svc, "u1", "Restart my career in data science"); got[0] != replyProfileReady {
		t.Fatalf("expected learning goal accepted, got %q", got)
	}

	conv, err := svc.Conversation(context.Background(), "u1")
	if err != nil {
		t.Fatalf("load conversation: %v", err)
	}
	if conv.Profile.LearningGoal != "Restart my career in data science" || conv.Profile.Degree != "Computer Science" {
		t.Fatalf("unexpected profile: %+v", conv.Profile)
	}
	if strings.Join(conv.Profile.Interests, "|") != "I am okay with AI|thanks" {
		t.Fatalf("unexpected interests: %#v", conv.Profile.Interests)
	}
}

func TestConversation_WholeMessageCommandsInsideForm(t *testing.T) {
	svc, _, _ := newTestConversationService()
	say(t, svc, "u1", "start my profile")
	say(t, svc, "u1", "Computer Science")

	if got := say(t, svc, "u1", "Thanks!"); got[0] != replyClosingDefault {
		t.Fatalf("expected closing reply, got %q", got)
	}
	conv, _ := svc.Conversation(context.Background(), "u1")
	if conv.RequestedSlot != domain.SlotSemester {
		t.Fatalf("expected form to stay on semester, got %q", conv.RequestedSlot)
	}

	if got := say(t, svc, "u1", "restart"); got[0] != replyReset {
		t.Fatalf("expected reset reply, got %q", got)
	}
	conv, _ = svc.Conversation(context.Background(), "u1")
	if conv.Profile.Degree != "" || conv.RequestedSlot != "" {
		t.Fatalf("expected cleared profile, got %+v", conv)
	}
}
