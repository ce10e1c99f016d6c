package service

import (
	"fmt"
	"strings"

	"learning-advisor/internal/catalog"
	"learning-advisor/internal/domain"
	"learning-advisor/internal/timeline"
)

const (
	msgPathNeedsDomain    = "I need to know your area of interest to recommend a learning path. What would you like to focus on (e.g., AI, Web Development, Cybersecurity)?"
	msgCoursesNeedsDomain = "Please specify a domain for course recommendations (e.g., AI, Web Development)."
	msgProjectsNeedDomain = "I need to know your domain to suggest projects."
	msgCareersNeedDomain  = "I need to know your domain to give career guidance."
)

// AdvisorService arma las recomendaciones a partir del perfil y el catálogo.
type AdvisorService struct {
	catalog               *catalog.Catalog
	defaultTimeCommitment string
}

func NewAdvisorService(c *catalog.Catalog, defaultTimeCommitment string) *AdvisorService {
	if c == nil {
		c = catalog.Default()
	}
	if strings.TrimSpace(defaultTimeCommitment) == "" {
		defaultTimeCommitment = "1 hour"
	}
	return &AdvisorService{catalog: c, defaultTimeCommitment: defaultTimeCommitment}
}

// Catalog expone el catálogo de solo lectura.
func (s *AdvisorService) Catalog() *catalog.Catalog {
	return s.catalog
}

// domainFor aplica target_domain / último interés y devuelve el nombre canónico
// cuando el catálogo lo conoce.
func (s *AdvisorService) domainFor(profile domain.Profile) string {
	name := strings.TrimSpace(profile.ResolveDomain())
	if name == "" {
		return ""
	}
	if canonical, ok := s.catalog.Resolve(name); ok {
		return canonical
	}
	return name
}

func (s *AdvisorService) timeCommitment(profile domain.Profile) string {
	if profile.TimeCommitment != "" {
		return profile.TimeCommitment
	}
	return s.defaultTimeCommitment
}

// Plan calcula el timeline sin renderizarlo. ok es false si falta el dominio.
func (s *AdvisorService) Plan(profile domain.Profile) (domain.Timeline, bool) {
	name := s.domainFor(profile)
	if name == "" {
		return domain.Timeline{}, false
	}
	t := timeline.Generate(timeline.Request{
		TargetDomain:   name,
		BasePath:       s.catalog.LearningPath(name),
		Skills:         profile.Skills,
		TimeCommitment: s.timeCommitment(profile),
		LearningGoal:   profile.LearningGoal,
	})
	return t, true
}

// LearningPath devuelve el texto del plan personalizado, o una pregunta
// aclaratoria cuando no hay dominio.
func (s *AdvisorService) LearningPath(profile domain.Profile) (string, domain.Timeline, bool) {
	t, ok := s.Plan(profile)
	if !ok {
		return msgPathNeedsDomain, domain.Timeline{}, false
	}
	return timeline.Render(t, profile, s.timeCommitment(profile)), t, true
}

func (s *AdvisorService) Courses(profile domain.Profile) string {
	name := s.domainFor(profile)
	if name == "" {
		return msgCoursesNeedsDomain
	}
	courses := s.catalog.Courses(name)
	if len(courses) == 0 {
		return fmt.Sprintf("I couldn't find specific courses for %s, but I suggest checking Coursera or Udemy.", name)
	}
	return fmt.Sprintf("Here are some recommended courses for %s:\n%s", name, catalog.FormatCourses(courses))
}

func (s *AdvisorService) Projects(profile domain.Profile) string {
	name := s.domainFor(profile)
	if name == "" {
		return msgProjectsNeedDomain
	}
	return fmt.Sprintf("Here are some project ideas for %s:\n%s", name, catalog.FormatList(s.catalog.Projects(name)))
}

func (s *AdvisorService) Careers(profile domain.Profile) string {
	name := s.domainFor(profile)
	if name == "" {
		return msgCareersNeedDomain
	}
	return fmt.Sprintf("Here are some career paths in %s:\n%s", name, catalog.FormatList(s.catalog.Careers(name)))
}

// ShowProfile resume los slots cargados.
func (s *AdvisorService) ShowProfile(profile domain.Profile) string {
	lines := []string{
		"Here is your current profile:",
		"Degree: " + orNA(profile.Degree),
		"Semester: " + orNA(profile.Semester),
		"GPA: " + orNA(profile.GPA),
		"Skills: " + orNA(strings.Join(profile.Skills, ", ")),
		"Daily study: " + orNA(profile.TimeCommitment),
		"Interests: " + orNA(strings.Join(profile.Interests, ", ")),
		"Target domain: " + orNA(profile.TargetDomain),
		"Learning goal: " + orNA(profile.LearningGoal),
	}
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
