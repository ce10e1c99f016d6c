// Package catalog es la fuente de solo lectura de caminos, cursos, proyectos y
// carreras por dominio. Se construye explícitamente y se pasa a quien lo use.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"learning-advisor/internal/domain"
)

const (
	DefaultFallbackPath = "I recommend starting with the basics of Computer Science and then specializing."
)

var (
	defaultFallbackProjects = []string{"Build a simple To-Do App", "Create a Calculator"}
	defaultFallbackCareers  = []string{"Software Engineer", "Technical Consultant"}

	ErrEmptyCatalog  = errors.New("catalog has no domains")
	ErrInvalidDomain = errors.New("catalog domain invalid")
)

// Domain es la entrada de un dominio en el catálogo.
type Domain struct {
	Name     string          `yaml:"name"`
	Path     string          `yaml:"path"`
	Courses  []domain.Course `yaml:"courses"`
	Projects []string        `yaml:"projects"`
	Careers  []string        `yaml:"careers"`
}

// File es el formato YAML de CATALOG_PATH.
type File struct {
	FallbackPath     string   `yaml:"fallback_path"`
	FallbackProjects []string `yaml:"fallback_projects"`
	FallbackCareers  []string `yaml:"fallback_careers"`
	Domains          []Domain `yaml:"domains"`
}

// Catalog no expone setters; es seguro compartirlo entre goroutines.
type Catalog struct {
	order            []string
	byKey            map[string]Domain
	matchers         []domainMatcher
	fallbackPath     string
	fallbackProjects []string
	fallbackCareers  []string
}

type domainMatcher struct {
	name string
	re   *regexp.Regexp
}

// New valida y construye un catálogo.
func New(f File) (*Catalog, error) {
	if len(f.Domains) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		byKey:            make(map[string]Domain, len(f.Domains)),
		fallbackPath:     strings.TrimSpace(f.FallbackPath),
		fallbackProjects: f.FallbackProjects,
		fallbackCareers:  f.FallbackCareers,
	}
	if c.fallbackPath == "" {
		c.fallbackPath = DefaultFallbackPath
	}
	if len(c.fallbackProjects) == 0 {
		c.fallbackProjects = defaultFallbackProjects
	}
	if len(c.fallbackCareers) == 0 {
		c.fallbackCareers = defaultFallbackCareers
	}

	for _, d := range f.Domains {
		d.Name = strings.TrimSpace(d.Name)
		d.Path = strings.TrimSpace(d.Path)
		if d.Name == "" || d.Path == "" {
			return nil, fmt.Errorf("%w: name and path are required (%q)", ErrInvalidDomain, d.Name)
		}
		key := domainKey(d.Name)
		if _, dup := c.byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicated %q", ErrInvalidDomain, d.Name)
		}
		c.byKey[key] = d
		c.order = append(c.order, d.Name)
		c.matchers = append(c.matchers, domainMatcher{
			name: d.Name,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(d.Name) + `\b`),
		})
	}
	return c, nil
}

// LoadFile lee un catálogo YAML.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f)
}

// Domains devuelve los nombres canónicos en orden de declaración.
func (c *Catalog) Domains() []string {
	return append([]string{}, c.order...)
}

// Resolve busca el dominio ignorando mayúsculas y espacios.
func (c *Catalog) Resolve(name string) (string, bool) {
	d, ok := c.byKey[domainKey(name)]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// FindIn devuelve el primer dominio mencionado como palabra completa en el texto.
func (c *Catalog) FindIn(text string) (string, bool) {
	for _, m := range c.matchers {
		if m.re.MatchString(text) {
			return m.name, true
		}
	}
	return "", false
}

// LearningPath nunca devuelve vacío: sin dominio conocido usa la frase genérica.
func (c *Catalog) LearningPath(name string) string {
	if d, ok := c.byKey[domainKey(name)]; ok {
		return d.Path
	}
	return c.fallbackPath
}

// Courses devuelve los cursos del dominio o una lista vacía.
func (c *Catalog) Courses(name string) []domain.Course {
	if d, ok := c.byKey[domainKey(name)]; ok {
		return append([]domain.Course{}, d.Courses...)
	}
	return []domain.Course{}
}

func (c *Catalog) Projects(name string) []string {
	if d, ok := c.byKey[domainKey(name)]; ok && len(d.Projects) > 0 {
		return append([]string{}, d.Projects...)
	}
	return append([]string{}, c.fallbackProjects...)
}

func (c *Catalog) Careers(name string) []string {
	if d, ok := c.byKey[domainKey(name)]; ok && len(d.Careers) > 0 {
		return append([]string{}, d.Careers...)
	}
	return append([]string{}, c.fallbackCareers...)
}

func domainKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
