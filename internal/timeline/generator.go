// Package timeline convierte el camino genérico de un dominio en un plan
// personalizado con semanas estimadas por etapa.
package timeline

import (
	"regexp"
	"strconv"
	"strings"

	"learning-advisor/internal/domain"
)

// PathSeparator separa las etapas en el texto del catálogo.
const PathSeparator = "->"

const (
	defaultHoursPerDay = 1.0
	defaultStageWeeks  = 6
)

// durationEntry asocia una palabra clave con su duración base en semanas.
type durationEntry struct {
	keyword string
	weeks   int
}

// durationTable se recorre en orden y gana la primera palabra contenida en la
// etapa normalizada. Reordenarla cambia los resultados ("scripting (python/bash)"
// cae en "python").
var durationTable = []durationEntry{
	{"python", 2},
	{"math for ml", 4},
	{"basic ml algorithms", 6},
	{"deep learning", 10},
	{"nlp/cv", 8},
	{"html/css", 2},
	{"javascript", 4},
	{"react/vue", 6},
	{"node.js", 6},
	{"databases", 4},
	{"devops", 6},
	{"networking basics", 3},
	{"linux", 3},
	{"scripting (python/bash)", 4},
	{"ethical hacking", 6},
	{"cloud security", 6},
}

var hoursPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// Request reúne los datos del perfil que afectan al plan.
type Request struct {
	TargetDomain   string
	BasePath       string
	Skills         []string
	TimeCommitment string
	LearningGoal   string
}

// Generate produce el timeline personalizado. Nunca falla: un ritmo ilegible
// usa 1 hora diaria y cada etapa aporta al menos una semana.
func Generate(req Request) domain.Timeline {
	stages := SplitStages(req.BasePath)

	hasPython := KnowsPython(req.Skills)
	if hasPython {
		kept := stages[:0]
		for _, s := range stages {
			if !strings.Contains(strings.ToLower(s), "python") {
				kept = append(kept, s)
			}
		}
		stages = kept
	}

	hours := ParseHoursPerDay(req.TimeCommitment)
	factor := SpeedFactor(hours)

	out := domain.Timeline{
		Domain:      req.TargetDomain,
		BasePath:    req.BasePath,
		Stages:      make([]domain.StageEstimate, 0, len(stages)),
		HoursPerDay: hours,
		SpeedFactor: factor,
	}
	for _, stage := range stages {
		key := normalizeStage(stage)
		weeks := BaseWeeks(key)

		// Solo alcanzable si una etapa con "python" sobrevivió al filtro.
		if strings.Contains(key, "python") && hasPython {
			weeks = max(1, weeks/2)
		}

		adjusted := max(1, int(float64(weeks)*factor))
		out.TotalWeeks += adjusted
		out.Stages = append(out.Stages, domain.StageEstimate{Stage: stage, Weeks: adjusted})
	}
	return out
}

// SplitStages separa el camino en etiquetas recortadas, preservando el orden.
func SplitStages(basePath string) []string {
	parts := strings.Split(basePath, PathSeparator)
	stages := make([]string, 0, len(parts))
	for _, p := range parts {
		stages = append(stages, strings.TrimSpace(p))
	}
	return stages
}

// KnowsPython indica si algún skill menciona python.
func KnowsPython(skills []string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), "python") {
			return true
		}
	}
	return false
}

// ParseHoursPerDay toma el primer número del texto. Si la palabra que le sigue
// empieza por "min" el número se interpreta como minutos.
func ParseHoursPerDay(timeCommitment string) float64 {
	loc := hoursPattern.FindStringIndex(timeCommitment)
	if loc == nil {
		return defaultHoursPerDay
	}
	hours, err := strconv.ParseFloat(timeCommitment[loc[0]:loc[1]], 64)
	if err != nil {
		return defaultHoursPerDay
	}
	rest := strings.ToLower(strings.TrimSpace(timeCommitment[loc[1]:]))
	if strings.HasPrefix(rest, "min") {
		hours /= 60
	}
	return hours
}

// SpeedFactor mapea horas diarias a un multiplicador de duración.
// Menos horas, ritmo más lento, factor mayor.
func SpeedFactor(hoursPerDay float64) float64 {
	switch {
	case hoursPerDay < 0.75:
		return 1.8
	case hoursPerDay < 1.5:
		return 1.2
	case hoursPerDay < 3:
		return 1.0
	default:
		return 0.8
	}
}

// BaseWeeks busca la duración base de una etiqueta ya normalizada.
func BaseWeeks(normalized string) int {
	for _, e := range durationTable {
		if strings.Contains(normalized, e.keyword) {
			return e.weeks
		}
	}
	return defaultStageWeeks
}

func normalizeStage(stage string) string {
	key := strings.ToLower(stage)
	key = strings.ReplaceAll(key, ".", "")
	key = strings.ReplaceAll(key, "  ", " ")
	return strings.TrimSpace(key)
}
