// Package intake valida y normaliza los valores de cada slot del perfil.
//
// Cada validador es una función pura con la misma firma; el despacho se hace
// por nombre de slot. Ningún validador falla: una entrada inválida siempre
// termina en un Result rechazado con el texto para volver a preguntar.
package intake

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"learning-advisor/internal/domain"
)

// Result es la respuesta de un validador. Value es nil cuando se rechaza.
type Result struct {
	Slot     string
	Value    any
	Accepted bool
	Reprompt string
}

// Validator acepta un valor crudo y devuelve el valor normalizado o un reprompt.
type Validator func(raw any) Result

const (
	repromptDegree         = "I didn't get your degree clearly. Which degree are you pursuing?"
	repromptSemesterEmpty  = "Please provide your semester as a number, e.g. 5"
	repromptSemester       = "Please provide your semester as a number (for example: 5 or '5th')."
	repromptGPA            = "Please provide your GPA as a number (for example: 3.5 or 7.2)."
	repromptSkills         = "Please list at least one technical skill you have."
	repromptTimeCommitment = "How much time can you commit to learning daily? (e.g., 1 hour)"
	repromptInterests      = "What are your areas of interest? (e.g., AI, Web Development)"
	repromptLearningGoal   = "Please tell me your learning goal (e.g., 'Learn AI', 'Become a web developer')"
	repromptUnknown        = "Sorry, I can't store that information."
)

var validators = map[string]Validator{
	domain.SlotDegree:         ValidateDegree,
	domain.SlotSemester:       ValidateSemester,
	domain.SlotGPA:            ValidateGPA,
	domain.SlotSkills:         ValidateSkills,
	domain.SlotTimeCommitment: ValidateTimeCommitment,
	domain.SlotInterests:      ValidateInterests,
	domain.SlotLearningGoal:   ValidateLearningGoal,
}

// Validate despacha al validador del slot.
func Validate(slot string, raw any) Result {
	v, ok := validators[slot]
	if !ok {
		return reject(slot, repromptUnknown)
	}
	return v(raw)
}

// Supports indica si existe validador para el slot.
func Supports(slot string) bool {
	_, ok := validators[slot]
	return ok
}

func accept(slot string, value any) Result {
	return Result{Slot: slot, Value: value, Accepted: true}
}

func reject(slot, reprompt string) Result {
	return Result{Slot: slot, Reprompt: reprompt}
}

// ValidateDegree acepta cualquier texto de más de un carácter.
func ValidateDegree(raw any) Result {
	s, ok := raw.(string)
	if !ok {
		return reject(domain.SlotDegree, repromptDegree)
	}
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= 1 {
		return reject(domain.SlotDegree, repromptDegree)
	}
	return accept(domain.SlotDegree, s)
}

var (
	semesterDigits = regexp.MustCompile(`\d{1,2}`)

	// El orden importa: gana la primera palabra contenida en el texto.
	semesterWords = []struct {
		word string
		num  int
	}{
		{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5}, {"six", 6},
		{"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10}, {"eleven", 11}, {"twelve", 12},
	}
)

// ValidateSemester busca un número de 1 a 12, en dígitos o en palabras.
func ValidateSemester(raw any) Result {
	if raw == nil {
		return reject(domain.SlotSemester, repromptSemesterEmpty)
	}
	text := strings.ToLower(strings.TrimSpace(textOf(raw)))

	if m := semesterDigits.FindString(text); m != "" {
		if sem, err := strconv.Atoi(m); err == nil && sem >= 1 && sem <= 12 {
			return accept(domain.SlotSemester, strconv.Itoa(sem))
		}
	}
	// Si no hubo número válido probamos con palabras ("fifth" no, "five" sí).
	for _, w := range semesterWords {
		if strings.Contains(text, w.word) {
			return accept(domain.SlotSemester, strconv.Itoa(w.num))
		}
	}
	return reject(domain.SlotSemester, repromptSemester)
}

// ValidateGPA acepta un número entre 0 y 10.
func ValidateGPA(raw any) Result {
	var g float64
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return reject(domain.SlotGPA, repromptGPA)
		}
		g = parsed
	case float64:
		g = v
	case float32:
		g = float64(v)
	case int:
		g = float64(v)
	case int64:
		g = float64(v)
	default:
		return reject(domain.SlotGPA, repromptGPA)
	}
	// Escala 4.0 o 10.0, sin distinguir.
	if math.IsNaN(g) || g < 0 || g > 10 {
		return reject(domain.SlotGPA, repromptGPA)
	}
	return accept(domain.SlotGPA, formatFloat(g))
}

// ValidateSkills separa por comas o punto y coma; una lista vacía se acepta.
func ValidateSkills(raw any) Result {
	if isEmpty(raw) {
		return reject(domain.SlotSkills, repromptSkills)
	}
	if list, ok := asList(raw); ok {
		return accept(domain.SlotSkills, list)
	}
	text := strings.ReplaceAll(textOf(raw), ";", ",")
	// Una lista vacía tras limpiar se acepta igual; no se revalida.
	return accept(domain.SlotSkills, splitTrimmed(text))
}

// ValidateTimeCommitment guarda el texto tal cual si no está vacío.
func ValidateTimeCommitment(raw any) Result {
	if isEmpty(raw) {
		return reject(domain.SlotTimeCommitment, repromptTimeCommitment)
	}
	// Se guarda tal cual; las horas se interpretan al generar el timeline.
	return accept(domain.SlotTimeCommitment, textOf(raw))
}

// ValidateInterests devuelve una lista; rechaza la lista vacía.
func ValidateInterests(raw any) Result {
	if isEmpty(raw) {
		return reject(domain.SlotInterests, repromptInterests)
	}
	var interests []string
	if list, ok := asList(raw); ok {
		interests = list
	} else {
		text := strings.TrimSpace(textOf(raw))
		if strings.Contains(text, ",") {
			interests = splitTrimmed(text)
		} else {
			interests = []string{text}
		}
	}
	if len(interests) == 0 {
		return reject(domain.SlotInterests, repromptInterests)
	}
	return accept(domain.SlotInterests, interests)
}

// ValidateLearningGoal exige un objetivo no vacío tras recortar.
func ValidateLearningGoal(raw any) Result {
	if isEmpty(raw) {
		return reject(domain.SlotLearningGoal, repromptLearningGoal)
	}
	goal := strings.TrimSpace(textOf(raw))
	if goal == "" {
		return reject(domain.SlotLearningGoal, repromptLearningGoal)
	}
	return accept(domain.SlotLearningGoal, goal)
}

// isEmpty replica la noción de "falsy": nil, string vacío o secuencia vacía.
func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case bool:
		return !v
	case int:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

// asList acepta secuencias tal cual llegan (por ejemplo desde JSON).
func asList(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, textOf(item))
		}
		return out, true
	}
	return nil, false
}

func splitTrimmed(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func textOf(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return formatFloat(v)
	case nil:
		return ""
	}
	return fmt.Sprint(raw)
}

// formatFloat conserva el ".0" en los enteros ("10.0").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
