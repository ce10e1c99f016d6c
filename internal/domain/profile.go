package domain

import "time"

// Slots del perfil, en el orden en que el formulario los pide.
const (
	SlotDegree         = "degree"
	SlotSemester       = "semester"
	SlotGPA            = "gpa"
	SlotSkills         = "skills"
	SlotTimeCommitment = "time_commitment"
	SlotInterests      = "interests"
	SlotTargetDomain   = "target_domain"
	SlotLearningGoal   = "learning_goal"
)

// ProfileFormSlots son los slots requeridos para dar el perfil por completo.
var ProfileFormSlots = []string{
	SlotDegree,
	SlotSemester,
	SlotGPA,
	SlotSkills,
	SlotTimeCommitment,
	SlotInterests,
	SlotLearningGoal,
}

// Profile es el perfil del estudiante recolectado durante una conversación.
// Un string vacío o un slice nil significa "sin valor". Skills e Interests no
// llevan omitempty: un slice vacío aceptado tiene que sobrevivir al JSON.
type Profile struct {
	Degree         string   `json:"degree,omitempty"`
	Semester       string   `json:"semester,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Skills         []string `json:"skills"`
	TimeCommitment string   `json:"time_commitment,omitempty"`
	Interests      []string `json:"interests"`
	TargetDomain   string   `json:"target_domain,omitempty"`
	LearningGoal   string   `json:"learning_goal,omitempty"`
}

// IsSet indica si el slot ya fue aceptado.
func (p Profile) IsSet(slot string) bool {
	switch slot {
	case SlotDegree:
		return p.Degree != ""
	case SlotSemester:
		return p.Semester != ""
	case SlotGPA:
		return p.GPA != ""
	case SlotSkills:
		return p.Skills != nil
	case SlotTimeCommitment:
		return p.TimeCommitment != ""
	case SlotInterests:
		return p.Interests != nil
	case SlotTargetDomain:
		return p.TargetDomain != ""
	case SlotLearningGoal:
		return p.LearningGoal != ""
	}
	return false
}

// Set asigna un valor ya normalizado por el validador. Devuelve false si el
// slot no existe o el tipo no corresponde.
func (p *Profile) Set(slot string, value any) bool {
	switch v := value.(type) {
	case string:
		switch slot {
		case SlotDegree:
			p.Degree = v
		case SlotSemester:
			p.Semester = v
		case SlotGPA:
			p.GPA = v
		case SlotTimeCommitment:
			p.TimeCommitment = v
		case SlotTargetDomain:
			p.TargetDomain = v
		case SlotLearningGoal:
			p.LearningGoal = v
		default:
			return false
		}
	case []string:
		// Nunca guardamos nil: un slice vacío sigue siendo "con valor".
		list := append([]string{}, v...)
		switch slot {
		case SlotSkills:
			p.Skills = list
		case SlotInterests:
			p.Interests = list
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// NextMissing devuelve el primer slot del formulario sin valor, o "" si está completo.
func (p Profile) NextMissing() string {
	for _, slot := range ProfileFormSlots {
		if !p.IsSet(slot) {
			return slot
		}
	}
	return ""
}

// ResolveDomain devuelve target_domain o, si falta, el último interés.
func (p Profile) ResolveDomain() string {
	if p.TargetDomain != "" {
		return p.TargetDomain
	}
	if n := len(p.Interests); n > 0 {
		return p.Interests[n-1]
	}
	return ""
}

// ProfileSnapshot es el perfil completo guardado al cerrar el formulario.
type ProfileSnapshot struct {
	SessionID string    `json:"session_id"`
	Profile   Profile   `json:"profile"`
	SavedAt   time.Time `json:"saved_at"`
}
