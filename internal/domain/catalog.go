package domain

// Course es una recomendación de curso del catálogo.
type Course struct {
	Title    string `json:"title" yaml:"title"`
	Platform string `json:"platform" yaml:"platform"`
	Level    string `json:"level" yaml:"level"`
}

// StageEstimate es una etapa del camino con su duración ajustada.
type StageEstimate struct {
	Stage string `json:"stage"`
	Weeks int    `json:"weeks"`
}

// Timeline es el resultado del generador; no se modifica tras construirse.
type Timeline struct {
	Domain      string          `json:"domain"`
	BasePath    string          `json:"base_path"`
	Stages      []StageEstimate `json:"stages"`
	TotalWeeks  int             `json:"total_weeks"`
	HoursPerDay float64         `json:"hours_per_day"`
	SpeedFactor float64         `json:"speed_factor"`
}

// StageLabels devuelve las etiquetas en orden.
func (t Timeline) StageLabels() []string {
	labels := make([]string, 0, len(t.Stages))
	for _, s := range t.Stages {
		labels = append(labels, s.Stage)
	}
	return labels
}
