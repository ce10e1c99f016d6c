package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-advisor/internal/domain"
	"learning-advisor/internal/intake"
	"learning-advisor/internal/service"
	"learning-advisor/internal/timeline"
)

// AdvisorHandler expone validadores, timeline y catálogo sin estado de sesión.
type AdvisorHandler struct {
	logger  *zap.Logger
	advisor *service.AdvisorService
}

func NewAdvisorHandler(logger *zap.Logger, advisor *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{logger: logger, advisor: advisor}
}

// ValidateSlot maneja POST /slots/:slot/validate.
func (h *AdvisorHandler) ValidateSlot(c *gin.Context) {
	slot := c.Param("slot")
	if !intake.Supports(slot) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown slot"})
		return
	}
	var req struct {
		Value any `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid validate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res := intake.Validate(slot, req.Value)
	c.JSON(http.StatusOK, gin.H{
		"slot":     res.Slot,
		"value":    res.Value,
		"accepted": res.Accepted,
		"message":  res.Reprompt,
	})
}

type timelineResponse struct {
	Domain      string                 `json:"domain"`
	Stages      []domain.StageEstimate `json:"stages"`
	TotalWeeks  int                    `json:"total_weeks"`
	HoursPerDay float64                `json:"hours_per_day"`
	SpeedFactor float64                `json:"speed_factor"`
	Text        string                 `json:"text"`
}

// Timeline maneja POST /timeline con los campos del perfil.
func (h *AdvisorHandler) Timeline(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("invalid timeline request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	text, t, ok := h.advisor.LearningPath(profile)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": text})
		return
	}
	c.JSON(http.StatusOK, timelineResponse{
		Domain:      t.Domain,
		Stages:      t.Stages,
		TotalWeeks:  t.TotalWeeks,
		HoursPerDay: t.HoursPerDay,
		SpeedFactor: t.SpeedFactor,
		Text:        text,
	})
}

// ListDomains maneja GET /domains.
func (h *AdvisorHandler) ListDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": h.advisor.Catalog().Domains()})
}

// LearningPath maneja GET /domains/:domain/path.
func (h *AdvisorHandler) LearningPath(c *gin.Context) {
	name := h.domainParam(c)
	path := h.advisor.Catalog().LearningPath(name)
	c.JSON(http.StatusOK, gin.H{
		"domain": name,
		"path":   path,
		"stages": timeline.SplitStages(path),
	})
}

// Courses maneja GET /domains/:domain/courses.
func (h *AdvisorHandler) Courses(c *gin.Context) {
	name := h.domainParam(c)
	c.JSON(http.StatusOK, gin.H{"domain": name, "courses": h.advisor.Catalog().Courses(name)})
}

// Projects maneja GET /domains/:domain/projects.
func (h *AdvisorHandler) Projects(c *gin.Context) {
	name := h.domainParam(c)
	c.JSON(http.StatusOK, gin.H{"domain": name, "projects": h.advisor.Catalog().Projects(name)})
}

// Careers maneja GET /domains/:domain/careers.
func (h *AdvisorHandler) Careers(c *gin.Context) {
	name := h.domainParam(c)
	c.JSON(http.StatusOK, gin.H{"domain": name, "careers": h.advisor.Catalog().Careers(name)})
}

// domainParam devuelve el nombre canónico si el catálogo lo conoce.
func (h *AdvisorHandler) domainParam(c *gin.Context) string {
	name := strings.TrimSpace(c.Param("domain"))
	if canonical, ok := h.advisor.Catalog().Resolve(name); ok {
		return canonical
	}
	return name
}
