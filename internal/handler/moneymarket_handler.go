package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/service/moneymarket"
)

type MoneyMarketHandler struct {
	service *moneymarket.Service
	logger  *zap.Logger
}

func NewMoneyMarketHandler(service *moneymarket.Service, logger *zap.Logger) *MoneyMarketHandler {
	return &MoneyMarketHandler{service: service, logger: logger}
}

type conceptCompleteRequest struct {
	Date             string `json:"date"`
	ConceptName      string `json:"concept_name"`
	Notes            string `json:"notes"`
	TimeSpentMinutes int    `json:"time_spent_minutes"`
}

func (h *MoneyMarketHandler) GetConcepts(c *gin.Context) {
	c.JSON(http.StatusOK, moneymarket.Concepts())
}

func (h *MoneyMarketHandler) GetTodayConcept(c *gin.Context) {
	view, err := h.service.TodayConcept(c.Request.Context())
	if err != nil {
		h.logger.Error("GetTodayConcept: failed to resolve concept", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch today's concept"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MoneyMarketHandler) CompleteConcept(c *gin.Context) {
	var req conceptCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("CompleteConcept: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ConceptName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "concept_name required"})
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	if err := h.service.Complete(c.Request.Context(), date, req.ConceptName, req.Notes, req.TimeSpentMinutes); err != nil {
		h.logger.Error("CompleteConcept: failed to record completion",
			zap.String("concept", req.ConceptName),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete concept"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "concept completed"})
}

func (h *MoneyMarketHandler) GetProgress(c *gin.Context) {
	view, err := h.service.Progress(c.Request.Context())
	if err != nil {
		h.logger.Error("GetProgress: failed to fetch progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch progress"})
		return
	}
	c.JSON(http.StatusOK, view)
}
