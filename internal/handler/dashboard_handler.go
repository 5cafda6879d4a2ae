package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-service/internal/calendar"
	"habit-tracker-service/internal/model"
	"habit-tracker-service/internal/repository"
	"habit-tracker-service/internal/service/dashboard"
)

type DashboardHandler struct {
	service  *dashboard.Service
	progress *repository.ProgressRepository
	logger   *zap.Logger
}

func NewDashboardHandler(service *dashboard.Service, progress *repository.ProgressRepository, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, progress: progress, logger: logger}
}

// GetDashboard serves the month view; year and month default to the
// current calendar month.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = y
	}
	if monthStr := c.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = m
	}

	view, err := h.service.MonthView(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.logger.Error("GetDashboard: failed to build month view",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetDailyProgress serves the reconciled summary row for one date.
func (h *DashboardHandler) GetDailyProgress(c *gin.Context) {
	date, err := calendar.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	progress, err := h.progress.GetByDate(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no progress recorded for date"})
			return
		}
		h.logger.Error("GetDailyProgress: failed to fetch progress",
			zap.String("date", c.Query("date")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch daily progress"})
		return
	}

	c.JSON(http.StatusOK, progress)
}
