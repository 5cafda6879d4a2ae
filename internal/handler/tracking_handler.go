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
	"habit-tracker-service/internal/service/streak"
)

type TrackingHandler struct {
	tracker *streak.Tracker
	repo    *repository.TrackingRepository
	logger  *zap.Logger
}

func NewTrackingHandler(tracker *streak.Tracker, repo *repository.TrackingRepository, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{tracker: tracker, repo: repo, logger: logger}
}

type trackingRequest struct {
	HabitID   int    `json:"habit_id"`
	Date      string `json:"date"`
	Completed *bool  `json:"completed"`
	Failed    *bool  `json:"failed"`
}

func (h *TrackingHandler) TrackHabit(c *gin.Context) {
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("TrackHabit: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.HabitID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "habit_id required"})
		return
	}
	if req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed required"})
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("TrackHabit: invalid date",
			zap.String("date", req.Date),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	rec, err := h.tracker.Track(c.Request.Context(), req.HabitID, date, *req.Completed, req.Failed)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("TrackHabit: failed to store tracking record",
			zap.Int("habit_id", req.HabitID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track habit"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *TrackingHandler) GetHabitTracking(c *gin.Context) {
	habitID, err := strconv.Atoi(c.Param("habit_id"))
	if err != nil {
		h.logger.Warn("GetHabitTracking: invalid habit id", zap.String("habit_id", c.Param("habit_id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	var records []model.TrackingRecord
	if yearStr != "" && monthStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		first, last := calendar.MonthRange(year, time.Month(month))
		records, err = h.repo.ListByHabitAndRange(c.Request.Context(), habitID, first, last)
		if err != nil {
			h.logger.Error("GetHabitTracking: failed to list records",
				zap.Int("habit_id", habitID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tracking records"})
			return
		}
	} else {
		records, err = h.repo.ListByHabit(c.Request.Context(), habitID)
		if err != nil {
			h.logger.Error("GetHabitTracking: failed to list records",
				zap.Int("habit_id", habitID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tracking records"})
			return
		}
	}

	if records == nil {
		records = []model.TrackingRecord{}
	}
	c.JSON(http.StatusOK, records)
}
