package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habit-tracker-service/internal/model"
	"habit-tracker-service/internal/repository"
	"habit-tracker-service/internal/service/dashboard"
)

type HabitHandler struct {
	repo   *repository.HabitRepository
	cache  *dashboard.Cache
	logger *zap.Logger
}

func NewHabitHandler(repo *repository.HabitRepository, cache *dashboard.Cache, logger *zap.Logger) *HabitHandler {
	return &HabitHandler{repo: repo, cache: cache, logger: logger}
}

type habitCreateRequest struct {
	Name  string `json:"name"`
	Goal  int    `json:"goal"`
	Color string `json:"color"`
}

type habitUpdateRequest struct {
	Name       *string `json:"name"`
	Goal       *int    `json:"goal"`
	Color      *string `json:"color"`
	OrderIndex *int    `json:"order_index"`
	IsActive   *bool   `json:"is_active"`
}

func (h *HabitHandler) ListHabits(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") == "true"

	var (
		habits []model.Habit
		err    error
	)
	if activeOnly {
		habits, err = h.repo.ListActive(c.Request.Context())
	} else {
		habits, err = h.repo.List(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("ListHabits: failed to fetch habits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch habits"})
		return
	}

	if habits == nil {
		habits = []model.Habit{}
	}
	c.JSON(http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req habitCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("CreateHabit: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Name == "" {
		h.logger.Warn("CreateHabit: name is required")
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.Goal == 0 {
		req.Goal = 30
	}
	if req.Goal < 0 {
		h.logger.Warn("CreateHabit: goal must be positive", zap.Int("goal", req.Goal))
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be a positive integer"})
		return
	}
	if req.Color == "" {
		req.Color = "#00ff00"
	}

	// New habits go to the end of the ordering.
	count, err := h.repo.CountAll(c.Request.Context())
	if err != nil {
		h.logger.Error("CreateHabit: failed to count habits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create habit"})
		return
	}

	habit := &model.Habit{
		Name:       req.Name,
		Goal:       req.Goal,
		Color:      req.Color,
		OrderIndex: count,
		IsActive:   true,
	}
	if _, err := h.repo.Insert(c.Request.Context(), habit); err != nil {
		h.logger.Error("CreateHabit: failed to insert habit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create habit"})
		return
	}

	h.invalidateCurrentMonth(c)
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.logger.Warn("UpdateHabit: invalid habit id", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	var req habitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("UpdateHabit: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Name != nil && *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	if req.Goal != nil && *req.Goal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal must be a positive integer"})
		return
	}

	habit, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("UpdateHabit: failed to fetch habit", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update habit"})
		return
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Goal != nil {
		habit.Goal = *req.Goal
	}
	if req.Color != nil {
		habit.Color = *req.Color
	}
	if req.OrderIndex != nil {
		habit.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		habit.IsActive = *req.IsActive
	}

	if err := h.repo.Update(c.Request.Context(), habit); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("UpdateHabit: failed to update habit", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update habit"})
		return
	}

	h.invalidateCurrentMonth(c)
	c.JSON(http.StatusOK, habit)
}

// DeleteHabit soft-deactivates; tracking history is kept.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.logger.Warn("DeleteHabit: invalid habit id", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid habit id"})
		return
	}

	if err := h.repo.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("DeleteHabit: failed to deactivate habit", zap.Int("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete habit"})
		return
	}

	h.invalidateCurrentMonth(c)
	c.JSON(http.StatusOK, gin.H{"message": "habit deactivated"})
}

func (h *HabitHandler) invalidateCurrentMonth(c *gin.Context) {
	now := time.Now()
	h.cache.InvalidateMonth(c.Request.Context(), now.Year(), now.Month())
}
