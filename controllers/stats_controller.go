package controllers

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/storage"
	"github.com/furylabs/furycell/utils"
)

// StatsController serves the dashboard metrics.
type StatsController struct {
	store *storage.Store
}

// NewStatsController creates a new controller instance.
func NewStatsController(store *storage.Store) *StatsController {
	return &StatsController{store: store}
}

// GetStats returns mission totals and the completion percentage.
func (s *StatsController) GetStats(ctx *gin.Context) {
	missions, _ := s.store.LoadMissions()

	total := len(missions)
	completed := 0
	for _, m := range missions {
		if m.Status == models.StatusCompleted {
			completed++
		}
	}

	percent := 0.0
	if total > 0 {
		percent = math.Round(float64(completed)/float64(total)*1000) / 10
	}

	utils.Success(ctx, gin.H{
		"total":     total,
		"completed": completed,
		"open":      total - completed,
		"percent":   percent,
	})
}
