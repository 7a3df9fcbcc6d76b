package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/services"
	"github.com/furylabs/furycell/storage"
	"github.com/furylabs/furycell/utils"
)

// MissionController manages CRUD, ordering and status transitions for missions.
type MissionController struct {
	store       *storage.Store
	missions    *services.MissionService
	progression *services.Progression
	activity    *services.ActivityLog
	cfg         config.AppConfig
}

// NewMissionController creates a new controller instance.
func NewMissionController(store *storage.Store, missions *services.MissionService, progression *services.Progression, activity *services.ActivityLog, cfg config.AppConfig) *MissionController {
	return &MissionController{
		store:       store,
		missions:    missions,
		progression: progression,
		activity:    activity,
		cfg:         cfg,
	}
}

type missionRequest struct {
	Title    string `json:"title"`
	TagName  string `json:"tag_name"`
	TagColor string `json:"tag_color"`
}

func (r missionRequest) tag() *models.Tag {
	if r.TagName == "" || r.TagColor == "" {
		return nil
	}
	return &models.Tag{Name: r.TagName, Color: r.TagColor}
}

// ListMissions returns all missions in user-defined order, optionally
// filtered by status.
func (m *MissionController) ListMissions(ctx *gin.Context) {
	missions, status := m.store.LoadMissions()

	filter := ctx.Query("status")
	if filter != "" {
		if !models.IsValidStatus(filter) {
			utils.Error(ctx, http.StatusBadRequest, 40003, "invalid status filter")
			return
		}
		filtered := []models.Mission{}
		for _, mission := range missions {
			if mission.Status == filter {
				filtered = append(filtered, mission)
			}
		}
		missions = filtered
	}

	utils.Success(ctx, gin.H{
		"items":     missions,
		"recovered": status == storage.LoadedRecovered,
	})
}

// CreateMission validates the title, appends the new mission and awards
// creation experience.
func (m *MissionController) CreateMission(ctx *gin.Context) {
	var req missionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	mission, err := m.missions.Create(req.Title, req.tag())
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, err.Error())
		return
	}

	missions, _ := m.store.LoadMissions()
	missions = append(missions, mission)
	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to save mission")
		return
	}

	m.activity.Append("Created mission", mission.Title)
	level, leveledUp, err := m.progression.AwardXP(m.cfg.CreateXP)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update profile")
		return
	}

	msg := fmt.Sprintf("Mission created (+%d XP)!", m.cfg.CreateXP)
	if leveledUp {
		msg += fmt.Sprintf(" LEVEL UP! Level %d!", level)
	}
	utils.Info(ctx, msg, gin.H{"mission": mission})
}

// UpdateMission edits a mission's title and tag.
func (m *MissionController) UpdateMission(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	var req missionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	title, err := m.missions.ValidateTitle(req.Title)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, err.Error())
		return
	}

	oldTitle := missions[i].Title
	missions[i].Title = title
	missions[i].Tag = req.tag()

	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to save changes")
		return
	}

	m.activity.Append("Edited mission", fmt.Sprintf("%s -> %s", oldTitle, title))
	utils.Info(ctx, "Mission updated!", gin.H{"mission": missions[i]})
}

// DeleteMission removes a mission by position.
func (m *MissionController) DeleteMission(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	title := missions[i].Title
	missions = append(missions[:i], missions[i+1:]...)

	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to delete mission")
		return
	}

	m.activity.Append("Deleted mission", title)
	utils.Info(ctx, "Mission deleted", nil)
}

// StartMission moves a mission to in_progress. Completed missions cannot be
// reopened.
func (m *MissionController) StartMission(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	if missions[i].Status == models.StatusCompleted {
		utils.Error(ctx, http.StatusBadRequest, 40004, "mission already completed")
		return
	}

	missions[i].Status = models.StatusInProgress
	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to update mission")
		return
	}

	m.activity.Append("Started mission", missions[i].Title)
	utils.Info(ctx, "Mission started!", gin.H{"mission": missions[i]})
}

// CompleteMission marks a mission completed and awards experience, coins and
// the daily streak. Completing an already-completed mission is an
// informational no-op.
func (m *MissionController) CompleteMission(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	if missions[i].Status == models.StatusCompleted {
		utils.Info(ctx, "Mission already completed", gin.H{"mission": missions[i]})
		return
	}

	missions[i].Status = models.StatusCompleted
	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to update mission")
		return
	}

	m.activity.Append("Completed mission", missions[i].Title)

	level, leveledUp, err := m.progression.AwardXP(m.cfg.CompleteXP)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update profile")
		return
	}
	if err := m.progression.AwardCoins(m.cfg.CompleteCoins); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update profile")
		return
	}
	streak, err := m.progression.MarkCompletion(time.Now())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update profile")
		return
	}

	msg := fmt.Sprintf("Mission completed (+%d XP, +%d coins)!", m.cfg.CompleteXP, m.cfg.CompleteCoins)
	if leveledUp {
		msg += fmt.Sprintf(" LEVEL UP! Level %d!", level)
	}
	utils.Info(ctx, msg, gin.H{"mission": missions[i], "streak": streak})
}

// RegisterProgress appends a timestamped progress record without completing
// the mission.
func (m *MissionController) RegisterProgress(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	missions[i].Records = append(missions[i].Records, models.ProgressEntry{
		Date: time.Now().Format(time.RFC3339),
	})

	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to register progress")
		return
	}

	m.activity.Append("Registered progress", missions[i].Title)
	level, leveledUp, err := m.progression.AwardXP(m.cfg.ProgressXP)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to update profile")
		return
	}

	msg := fmt.Sprintf("Progress registered! (+%d XP) Total: %dx", m.cfg.ProgressXP, len(missions[i].Records))
	if leveledUp {
		msg += fmt.Sprintf(" LEVEL UP! Level %d!", level)
	}
	utils.Info(ctx, msg, gin.H{"mission": missions[i]})
}

// MoveMission swaps a mission with its neighbor. The slice order is the
// user-visible sort order.
func (m *MissionController) MoveMission(ctx *gin.Context) {
	missions, i, ok := m.missionAt(ctx)
	if !ok {
		return
	}

	switch ctx.Param("direction") {
	case "up":
		if i == 0 {
			utils.Error(ctx, http.StatusBadRequest, 40005, "cannot move in that direction")
			return
		}
		missions[i], missions[i-1] = missions[i-1], missions[i]
	case "down":
		if i == len(missions)-1 {
			utils.Error(ctx, http.StatusBadRequest, 40005, "cannot move in that direction")
			return
		}
		missions[i], missions[i+1] = missions[i+1], missions[i]
	default:
		utils.Error(ctx, http.StatusBadRequest, 40005, "cannot move in that direction")
		return
	}

	if err := m.store.SaveMissions(missions); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to reorder missions")
		return
	}
	utils.Success(ctx, gin.H{"items": missions})
}

// missionAt parses the :index param and loads the collection. On failure it
// writes the error response and returns ok=false.
func (m *MissionController) missionAt(ctx *gin.Context) ([]models.Mission, int, bool) {
	i, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid mission index")
		return nil, 0, false
	}

	missions, _ := m.store.LoadMissions()
	if i < 0 || i >= len(missions) {
		utils.Error(ctx, http.StatusNotFound, 40401, "mission not found")
		return nil, 0, false
	}
	return missions, i, true
}
