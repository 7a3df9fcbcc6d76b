package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furylabs/furycell/models"
	"github.com/furylabs/furycell/services"
	"github.com/furylabs/furycell/storage"
	"github.com/furylabs/furycell/utils"
)

// ProfileController serves the profile, tag management, the activity history
// and the three reset endpoints of differing destructiveness.
type ProfileController struct {
	store       *storage.Store
	progression *services.Progression
	tags        *services.TagService
	activity    *services.ActivityLog
}

// NewProfileController creates a new controller instance.
func NewProfileController(store *storage.Store, progression *services.Progression, tags *services.TagService, activity *services.ActivityLog) *ProfileController {
	return &ProfileController{
		store:       store,
		progression: progression,
		tags:        tags,
		activity:    activity,
	}
}

// GetProfile returns the profile, bootstrapping it on first access.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	profile, err := p.progression.EnsureProfile()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load profile")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

// GetHistory returns the activity log, newest first.
func (p *ProfileController) GetHistory(ctx *gin.Context) {
	entries, _ := p.store.LoadHistory()
	utils.Success(ctx, gin.H{"items": entries})
}

// CreateTag adds a tag to the profile.
func (p *ProfileController) CreateTag(ctx *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	if req.Color == "" {
		req.Color = "#000000"
	}

	if err := p.tags.Create(req.Name, req.Color); err != nil {
		switch {
		case errors.Is(err, services.ErrTagNameRequired):
			utils.Error(ctx, http.StatusBadRequest, 40007, "tag name is required")
		case errors.Is(err, services.ErrTagExists):
			utils.Error(ctx, http.StatusBadRequest, 40008, "tag already exists")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to save tag")
		}
		return
	}

	utils.Info(ctx, fmt.Sprintf("Tag %q created!", req.Name), nil)
}

// DeleteTag removes a tag from the profile and cascades the removal to every
// mission embedding it.
func (p *ProfileController) DeleteTag(ctx *gin.Context) {
	name := ctx.Param("name")

	affected, err := p.tags.Delete(name)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "tag not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to delete tag")
		return
	}

	msg := fmt.Sprintf("Tag %q removed.", name)
	if affected > 0 {
		msg = fmt.Sprintf("Tag %q removed from %d mission(s).", name, affected)
	}
	utils.Info(ctx, msg, gin.H{"missions_affected": affected})
}

// DeleteAllTags clears the profile's tag set.
func (p *ProfileController) DeleteAllTags(ctx *gin.Context) {
	count, err := p.tags.DeleteAll()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to delete tags")
		return
	}
	utils.Info(ctx, fmt.Sprintf("%d tag(s) deleted.", count), nil)
}

// ResetProgress resets level, XP and coins only.
func (p *ProfileController) ResetProgress(ctx *gin.Context) {
	if err := p.progression.ResetProgress(); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to reset progress")
		return
	}
	p.activity.Append("Reset progress", "Level, XP and coins")
	utils.Info(ctx, "Progress reset! You are back to level 1.", nil)
}

// ResetData clears missions and history but keeps the profile.
func (p *ProfileController) ResetData(ctx *gin.Context) {
	if err := p.store.SaveMissions([]models.Mission{}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to reset missions")
		return
	}
	if err := p.store.SaveHistory([]models.LogEntry{}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to reset history")
		return
	}
	p.activity.Append("Reset missions and history", "Progress kept")
	utils.Info(ctx, "Missions and history deleted! Your progress was kept.", nil)
}

// ResetAll wipes missions, history and the profile, then re-bootstraps the
// profile to its defaults.
func (p *ProfileController) ResetAll(ctx *gin.Context) {
	if err := p.store.SaveMissions([]models.Mission{}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to reset missions")
		return
	}
	if err := p.store.SaveHistory([]models.LogEntry{}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to reset history")
		return
	}
	if err := p.store.DeleteProfile(); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to reset profile")
		return
	}
	profile, err := p.progression.EnsureProfile()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to reinitialize profile")
		return
	}
	utils.Info(ctx, "Everything was deleted! Starting from scratch.", gin.H{"profile": profile})
}
