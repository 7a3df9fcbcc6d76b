package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/services"
	"github.com/furylabs/furycell/storage"
)

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		TitleMinLength:    3,
		TitleMaxLength:    255,
		MaxHistoryEntries: 1000,
		CreateXP:          10,
		ProgressXP:        5,
		CompleteXP:        50,
		CompleteCoins:     5,
		LevelUpCoins:      10,
		FocusPotionXP:     100,
		MysteryBoxPrize:   200,
	}
}

// newTestRouter builds the API surface over a throwaway store, without the
// file logger or rate limiter.
func newTestRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store := storage.NewStore(
		filepath.Join(dir, "missions.json"),
		filepath.Join(dir, "history.json"),
		filepath.Join(dir, "profile.json"),
		nil,
	)

	cfg := testConfig()
	progression := services.NewProgression(store, cfg)
	missionSvc := services.NewMissionService(cfg)
	activity := services.NewActivityLog(store, cfg.MaxHistoryEntries, nil)
	tagSvc := services.NewTagService(store, progression)

	missionController := NewMissionController(store, missionSvc, progression, activity, cfg)
	profileController := NewProfileController(store, progression, tagSvc, activity)
	statsController := NewStatsController(store)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/missions", missionController.ListMissions)
	api.GET("/stats", statsController.GetStats)
	api.GET("/history", profileController.GetHistory)
	api.GET("/profile", profileController.GetProfile)
	api.POST("/missions", missionController.CreateMission)
	api.PUT("/missions/:index", missionController.UpdateMission)
	api.DELETE("/missions/:index", missionController.DeleteMission)
	api.POST("/missions/:index/start", missionController.StartMission)
	api.POST("/missions/:index/complete", missionController.CompleteMission)
	api.POST("/missions/:index/progress", missionController.RegisterProgress)
	api.POST("/missions/:index/move/:direction", missionController.MoveMission)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateMissionFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{
		"title": "Write the report", "tag_name": "work", "tag_color": "#ff0000",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Contains(t, resp.Message, "+10 XP")

	// The mission shows up in the list with its tag attached.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/missions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Items []struct {
			Title  string `json:"title"`
			Status string `json:"status"`
			Tag    *struct {
				Name string `json:"name"`
			} `json:"tag"`
		} `json:"items"`
		Recovered bool `json:"recovered"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Write the report", data.Items[0].Title)
	assert.Equal(t, "open", data.Items[0].Status)
	require.NotNil(t, data.Items[0].Tag)
	assert.Equal(t, "work", data.Items[0].Tag.Name)
	assert.False(t, data.Recovered)

	// Creation was logged.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var history struct {
		Items []struct {
			Action string `json:"action"`
			Detail string `json:"detail"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	require.NotEmpty(t, history.Items)
	assert.Equal(t, "Created mission", history.Items[0].Action)
	assert.Equal(t, "Write the report", history.Items[0].Detail)
}

func TestCreateMissionRejectsShortTitle(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40002, resp.Code)
}

func TestCompleteMissionAwardsAndDedupes(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "Finish me"})

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions/0/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Message, "+50 XP")
	assert.Contains(t, resp.Message, "+5 coins")

	var completion struct {
		Streak int `json:"streak"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &completion))
	assert.Equal(t, 1, completion.Streak)

	// Completing again is an informational no-op, not an error.
	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/missions/0/complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)
	assert.Contains(t, resp.Message, "already completed")

	// Profile reflects a single award: 10 (create) + 50 (complete) XP, 5 coins.
	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Profile struct {
			Level  int `json:"level"`
			XP     int `json:"xp"`
			Coins  int `json:"coins"`
			Streak int `json:"streak"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, 1, data.Profile.Level)
	assert.Equal(t, 60, data.Profile.XP)
	assert.Equal(t, 5, data.Profile.Coins)
	assert.Equal(t, 1, data.Profile.Streak)
}

func TestStartCompletedMissionFails(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "One shot"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions/0/complete", nil)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions/0/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40004, resp.Code)
}

func TestRegisterProgressCountsRecords(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "Long haul"})

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions/0/progress", nil)
	assert.Contains(t, resp.Message, "Total: 1x")

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/missions/0/progress", nil)
	assert.Contains(t, resp.Message, "Total: 2x")
}

func TestMoveMissionBounds(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "First one"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "Second one"})

	// Top of the list cannot move up.
	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions/0/move/up", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40005, resp.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/missions/1/move/up", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Items, 2)
	assert.Equal(t, "Second one", data.Items[0].Title)
	assert.Equal(t, "First one", data.Items[1].Title)
}

func TestMissionIndexOutOfRange(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/missions/5/start", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, resp.Code)

	w, resp = doJSON(t, r, http.MethodPost, "/api/v1/missions/nope/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40006, resp.Code)
}

func TestListMissionsStatusFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "Stays open"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": "Gets done"})
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions/1/complete", nil)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/missions?status=completed", nil)
	var data struct {
		Items []struct {
			Title string `json:"title"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Gets done", data.Items[0].Title)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/missions?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40003, resp.Code)
}

func TestStatsPercentRounding(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, title := range []string{"Task one", "Task two", "Task three"} {
		_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions", gin.H{"title": title})
	}
	_, _ = doJSON(t, r, http.MethodPost, "/api/v1/missions/0/complete", nil)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/stats", nil)
	var stats struct {
		Total     int     `json:"total"`
		Completed int     `json:"completed"`
		Open      int     `json:"open"`
		Percent   float64 `json:"percent"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 33.3, stats.Percent)
}
