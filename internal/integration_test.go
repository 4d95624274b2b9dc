package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"council-motions-backend/config"
	"council-motions-backend/internal/api"
	"council-motions-backend/internal/model"
	"council-motions-backend/internal/store"
)

// TestMotionLifecycle walks a finance motion through the whole process
// over the HTTP API: period, meetings, submission, two readings,
// the vote, and the resulting agenda.
func TestMotionLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(
		&model.Period{}, &model.Meeting{}, &model.Motion{}, &model.SubMotion{},
		&model.Reading{}, &model.AgendaLabel{}, &model.PushSubscription{},
	))

	appStore := store.NewGormStore(testDB)
	serverCfg := config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	router := api.NewRouter(&serverCfg, appStore, nil, nil, nil)

	do := func(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
		t.Helper()
		var reader *bytes.Buffer
		if body != nil {
			raw, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(raw)
		} else {
			reader = bytes.NewBuffer(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var decoded map[string]any
		if len(w.Body.Bytes()) > 0 {
			json.Unmarshal(w.Body.Bytes(), &decoded)
		}
		return w, decoded
	}

	// --- Seed the period ---
	w, _ := do(http.MethodPost, "/api/periods", gin.H{
		"number":     14,
		"start_date": time.Now().AddDate(-1, 0, 0).Format("2006-01-02"),
		"end_date":   time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Submitting a motion before any period exists is a 409; now that
	// one is seeded it works.
	w, motion := do(http.MethodPost, "/api/motions", gin.H{
		"title":        "New chairs for the common room",
		"text":         "The council purchases twelve chairs.",
		"requesters":   "The facilities working group",
		"type":         "finance",
		"amount":       "250.00",
		"budget_line":  "HH-7",
		"min_readings": 2,
		"formal_submitted_at": time.Now().Add(-72 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	motionID := motion["id"].(string)
	assert.Equal(t, float64(1), motion["seq"])
	assert.Equal(t, "in_deliberation", motion["status"])

	// A finance motion without an amount is refused with the field map.
	w, errBody := do(http.MethodPost, "/api/motions", gin.H{
		"title": "Broken finance motion",
		"text":  "x",
		"type":  "finance",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fieldErrs := errBody["errors"].(map[string]any)
	assert.Contains(t, fieldErrs, "amount")
	assert.Contains(t, fieldErrs, "budget_line")

	// --- Meetings: one already over, one currently running ---
	w, firstMeeting := do(http.MethodPost, "/api/meetings", gin.H{
		"start":    time.Now().Add(-48 * time.Hour).Format(time.RFC3339),
		"end":      time.Now().Add(-47 * time.Hour).Format(time.RFC3339),
		"location": "Council hall",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	firstMeetingID := firstMeeting["id"].(string)

	w, secondMeeting := do(http.MethodPost, "/api/meetings", gin.H{
		"start":    time.Now().Add(-time.Hour).Format(time.RFC3339),
		"location": "Council hall",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	secondMeetingID := secondMeeting["id"].(string)
	assert.Equal(t, float64(2), secondMeeting["seq"])

	// --- First reading: concluded as read, not yet votable ---
	w, firstReading := do(http.MethodPost, "/api/readings", gin.H{
		"motion_id":  motionID,
		"meeting_id": firstMeetingID,
		"status":     "read",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, false, firstReading["votable"])
	assert.Equal(t, float64(1), firstReading["ordinal"])
	assert.Equal(t, float64(500), firstReading["priority"], "finance default")

	// --- Second reading: one successful reading behind it, votable ---
	w, secondReading := do(http.MethodPost, "/api/readings", gin.H{
		"motion_id":  motionID,
		"meeting_id": secondMeetingID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, secondReading["votable"])
	assert.Equal(t, float64(2), secondReading["ordinal"])
	secondReadingID := secondReading["id"].(string)

	// --- Agenda of the running meeting, with a named finance block ---
	w, _ = do(http.MethodPut, "/api/meetings/"+secondMeetingID+"/agenda-labels", map[string]string{
		"500": "Finance motions",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/meetings/"+secondMeetingID+"/agenda", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var blocks []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Equal(t, "Finance motions", blocks[0]["title"])
	assert.Equal(t, float64(500), blocks[0]["priority"])

	// --- The vote decides the motion ---
	w, decided := do(http.MethodPost, "/api/readings/"+secondReadingID+"/vote", gin.H{
		"accepted": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "accepted", decided["status"])

	// Decided means decided: a second vote attempt conflicts.
	w, _ = do(http.MethodPost, "/api/readings/"+secondReadingID+"/vote", gin.H{
		"accepted": false,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// And amendments can no longer be filed.
	w, _ = do(http.MethodPost, fmt.Sprintf("/api/motions/%s/submotions", motionID), gin.H{
		"title": "Cheaper chairs",
		"text":  "Only six chairs.",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The composite number still resolves the decided motion.
	req = httptest.NewRequest(http.MethodGet, "/api/periods/14/motions/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var byNumber map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &byNumber))
	assert.Equal(t, motionID, byNumber["id"])
	assert.Equal(t, "accepted", byNumber["status"])
}
