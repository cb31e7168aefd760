package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/yuqie6/onepercent/internal/bootstrap"
	"github.com/yuqie6/onepercent/internal/dto"
	"github.com/yuqie6/onepercent/internal/eventbus"
	"github.com/yuqie6/onepercent/internal/repository"
	"github.com/yuqie6/onepercent/internal/schema"
	"github.com/yuqie6/onepercent/internal/service"
)

type apiServer struct {
	core      *bootstrap.Core
	hub       *eventbus.Hub
	startTime time.Time
}

func newAPI(core *bootstrap.Core, hub *eventbus.Hub) *apiServer {
	return &apiServer{
		core:      core,
		hub:       hub,
		startTime: time.Now(),
	}
}

func (a *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":               !a.core.DB.SafeMode,
		"name":             a.core.Cfg.App.Name,
		"version":          a.core.Cfg.App.Version,
		"started_at":       a.startTime.Format(time.RFC3339),
		"uptime_sec":       int64(time.Since(a.startTime).Seconds()),
		"schema_version":   a.core.DB.SchemaVersion,
		"safe_mode":        a.core.DB.SafeMode,
		"safe_mode_reason": a.core.DB.MigrationError,
	})
}

func (a *apiServer) registerJSONRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/users", a.wrapGET(a.listUsers))
	mux.HandleFunc("/api/users/by-name", a.wrapGET(a.getUserByName))

	mux.HandleFunc("/api/login", a.wrapPOST(a.recordLogin))
	mux.HandleFunc("/api/streak", a.wrapGET(a.getStreak))

	mux.HandleFunc("/api/scores", a.wrapPOST(a.recordScore))
	mux.HandleFunc("/api/scores/today", a.wrapGET(a.getTodayScores))
	mux.HandleFunc("/api/scores/history", a.wrapGET(a.getScoreHistory))
	mux.HandleFunc("/api/scores/summary", a.wrapGET(a.getTodaySummary))

	mux.HandleFunc("/api/reading", a.wrapPOST(a.recordReading))
	mux.HandleFunc("/api/reading/history", a.wrapGET(a.getReadingHistory))

	mux.HandleFunc("/api/daily-question", a.wrapAny(a.dailyQuestion))
}

func (a *apiServer) wrapGET(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func (a *apiServer) wrapPOST(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func (a *apiServer) wrapAny(fn func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { fn(w, r) }
}

func opCtx(r *http.Request) (context.Context, context.CancelFunc) {
	// 核心操作都是单行/小窗口读写，5 秒足够
	return context.WithTimeout(r.Context(), 5*time.Second)
}

// ========== users ==========

func toUserDTO(u schema.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (a *apiServer) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := opCtx(r)
	defer cancel()

	users, err := a.core.Repos.User.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, toUserDTO(u))
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *apiServer) getUserByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name 不能为空")
		return
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	user, err := a.core.Repos.User.GetByName(ctx, name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "用户不存在")
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// ========== login / streak ==========

func (a *apiServer) recordLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64  `json:"user_id"`
		Date   string `json:"date"` // 可选，缺省取服务端当前日历日
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id 不能为空")
		return
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	if err := a.core.Services.Progress.RecordLogin(ctx, req.UserID, req.Date); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *apiServer) getStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	windowDays := queryIntDefault(r, "days", 30)

	ctx, cancel := opCtx(r)
	defer cancel()

	streak, err := a.core.Services.Progress.CurrentStreak(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := a.core.Services.Progress.TotalLoginDays(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	calendar, err := a.core.Services.Progress.LoginCalendar(ctx, userID, windowDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StreakDTO{
		UserID:     userID,
		Streak:     streak,
		TotalDays:  total,
		Calendar:   calendar,
		WindowDays: windowDays,
	})
}

// ========== scores ==========

func toScoreDTO(s schema.ActivityScore) dto.ScoreDTO {
	return dto.ScoreDTO{
		ID:           s.ID,
		UserID:       s.UserID,
		ActivityType: s.ActivityType,
		ActivityName: s.ActivityName,
		Score:        s.Score,
		MaxScore:     s.MaxScore,
		LogDate:      s.LogDate,
		CompletedAt:  s.CompletedAt.Format(time.RFC3339),
		Details:      s.Details,
	}
}

func toScoreDTOs(scores []schema.ActivityScore) []dto.ScoreDTO {
	result := make([]dto.ScoreDTO, 0, len(scores))
	for _, s := range scores {
		result = append(result, toScoreDTO(s))
	}
	return result
}

func (a *apiServer) recordScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID       int64  `json:"user_id"`
		ActivityType string `json:"activity_type"`
		ActivityName string `json:"activity_name"`
		Score        int    `json:"score"`
		MaxScore     int    `json:"max_score"`
		Details      string `json:"details"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.ActivityType == "" || req.ActivityName == "" {
		writeError(w, http.StatusBadRequest, "user_id / activity_type / activity_name 不能为空")
		return
	}
	if req.MaxScore == 0 {
		req.MaxScore = 100
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	err := a.core.Services.Scores.RecordScore(ctx, req.UserID, req.ActivityType, req.ActivityName, req.Score, req.MaxScore, req.Details)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *apiServer) getTodayScores(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	activityType := strings.TrimSpace(r.URL.Query().Get("type"))

	ctx, cancel := opCtx(r)
	defer cancel()

	scores, err := a.core.Services.Scores.TodayScores(ctx, userID, activityType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toScoreDTOs(scores))
}

func (a *apiServer) getScoreHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	activityType := strings.TrimSpace(r.URL.Query().Get("type"))
	windowDays := queryIntDefault(r, "days", 30)

	ctx, cancel := opCtx(r)
	defer cancel()

	scores, err := a.core.Services.Scores.ScoreHistory(ctx, userID, activityType, windowDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toScoreDTOs(scores))
}

func (a *apiServer) getTodaySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	stats, err := a.core.Services.Scores.TodaySummary(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]dto.TypeStatDTO, 0, len(stats))
	for _, s := range stats {
		result = append(result, dto.TypeStatDTO{
			ActivityType: s.ActivityType,
			Count:        s.Count,
			AvgScore:     s.AvgScore,
			BestScore:    s.BestScore,
		})
	}
	writeJSON(w, http.StatusOK, result)
}

// ========== reading ==========

func (a *apiServer) recordReading(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID           int64  `json:"user_id"`
		StoryID          string `json:"story_id"`
		StoryTitle       string `json:"story_title"`
		QuestionsTotal   int    `json:"questions_total"`
		QuestionsCorrect int    `json:"questions_correct"`
		TimeSpentSeconds int    `json:"time_spent_seconds"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 || req.StoryID == "" {
		writeError(w, http.StatusBadRequest, "user_id / story_id 不能为空")
		return
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	err := a.core.Services.Scores.RecordReadingProgress(ctx, req.UserID, req.StoryID, req.StoryTitle, req.QuestionsTotal, req.QuestionsCorrect, req.TimeSpentSeconds)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (a *apiServer) getReadingHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	windowDays := queryIntDefault(r, "days", 30)

	ctx, cancel := opCtx(r)
	defer cancel()

	records, err := a.core.Services.Scores.ReadingHistory(ctx, userID, windowDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := make([]dto.ReadingDTO, 0, len(records))
	for _, rec := range records {
		result = append(result, dto.ReadingDTO{
			ID:               rec.ID,
			UserID:           rec.UserID,
			StoryID:          rec.StoryID,
			StoryTitle:       rec.StoryTitle,
			QuestionsTotal:   rec.QuestionsTotal,
			QuestionsCorrect: rec.QuestionsCorrect,
			Accuracy:         service.ReadingAccuracy(rec),
			TimeSpentSeconds: rec.TimeSpentSeconds,
			LogDate:          rec.LogDate,
			CompletedAt:      rec.CompletedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, result)
}

// ========== daily question cache ==========

func (a *apiServer) dailyQuestion(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.getDailyQuestion(w, r)
	case http.MethodPut, http.MethodPost:
		a.putDailyQuestion(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *apiServer) getDailyQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "user_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = repository.DateOf(time.Now())
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	payload, ok, err := a.core.Services.Question.Get(ctx, userID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		// 未命中是正常结果：当天还没生成过题目
		writeError(w, http.StatusNotFound, "当日无缓存")
		return
	}
	writeJSON(w, http.StatusOK, dto.DailyQuestionDTO{
		UserID:  userID,
		LogDate: date,
		Payload: payload,
	})
}

func (a *apiServer) putDailyQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  int64  `json:"user_id"`
		Date    string `json:"date"`
		Payload string `json:"payload"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id 不能为空")
		return
	}

	ctx, cancel := opCtx(r)
	defer cancel()

	if err := a.core.Services.Question.Put(ctx, req.UserID, req.Date, req.Payload); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
