package http

import (
	"net/http"
	"time"

	"github.com/fitsphere/fitsphere-api/internal/application/command"
	"github.com/fitsphere/fitsphere-api/internal/application/query"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/goal"
	"github.com/fitsphere/fitsphere-api/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "FitSphere API",
		"version":     "v1",
		"description": "REST API for FitSphere - fitness goals, progress and achievements",
		"endpoints": map[string]string{
			"health":        "/health",
			"auth":          "/api/v1/auth",
			"goals":         "/api/v1/goals",
			"public_goals":  "/api/v1/goals/public",
			"achievements":  "/api/v1/achievements",
			"notifications": "/api/v1/notifications",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// AUTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"access_token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email.String(),
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// handleRegister handles POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.RegisterUser.Handle(r.Context(), command.RegisterUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// handleLogin handles POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.Authenticate.Handle(r.Context(), command.AuthenticateCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:      toUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// GOAL HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type createGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	TargetValue *float64   `json:"target_value"`
	StartDate   time.Time  `json:"start_date"`
	Deadline    *time.Time `json:"deadline"`
	IsPublic    bool       `json:"is_public"`
}

type updateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	TargetValue *float64   `json:"target_value"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
	IsPublic    *bool      `json:"is_public"`
}

type goalResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	TargetValue *float64   `json:"target_value,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toGoalResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:          g.ID,
		OwnerID:     g.OwnerID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		TargetValue: g.TargetValue,
		StartDate:   g.StartDate,
		Deadline:    g.Deadline,
		Status:      string(g.Status),
		IsPublic:    g.IsPublic,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// handleCreateGoal handles POST /api/v1/goals
func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.CreateGoal.Handle(r.Context(), command.CreateGoalCommand{
		OwnerID:     userID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetValue: req.TargetValue,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(result.Goal))
}

// handleListGoals handles GET /api/v1/goals
func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListGoals.Handle(r.Context(), query.ListGoalsQuery{
		OwnerID:   userID(r.Context()),
		Status:    getQueryParam(r, "status", ""),
		Category:  getQueryParam(r, "category", ""),
		Search:    getQueryParam(r, "search", ""),
		SortBy:    getQueryParam(r, "sort_by", ""),
		SortOrder: getQueryParam(r, "sort_order", ""),
		Offset:    getQueryParamInt(r, "offset", 0),
		Limit:     getQueryParamInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListPublicGoals handles GET /api/v1/goals/public
func (s *Server) handleListPublicGoals(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListPublicGoals.Handle(r.Context(), query.ListPublicGoalsQuery{
		Category: getQueryParam(r, "category", ""),
		Search:   getQueryParam(r, "search", ""),
		Offset:   getQueryParamInt(r, "offset", 0),
		Limit:    getQueryParamInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetGoal handles GET /api/v1/goals/{id}
func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	dto, err := s.deps.GetGoalDetail.Handle(r.Context(), query.GetGoalDetailQuery{
		GoalID: r.PathValue("id"),
		UserID: userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// handleUpdateGoal handles PUT /api/v1/goals/{id}
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req updateGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.UpdateGoal.Handle(r.Context(), command.UpdateGoalCommand{
		GoalID:      r.PathValue("id"),
		UserID:      userID(r.Context()),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Status:      req.Status,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGoalResponse(result.Goal))
}

// handleDeleteGoal handles DELETE /api/v1/goals/{id}
func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteGoal.Handle(r.Context(), command.DeleteGoalCommand{
		GoalID: r.PathValue("id"),
		UserID: userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAssessGoal handles GET /api/v1/goals/{id}/assessment
func (s *Server) handleAssessGoal(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.deps.AssessGoal.Handle(r.Context(), query.AssessGoalQuery{
		GoalID: r.PathValue("id"),
		UserID: userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// handlePredictCompletion handles GET /api/v1/goals/{id}/prediction
func (s *Server) handlePredictCompletion(w http.ResponseWriter, r *http.Request) {
	prediction, err := s.deps.PredictCompletion.Handle(r.Context(), query.PredictCompletionQuery{
		GoalID: r.PathValue("id"),
		UserID: userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type recordProgressRequest struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Note  string    `json:"note"`
}

type updateProgressRequest struct {
	Date  *time.Time `json:"date"`
	Value *float64   `json:"value"`
	Note  *string    `json:"note"`
}

type entryResponse struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type achievementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BadgeID     string    `json:"badge_id,omitempty"`
	AchievedAt  time.Time `json:"achieved_at"`
}

type recordProgressResponse struct {
	Entry             entryResponse         `json:"entry"`
	GoalTitle         string                `json:"goal_title"`
	TargetValue       *float64              `json:"target_value,omitempty"`
	CompletionPercent float64               `json:"completion_percentage"`
	GoalCompleted     bool                  `json:"goal_completed"`
	Unlocked          []achievementResponse `json:"unlocked_achievements,omitempty"`
}

func toEntryResponse(e *goal.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		GoalID:    e.GoalID,
		Date:      e.Date,
		Value:     e.Value,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toAchievementResponses(minted []*achievement.Achievement) []achievementResponse {
	if len(minted) == 0 {
		return nil
	}
	out := make([]achievementResponse, 0, len(minted))
	for _, a := range minted {
		out = append(out, achievementResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			BadgeID:     a.BadgeID,
			AchievedAt:  a.AchievedAt,
		})
	}
	return out
}

// handleRecordProgress handles POST /api/v1/goals/{id}/progress
func (s *Server) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	var req recordProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.RecordProgress.Handle(r.Context(), command.RecordProgressCommand{
		GoalID: r.PathValue("id"),
		UserID: userID(r.Context()),
		Date:   req.Date,
		Value:  req.Value,
		Note:   req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordProgressResponse{
		Entry:             toEntryResponse(result.Entry),
		GoalTitle:         result.GoalTitle,
		TargetValue:       result.TargetValue,
		CompletionPercent: result.CompletionPercent,
		GoalCompleted:     result.GoalCompleted,
		Unlocked:          toAchievementResponses(result.Minted),
	})
}

// handleListProgress handles GET /api/v1/goals/{id}/progress
func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListProgress.Handle(r.Context(), query.ListProgressQuery{
		GoalID:    r.PathValue("id"),
		UserID:    userID(r.Context()),
		SortOrder: getQueryParam(r, "sort_order", ""),
		Offset:    getQueryParamInt(r, "offset", 0),
		Limit:     getQueryParamInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetProgress handles GET /api/v1/progress/{id}
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	dto, err := s.deps.GetProgressDetail.Handle(r.Context(), query.GetProgressDetailQuery{
		EntryID: r.PathValue("id"),
		UserID:  userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// handleUpdateProgress handles PUT /api/v1/progress/{id}
func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req updateProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}

	result, err := s.deps.UpdateProgress.Handle(r.Context(), command.UpdateProgressCommand{
		EntryID: r.PathValue("id"),
		UserID:  userID(r.Context()),
		Date:    req.Date,
		Value:   req.Value,
		Note:    req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordProgressResponse{
		Entry:             toEntryResponse(result.Entry),
		GoalTitle:         result.GoalTitle,
		TargetValue:       result.TargetValue,
		CompletionPercent: result.CompletionPercent,
		GoalCompleted:     result.GoalCompleted,
		Unlocked:          toAchievementResponses(result.Minted),
	})
}

// handleDeleteProgress handles DELETE /api/v1/progress/{id}
func (s *Server) handleDeleteProgress(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteProgress.Handle(r.Context(), command.DeleteProgressCommand{
		EntryID: r.PathValue("id"),
		UserID:  userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT & NOTIFICATION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleListAchievements handles GET /api/v1/achievements
func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListAchievements.Handle(r.Context(), query.ListAchievementsQuery{
		OwnerID: userID(r.Context()),
		Offset:  getQueryParamInt(r, "offset", 0),
		Limit:   getQueryParamInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetAchievement handles GET /api/v1/achievements/{id}
func (s *Server) handleGetAchievement(w http.ResponseWriter, r *http.Request) {
	dto, err := s.deps.GetAchievement.Handle(r.Context(), query.GetAchievementQuery{
		AchievementID: r.PathValue("id"),
		UserID:        userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// handleListNotifications handles GET /api/v1/notifications
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListNotifications.Handle(r.Context(), query.ListNotificationsQuery{
		UserID:     userID(r.Context()),
		Type:       getQueryParam(r, "type", ""),
		UnreadOnly: getQueryParamBool(r, "unread_only"),
		Offset:     getQueryParamInt(r, "offset", 0),
		Limit:      getQueryParamInt(r, "limit", 10),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleMarkNotificationRead handles POST /api/v1/notifications/{id}/read
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Notifications.MarkRead(r.Context(), command.MarkNotificationReadCommand{
		NotificationID: r.PathValue("id"),
		UserID:         userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// handleDeleteNotification handles DELETE /api/v1/notifications/{id}
func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Notifications.Delete(r.Context(), command.DeleteNotificationCommand{
		NotificationID: r.PathValue("id"),
		UserID:         userID(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
