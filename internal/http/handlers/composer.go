package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/http/response"
	"github.com/yungbote/coachplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/coachplan-backend/internal/services"
)

// ComposerHandler exposes the coach's plan-editing session over HTTP. All
// routes sit behind the coach-role guard.
type ComposerHandler struct {
	composerService services.ComposerService
}

func NewComposerHandler(composerService services.ComposerService) *ComposerHandler {
	return &ComposerHandler{composerService: composerService}
}

func (ch *ComposerHandler) session(c *gin.Context) (*services.Composer, bool) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return nil, false
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return nil, false
	}
	composer, err := ch.composerService.Session(c.Request.Context(), rd.UserID, studentID)
	if err != nil {
		response.RespondFromError(c, err)
		return nil, false
	}
	return composer, true
}

// GET /composer/:id
func (ch *ComposerHandler) GetSession(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	response.RespondOK(c, gin.H{"session": composer.Snapshot()})
}

// POST /composer/:id/weekday
func (ch *ComposerHandler) SelectWeekday(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	var req struct {
		Weekday string `json:"weekday"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	weekday, err := plan.ParseWeekday(req.Weekday)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_weekday", err)
		return
	}
	if err := composer.SelectWeekday(c.Request.Context(), weekday); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": composer.Snapshot()})
}

// POST /composer/:id/exercises
func (ch *ComposerHandler) AddExercise(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	var req struct {
		Name  string `json:"name"`
		Group string `json:"group"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := composer.AddExercise(req.Name, req.Group)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"exercise": entry, "session": composer.Snapshot()})
}

// PATCH /composer/:id/exercises/:localId
func (ch *ComposerHandler) UpdateExercise(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	localID, ok := parseLocalID(c)
	if !ok {
		return
	}
	var req services.DraftUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := composer.UpdateExercise(localID, req); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": composer.Snapshot()})
}

// DELETE /composer/:id/exercises/:localId
func (ch *ComposerHandler) RemoveExercise(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	localID, ok := parseLocalID(c)
	if !ok {
		return
	}
	if err := composer.RemoveExercise(localID); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"session": composer.Snapshot()})
}

// POST /composer/:id/save
func (ch *ComposerHandler) Save(c *gin.Context) {
	composer, ok := ch.session(c)
	if !ok {
		return
	}
	saved, err := composer.Save(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plan": saved, "session": composer.Snapshot()})
}

func parseLocalID(c *gin.Context) (int64, bool) {
	localID, err := strconv.ParseInt(c.Param("localId"), 10, 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_exercise_id", err)
		return 0, false
	}
	return localID, true
}
