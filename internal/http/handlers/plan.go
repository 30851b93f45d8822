package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/coachplan-backend/internal/domain"
	"github.com/yungbote/coachplan-backend/internal/domain/plan"
	"github.com/yungbote/coachplan-backend/internal/http/response"
	"github.com/yungbote/coachplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/coachplan-backend/internal/services"
)

type PlanHandler struct {
	planService    services.PlanService
	summaryService services.SummaryService
}

func NewPlanHandler(planService services.PlanService, summaryService services.SummaryService) *PlanHandler {
	return &PlanHandler{planService: planService, summaryService: summaryService}
}

// GET /students/:id/plans
func (ph *PlanHandler) ListPlans(c *gin.Context) {
	studentID, ok := ph.studentFromPath(c)
	if !ok {
		return
	}
	plans, err := ph.planService.FetchAll(c.Request.Context(), studentID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plans": plans})
}

// GET /students/:id/plans/:weekday
func (ph *PlanHandler) GetPlan(c *gin.Context) {
	studentID, ok := ph.studentFromPath(c)
	if !ok {
		return
	}
	weekday, err := plan.ParseWeekday(c.Param("weekday"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_weekday", err)
		return
	}
	stored, err := ph.planService.Fetch(c.Request.Context(), studentID, weekday)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plan": stored})
}

// PUT /students/:id/plans/:weekday
func (ph *PlanHandler) SavePlan(c *gin.Context) {
	studentID, ok := ph.studentFromPath(c)
	if !ok {
		return
	}
	weekday, err := plan.ParseWeekday(c.Param("weekday"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_weekday", err)
		return
	}
	var req struct {
		PlanName  string                `json:"plan_name"`
		Exercises []types.ExerciseEntry `json:"exercises"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	saved, err := ph.planService.Save(c.Request.Context(), studentID, weekday, req.PlanName, req.Exercises)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plan": saved})
}

// GET /students/:id/summary
func (ph *PlanHandler) GetSummary(c *gin.Context) {
	studentID, ok := ph.studentFromPath(c)
	if !ok {
		return
	}
	summary, err := ph.summaryService.SummarizeWeek(c.Request.Context(), studentID)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"summary": summary})
}

// studentFromPath parses the :id param and enforces that students only read
// their own data. Coaches may read anyone's.
func (ph *PlanHandler) studentFromPath(c *gin.Context) (uuid.UUID, bool) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_student_id", err)
		return uuid.Nil, false
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	if rd.Role != types.RoleCoach && rd.UserID != studentID {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return uuid.Nil, false
	}
	return studentID, true
}
