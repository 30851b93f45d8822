package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coachplan-backend/internal/http/response"
	"github.com/yungbote/coachplan-backend/internal/library"
)

type LibraryHandler struct {
	lib *library.Library
}

func NewLibraryHandler(lib *library.Library) *LibraryHandler {
	return &LibraryHandler{lib: lib}
}

// GET /library/groups
func (lh *LibraryHandler) ListGroups(c *gin.Context) {
	response.RespondOK(c, gin.H{"groups": lh.lib.Groups()})
}

// GET /library/groups/:group/exercises
func (lh *LibraryHandler) ListExercises(c *gin.Context) {
	group := c.Param("group")
	exercises := lh.lib.ExercisesOf(group)
	if exercises == nil {
		response.RespondError(c, http.StatusNotFound, "unknown_group", nil)
		return
	}
	response.RespondOK(c, gin.H{"group": group, "exercises": exercises})
}

// GET /library/search?q=...
func (lh *LibraryHandler) Search(c *gin.Context) {
	response.RespondOK(c, gin.H{"results": lh.lib.Filter(c.Query("q"))})
}
