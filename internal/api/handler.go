package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashvale/arena/internal/constants"
	"github.com/ashvale/arena/internal/service"
	"github.com/ashvale/arena/internal/storage"
)

// BattleHandler exposes the battle service and repository over HTTP.
type BattleHandler struct {
	svc  *service.BattleService
	repo storage.Repository
}

func NewBattleHandler(svc *service.BattleService, repo storage.Repository) *BattleHandler {
	return &BattleHandler{svc: svc, repo: repo}
}

// actorIDParam parses the :actorID path parameter. A zero return means the
// handler already wrote the error response.
func actorIDParam(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("actorID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidActorID})
		return 0
	}
	return id
}
