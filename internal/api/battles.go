package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ashvale/arena/internal/constants"
	"github.com/ashvale/arena/internal/logging"
	"github.com/ashvale/arena/internal/service"
)

type StartBattleRequest struct {
	ActorID   int64  `json:"actor_id"`
	MonsterID string `json:"monster_id"`
}

type ActionRequest struct {
	ActorID int64  `json:"actor_id"`
	Action  string `json:"action"`
	Arg     string `json:"arg"`
}

// StartBattle creates a battle session for the actor against a monster.
func (h *BattleHandler) StartBattle(c *gin.Context) {
	var req StartBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID <= 0 || req.MonsterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	b, err := h.svc.StartBattle(req.ActorID, req.MonsterID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCharacterNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrMonsterNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
		case errors.Is(err, service.ErrAlreadyInBattle):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("start battle failed", err, logging.Fields{
				constants.LogFieldActorID:   req.ActorID,
				constants.LogFieldMonsterID: req.MonsterID,
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartBattle})
		}
		return
	}

	view, err := h.svc.Snapshot(b.BattleID, req.ActorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStartBattle})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetBattle returns a read-only snapshot of a battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	battleID := c.Param("battleID")
	actorID, err := strconv.ParseInt(c.Query("actor_id"), 10, 64)
	if err != nil || actorID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidActorID})
		return
	}

	view, err := h.svc.Snapshot(battleID, actorID)
	if err != nil {
		writeBattleError(c, err)
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, view)
}

// SubmitAction runs one player action and returns the post-turn snapshot.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	battleID := c.Param("battleID")
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID <= 0 || req.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	_, err := h.svc.PerformAction(c.Request.Context(), battleID, req.ActorID, service.ActionType(req.Action), req.Arg)
	if err != nil {
		writeBattleError(c, err)
		return
	}

	view, err := h.svc.Snapshot(battleID, req.ActorID)
	if err != nil {
		writeBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteBattle removes a completed battle from the registry.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	battleID := c.Param("battleID")
	if err := h.svc.Cleanup(battleID); err != nil {
		writeBattleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "battle removed"})
}

// writeBattleError maps service errors onto HTTP statuses.
func writeBattleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrNotYourBattle):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrBattleNotActive),
		errors.Is(err, service.ErrBattleStillActive),
		errors.Is(err, service.ErrSkillOnCooldown),
		errors.Is(err, service.ErrInsufficientSP):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrMissingArgument),
		errors.Is(err, service.ErrSkillNotKnown),
		errors.Is(err, service.ErrSkillNotFound),
		errors.Is(err, service.ErrNoUltimate):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		logging.Error("battle action failed", err, logging.Fields{
			constants.LogFieldBattleID: c.Param("battleID"),
		})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedPerformAction})
	}
}
