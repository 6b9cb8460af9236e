package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashvale/arena/internal/constants"
	"github.com/ashvale/arena/internal/logging"
	"github.com/ashvale/arena/internal/storage"
)

// GetCharacter returns the actor's character, bootstrapping a starter record
// on first contact when ?create=1 is set.
func (h *BattleHandler) GetCharacter(c *gin.Context) {
	actorID := actorIDParam(c)
	if actorID == 0 {
		return
	}

	if c.Query("create") == "1" {
		char, err := h.repo.GetOrCreateCharacter(actorID, c.Query("name"))
		if err != nil {
			logging.Error("character bootstrap failed", err, logging.Fields{constants.LogFieldActorID: actorID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacter})
			return
		}
		c.JSON(http.StatusOK, char)
		return
	}

	char, err := h.repo.GetCharacter(actorID)
	if err != nil {
		if errors.Is(err, storage.ErrCharacterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacter})
		return
	}
	c.JSON(http.StatusOK, char)
}

type LearnSkillRequest struct {
	SkillID string `json:"skill_id"`
}

// LearnSkill records a catalogue skill on the character.
func (h *BattleHandler) LearnSkill(c *gin.Context) {
	actorID := actorIDParam(c)
	if actorID == 0 {
		return
	}
	var req LearnSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SkillID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := h.repo.LearnSkill(actorID, req.SkillID); err != nil {
		if errors.Is(err, storage.ErrCharacterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "skill learned"})
}

// GetInventory lists the actor's item stacks.
func (h *BattleHandler) GetInventory(c *gin.Context) {
	actorID := actorIDParam(c)
	if actorID == 0 {
		return
	}
	rows, err := h.repo.Inventory(actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchInventory})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListMonsters returns the monster catalogue in declaration order.
func (h *BattleHandler) ListMonsters(c *gin.Context) {
	c.JSON(http.StatusOK, h.repo.Monsters())
}
