package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashvale/arena/internal/api"
	"github.com/ashvale/arena/internal/config"
	"github.com/ashvale/arena/internal/constants"
	"github.com/ashvale/arena/internal/engine"
	"github.com/ashvale/arena/internal/game"
	"github.com/ashvale/arena/internal/logging"
	"github.com/ashvale/arena/internal/service"
	"github.com/ashvale/arena/internal/session"
	"github.com/ashvale/arena/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration", err, nil)
	}

	data, err := config.LoadGameData(cfg.GameDataPath)
	if err != nil {
		logging.Fatal("Missing or invalid game data", err, logging.Fields{"gamedata_path": cfg.GameDataPath})
	}

	db, err := storage.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, data.Skills, data.Ultimates, data.Monsters, data.Items)
	registry := session.NewRegistry()
	effects := game.NewEffectRegistry(data.Effects)

	svc := service.New(registry, repo, repo, repo, effects)
	if cfg.MonsterDelay > 0 {
		svc.Delay = sleepHook(cfg.MonsterDelay)
	}

	startSessionSweeper(registry, cfg.SessionTTL, cfg.SweepInterval)

	handler := api.NewBattleHandler(svc, repo)

	router := gin.Default()
	router.Use(api.RequestID())

	router.GET(constants.RouteHealth, api.Health)
	router.GET(constants.RouteVersion, api.Version)

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteCharacters, handler.GetCharacter)
		apiRoutes.POST(constants.RouteCharacterSkill, handler.LearnSkill)
		apiRoutes.GET(constants.RouteInventory, handler.GetInventory)
		apiRoutes.GET(constants.RouteMonsters, handler.ListMonsters)

		apiRoutes.POST(constants.RouteBattles, handler.StartBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)
		apiRoutes.DELETE(constants.RouteBattleByID, handler.DeleteBattle)
	}

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.Addr})
	if err := router.Run(cfg.Addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// sleepHook builds the presentation pause used before the monster acts. The
// pause respects request cancellation; outcomes were already rolled.
func sleepHook(d time.Duration) engine.DelayHook {
	return func(ctx context.Context, line string) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
}

// startSessionSweeper collects completed battles past their TTL so the
// registry does not grow without bound.
func startSessionSweeper(registry *session.Registry, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			if removed := registry.Sweep(ttl); removed > 0 {
				logging.Info("swept completed battles", logging.Fields{"removed": removed})
			}
		}
	}()
}
