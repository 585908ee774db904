// Command seed registers resources, services and customers from a YAML file.
// Entries whose id or email already exists are skipped, so reruns are safe.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"gin-booking-engine/internal/domain/slot"
	"gin-booking-engine/internal/handler/middleware"
	"gin-booking-engine/internal/infra/db"
	"gin-booking-engine/internal/infra/uow"
	"gin-booking-engine/internal/pkg/clock"
	"gin-booking-engine/internal/pkg/config"
	"gin-booking-engine/internal/usecase/commands"
)

func main() {
	file := flag.String("file", "seeds/catalog.yaml", "seed file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	catalog, err := loadCatalog(*file)
	if err != nil {
		logger.Error("failed to read seed file", "file", *file, "error", err)
		os.Exit(1)
	}

	settings, err := slot.NewSettings(cfg.Schedule.TimeZone, cfg.Schedule.DefaultOpen, cfg.Schedule.DefaultClose, cfg.Schedule.SlotStep)
	if err != nil {
		logger.Error("invalid schedule settings", "error", err)
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmds := commands.NewCatalogUseCase(uow.NewPostgresUoW(pool, settings), clock.NewRealClock())
	res, err := apply(ctx, logger, cmds, catalog)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding finished", "created", res.Created, "skipped", res.Skipped)
}
