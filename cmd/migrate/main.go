// Command migrate applies the SQL files under migrations/ with the atlas CLI.
//
//	migrate [-dir migrations] [-atlas atlas] [-dry-run] up|status
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gin-booking-engine/internal/handler/middleware"
	"gin-booking-engine/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files")
	bin := flag.String("atlas", "atlas", "path to the atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending statements without executing them")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := run(ctx, logger, cfg.DB, cmd, *dir, *bin, *dryRun); err != nil {
		logger.Error("migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dbCfg config.DBConfig, cmd, dir, bin string, dryRun bool) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return fmt.Errorf("prepare working dir: %w", err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), bin)
	if err != nil {
		return fmt.Errorf("init atlas client: %w", err)
	}

	url := dbCfg.BuildDSN()
	switch cmd {
	case "up":
		res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: url, DryRun: dryRun})
		if err != nil {
			return err
		}
		for _, f := range res.Applied {
			logger.Info("applied migration", "file", f.Name)
		}
		logger.Info("database is up to date", "current", res.Target, "applied", len(res.Applied), "dry_run", dryRun)
		return nil
	case "status":
		res, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{URL: url})
		if err != nil {
			return err
		}
		logger.Info("migration status", "status", res.Status, "current", res.Current, "next", res.Next, "pending", len(res.Pending))
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
