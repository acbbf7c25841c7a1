package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/college-schedule-api/pkg/config"
	"github.com/noah-isme/college-schedule-api/pkg/database"
	"github.com/noah-isme/college-schedule-api/pkg/logger"
)

func main() {
	flag.Usage = func() {
		log.Printf("usage: %s [up|down|version]", os.Args[0])
	}
	flag.Parse()
	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	switch command {
	case "up":
		err = database.Migrate(ctx, db, logr)
	case "down":
		err = database.Rollback(ctx, db)
	case "version":
		var version int64
		version, err = database.Version(ctx, db)
		if err == nil {
			logr.Info("current migration version", zap.Int64("version", version))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logr.Fatal("migration command failed", zap.String("command", command), zap.Error(err))
	}
}
