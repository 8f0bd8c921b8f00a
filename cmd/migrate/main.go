// Package main 提供键值存储MySQL后端的迁移命令行工具。
// 仅当 STORE_BACKEND=mysql 时需要；服务启动时也会自动执行up迁移，
// 这个工具用于回滚和人工修复迁移状态。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eleganceshop/storefront/internal/config"
	"github.com/eleganceshop/storefront/internal/database"
	"github.com/eleganceshop/storefront/internal/logger"
)

func main() {
	var (
		action = flag.String("action", "up", "Migration action: up, down, version, force")
		steps  = flag.Int("steps", 1, "Number of steps for down migration")
		target = flag.Uint("target", 0, "Target version for version or force migration")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.App.Env, cfg.Log.Level, cfg.Log.Encoding, "migrate", cfg.App.Version)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	db, err := database.New(cfg, lg)
	if err != nil {
		lg.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Sugar().Errorw("failed to close database", "error", err)
		}
	}()

	migrationsDir := cfg.Migrations.Dir

	switch *action {
	case "up":
		if err := db.RunMigrations(migrationsDir); err != nil {
			lg.Sugar().Fatalw("failed to run up migrations", "error", err)
		}
		lg.Info("up migrations completed")

	case "down":
		lg.Sugar().Infow("running down migrations", "steps", *steps)
		if err := db.MigrateDown(migrationsDir, *steps); err != nil {
			lg.Sugar().Fatalw("failed to run down migrations", "error", err)
		}
		lg.Info("down migrations completed")

	case "version":
		if *target == 0 {
			lg.Fatal("target version must be specified")
		}
		if err := db.MigrateToVersion(migrationsDir, *target); err != nil {
			lg.Sugar().Fatalw("failed to migrate to version", "error", err, "target", *target)
		}
		lg.Sugar().Infow("migrated to version", "target", *target)

	case "force":
		// force 允许版本0，表示重置到无迁移状态
		if err := db.ForceMigrationVersion(migrationsDir, *target); err != nil {
			lg.Sugar().Fatalw("failed to force migration version", "error", err, "target", *target)
		}

	default:
		fmt.Printf("Usage: %s -action=[up|down|version|force] [-steps=N] [-target=V]\n", os.Args[0])
		os.Exit(1)
	}
}
