// @title Question Bank API
// @version 1.0
// @description 题目录入、分类与标签服务。

// @host localhost:8080
// @BasePath /api

package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"question_bank_backend/internal/app"
	"question_bank_backend/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg, filepath.Join(*configDir, "config.yaml"))

	if *migrateOnly {
		log.Println("数据库迁移完成，退出程序")
		application.Close(context.Background())
		return
	}

	application.Run()
}
