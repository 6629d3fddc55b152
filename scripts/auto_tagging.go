// 手动触发自动打标签脚本
//
// 主应用在 tagging.auto_interval 大于 0 时会定时执行同样的任务。
// 此脚本用于手动触发，例如批量导入题目之后。
//
// 用法: go run scripts/auto_tagging.go [-config configs/config.yaml]

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"question_bank_backend/internal/config"
	"question_bank_backend/internal/repository"
	"question_bank_backend/internal/service"
	"question_bank_backend/pkg/database"
	"question_bank_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

// fileConfig 脚本只关心数据库和标签规则
type fileConfig struct {
	Server struct {
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Database struct {
		Driver    string `yaml:"driver"`
		Path      string `yaml:"path"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
		User      string `yaml:"user"`
		Password  string `yaml:"password"`
		DBName    string `yaml:"dbname"`
		Charset   string `yaml:"charset"`
		ParseTime bool   `yaml:"parse_time"`
		SSLMode   string `yaml:"ssl_mode"`
	} `yaml:"database"`
	Tagging struct {
		DefaultTag string `yaml:"default_tag"`
		BatchSize  int    `yaml:"batch_size"`
		Rules      []struct {
			Keyword string `yaml:"keyword"`
			Tag     string `yaml:"tag"`
		} `yaml:"rules"`
	} `yaml:"tagging"`
}

func (f *fileConfig) toConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = f.Server.Mode
	cfg.Log = config.LogConfig{File: "logs/auto_tagging.log", MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 7}

	db := f.Database
	cfg.Database = config.DatabaseConfig{
		Driver:    db.Driver,
		Path:      db.Path,
		Host:      db.Host,
		Port:      db.Port,
		User:      db.User,
		Password:  db.Password,
		DBName:    db.DBName,
		Charset:   db.Charset,
		ParseTime: db.ParseTime,
		SSLMode:   db.SSLMode,
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "database.db"
	}

	cfg.Tagging.DefaultTag = f.Tagging.DefaultTag
	cfg.Tagging.BatchSize = f.Tagging.BatchSize
	for _, r := range f.Tagging.Rules {
		cfg.Tagging.Rules = append(cfg.Tagging.Rules, config.TagRule{Keyword: r.Keyword, Tag: r.Tag})
	}
	if len(cfg.Tagging.Rules) == 0 {
		cfg.Tagging.Rules = config.DefaultTagRules()
	}
	return cfg
}

func main() {
	path := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}
	cfg := fc.toConfig()

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	tagger := service.NewTaggingService(cfg.Tagging)
	// 打标签不需要分类器
	questions := service.NewQuestionService(repository.NewQuestionRepository(db), nil, tagger)
	autoTagging := service.NewAutoTaggingService(questions, cfg.Tagging.BatchSize)

	log.Println("手动触发自动打标签任务...")
	tagged, err := autoTagging.RunAutoTagging(context.Background())
	if err != nil {
		log.Fatalf("自动打标签失败: %v", err)
	}
	log.Printf("完成！共处理 %d 道题目", tagged)
}
