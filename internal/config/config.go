package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig `mapstructure:"log"`
	Redis      RedisConfig
	Tracing    TracingConfig    `mapstructure:"tracing"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Tagging    TaggingConfig    `mapstructure:"tagging"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	MigrateOnly bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// DatabaseConfig Driver 取值 sqlite / mysql / postgres，sqlite 时只使用 Path
type DatabaseConfig struct {
	Driver    string
	Path      string
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool `mapstructure:"parse_time"`
	SSLMode   string `mapstructure:"ssl_mode"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// ClassifierConfig 推理服务地址以及输出下标到分类结果的映射表
type ClassifierConfig struct {
	BaseURL       string            `mapstructure:"base_url"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	MaxInputChars int               `mapstructure:"max_input_chars"`
	Labels        []ClassifierLabel `mapstructure:"labels"`
}

type ClassifierLabel struct {
	Subject        string `mapstructure:"subject"`
	Difficulty     string `mapstructure:"difficulty"`
	Type           string `mapstructure:"type"`
	KnowledgePoint string `mapstructure:"knowledge_point"`
}

type TaggingConfig struct {
	Rules        []TagRule     `mapstructure:"rules"`
	DefaultTag   string        `mapstructure:"default_tag"`
	AutoInterval time.Duration `mapstructure:"auto_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
}

type TagRule struct {
	Keyword string `mapstructure:"keyword"`
	Tag     string `mapstructure:"tag"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// DefaultClassifierLabels 三分类模型的占位映射表
func DefaultClassifierLabels() []ClassifierLabel {
	return []ClassifierLabel{
		{Subject: "geography", Difficulty: "medium", Type: "single_choice", KnowledgePoint: "European capitals"},
		{Subject: "history", Difficulty: "hard", Type: "multiple_choice", KnowledgePoint: "World War II"},
		{Subject: "science", Difficulty: "easy", Type: "true_false", KnowledgePoint: "Basic Physics"},
	}
}

func DefaultTagRules() []TagRule {
	return []TagRule{
		{Keyword: "error", Tag: "easy_to_learn"},
		{Keyword: "frequent", Tag: "high_frequency"},
		{Keyword: "advanced", Tag: "difficult"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "database.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.cache_ttl", 24*time.Hour)

	v.SetDefault("classifier.base_url", "http://localhost:8500")
	v.SetDefault("classifier.timeout", 10*time.Second)
	v.SetDefault("classifier.max_input_chars", 2000)

	v.SetDefault("tagging.default_tag", "general")
	v.SetDefault("tagging.auto_interval", time.Duration(0))
	v.SetDefault("tagging.batch_size", 100)

	v.SetDefault("rate_limit.max_requests", 100000)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("QUESTION_BANK")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.path", "DATABASE_PATH")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Classifier
	v.BindEnv("classifier.base_url", "CLASSIFIER_BASE_URL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时使用默认值启动
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize 补全列表类默认值并做基本校验
func (c *Config) normalize() error {
	if len(c.Classifier.Labels) == 0 {
		c.Classifier.Labels = DefaultClassifierLabels()
	}
	if len(c.Tagging.Rules) == 0 {
		c.Tagging.Rules = DefaultTagRules()
	}
	if c.Tagging.DefaultTag == "" {
		c.Tagging.DefaultTag = "general"
	}

	switch c.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	for i, r := range c.Tagging.Rules {
		if r.Keyword == "" || r.Tag == "" {
			return fmt.Errorf("tagging rule %d must have both keyword and tag", i)
		}
	}

	if c.RateLimit.MaxRequests <= 0 {
		c.RateLimit.MaxRequests = 100000
	}
	if c.RateLimit.WindowMinutes <= 0 {
		c.RateLimit.WindowMinutes = 1
	}

	return nil
}
