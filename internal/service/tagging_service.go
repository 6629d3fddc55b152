package service

import (
	"question_bank_backend/internal/config"
	"question_bank_backend/pkg/logger"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// TaggingService 基于关键词的题目标签生成
type TaggingService struct {
	mu         sync.RWMutex
	rules      []config.TagRule
	defaultTag string
}

func NewTaggingService(cfg config.TaggingConfig) *TaggingService {
	s := &TaggingService{}
	s.Reload(cfg)
	return s
}

// Reload 替换规则集，配置热更新时调用
func (s *TaggingService) Reload(cfg config.TaggingConfig) {
	rules := make([]config.TagRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, config.TagRule{Keyword: strings.ToLower(r.Keyword), Tag: r.Tag})
	}
	defaultTag := cfg.DefaultTag
	if defaultTag == "" {
		defaultTag = "general"
	}

	s.mu.Lock()
	s.rules = rules
	s.defaultTag = defaultTag
	s.mu.Unlock()
}

// GenerateTags 按规则顺序做不区分大小写的子串匹配，无匹配时返回默认标签
func (s *TaggingService) GenerateTags(content string) (tags []string) {
	s.mu.RLock()
	rules, defaultTag := s.rules, s.defaultTag
	s.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Error generating tags", zap.Any("panic", r))
			tags = []string{defaultTag}
		}
	}()

	lower := strings.ToLower(content)
	for _, r := range rules {
		if strings.Contains(lower, r.Keyword) {
			tags = append(tags, r.Tag)
		}
	}

	if len(tags) == 0 {
		tags = append(tags, defaultTag)
	}
	return tags
}
