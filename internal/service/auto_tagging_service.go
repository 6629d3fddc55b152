package service

import (
	"context"
	"question_bank_backend/pkg/logger"

	"go.uber.org/zap"
)

// AutoTaggingService 扫描标签为空的题目，按关键词规则生成标签并写回数据库
type AutoTaggingService struct {
	questions *QuestionService
	batchSize int
}

func NewAutoTaggingService(questions *QuestionService, batchSize int) *AutoTaggingService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &AutoTaggingService{questions: questions, batchSize: batchSize}
}

// RunAutoTagging 执行一次自动打标签任务，返回成功打标签的题目数
func (s *AutoTaggingService) RunAutoTagging(ctx context.Context) (int, error) {
	tagged := 0
	for {
		qs, err := s.questions.Repo.FindUntagged(ctx, s.batchSize)
		if err != nil {
			logger.Log.Error("查询未标签题目失败", zap.Error(err))
			return tagged, err
		}
		if len(qs) == 0 {
			break
		}

		logger.Log.Info("开始为题目自动生成标签", zap.Int("count", len(qs)))

		progressed := 0
		for _, q := range qs {
			if err := ctx.Err(); err != nil {
				return tagged, err
			}

			tags := s.questions.Tagger.GenerateTags(q.Text)
			if _, err := s.questions.TagQuestion(ctx, q.ID, tags); err != nil {
				logger.Log.Warn("更新题目标签失败", zap.Uint("id", q.ID), zap.Error(err))
				continue
			}
			tagged++
			progressed++
		}

		// 整批都失败时停止，避免反复处理同一批数据
		if progressed == 0 || len(qs) < s.batchSize {
			break
		}
	}

	logger.Log.Info("题目自动打标签完成", zap.Int("tagged", tagged))
	return tagged, nil
}
