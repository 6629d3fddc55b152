package service

import (
	"context"
	"question_bank_backend/internal/model"
	"question_bank_backend/internal/util"
	"question_bank_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

// QuestionStore 题目持久化
type QuestionStore interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id uint) (*model.Question, error)
	UpdateTags(ctx context.Context, id uint, tags string) (*model.Question, error)
	FindUntagged(ctx context.Context, limit int) ([]model.Question, error)
}

type QuestionService struct {
	Repo       QuestionStore
	Classifier Classifier
	Tagger     *TaggingService
}

func NewQuestionService(repo QuestionStore, classifier Classifier, tagger *TaggingService) *QuestionService {
	return &QuestionService{Repo: repo, Classifier: classifier, Tagger: tagger}
}

// SubmitQuestionRequest 录入题目
type SubmitQuestionRequest struct {
	Text       string        `json:"text" binding:"required"`
	Type       string        `json:"type" binding:"required,oneof=single_choice multiple_choice true_false fill_blank essay code"`
	Subject    string        `json:"subject" binding:"required,max=50"`
	Difficulty string        `json:"difficulty" binding:"required,max=50"`
	Options    model.Options `json:"options" binding:"required"`
	Answer     string        `json:"answer" binding:"required,max=10"`
}

type QuestionIDRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
}

type TagQuestionRequest struct {
	QuestionID uint     `json:"question_id" binding:"required"`
	Tags       []string `json:"tags" binding:"required"`
}

func (s *QuestionService) SubmitQuestion(ctx context.Context, req SubmitQuestionRequest) (*model.Question, error) {
	opts, err := model.EncodeOptions(req.Options)
	if err != nil {
		return nil, util.NewValidationError("%s", err.Error())
	}

	q := &model.Question{
		Text:       req.Text,
		Type:       req.Type,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Options:    opts,
		Answer:     req.Answer,
	}
	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, err
	}

	logger.Log.Info("New question added", zap.Uint("question_id", q.ID))
	return q, nil
}

// ClassifyQuestion 分类结果仅用于展示，不写回数据库
func (s *QuestionService) ClassifyQuestion(ctx context.Context, id uint) (model.Classification, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return model.Classification{}, err
	}

	result := s.Classifier.Classify(ctx, q.Text)
	logger.Log.Info("Classified question",
		zap.Uint("question_id", id),
		zap.String("subject", result.Subject),
		zap.String("difficulty", result.Difficulty),
		zap.String("type", result.Type),
		zap.String("knowledge_point", result.KnowledgePoint),
	)
	return result, nil
}

// TagQuestion 用给定标签整体替换题目原有标签
func (s *QuestionService) TagQuestion(ctx context.Context, id uint, tags []string) ([]string, error) {
	joined, err := validateTags(tags)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repo.UpdateTags(ctx, id, joined); err != nil {
		return nil, err
	}

	logger.Log.Info("Tags added to question", zap.Uint("question_id", id), zap.Strings("tags", tags))
	return tags, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id uint) (*model.QuestionResponse, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := q.ToResponse()
	if err != nil {
		return nil, util.NewInternalError("stored question is corrupt", err)
	}
	return resp, nil
}

// AutoTagQuestion 根据题目文本生成标签并替换原有标签
func (s *QuestionService) AutoTagQuestion(ctx context.Context, id uint) ([]string, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags := s.Tagger.GenerateTags(q.Text)
	return s.TagQuestion(ctx, id, tags)
}

func validateTags(tags []string) (string, error) {
	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return "", util.NewValidationError("tag %d must not be empty", i)
		}
		if strings.Contains(tag, model.TagSeparator) {
			return "", util.NewValidationError("tag %q must not contain %q", tag, model.TagSeparator)
		}
	}

	joined := model.JoinTags(tags)
	if len(joined) > model.MaxTagsLen {
		return "", util.NewValidationError("tags exceed %d characters", model.MaxTagsLen)
	}
	return joined, nil
}
