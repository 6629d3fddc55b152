package repository

import (
	"context"
	"errors"
	"question_bank_backend/internal/model"
	"question_bank_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateTags 整体替换标签，返回更新后的题目
func (r *QuestionRepository) UpdateTags(ctx context.Context, id uint, tags string) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, id).Error; err != nil {
			return err
		}
		q.Tags = tags
		return tx.Model(&q).Update("tags", tags).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FindUntagged 查询标签为空的题目
func (r *QuestionRepository) FindUntagged(ctx context.Context, limit int) ([]model.Question, error) {
	var qs []model.Question
	query := r.DB.WithContext(ctx).Where("tags = '' OR tags IS NULL").Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Question{}).Count(&total).Error
	return total, err
}
