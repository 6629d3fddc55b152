package repository

import (
	"context"
	"encoding/json"
	"errors"
	"question_bank_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const classificationKeyPrefix = "question_bank:classification:"

// ClassificationCache 以题目文本摘要为键缓存分类结果
type ClassificationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClassificationCache(rdb *redis.Client, ttl time.Duration) *ClassificationCache {
	return &ClassificationCache{rdb: rdb, ttl: ttl}
}

// Get 未命中时返回 ok=false 且 err 为 nil
func (c *ClassificationCache) Get(ctx context.Context, key string) (model.Classification, bool, error) {
	var result model.Classification
	raw, err := c.rdb.Get(ctx, classificationKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return result, false, nil
	}
	if err != nil {
		return result, false, err
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, false, err
	}
	return result, true, nil
}

func (c *ClassificationCache) Set(ctx context.Context, key string, value model.Classification) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, classificationKeyPrefix+key, raw, c.ttl).Err()
}
