package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"question_bank_backend/internal/config"
	"question_bank_backend/internal/model"
	"question_bank_backend/internal/util"
	"question_bank_backend/pkg/logger"
	"question_bank_backend/pkg/monitoring"
	"question_bank_backend/pkg/tracing"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Classifier 分类器接口，实现不得返回错误
type Classifier interface {
	Classify(ctx context.Context, text string) model.Classification
}

// ClassificationCache 分类结果缓存，可选
type ClassificationCache interface {
	Get(ctx context.Context, key string) (model.Classification, bool, error)
	Set(ctx context.Context, key string, value model.Classification) error
}

var errEmptyLogits = errors.New("inference response contains no logits")

// ClassifierService 调用序列分类模型推理服务，并把输出下标映射为固定的分类结果
type ClassifierService struct {
	mu            sync.RWMutex
	baseURL       string
	maxInputChars int
	labels        []model.Classification

	client *http.Client
	cache  ClassificationCache
}

func NewClassifierService(cfg config.ClassifierConfig, cache ClassificationCache) *ClassifierService {
	s := &ClassifierService{
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
	}
	s.Reload(cfg)
	return s
}

// Reload 更新推理地址和标签映射表，超时时间不随热更新变化
func (s *ClassifierService) Reload(cfg config.ClassifierConfig) {
	labels := make([]model.Classification, 0, len(cfg.Labels))
	for _, l := range cfg.Labels {
		labels = append(labels, model.Classification{
			Subject:        l.Subject,
			Difficulty:     l.Difficulty,
			Type:           l.Type,
			KnowledgePoint: l.KnowledgePoint,
		})
	}

	s.mu.Lock()
	s.baseURL = cfg.BaseURL
	s.maxInputChars = cfg.MaxInputChars
	s.labels = labels
	s.mu.Unlock()
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// inferenceResponse logits 可以是一维数组，也可以是 batch 为 1 的二维数组
type inferenceResponse struct {
	Logits json.RawMessage `json:"logits"`
	Error  string          `json:"error,omitempty"`
}

func (r *inferenceResponse) vector() ([]float64, error) {
	if len(r.Logits) == 0 {
		return nil, errEmptyLogits
	}

	var flat []float64
	if err := json.Unmarshal(r.Logits, &flat); err == nil {
		if len(flat) == 0 {
			return nil, errEmptyLogits
		}
		return flat, nil
	}

	var batch [][]float64
	if err := json.Unmarshal(r.Logits, &batch); err != nil {
		return nil, fmt.Errorf("decode logits: %w", err)
	}
	if len(batch) == 0 || len(batch[0]) == 0 {
		return nil, errEmptyLogits
	}
	return batch[0], nil
}

// Argmax 返回最大值下标，相等时取较小下标
func Argmax(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func (s *ClassifierService) Classify(ctx context.Context, text string) (result model.Classification) {
	ctx, span := tracing.Tracer.Start(ctx, "classifier.Classify")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("Error during classification", zap.Any("panic", r))
			result = model.UnknownClassification()
		}
		monitoring.ClassificationCounter.WithLabelValues(result.Subject).Inc()
	}()

	s.mu.RLock()
	baseURL, maxChars, labels := s.baseURL, s.maxInputChars, s.labels
	s.mu.RUnlock()

	input := util.Truncate(text, maxChars)
	key := cacheKey(input)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Log.Warn("读取分类缓存失败", zap.Error(err))
		} else if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached
		}
	}

	logits, err := s.infer(ctx, baseURL, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log.Error("Error during classification", zap.Error(err))
		return model.UnknownClassification()
	}

	idx := Argmax(logits)
	span.SetAttributes(attribute.Int("class_index", idx))
	if idx < 0 || idx >= len(labels) {
		logger.Log.Error("Error during classification",
			zap.Int("index", idx),
			zap.Int("labels", len(labels)),
		)
		return model.UnknownClassification()
	}

	result = labels[idx]
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			logger.Log.Warn("写入分类缓存失败", zap.Error(err))
		}
	}
	return result
}

func (s *ClassifierService) infer(ctx context.Context, baseURL, input string) ([]float64, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: input})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("inference server error (status %d): %s", resp.StatusCode, string(msg))
	}

	var out inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("inference server error: %s", out.Error)
	}
	return out.vector()
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
