package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/datatypes"
)

// 题型，与 binding 标签中的 oneof 保持一致
const (
	QuestionTypeSingleChoice   = "single_choice"
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeFillBlank      = "fill_blank"
	QuestionTypeEssay          = "essay"
	QuestionTypeCode           = "code"
)

const (
	TagSeparator = ","
	MaxTagsLen   = 200
)

var ErrInvalidOptions = errors.New("invalid options")

// Question 题目
// swagger:model Question
type Question struct {
	BaseModel
	Text           string         `gorm:"type:text;not null" json:"text"`
	Type           string         `gorm:"size:50;not null" json:"type"`
	Subject        string         `gorm:"size:50;not null" json:"subject"`
	Difficulty     string         `gorm:"size:50;not null" json:"difficulty"`
	Options        datatypes.JSON `gorm:"not null" json:"options"`
	Answer         string         `gorm:"size:10;not null" json:"answer"`
	Tags           string         `gorm:"size:200" json:"tags"`           // 逗号分隔
	KnowledgePoint *string        `gorm:"size:100" json:"knowledgePoint"` // 可为空
}

func (Question) TableName() string {
	return "questions"
}

// Options 选项标签 -> 选项内容
type Options map[string]string

func (o Options) Validate() error {
	if len(o) == 0 {
		return fmt.Errorf("%w: at least one option is required", ErrInvalidOptions)
	}
	for label, text := range o {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: option label must not be empty", ErrInvalidOptions)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%w: option %q has empty text", ErrInvalidOptions, label)
		}
	}
	return nil
}

// Labels 按字典序返回选项标签
func (o Options) Labels() []string {
	labels := make([]string, 0, len(o))
	for label := range o {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func EncodeOptions(o Options) (datatypes.JSON, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeOptions 读取时重新做结构校验，不信任库中内容
func DecodeOptions(raw datatypes.JSON) (Options, error) {
	var o Options
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func JoinTags(tags []string) string {
	return strings.Join(tags, TagSeparator)
}

func SplitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, TagSeparator)
}

// QuestionResponse 检索接口返回的完整题目
type QuestionResponse struct {
	ID             uint     `json:"id"`
	Text           string   `json:"text"`
	Type           string   `json:"type"`
	Subject        string   `json:"subject"`
	Difficulty     string   `json:"difficulty"`
	Options        Options  `json:"options"`
	Answer         string   `json:"answer"`
	Tags           []string `json:"tags"`
	KnowledgePoint *string  `json:"knowledge_point"`
}

func (q *Question) ToResponse() (*QuestionResponse, error) {
	opts, err := DecodeOptions(q.Options)
	if err != nil {
		return nil, fmt.Errorf("question %d: %w", q.ID, err)
	}

	return &QuestionResponse{
		ID:             q.ID,
		Text:           q.Text,
		Type:           q.Type,
		Subject:        q.Subject,
		Difficulty:     q.Difficulty,
		Options:        opts,
		Answer:         q.Answer,
		Tags:           SplitTags(q.Tags),
		KnowledgePoint: q.KnowledgePoint,
	}, nil
}
