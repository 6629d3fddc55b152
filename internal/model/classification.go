package model

const UnknownLabel = "unknown"

// Classification 模型给出的分类结果，与录入时提交的元数据相互独立
type Classification struct {
	Subject        string `json:"subject"`
	Difficulty     string `json:"difficulty"`
	Type           string `json:"type"`
	KnowledgePoint string `json:"knowledge_point"`
}

func UnknownClassification() Classification {
	return Classification{
		Subject:        UnknownLabel,
		Difficulty:     UnknownLabel,
		Type:           UnknownLabel,
		KnowledgePoint: UnknownLabel,
	}
}

func (c Classification) IsUnknown() bool {
	return c == UnknownClassification()
}
