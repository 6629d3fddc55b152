package service

import (
	"question_bank_backend/internal/config"
	"reflect"
	"testing"
)

func defaultTagger() *TaggingService {
	return NewTaggingService(config.TaggingConfig{
		Rules:      config.DefaultTagRules(),
		DefaultTag: "general",
	})
}

func TestGenerateTags(t *testing.T) {
	tagger := defaultTagger()

	cases := []struct {
		text string
		want []string
	}{
		{"Frequent mistakes", []string{"high_frequency"}},
		{"What is the capital of France?", []string{"general"}},
		{"", []string{"general"}},
		{"Common ERROR in pointer arithmetic", []string{"easy_to_learn"}},
		{"Advanced topic with frequent errors", []string{"easy_to_learn", "high_frequency", "difficult"}},
	}

	for _, tc := range cases {
		if got := tagger.GenerateTags(tc.text); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("GenerateTags(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTaggingService_Reload(t *testing.T) {
	tagger := defaultTagger()

	tagger.Reload(config.TaggingConfig{
		Rules:      []config.TagRule{{Keyword: "Loop", Tag: "control_flow"}},
		DefaultTag: "misc",
	})

	if got := tagger.GenerateTags("nested loops"); !reflect.DeepEqual(got, []string{"control_flow"}) {
		t.Errorf("after reload got %v", got)
	}
	if got := tagger.GenerateTags("frequent"); !reflect.DeepEqual(got, []string{"misc"}) {
		t.Errorf("old rules should be replaced, got %v", got)
	}
}
