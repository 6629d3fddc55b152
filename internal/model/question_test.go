package model

import (
	"errors"
	"reflect"
	"testing"

	"gorm.io/datatypes"
)

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name    string
		options Options
		wantErr bool
	}{
		{"valid", Options{"A": "Paris", "B": "Berlin"}, false},
		{"empty", Options{}, true},
		{"nil", nil, true},
		{"blank label", Options{" ": "Paris"}, true},
		{"blank text", Options{"A": ""}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.options.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestDecodeOptions_RejectsNonMapping(t *testing.T) {
	inputs := []string{
		`["A", "B"]`,
		`{"A": 1}`,
		`__import__('os').system('ls')`,
		`{}`,
	}
	for _, in := range inputs {
		if _, err := DecodeOptions(datatypes.JSON(in)); err == nil {
			t.Errorf("DecodeOptions(%q) expected error", in)
		}
	}
}

func TestSplitTags(t *testing.T) {
	if got := SplitTags(""); got == nil || len(got) != 0 {
		t.Errorf("SplitTags(\"\") = %#v, want empty non-nil slice", got)
	}
	if got := SplitTags(JoinTags([]string{"a", "b"})); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("round trip = %v", got)
	}
}

func TestToResponse(t *testing.T) {
	raw, err := EncodeOptions(Options{"A": "4", "B": "5"})
	if err != nil {
		t.Fatal(err)
	}
	q := &Question{
		BaseModel:  BaseModel{ID: 7},
		Text:       "2+2?",
		Type:       QuestionTypeSingleChoice,
		Subject:    "math",
		Difficulty: "easy",
		Options:    raw,
		Answer:     "A",
		Tags:       "basic,arith",
	}

	resp, err := q.ToResponse()
	if err != nil {
		t.Fatalf("ToResponse error: %v", err)
	}
	if resp.ID != 7 || resp.Options["B"] != "5" || !reflect.DeepEqual(resp.Tags, []string{"basic", "arith"}) {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.KnowledgePoint != nil {
		t.Errorf("expected nil knowledge point")
	}
}

func TestUnknownClassification(t *testing.T) {
	c := UnknownClassification()
	if !c.IsUnknown() {
		t.Fatal("expected IsUnknown")
	}
	if c.Subject != "unknown" || c.Difficulty != "unknown" || c.Type != "unknown" || c.KnowledgePoint != "unknown" {
		t.Errorf("unexpected sentinel: %+v", c)
	}
}
