package repository

import (
	"context"
	"errors"
	"question_bank_backend/internal/config"
	"question_bank_backend/internal/model"
	"question_bank_backend/internal/util"
	"question_bank_backend/pkg/database"
	"testing"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, "test")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newQuestion(t *testing.T, text string) *model.Question {
	t.Helper()
	opts, err := model.EncodeOptions(model.Options{"A": "Paris", "B": "Rome"})
	if err != nil {
		t.Fatal(err)
	}
	return &model.Question{
		Text:       text,
		Type:       model.QuestionTypeSingleChoice,
		Subject:    "geography",
		Difficulty: "medium",
		Options:    opts,
		Answer:     "A",
	}
}

func TestQuestionRepository_CreateAndFind(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))
	ctx := context.Background()

	q := newQuestion(t, "What is the capital of France?")
	if err := repo.Create(ctx, q); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.ID == 0 {
		t.Fatal("expected generated ID")
	}

	got, err := repo.FindByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Text != q.Text || got.Answer != "A" || got.Tags != "" || got.KnowledgePoint != nil {
		t.Errorf("unexpected question: %+v", got)
	}
}

func TestQuestionRepository_FindByID_NotFound(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), 999)
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionRepository_UpdateTags(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))
	ctx := context.Background()

	q := newQuestion(t, "Frequent mistakes in loops")
	if err := repo.Create(ctx, q); err != nil {
		t.Fatal(err)
	}

	if _, err := repo.UpdateTags(ctx, q.ID, "x,y,z"); err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	updated, err := repo.UpdateTags(ctx, q.ID, "a,b")
	if err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	if updated.Tags != "a,b" {
		t.Errorf("returned tags = %q", updated.Tags)
	}

	got, err := repo.FindByID(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tags != "a,b" {
		t.Errorf("stored tags = %q, want full replace", got.Tags)
	}

	if _, err := repo.UpdateTags(ctx, 12345, "a"); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuestionRepository_FindUntagged(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))
	ctx := context.Background()

	first := newQuestion(t, "one")
	second := newQuestion(t, "two")
	for _, q := range []*model.Question{first, second} {
		if err := repo.Create(ctx, q); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := repo.UpdateTags(ctx, first.ID, "general"); err != nil {
		t.Fatal(err)
	}

	untagged, err := repo.FindUntagged(ctx, 10)
	if err != nil {
		t.Fatalf("FindUntagged: %v", err)
	}
	if len(untagged) != 1 || untagged[0].ID != second.ID {
		t.Errorf("unexpected untagged set: %+v", untagged)
	}

	total, err := repo.Count(ctx)
	if err != nil || total != 2 {
		t.Errorf("Count = %d, %v", total, err)
	}
}
