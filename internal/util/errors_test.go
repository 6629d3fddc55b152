package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrQuestionNotFound)

	cases := []struct {
		err  error
		want ErrorKind
	}{
		{NewValidationError("missing %s", "text"), KindValidation},
		{ErrQuestionNotFound, KindNotFound},
		{wrapped, KindNotFound},
		{NewInternalError("db", errors.New("disk full")), KindInternal},
		{errors.New("plain"), KindInternal},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}

	if !errors.Is(wrapped, ErrQuestionNotFound) {
		t.Error("wrapped not-found error should match ErrQuestionNotFound")
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{NewValidationError("Missing required fields"), http.StatusBadRequest, "Missing required fields"},
		{ErrQuestionNotFound, http.StatusNotFound, "question not found"},
		{errors.New("database is locked"), http.StatusInternalServerError, "Failed to submit question: database is locked"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		HandleError(c, "Failed to submit question", tc.err)

		if w.Code != tc.wantStatus {
			t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
		}
		var body Response
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Status != StatusError || body.Message != tc.wantMsg {
			t.Errorf("body = %+v, want message %q", body, tc.wantMsg)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, ok := ParseID("42"); !ok || id != 42 {
		t.Errorf("ParseID(42) = %d, %v", id, ok)
	}
	for _, s := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, ok := ParseID(s); ok {
			t.Errorf("ParseID(%q) should fail", s)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("题目内容", 2); got != "题目" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("abc", 0); got != "abc" {
		t.Errorf("Truncate with n=0 = %q", got)
	}
}
