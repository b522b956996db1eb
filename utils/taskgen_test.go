package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateTask_ParsesReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":
			"{\"description\":\"Leave a positive comment on a travel video.\",\"instructions\":\"Keep it above two sentences.\"}"}}]}`))
	}))
	defer srv.Close()

	t.Setenv("TASKGEN_API_KEY", "test-key")
	t.Setenv("TASKGEN_API_URL", srv.URL)

	task, err := GenerateTask(context.Background(), "comment", "")
	if err != nil {
		t.Fatalf("GenerateTask: %v", err)
	}
	if task.Description != "Leave a positive comment on a travel video." {
		t.Errorf("description = %q", task.Description)
	}
	if task.Instructions == "" {
		t.Error("expected instructions to be filled")
	}
}

func TestGenerateTask_APIErrorIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("TASKGEN_API_KEY", "test-key")
	t.Setenv("TASKGEN_API_URL", srv.URL)

	if _, err := GenerateTask(context.Background(), "review", "Central Park"); err == nil {
		t.Fatal("expected an error from a 503 response")
	}
}

func TestGenerateTask_MissingKey(t *testing.T) {
	t.Setenv("TASKGEN_API_KEY", "")
	if _, err := GenerateTask(context.Background(), "comment", ""); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestParseGeneratedTask_FencedReply(t *testing.T) {
	task, err := parseGeneratedTask("Sure!\n```json\n{\"description\":\"Write a review\",\"instructions\":\"Be honest\"}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if task.Description != "Write a review" {
		t.Errorf("description = %q", task.Description)
	}
}

func TestParseGeneratedTask_Garbage(t *testing.T) {
	if _, err := parseGeneratedTask("no json here"); err == nil {
		t.Fatal("expected parse failure")
	}
	if _, err := parseGeneratedTask("{\"instructions\":\"only\"}"); err == nil {
		t.Fatal("expected failure when description missing")
	}
}
