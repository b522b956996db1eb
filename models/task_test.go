package models

import "testing"

func TestValidTransition_AllowedEdges(t *testing.T) {
	allowed := [][2]string{
		{TaskStatusAvailable, TaskStatusStarted},
		{TaskStatusStarted, TaskStatusPending},
		{TaskStatusPending, TaskStatusCompleted},
		{TaskStatusPending, TaskStatusStarted},
	}
	for _, e := range allowed {
		if !ValidTransition(e[0], e[1]) {
			t.Errorf("expected %s -> %s to be valid", e[0], e[1])
		}
	}
}

func TestValidTransition_RejectsEverythingElse(t *testing.T) {
	statuses := []string{TaskStatusAvailable, TaskStatusStarted, TaskStatusPending, TaskStatusCompleted}
	allowed := map[[2]string]bool{
		{TaskStatusAvailable, TaskStatusStarted}:  true,
		{TaskStatusStarted, TaskStatusPending}:    true,
		{TaskStatusPending, TaskStatusCompleted}:  true,
		{TaskStatusPending, TaskStatusStarted}:    true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			if got := ValidTransition(from, to); got != want {
				t.Errorf("ValidTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if ValidTransition("unassigned", TaskStatusStarted) {
		t.Error("pool templates must not transition straight to started")
	}
	if ValidTransition(TaskStatusCompleted, TaskStatusStarted) {
		t.Error("completed is terminal")
	}
}

func TestClone_CopySemantics(t *testing.T) {
	tpl := MarketplaceTask{
		ID:           7,
		Type:         "review",
		Description:  "Write a 4-star review",
		Instructions: "Mention the park by name",
		Link:         "https://example.com/park",
		Tier:         TierGold,
		Status:       PoolStatusActive,
	}
	clone := tpl.Clone(42)

	if clone.UserID != 42 || clone.MarketplaceTaskID != 7 {
		t.Fatalf("clone ownership wrong: %+v", clone)
	}
	if clone.Status != TaskStatusAvailable {
		t.Fatalf("clone status = %s, want available", clone.Status)
	}
	if clone.Description != tpl.Description || clone.Tier != tpl.Tier {
		t.Fatal("clone did not copy descriptive fields")
	}

	// Mutating the clone must never reach the template.
	clone.Description = "changed"
	clone.Status = TaskStatusStarted
	if tpl.Description != "Write a 4-star review" || tpl.Status != PoolStatusActive {
		t.Fatal("mutating a clone leaked into the template")
	}
}

func TestValidateSubmission(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"short", false},
		{"         ", false},
		{"  padded  ", false},           // 6 runes after trim
		{"0123456789", true},            // exactly the minimum
		{"  I posted the comment.  ", true},
		{"проверка готово", true},       // rune count, not byte count
	}
	for _, c := range cases {
		if _, ok := ValidateSubmission(c.in); ok != c.want {
			t.Errorf("ValidateSubmission(%q) = %v, want %v", c.in, ok, c.want)
		}
	}

	trimmed, _ := ValidateSubmission("  done and dusted  ")
	if trimmed != "done and dusted" {
		t.Errorf("expected trimmed submission, got %q", trimmed)
	}
}
