package codeforces

import (
	"testing"
)

func TestMapProblems(t *testing.T) {
	wire := []WireProblem{
		{ContestID: 4, Index: "A", Name: "Watermelon", Tags: []string{"math"}, Rating: 1200},
		{ContestID: 1504, Index: "A", Name: "Déjà Vu"},
		{Index: "B", Name: "No Contest"},      // missing contest id
		{ContestID: 99, Name: "No Index"},     // missing index
		{ContestID: 4, Index: "A", Name: "Duplicate"}, // id already seen
	}

	problems := MapProblems(wire)

	if len(problems) != 2 {
		t.Fatalf("MapProblems() = %v problems, want 2", len(problems))
	}
	if problems[0].ID != "4A" || problems[1].ID != "1504A" {
		t.Errorf("ids = %v %v, want 4A 1504A", problems[0].ID, problems[1].ID)
	}
	if problems[0].Name != "Watermelon" {
		t.Errorf("duplicate id must keep the first occurrence, got %v", problems[0].Name)
	}
}

func TestMapProblemsIDUniqueness(t *testing.T) {
	wire := []WireProblem{
		{ContestID: 4, Index: "A", Name: "a"},
		{ContestID: 44, Index: "A", Name: "b"},
		{ContestID: 4, Index: "B", Name: "c"},
	}

	problems := MapProblems(wire)

	seen := make(map[string]bool)
	for _, p := range problems {
		if seen[p.ID] {
			t.Fatalf("duplicate id %v in one snapshot", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestMapSubmissions(t *testing.T) {
	wire := []WireSubmission{
		{
			ID:                  1001,
			Problem:             WireProblem{ContestID: 4, Index: "A", Name: "Watermelon", Rating: 1200},
			ProgrammingLanguage: "GNU C++17",
			Verdict:             "OK",
			Testset:             "TESTS",
			PassedTestCount:     12,
			TimeConsumedMillis:  31,
			MemoryConsumedBytes: 102400,
			CreationTimeSeconds: 1700000000,
		},
		{ID: 1002, Problem: WireProblem{Name: "Orphan"}}, // no problem reference
	}

	records := MapSubmissions(wire)

	if len(records) != 1 {
		t.Fatalf("MapSubmissions() = %v records, want 1 (orphan skipped)", len(records))
	}
	r := records[0]
	if r.ID != 1001 || r.ProblemID() != "4A" {
		t.Errorf("record = id %v problem %v, want 1001 4A", r.ID, r.ProblemID())
	}
	if !r.Accepted() {
		t.Error("OK verdict should report accepted")
	}
}
