package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"cfdesk/internal/domain"
)

func TestVerdictText(t *testing.T) {
	tests := []struct {
		name    string
		verdict domain.Verdict
		passed  int
		want    string
	}{
		{name: "accepted", verdict: domain.VerdictOK, passed: 50, want: "Accepted"},
		{name: "compilation error", verdict: domain.VerdictCompilationError, passed: 0, want: "Compilation Error"},
		{name: "wrong answer on next test", verdict: domain.VerdictWrongAnswer, passed: 2, want: "Wrong Answer on test 3"},
		{name: "tle on next test", verdict: domain.VerdictTimeLimitExceeded, passed: 10, want: "Time Limit Exceeded on test 11"},
		{name: "mle on next test", verdict: domain.VerdictMemoryLimitExceeded, passed: 0, want: "Memory Limit Exceeded on test 1"},
		{name: "runtime error on next test", verdict: domain.VerdictRuntimeError, passed: 4, want: "Runtime Error on test 5"},
		{name: "other verdict no suffix", verdict: "IDLENESS_LIMIT_EXCEEDED", passed: 3, want: "Idleness Limit Exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerdictText(tt.verdict, tt.passed); got != tt.want {
				t.Errorf("VerdictText(%v, %v) = %q, want %q", tt.verdict, tt.passed, got, tt.want)
			}
		})
	}
}

func TestMemoryKB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int64
	}{
		{0, 0},
		{1024, 1},
		{1536, 2},  // rounds to nearest
		{511, 0},   // rounds down
		{102400, 100},
	}

	for _, tt := range tests {
		if got := memoryKB(tt.bytes); got != tt.want {
			t.Errorf("memoryKB(%v) = %v, want %v", tt.bytes, got, tt.want)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	records := []domain.SubmissionRecord{
		{
			ID:                  1001,
			ContestID:           4,
			Index:               "A",
			Name:                `He said "hi"`,
			Rating:              1200,
			ProgrammingLanguage: "GNU C++17",
			Verdict:             domain.VerdictWrongAnswer,
			PassedTestCount:     2,
			TimeConsumedMillis:  31,
			MemoryConsumedBytes: 102400,
			CreationTimeSeconds: 1700000000,
		},
	}

	data, err := Render(records, FormatCSV)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "\xEF\xBB\xBF") {
		t.Error("CSV output must start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, "\xEF\xBB\xBF"), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("CSV has %v lines, want header + 1 row", len(lines))
	}
	if lines[0] != csvHeader {
		t.Errorf("header = %q, want %q", lines[0], csvHeader)
	}

	row := lines[1]
	if !strings.Contains(row, `"Wrong Answer on test 3"`) {
		t.Errorf("row %q missing quoted verdict cell", row)
	}
	if !strings.Contains(row, `"He said ""hi"""`) {
		t.Errorf("row %q missing doubled inner quotes", row)
	}
	if !strings.Contains(row, ",100,") {
		t.Errorf("row %q missing 100 KB memory cell", row)
	}
}

func TestRenderNewestFirst(t *testing.T) {
	records := []domain.SubmissionRecord{
		{ID: 1, ContestID: 4, Index: "A", CreationTimeSeconds: 100},
		{ID: 2, ContestID: 4, Index: "B", CreationTimeSeconds: 200},
	}

	data, err := Render(records, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var out []domain.SubmissionRecord
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 1 {
		t.Errorf("JSON order = %+v, want newest first", out)
	}

	if !strings.HasPrefix(string(data), "[\n  {") {
		t.Error("JSON output should be pretty-printed")
	}
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(nil, FormatCSV)
	if !errors.Is(err, ErrNoSubmissions) {
		t.Errorf("Render(no records) error = %v, want ErrNoSubmissions", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	records := []domain.SubmissionRecord{{ID: 1, ContestID: 4, Index: "A"}}
	if _, err := Render(records, Format("xml")); err == nil {
		t.Error("Render(xml) should return an error")
	}
}
