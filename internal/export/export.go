package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cfdesk/internal/domain"
)

// Format selects the export rendering.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrNoSubmissions is returned when there is nothing to export.
// It is a local, recoverable condition for the caller to report.
var ErrNoSubmissions = errors.New("no submissions to export")

// bom guarantees correct decoding by common spreadsheet tools.
const bom = "\xEF\xBB\xBF"

const csvHeader = "Submission ID, Contest, Index, Problem Name, Rating, Verdict, Language, Time (ms), Memory (KB), Date Time"

// Render formats records into a downloadable document. The input is
// expected in ascending creation-time order (as the store queries it)
// and is reversed so output reads newest first.
func Render(records []domain.SubmissionRecord, format Format) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoSubmissions
	}

	newest := make([]domain.SubmissionRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		newest = append(newest, records[i])
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(newest, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal submissions: %w", err)
		}
		return data, nil
	case FormatCSV:
		return renderCSV(newest), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func renderCSV(records []domain.SubmissionRecord) []byte {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, r := range records {
		rating := ""
		if r.Rating > 0 {
			rating = strconv.Itoa(r.Rating)
		}

		cells := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.ContestID),
			r.Index,
			quote(r.Name),
			rating,
			quote(VerdictText(r.Verdict, r.PassedTestCount)),
			quote(r.ProgrammingLanguage),
			strconv.FormatInt(r.TimeConsumedMillis, 10),
			strconv.FormatInt(memoryKB(r.MemoryConsumedBytes), 10),
			quote(formatDateTime(r.CreationTimeSeconds)),
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// quote wraps a text cell in double quotes, doubling any literal
// double-quote characters inside.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// memoryKB converts bytes to kilobytes, rounded to nearest, floored at 0.
func memoryKB(bytes int64) int64 {
	kb := int64(math.Round(float64(bytes) / 1024.0))
	if kb < 0 {
		return 0
	}
	return kb
}

// formatDateTime renders the local calendar representation of a
// creation timestamp.
func formatDateTime(seconds int64) string {
	return time.Unix(seconds, 0).Format("2006-01-02 15:04:05")
}

// failedOnTest lists the verdicts whose text carries the index of the
// first failing test (one past the passed count).
var failedOnTest = map[domain.Verdict]bool{
	domain.VerdictWrongAnswer:         true,
	domain.VerdictTimeLimitExceeded:   true,
	domain.VerdictMemoryLimitExceeded: true,
	domain.VerdictRuntimeError:        true,
}

// VerdictText renders the human-readable verdict cell.
func VerdictText(v domain.Verdict, passedTestCount int) string {
	switch {
	case v == domain.VerdictOK:
		return "Accepted"
	case v == domain.VerdictCompilationError:
		return "Compilation Error"
	case failedOnTest[v]:
		return fmt.Sprintf("%s on test %d", humanize(v), passedTestCount+1)
	default:
		return humanize(v)
	}
}

// humanize turns WRONG_ANSWER into "Wrong Answer".
func humanize(v domain.Verdict) string {
	words := strings.Split(string(v), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
