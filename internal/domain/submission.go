package domain

// Verdict is the remote judge outcome of one submission.
type Verdict string

const (
	VerdictOK                  Verdict = "OK"
	VerdictWrongAnswer         Verdict = "WRONG_ANSWER"
	VerdictTimeLimitExceeded   Verdict = "TIME_LIMIT_EXCEEDED"
	VerdictMemoryLimitExceeded Verdict = "MEMORY_LIMIT_EXCEEDED"
	VerdictRuntimeError        Verdict = "RUNTIME_ERROR"
	VerdictCompilationError    Verdict = "COMPILATION_ERROR"
)

// SubmissionRecord is a locally persisted, deduplicated view of one
// remote submission event, keyed by the remote submission id.
type SubmissionRecord struct {
	ID                  int64    `json:"id"`
	ContestID           int      `json:"contestId"`
	Index               string   `json:"index"`
	Name                string   `json:"name"`
	Rating              int      `json:"rating,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	Verdict             Verdict  `json:"verdict"`
	Testset             string   `json:"testset"`
	PassedTestCount     int      `json:"passedTestCount"`
	TimeConsumedMillis  int64    `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64    `json:"memoryConsumedBytes"`
	CreationTimeSeconds int64    `json:"creationTimeSeconds"`

	// Code is sticky: it is populated out of band and a later merge
	// that omits it must never clear a previously stored value.
	Code string `json:"code,omitempty"`
}

// ProblemID returns the catalog identity of the submitted problem.
func (r *SubmissionRecord) ProblemID() string {
	return ProblemID(r.ContestID, r.Index)
}

// Accepted reports whether the submission passed all tests.
func (r *SubmissionRecord) Accepted() bool {
	return r.Verdict == VerdictOK
}
