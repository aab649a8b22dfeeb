package codeforces

import "encoding/json"

// apiEnvelope is the top-level shape every endpoint answers with:
// {"status": "OK"|"FAILED", "comment": "...", "result": ...}
type apiEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

const statusOK = "OK"

// problemsResult is the payload of problemset.problems.
type problemsResult struct {
	Problems []WireProblem `json:"problems"`
}

// WireProblem is the loosely-typed remote problem entry. Fields may be
// absent; nothing here reaches the domain model without the mapper.
type WireProblem struct {
	ContestID int      `json:"contestId,omitempty"`
	Index     string   `json:"index,omitempty"`
	Name      string   `json:"name,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Rating    int      `json:"rating,omitempty"`
}

// WireSubmission is one entry of the user.status payload.
type WireSubmission struct {
	ID                  int64       `json:"id"`
	Problem             WireProblem `json:"problem"`
	ProgrammingLanguage string      `json:"programmingLanguage,omitempty"`
	Verdict             string      `json:"verdict,omitempty"`
	Testset             string      `json:"testset,omitempty"`
	PassedTestCount     int         `json:"passedTestCount"`
	TimeConsumedMillis  int64       `json:"timeConsumedMillis"`
	MemoryConsumedBytes int64       `json:"memoryConsumedBytes"`
	CreationTimeSeconds int64       `json:"creationTimeSeconds"`
}
