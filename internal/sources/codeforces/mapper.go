package codeforces

import (
	"cfdesk/internal/domain"
)

// MapProblems normalizes the wire problem list into catalog problems.
//
// Entries without a contest id or index cannot be given a stable
// identity and are skipped. A duplicate id keeps the first occurrence,
// preserving the catalog uniqueness invariant.
func MapProblems(wire []WireProblem) []domain.Problem {
	problems := make([]domain.Problem, 0, len(wire))
	seen := make(map[string]bool, len(wire))

	for _, w := range wire {
		if w.ContestID == 0 || w.Index == "" {
			continue
		}
		id := domain.ProblemID(w.ContestID, w.Index)
		if seen[id] {
			continue
		}
		seen[id] = true

		problems = append(problems, domain.Problem{
			ID:        id,
			ContestID: w.ContestID,
			Index:     w.Index,
			Name:      w.Name,
			Tags:      w.Tags,
			Rating:    w.Rating,
		})
	}

	return problems
}

// MapSubmissions normalizes the wire submission list into store
// records. Entries whose problem reference is missing cannot be keyed
// meaningfully and are skipped without aborting the batch.
func MapSubmissions(wire []WireSubmission) []domain.SubmissionRecord {
	records := make([]domain.SubmissionRecord, 0, len(wire))

	for _, w := range wire {
		if w.ID == 0 || w.Problem.ContestID == 0 || w.Problem.Index == "" {
			continue
		}

		records = append(records, domain.SubmissionRecord{
			ID:                  w.ID,
			ContestID:           w.Problem.ContestID,
			Index:               w.Problem.Index,
			Name:                w.Problem.Name,
			Rating:              w.Problem.Rating,
			Tags:                w.Problem.Tags,
			ProgrammingLanguage: w.ProgrammingLanguage,
			Verdict:             domain.Verdict(w.Verdict),
			Testset:             w.Testset,
			PassedTestCount:     w.PassedTestCount,
			TimeConsumedMillis:  w.TimeConsumedMillis,
			MemoryConsumedBytes: w.MemoryConsumedBytes,
			CreationTimeSeconds: w.CreationTimeSeconds,
		})
	}

	return records
}
