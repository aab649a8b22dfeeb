package codeforces

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cfdesk/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, logger.New("error", false))
}

func TestFetchProblems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/problemset.problems" {
			t.Errorf("path = %v, want /problemset.problems", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {"problems": [
				{"contestId": 4, "index": "A", "name": "Watermelon", "tags": ["math"], "rating": 1200},
				{"contestId": 1504, "index": "A", "name": "Déjà Vu", "tags": ["strings"]}
			]}
		}`))
	})

	problems, err := c.FetchProblems(context.Background())
	if err != nil {
		t.Fatalf("FetchProblems() error = %v", err)
	}
	if len(problems) != 2 {
		t.Fatalf("FetchProblems() = %v problems, want 2", len(problems))
	}
	if problems[0].ContestID != 4 || problems[0].Rating != 1200 {
		t.Errorf("first problem = %+v, want contest 4 rating 1200", problems[0])
	}
}

func TestFetchUserStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("handle"); got != "tourist" {
			t.Errorf("handle = %v, want tourist", got)
		}
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": [
				{"id": 1001, "problem": {"contestId": 4, "index": "A", "name": "Watermelon"},
				 "programmingLanguage": "GNU C++17", "verdict": "OK", "testset": "TESTS",
				 "passedTestCount": 12, "timeConsumedMillis": 31,
				 "memoryConsumedBytes": 102400, "creationTimeSeconds": 1700000000}
			]
		}`))
	})

	subs, err := c.FetchUserStatus(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("FetchUserStatus() error = %v", err)
	}
	if len(subs) != 1 || subs[0].ID != 1001 {
		t.Fatalf("FetchUserStatus() = %+v, want one submission id 1001", subs)
	}
}

func TestCallRemoteStatusFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "FAILED", "comment": "handle: User not found"}`))
	})

	_, err := c.FetchUserStatus(context.Background(), "nobody")
	if !errors.Is(err, ErrRemoteStatus) {
		t.Fatalf("error = %v, want ErrRemoteStatus", err)
	}
	if errors.Is(err, ErrNetwork) {
		t.Error("remote status failure must not double as a network failure")
	}
}

func TestCallNetworkFailure(t *testing.T) {
	// Malformed payload counts as a transport/parse failure.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.FetchProblems(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
}

func TestCallUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", logger.New("error", false))

	_, err := c.FetchProblems(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("error = %v, want ErrNetwork", err)
	}
}
