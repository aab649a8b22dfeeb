package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"cfdesk/internal/catalog"
	"cfdesk/internal/domain"
	"cfdesk/internal/httpserver/deps"
	"cfdesk/internal/httpserver/routes"
	"cfdesk/internal/logger"
	redisstore "cfdesk/internal/store/redis"
)

type testAPI struct {
	router  http.Handler
	catalog *catalog.Catalog
	store   *redisstore.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redisstore.NewStore(client)
	cat := catalog.New()

	problems := []domain.Problem{
		{ID: "4A", ContestID: 4, Index: "A", Name: "Watermelon", Tags: []string{"math"}, Rating: 800},
		{ID: "44A", ContestID: 44, Index: "A", Name: "Indian Summer", Tags: []string{"implementation"}, Rating: 900},
		{ID: "1504A", ContestID: 1504, Index: "A", Name: "Déjà Vu", Tags: []string{"strings"}, Rating: 900},
		{ID: "1000B", ContestID: 1000, Index: "B", Name: "Light It Up", Tags: []string{"greedy"}, Rating: 1500},
	}
	cat.Replace(problems, time.Now())
	classifier := catalog.NewClassifier([]string{"math", "strings"})
	cat.SetSystemFolders(classifier.Classify(problems))

	d := deps.Deps{
		Logger:         logger.New("error", false),
		StartTime:      time.Now(),
		Handle:         "tourist",
		RedisClient:    client,
		Catalog:        cat,
		Store:          store,
		RefreshTrigger: make(chan struct{}, 1),
		SyncTrigger:    make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	return &testAPI{router: r, catalog: cat, store: store}
}

func (a *testAPI) do(t *testing.T, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/search?q=4a", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /search = %v, want 200", rec.Code)
	}

	var result domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("search response does not parse: %v", err)
	}
	if len(result.Global) == 0 || result.Global[0].ID != "4A" {
		t.Errorf("global results = %+v, want exact id 4A first", result.Global)
	}
	// 4A sits in the sys_math folder, so it shows up in the user list too.
	if len(result.My) == 0 || result.My[0].ID != "4A" {
		t.Errorf("my results = %+v, want 4A from the math folder", result.My)
	}
}

func TestSearchEmptyFilterReturnsEmptyLists(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/search", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /search = %v, want 200", rec.Code)
	}

	var result domain.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.My == nil || result.Global == nil {
		t.Error("empty search must return empty lists, not null")
	}
	if len(result.My) != 0 || len(result.Global) != 0 {
		t.Errorf("empty search returned %v/%v results", len(result.My), len(result.Global))
	}
}

func TestSampleEndpointFailureModes(t *testing.T) {
	api := newTestAPI(t)

	// A filter nothing matches: distinct from an empty catalog.
	rec := api.do(t, http.MethodGet, "/sample?min_rating=3400", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /sample (impossible filter) = %v, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no problem matches") {
		t.Errorf("body = %q, want pool-empty message", rec.Body.String())
	}

	api.catalog.Replace(nil, time.Time{})
	rec = api.do(t, http.MethodGet, "/sample", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /sample (empty catalog) = %v, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "catalog is empty") {
		t.Errorf("body = %q, want catalog-empty message", rec.Body.String())
	}
}

func TestSampleExcludesSolved(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	// Mark everything except 1000B as solved.
	solved := []domain.SubmissionRecord{
		{ID: 1, ContestID: 4, Index: "A", Verdict: domain.VerdictOK, CreationTimeSeconds: 1},
		{ID: 2, ContestID: 44, Index: "A", Verdict: domain.VerdictOK, CreationTimeSeconds: 2},
		{ID: 3, ContestID: 1504, Index: "A", Verdict: domain.VerdictOK, CreationTimeSeconds: 3},
	}
	if _, err := api.store.Merge(ctx, solved); err != nil {
		t.Fatal(err)
	}

	rec := api.do(t, http.MethodGet, "/sample?exclude_solved=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sample = %v, want 200", rec.Code)
	}
	var p domain.Problem
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if p.ID != "1000B" {
		t.Errorf("sampled %v, want the only unsolved problem 1000B", p.ID)
	}
}

func TestFolderLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/folders", `{"title": "Ladder 1400"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /folders = %v, body %q", rec.Code, rec.Body.String())
	}
	var folder domain.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &folder); err != nil {
		t.Fatal(err)
	}
	if folder.ID == "" || folder.Slug != "ladder-1400" || !folder.IsCustom {
		t.Errorf("created folder = %+v", folder)
	}

	rec = api.do(t, http.MethodPost, "/folders/"+folder.ID+"/problems", `{"problemId": "4A"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add problem = %v, body %q", rec.Code, rec.Body.String())
	}

	// Same problem again is a conflict, not a silent no-op.
	rec = api.do(t, http.MethodPost, "/folders/"+folder.ID+"/problems", `{"problemId": "4A"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate add = %v, want 409", rec.Code)
	}

	// A problem outside the catalog cannot be added.
	rec = api.do(t, http.MethodPost, "/folders/"+folder.ID+"/problems", `{"problemId": "9999Z"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown problem add = %v, want 404", rec.Code)
	}

	rec = api.do(t, http.MethodPatch, "/folders/"+folder.ID, `{"title": "Ladder 1600"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("rename folder = %v, body %q", rec.Code, rec.Body.String())
	}
	var renamed domain.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &renamed); err != nil {
		t.Fatal(err)
	}
	if renamed.Title != "Ladder 1600" || renamed.Slug != "ladder-1600" {
		t.Errorf("renamed folder = %+v, want new title and re-derived slug", renamed)
	}
	if len(renamed.Problems) != 1 {
		t.Errorf("rename dropped the folder's problems: %+v", renamed.Problems)
	}

	rec = api.do(t, http.MethodPatch, "/folders/nope", `{"title": "Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("rename unknown folder = %v, want 404", rec.Code)
	}

	rec = api.do(t, http.MethodPatch, "/folders/"+folder.ID, `{"title": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("rename with empty title = %v, want 400", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/folders", "")
	if rec.Code != http.StatusOK {
		t.Fatal(rec.Code)
	}
	var folders []domain.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &folders); err != nil {
		t.Fatal(err)
	}
	// Two system folders plus the custom one.
	if len(folders) != 3 {
		t.Errorf("GET /folders = %v folders, want 3", len(folders))
	}

	rec = api.do(t, http.MethodDelete, "/folders/"+folder.ID+"/problems/4A", "")
	if rec.Code != http.StatusOK {
		t.Errorf("remove problem = %v, want 200", rec.Code)
	}

	rec = api.do(t, http.MethodDelete, "/folders/"+folder.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE folder = %v, want 204", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/folders/"+folder.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET deleted folder = %v, want 404", rec.Code)
	}
}

func TestSystemFoldersAreReadOnly(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodDelete, "/folders/sys_math", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("DELETE system folder = %v, want 403", rec.Code)
	}
	rec = api.do(t, http.MethodPost, "/folders/sys_math/problems", `{"problemId": "4A"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("edit system folder = %v, want 403", rec.Code)
	}
	rec = api.do(t, http.MethodPatch, "/folders/sys_math", `{"title": "Renamed"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("rename system folder = %v, want 403", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/folders/sys_math", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET system folder = %v, want 200", rec.Code)
	}
}

func TestSubmissionEndpoints(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	records := []domain.SubmissionRecord{
		{ID: 1, ContestID: 4, Index: "A", Name: "Watermelon", Verdict: domain.VerdictOK, CreationTimeSeconds: 100},
		{ID: 2, ContestID: 44, Index: "A", Name: "Indian Summer", Verdict: domain.VerdictWrongAnswer, CreationTimeSeconds: 300},
		{ID: 3, ContestID: 1504, Index: "A", Name: "Déjà Vu", Verdict: domain.VerdictOK, CreationTimeSeconds: 200},
	}
	if _, err := api.store.Merge(ctx, records); err != nil {
		t.Fatal(err)
	}

	rec := api.do(t, http.MethodGet, "/submissions/count", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":3`) {
		t.Errorf("GET /submissions/count = %v %q", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/submissions/recent?limit=2", "")
	var recent []domain.SubmissionRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != 2 || recent[1].ID != 3 {
		t.Errorf("recent = %+v, want newest two first", recent)
	}

	rec = api.do(t, http.MethodDelete, "/submissions", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE /submissions = %v, want 204", rec.Code)
	}
	rec = api.do(t, http.MethodGet, "/submissions/count", "")
	if !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Errorf("count after clear = %q", rec.Body.String())
	}
}

func TestExportEndpoint(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	// Empty store exports nothing.
	rec := api.do(t, http.MethodGet, "/export?format=csv", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("export with no submissions = %v, want 404", rec.Code)
	}

	records := []domain.SubmissionRecord{
		{ID: 1, ContestID: 4, Index: "A", Name: "Watermelon", Verdict: domain.VerdictOK,
			ProgrammingLanguage: "GNU C++17", CreationTimeSeconds: 100},
	}
	if _, err := api.store.Merge(ctx, records); err != nil {
		t.Fatal(err)
	}

	rec = api.do(t, http.MethodGet, "/export?format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /export = %v", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "\xEF\xBB\xBF") {
		t.Error("CSV body must start with a BOM")
	}

	rec = api.do(t, http.MethodGet, "/export?format=xml", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("export with unknown format = %v, want 400", rec.Code)
	}

	rejected := []domain.SubmissionRecord{
		{ID: 2, ContestID: 44, Index: "A", Name: "Indian Summer", Verdict: domain.VerdictWrongAnswer,
			CreationTimeSeconds: 200},
	}
	if _, err := api.store.Merge(ctx, rejected); err != nil {
		t.Fatal(err)
	}
	rec = api.do(t, http.MethodGet, "/export?format=json&only_accepted=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("accepted-only export = %v", rec.Code)
	}
	var exported []domain.SubmissionRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
		t.Fatal(err)
	}
	if len(exported) != 1 || !exported[0].Accepted() {
		t.Errorf("accepted-only export = %+v, want the single accepted record", exported)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /catalog = %v", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"problems":4`) {
		t.Errorf("catalog status = %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"stale":false`) {
		t.Errorf("fresh catalog reported stale: %q", rec.Body.String())
	}

	// First trigger fills the buffered channel, a second one while no
	// refresher is draining it reports busy.
	rec = api.do(t, http.MethodPost, "/catalog/refresh", "")
	if rec.Code != http.StatusAccepted {
		t.Errorf("first refresh trigger = %v, want 202", rec.Code)
	}
	rec = api.do(t, http.MethodPost, "/catalog/refresh", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second refresh trigger = %v, want 429", rec.Code)
	}
}
