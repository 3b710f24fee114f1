package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gjagils/Grip/internal/llm"
	"github.com/gjagils/Grip/internal/store"
)

type mockProvider struct {
	reply string
	err   error
	calls int
}

func (m *mockProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockProvider) Name() string { return "mock" }

// testNow is a Monday, ISO week 3 of 2024.
var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "grip.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if provider == nil {
		provider = &mockProvider{reply: "ok"}
	}
	srv, err := NewServer(st, provider)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.now = func() time.Time { return testNow }
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestCheckInQuestionsShape(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodGet, "/v1/checkin/questions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Date        string           `json:"date"`
		Questions   []store.Question `json:"questions"`
		AlreadyDone bool             `json:"already_done"`
	}
	decodeBody(t, rec, &resp)
	if resp.Date != "2024-01-15" {
		t.Fatalf("unexpected date %q", resp.Date)
	}
	if resp.AlreadyDone {
		t.Fatal("fresh store should have no check-in")
	}
	if len(resp.Questions) < 5 || len(resp.Questions) > 7 {
		t.Fatalf("expected 5-7 questions, got %d", len(resp.Questions))
	}
	if !resp.Questions[0].IsCore || !resp.Questions[1].IsCore {
		t.Fatalf("core questions should come first: %+v", resp.Questions[:2])
	}
}

func TestCheckInQuestionsRejectsBadDate(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodGet, "/v1/checkin/questions?date=15-01-2024", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSaveCheckInAndDashboard(t *testing.T) {
	srv := newTestServer(t, nil)
	daily, err := srv.store.ActiveDailyQuestions(context.Background())
	if err != nil {
		t.Fatalf("daily questions: %v", err)
	}
	score := 8
	rec := doJSON(t, srv, http.MethodPost, "/v1/checkin", checkInRequest{
		Answers: []store.AnswerInput{{QuestionID: daily[0].ID, Score: &score, Text: "prima dag"}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save check-in: %d %s", rec.Code, rec.Body.String())
	}
	var saved struct {
		ID   int64  `json:"id"`
		Date string `json:"date"`
	}
	decodeBody(t, rec, &saved)
	if saved.ID == 0 || saved.Date != "2024-01-15" {
		t.Fatalf("unexpected save response: %+v", saved)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", rec.Code, rec.Body.String())
	}
	var dash struct {
		Today         string `json:"today"`
		HasCheckin    bool   `json:"has_checkin"`
		HasWeekReview bool   `json:"has_week_review"`
		Streak        int    `json:"streak"`
		Week          int    `json:"week"`
	}
	decodeBody(t, rec, &dash)
	if dash.Today != "2024-01-15" || !dash.HasCheckin || dash.HasWeekReview {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}
	if dash.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", dash.Streak)
	}
	if dash.Week != 3 {
		t.Fatalf("expected ISO week 3, got %d", dash.Week)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/checkin/questions", nil)
	var questions struct {
		AlreadyDone bool `json:"already_done"`
	}
	decodeBody(t, rec, &questions)
	if !questions.AlreadyDone {
		t.Fatal("expected already_done after save")
	}
}

func TestSaveCheckInUnknownQuestionMapsTo404(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodPost, "/v1/checkin", checkInRequest{
		Answers: []store.AnswerInput{{QuestionID: 9999, Text: "?"}},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWeekReviewRoundTrip(t *testing.T) {
	srv := newTestServer(t, nil)
	score := 7
	rec := doJSON(t, srv, http.MethodPut, "/v1/weekreview", weekReviewRequest{
		Score:              &score,
		WentWell:           "goede week",
		PrioritiesNextWeek: "afronden",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save review: %d %s", rec.Code, rec.Body.String())
	}
	var saved store.WeekReview
	decodeBody(t, rec, &saved)
	if saved.Year != 2024 || saved.WeekNumber != 3 {
		t.Fatalf("expected current ISO week defaults, got %+v", saved)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/weekreview", nil)
	var resp struct {
		Year      int               `json:"year"`
		Week      int               `json:"week"`
		Questions []store.Question  `json:"questions"`
		Existing  *store.WeekReview `json:"existing"`
	}
	decodeBody(t, rec, &resp)
	if resp.Existing == nil || resp.Existing.WentWell != "goede week" {
		t.Fatalf("expected existing review, got %+v", resp.Existing)
	}
	if len(resp.Questions) != 5 {
		t.Fatalf("expected 5 weekly questions, got %d", len(resp.Questions))
	}
}

func TestGoalEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doJSON(t, srv, http.MethodPost, "/v1/goals", store.GoalInput{Type: "yearly"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/v1/goals", store.GoalInput{Title: "Meer lezen", Type: "yearly"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal: %d %s", rec.Code, rec.Body.String())
	}
	var goal store.Goal
	decodeBody(t, rec, &goal)
	if goal.Year != 2024 {
		t.Fatalf("expected year default 2024, got %d", goal.Year)
	}

	status := "completed"
	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/v1/goals/%d", goal.ID), store.GoalPatch{Status: &status})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch goal: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPatch, "/v1/goals/4242", store.GoalPatch{Status: &status})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown goal, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/goals", nil)
	var overview struct {
		YearlyGoals    []store.Goal `json:"yearly_goals"`
		ArchivedGoals  []store.Goal `json:"archived_goals"`
		CurrentQuarter string       `json:"current_quarter"`
	}
	decodeBody(t, rec, &overview)
	if len(overview.YearlyGoals) != 0 || len(overview.ArchivedGoals) != 1 {
		t.Fatalf("completed goal should be archived: %+v", overview)
	}
	if overview.CurrentQuarter != "Q1" {
		t.Fatalf("expected Q1, got %q", overview.CurrentQuarter)
	}
}

func TestGoalTaskEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodPost, "/v1/goals", store.GoalInput{Title: "Opruimen", Type: "yearly"})
	var goal store.Goal
	decodeBody(t, rec, &goal)

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/v1/goals/%d/tasks", goal.ID), goalTaskRequest{Title: "zolder"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add task: %d %s", rec.Code, rec.Body.String())
	}
	var task store.GoalTask
	decodeBody(t, rec, &task)

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/v1/tasks/%d", task.ID), map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without completed flag, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/v1/tasks/%d", task.ID), map[string]interface{}{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch task: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/v1/tasks/%d", task.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete task: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/v1/tasks/%d", task.ID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestDailyTaskEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodPost, "/v1/daily-tasks", dailyTaskRequest{Title: "boodschappen"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var task store.DailyTask
	decodeBody(t, rec, &task)
	if task.Date != "2024-01-15" {
		t.Fatalf("expected date default today, got %q", task.Date)
	}

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/v1/daily-tasks/%d", task.ID), map[string]interface{}{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/daily-tasks", nil)
	var listing struct {
		Tasks []store.DailyTask `json:"tasks"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Tasks) != 1 || !listing.Tasks[0].Completed {
		t.Fatalf("unexpected listing: %+v", listing.Tasks)
	}
}

func TestTrackerEntryEndpointUpserts(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodPost, "/v1/trackers", store.TrackerInput{Name: "Hardlopen", Unit: "km"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create tracker: %d %s", rec.Code, rec.Body.String())
	}
	var tracker store.Tracker
	decodeBody(t, rec, &tracker)

	rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/v1/trackers/%d/entries", tracker.ID), map[string]interface{}{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without value, got %d", rec.Code)
	}

	for _, value := range []float64{5, 7} {
		rec = doJSON(t, srv, http.MethodPut, fmt.Sprintf("/v1/trackers/%d/entries", tracker.ID),
			map[string]interface{}{"value": value})
		if rec.Code != http.StatusOK {
			t.Fatalf("upsert %v: %d %s", value, rec.Code, rec.Body.String())
		}
	}

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/v1/trackers/%d/entries", tracker.ID), nil)
	var entries struct {
		Entries []store.TrackerEntry `json:"entries"`
	}
	decodeBody(t, rec, &entries)
	if len(entries.Entries) != 1 || entries.Entries[0].Value != 7 {
		t.Fatalf("expected single overwritten entry, got %+v", entries.Entries)
	}
}

func TestAskInsightRecordsHistory(t *testing.T) {
	provider := &mockProvider{reply: "blijf zo doorgaan"}
	srv := newTestServer(t, provider)

	rec := doJSON(t, srv, http.MethodPost, "/v1/insights/ask", askRequest{Question: "hoe gaat het?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("ask: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Response string        `json:"response"`
		Insight  store.Insight `json:"insight"`
		Provider string        `json:"provider"`
	}
	decodeBody(t, rec, &resp)
	if resp.Response != "blijf zo doorgaan" || resp.Provider != "mock" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Insight.ContextType != "general" {
		t.Fatalf("expected general context type, got %q", resp.Insight.ContextType)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one provider call, got %d", provider.calls)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/insights", nil)
	var history struct {
		History []store.Insight `json:"history"`
	}
	decodeBody(t, rec, &history)
	if len(history.History) != 1 || history.History[0].Prompt != "hoe gaat het?" {
		t.Fatalf("unexpected history: %+v", history.History)
	}
}

func TestAskInsightBlankQuestion(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := doJSON(t, srv, http.MethodPost, "/v1/insights/ask", askRequest{Question: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAskInsightProviderFailure(t *testing.T) {
	srv := newTestServer(t, &mockProvider{err: errors.New("model unavailable")})
	rec := doJSON(t, srv, http.MethodPost, "/v1/insights/ask", askRequest{Question: "wat nu?"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, srv, http.MethodGet, "/v1/insights", nil)
	var history struct {
		History []store.Insight `json:"history"`
	}
	decodeBody(t, rec, &history)
	if len(history.History) != 0 {
		t.Fatalf("failed calls should not be recorded: %+v", history.History)
	}
}

func TestFocusView(t *testing.T) {
	srv := newTestServer(t, nil)
	quarter := "Q1"
	if _, err := srv.store.CreateGoal(context.Background(), store.GoalInput{
		Title: "Sneller worden", Type: "quarterly", Quarter: &quarter, Year: 2024,
	}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if _, err := srv.store.SaveWeekReview(context.Background(), 2024, 2,
		store.WeekReviewInput{PrioritiesNextWeek: "intervallen"}); err != nil {
		t.Fatalf("save review: %v", err)
	}

	rec := doJSON(t, srv, http.MethodGet, "/v1/focus", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("focus: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Priorities     string       `json:"priorities"`
		QuarterlyGoals []store.Goal `json:"quarterly_goals"`
		Quarter        string       `json:"quarter"`
	}
	decodeBody(t, rec, &resp)
	if resp.Priorities != "intervallen" {
		t.Fatalf("expected fallback priorities, got %q", resp.Priorities)
	}
	if len(resp.QuarterlyGoals) != 1 || resp.Quarter != "Q1" {
		t.Fatalf("unexpected focus payload: %+v", resp)
	}
}

func TestCheckInHistoryGroupsByDate(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()
	daily, err := srv.store.ActiveDailyQuestions(ctx)
	if err != nil {
		t.Fatalf("daily questions: %v", err)
	}
	for _, date := range []string{"2024-01-14", "2024-01-15"} {
		if _, err := srv.store.SaveCheckIn(ctx, date, []store.AnswerInput{
			{QuestionID: daily[0].ID, Text: "dag " + date},
		}); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/v1/checkin/history", nil)
	var resp struct {
		History []checkInDay `json:"history"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.History) != 2 {
		t.Fatalf("expected 2 days, got %d", len(resp.History))
	}
	if resp.History[0].Date != "2024-01-15" || resp.History[1].Date != "2024-01-14" {
		t.Fatalf("expected newest first: %+v", resp.History)
	}
}

func TestLogsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	doJSON(t, srv, http.MethodGet, "/v1/dashboard", nil)
	rec := doJSON(t, srv, http.MethodGet, "/v1/logs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logs: %d", rec.Code)
	}
	var resp struct {
		Entries []map[string]interface{} `json:"entries"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Entries) == 0 {
		t.Fatal("expected captured log entries")
	}
}
