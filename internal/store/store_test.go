package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "grip.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSeedQuestions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	daily, err := st.ActiveDailyQuestions(ctx)
	if err != nil {
		t.Fatalf("daily questions: %v", err)
	}
	core := 0
	for _, q := range daily {
		if q.IsCore {
			core++
		}
	}
	if core != 2 {
		t.Fatalf("expected 2 core daily questions, got %d", core)
	}
	if len(daily)-core != 13 {
		t.Fatalf("expected 13 pool questions, got %d", len(daily)-core)
	}
	weekly, err := st.WeeklyQuestions(ctx)
	if err != nil {
		t.Fatalf("weekly questions: %v", err)
	}
	if len(weekly) != 5 {
		t.Fatalf("expected 5 weekly questions, got %d", len(weekly))
	}
}

func TestSeedQuestionsIdempotent(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if err := st.seedQuestions(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	daily, err := st.ActiveDailyQuestions(ctx)
	if err != nil {
		t.Fatalf("daily questions: %v", err)
	}
	if len(daily) != 15 {
		t.Fatalf("expected seed to run once, got %d daily questions", len(daily))
	}
}

func TestSaveCheckInReplacesAnswers(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	daily, err := st.ActiveDailyQuestions(ctx)
	if err != nil {
		t.Fatalf("daily questions: %v", err)
	}
	var scoreQ, openQ Question
	for _, q := range daily {
		if q.Type == "score" && scoreQ.ID == 0 {
			scoreQ = q
		}
		if q.Type == "open" && openQ.ID == 0 {
			openQ = q
		}
	}

	score := 7
	first, err := st.SaveCheckIn(ctx, "2024-01-10", []AnswerInput{
		{QuestionID: scoreQ.ID, Score: &score},
		{QuestionID: openQ.ID, Text: "eerste antwoord"},
	})
	if err != nil {
		t.Fatalf("save check-in: %v", err)
	}

	score = 9
	second, err := st.SaveCheckIn(ctx, "2024-01-10", []AnswerInput{
		{QuestionID: scoreQ.ID, Score: &score},
	})
	if err != nil {
		t.Fatalf("resave check-in: %v", err)
	}
	if first != second {
		t.Fatalf("expected same check-in id, got %d and %d", first, second)
	}

	rows, err := st.CheckInHistory(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected old answers replaced, got %d rows", len(rows))
	}
	if rows[0].AnswerScore == nil || *rows[0].AnswerScore != 9 {
		t.Fatalf("unexpected answer: %+v", rows[0])
	}

	checkIn, err := st.CheckInByDate(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("check-in by date: %v", err)
	}
	if checkIn == nil || !checkIn.Completed {
		t.Fatalf("expected completed check-in, got %+v", checkIn)
	}
}

func TestSaveCheckInUnknownQuestion(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_, err := st.SaveCheckIn(ctx, "2024-01-10", []AnswerInput{{QuestionID: 9999, Text: "?"}})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCompletedCheckInDatesDescending(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	for _, date := range []string{"2024-01-08", "2024-01-10", "2024-01-09"} {
		if _, err := st.SaveCheckIn(ctx, date, nil); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}
	dates, err := st.CompletedCheckInDates(ctx)
	if err != nil {
		t.Fatalf("dates: %v", err)
	}
	want := []string{"2024-01-10", "2024-01-09", "2024-01-08"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], dates[i])
		}
	}
}

func TestWeekReviewUpsert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	score := 6
	if _, err := st.SaveWeekReview(ctx, 2024, 3, WeekReviewInput{Score: &score, WentWell: "sporten"}); err != nil {
		t.Fatalf("save review: %v", err)
	}
	score = 8
	review, err := st.SaveWeekReview(ctx, 2024, 3, WeekReviewInput{Score: &score, WentWell: "nog steeds sporten"})
	if err != nil {
		t.Fatalf("resave review: %v", err)
	}
	if review.Score == nil || *review.Score != 8 {
		t.Fatalf("expected updated score, got %+v", review)
	}
	reviews, err := st.LatestWeekReviews(ctx, 10)
	if err != nil {
		t.Fatalf("latest reviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected a single row after upsert, got %d", len(reviews))
	}
}

func TestCurrentPrioritiesFallback(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if _, err := st.SaveWeekReview(ctx, 2024, 2, WeekReviewInput{PrioritiesNextWeek: "plannen"}); err != nil {
		t.Fatalf("save review: %v", err)
	}
	priorities, err := st.CurrentPriorities(ctx, 2024, 5)
	if err != nil {
		t.Fatalf("priorities: %v", err)
	}
	if priorities != "plannen" {
		t.Fatalf("expected fallback to latest review, got %q", priorities)
	}
}

func TestGoalLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	quarter := "Q1"
	goal, err := st.CreateGoal(ctx, GoalInput{Title: "Marathon lopen", Type: "quarterly", Quarter: &quarter, Year: 2024})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if goal.Status != "active" {
		t.Fatalf("expected active status, got %q", goal.Status)
	}

	status := "completed"
	updated, err := st.UpdateGoal(ctx, goal.ID, GoalPatch{Status: &status})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if updated.Status != "completed" {
		t.Fatalf("expected completed, got %q", updated.Status)
	}

	if _, err := st.AddGoalUpdate(ctx, goal.ID, "goede voortgang", nil, nil); err != nil {
		t.Fatalf("add goal update: %v", err)
	}
	updates, err := st.GoalUpdates(ctx, goal.ID)
	if err != nil {
		t.Fatalf("goal updates: %v", err)
	}
	if len(updates) != 1 || updates[0].Note != "goede voortgang" {
		t.Fatalf("unexpected updates: %+v", updates)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_, err := st.CreateGoal(ctx, GoalInput{Type: "yearly", Year: 2024})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for missing title, got %v", err)
	}
	_, err = st.CreateGoal(ctx, GoalInput{Title: "x", Type: "monthly", Year: 2024})
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for bad type, got %v", err)
	}
}

func TestUpdateGoalNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	title := "nieuw"
	_, err := st.UpdateGoal(ctx, 4242, GoalPatch{Title: &title})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGoalTaskOrderAndDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	goal, err := st.CreateGoal(ctx, GoalInput{Title: "Boek schrijven", Type: "yearly", Year: 2024})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	var tasks []GoalTask
	for _, title := range []string{"outline", "eerste hoofdstuk", "redactie"} {
		task, err := st.AddGoalTask(ctx, goal.ID, title)
		if err != nil {
			t.Fatalf("add task %q: %v", title, err)
		}
		tasks = append(tasks, *task)
	}
	if tasks[0].SortOrder >= tasks[1].SortOrder || tasks[1].SortOrder >= tasks[2].SortOrder {
		t.Fatalf("expected increasing sort order: %+v", tasks)
	}

	if err := st.DeleteGoalTask(ctx, tasks[1].ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	remaining, err := st.TasksForGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("tasks for goal: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining tasks, got %d", len(remaining))
	}
	if remaining[0].SortOrder != tasks[0].SortOrder || remaining[1].SortOrder != tasks[2].SortOrder {
		t.Fatalf("sibling sort order changed: %+v", remaining)
	}
}

func TestGoalDeleteCascadesTasks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	goal, err := st.CreateGoal(ctx, GoalInput{Title: "Opruimen", Type: "yearly", Year: 2024})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if _, err := st.AddGoalTask(ctx, goal.ID, "zolder"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := st.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	tasks, err := st.TasksForGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("tasks for goal: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected tasks to cascade away, got %d", len(tasks))
	}
}

func TestDailyTaskLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	task, err := st.CreateDailyTask(ctx, "boodschappen", "2024-01-10")
	if err != nil {
		t.Fatalf("create daily task: %v", err)
	}
	checkInID, err := st.SaveCheckIn(ctx, "2024-01-10", nil)
	if err != nil {
		t.Fatalf("save check-in: %v", err)
	}
	if err := st.SetDailyTaskCompleted(ctx, task.ID, true, &checkInID); err != nil {
		t.Fatalf("complete daily task: %v", err)
	}
	tasks, err := st.DailyTasks(ctx, "2024-01-10")
	if err != nil {
		t.Fatalf("daily tasks: %v", err)
	}
	if len(tasks) != 1 || !tasks[0].Completed || tasks[0].CheckInID == nil || *tasks[0].CheckInID != checkInID {
		t.Fatalf("unexpected task state: %+v", tasks)
	}
	if err := st.DeleteDailyTask(ctx, task.ID); err != nil {
		t.Fatalf("delete daily task: %v", err)
	}
	var notFound *NotFoundError
	if err := st.DeleteDailyTask(ctx, task.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
}

func TestTrackerEntryUpsert(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	tracker, err := st.CreateTracker(ctx, TrackerInput{Name: "Hardlopen", Unit: "km"})
	if err != nil {
		t.Fatalf("create tracker: %v", err)
	}
	if _, err := st.UpsertTrackerEntry(ctx, tracker.ID, "2024-01-10", 5); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	entry, err := st.UpsertTrackerEntry(ctx, tracker.ID, "2024-01-10", 7)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if entry.Value != 7 {
		t.Fatalf("expected value 7, got %v", entry.Value)
	}
	entries, err := st.EntriesForTracker(ctx, tracker.ID, "2024-01-01")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one row after upsert, got %d", len(entries))
	}
}

func TestTrackerDeleteCascadesEntries(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	tracker, err := st.CreateTracker(ctx, TrackerInput{Name: "Lezen", Unit: "min"})
	if err != nil {
		t.Fatalf("create tracker: %v", err)
	}
	if _, err := st.UpsertTrackerEntry(ctx, tracker.ID, "2024-01-10", 30); err != nil {
		t.Fatalf("upsert entry: %v", err)
	}
	if err := st.DeleteTracker(ctx, tracker.ID); err != nil {
		t.Fatalf("delete tracker: %v", err)
	}
	rows, err := st.TrackerEntriesSince(ctx, "2024-01-01")
	if err != nil {
		t.Fatalf("entries since: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected entries to cascade away, got %d", len(rows))
	}
}

func TestUpsertTrackerEntryUnknownTracker(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	_, err := st.UpsertTrackerEntry(ctx, 777, "2024-01-10", 1)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestInsightLog(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	if _, err := st.RecordInsight(ctx, "hoe gaat het?", "prima", ""); err != nil {
		t.Fatalf("record insight: %v", err)
	}
	history, err := st.InsightHistory(ctx, 20)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].ContextType != "general" {
		t.Fatalf("unexpected history: %+v", history)
	}
	_, err = st.RecordInsight(ctx, "x", "y", "monthly")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError for bad context type, got %v", err)
	}
}
