package usecase

import (
	"context"
	"math"
	"sort"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

// In-memory stores backing the tracker/scheduler/dashboard tests. They copy
// on read and write so the services go through a real read-modify-write
// cycle.

type fakeActivityStore struct {
	rows map[string]model.DailyActivity
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{rows: make(map[string]model.DailyActivity)}
}

func activityKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (s *fakeActivityStore) GetByDate(_ context.Context, userID string, date time.Time) (*model.DailyActivity, error) {
	if a, ok := s.rows[activityKey(userID, utils.Midnight(date))]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeActivityStore) GetSince(_ context.Context, userID string, from time.Time) ([]*model.DailyActivity, error) {
	var out []*model.DailyActivity
	for _, a := range s.rows {
		if a.UserID == userID && !a.Date.Before(from) {
			cp := a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *fakeActivityStore) Save(_ context.Context, activity *model.DailyActivity) error {
	s.rows[activityKey(activity.UserID, utils.Midnight(activity.Date))] = *activity
	return nil
}

type fakeStreakStore struct {
	rows map[string]model.StudyStreak
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{rows: make(map[string]model.StudyStreak)}
}

func (s *fakeStreakStore) Get(_ context.Context, userID string) (*model.StudyStreak, error) {
	if st, ok := s.rows[userID]; ok {
		cp := st
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStreakStore) Save(_ context.Context, streak *model.StudyStreak) error {
	s.rows[streak.UserID] = *streak
	return nil
}

type fakePerformanceStore struct {
	rows map[string]model.SubjectPerformance
}

func newFakePerformanceStore() *fakePerformanceStore {
	return &fakePerformanceStore{rows: make(map[string]model.SubjectPerformance)}
}

func (s *fakePerformanceStore) Get(_ context.Context, userID string, subjectID string) (*model.SubjectPerformance, error) {
	if p, ok := s.rows[userID+"|"+subjectID]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (s *fakePerformanceStore) ListByUser(_ context.Context, userID string) ([]*model.SubjectPerformance, error) {
	var out []*model.SubjectPerformance
	for _, p := range s.rows {
		if p.UserID == userID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageScore > out[j].AverageScore })
	return out, nil
}

func (s *fakePerformanceStore) Save(_ context.Context, performance *model.SubjectPerformance) error {
	s.rows[performance.UserID+"|"+performance.SubjectID] = *performance
	return nil
}

func newTestTracker(now time.Time) (*TrackerService, *fakeActivityStore, *fakeStreakStore, *fakePerformanceStore) {
	activities := newFakeActivityStore()
	streaks := newFakeStreakStore()
	performance := newFakePerformanceStore()
	tracker := &TrackerService{
		Activities:  activities,
		Streaks:     streaks,
		Performance: performance,
		Clock:       utils.FixedClock{Fixed: now},
	}
	return tracker, activities, streaks, performance
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecordEventQuiz(t *testing.T) {
	day1 := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(day1)
	ctx := context.Background()

	activity, err := tracker.RecordEvent(ctx, "user-1", ActivityQuiz, EventPayload{Score: 80, StudyTimeMinutes: 5})
	if err != nil {
		t.Fatal("record event failed", err)
	}

	if activity.QuizzesTaken != 1 {
		t.Errorf("quizzes_taken = %d, want 1", activity.QuizzesTaken)
	}
	if !almostEqual(activity.QuizScoreAverage, 80) {
		t.Errorf("quiz_score_average = %f, want 80", activity.QuizScoreAverage)
	}
	if activity.StudyTimeMinutes != 5 {
		t.Errorf("study_time_minutes = %d, want 5", activity.StudyTimeMinutes)
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak == nil || streak.CurrentStreak != 1 {
		t.Fatalf("streak = %+v, want current_streak 1", streak)
	}

	t.Run("SecondQuizSameDay", func(t *testing.T) {
		activity, err := tracker.RecordEvent(ctx, "user-1", ActivityQuiz, EventPayload{Score: 60})
		if err != nil {
			t.Fatal("record event failed", err)
		}
		if activity.QuizzesTaken != 2 {
			t.Errorf("quizzes_taken = %d, want 2", activity.QuizzesTaken)
		}
		if !almostEqual(activity.QuizScoreAverage, 70) {
			t.Errorf("quiz_score_average = %f, want 70", activity.QuizScoreAverage)
		}
	})
}

func TestRecordEventFlashcardDefaults(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, _, _ := newTestTracker(now)
	ctx := context.Background()

	// Missing cards_studied defaults to 1
	activity, err := tracker.RecordEvent(ctx, "user-1", ActivityFlashcard, EventPayload{})
	if err != nil {
		t.Fatal("record event failed", err)
	}
	if activity.FlashcardsStudied != 1 {
		t.Errorf("flashcards_studied = %d, want 1", activity.FlashcardsStudied)
	}

	activity, err = tracker.RecordEvent(ctx, "user-1", ActivityFlashcard, EventPayload{CardsStudied: 5, StudyTimeMinutes: 10})
	if err != nil {
		t.Fatal("record event failed", err)
	}
	if activity.FlashcardsStudied != 6 {
		t.Errorf("flashcards_studied = %d, want 6", activity.FlashcardsStudied)
	}
	if activity.StudyTimeMinutes != 10 {
		t.Errorf("study_time_minutes = %d, want 10", activity.StudyTimeMinutes)
	}
}

func TestRecordEventNote(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, _, _ := newTestTracker(now)

	activity, err := tracker.RecordEvent(context.Background(), "user-1", ActivityNote, EventPayload{})
	if err != nil {
		t.Fatal("record event failed", err)
	}
	if activity.NotesCreated != 1 {
		t.Errorf("notes_created = %d, want 1", activity.NotesCreated)
	}
	if activity.QuizzesTaken != 0 || activity.FlashcardsStudied != 0 {
		t.Errorf("unexpected counters: %+v", activity)
	}
}

func TestDailyAverageResetsAcrossDays(t *testing.T) {
	day1 := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, activities, streaks, _ := newTestTracker(day1)
	ctx := context.Background()

	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityQuiz, EventPayload{Score: 80}); err != nil {
		t.Fatal("day 1 event failed", err)
	}

	// Next day: new row, the per-day average starts over
	tracker.Clock = utils.FixedClock{Fixed: day1.AddDate(0, 0, 1)}
	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityQuiz, EventPayload{Score: 60}); err != nil {
		t.Fatal("day 2 event failed", err)
	}

	day2Row, _ := activities.GetByDate(ctx, "user-1", day1.AddDate(0, 0, 1))
	if day2Row == nil {
		t.Fatal("no activity row for day 2")
	}
	if !almostEqual(day2Row.QuizScoreAverage, 60) {
		t.Errorf("day 2 quiz_score_average = %f, want 60 (per-day, not lifetime)", day2Row.QuizScoreAverage)
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak.CurrentStreak != 2 || streak.LongestStreak != 2 {
		t.Errorf("streak = %+v, want current 2 longest 2", streak)
	}
}

func TestUpdateStreakNoActivityGuard(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(now)
	ctx := context.Background()

	if err := tracker.UpdateStreak(ctx, "user-1", now); err != nil {
		t.Fatal("update streak failed", err)
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak != nil {
		t.Errorf("streak record created without activity: %+v", streak)
	}
}

func TestUpdateStreakIdempotentPerDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(now)
	ctx := context.Background()

	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityNote, EventPayload{}); err != nil {
		t.Fatal("record event failed", err)
	}
	before, _ := streaks.Get(ctx, "user-1")

	// A second event on the same day must not advance anything
	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityQuiz, EventPayload{Score: 50}); err != nil {
		t.Fatal("record event failed", err)
	}
	after, _ := streaks.Get(ctx, "user-1")

	if after.CurrentStreak != before.CurrentStreak ||
		after.LongestStreak != before.LongestStreak ||
		after.TotalStudyDays != before.TotalStudyDays {
		t.Errorf("streak changed on same-day repeat: before %+v after %+v", before, after)
	}
}

func TestStreakResetAfterGap(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(day1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		tracker.Clock = utils.FixedClock{Fixed: day1.AddDate(0, 0, i)}
		if _, err := tracker.RecordEvent(ctx, "user-1", ActivityNote, EventPayload{}); err != nil {
			t.Fatal("record event failed", err)
		}
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak.CurrentStreak != 3 || streak.TotalStudyDays != 3 {
		t.Fatalf("streak after 3 days = %+v", streak)
	}

	// Skip four days; the streak resets to 1 and total_study_days grows by
	// exactly one, not by the gap length
	tracker.Clock = utils.FixedClock{Fixed: day1.AddDate(0, 0, 6)}
	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityNote, EventPayload{}); err != nil {
		t.Fatal("record event failed", err)
	}

	streak, _ = streaks.Get(ctx, "user-1")
	if streak.CurrentStreak != 1 {
		t.Errorf("current_streak = %d, want 1 after gap", streak.CurrentStreak)
	}
	if streak.TotalStudyDays != 4 {
		t.Errorf("total_study_days = %d, want 4", streak.TotalStudyDays)
	}
	if streak.LongestStreak != 3 {
		t.Errorf("longest_streak = %d, want 3 preserved", streak.LongestStreak)
	}
}

func TestStreakResetOnFutureLastStudyDate(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(today)
	ctx := context.Background()

	// A last_study_date ahead of today (clock skew, restored backup) is
	// neither today nor yesterday, so the streak restarts at 1.
	future := utils.Midnight(today.AddDate(0, 0, 3))
	seed := &model.StudyStreak{
		UserID:         "user-1",
		CurrentStreak:  5,
		LongestStreak:  5,
		TotalStudyDays: 10,
		LastStudyDate:  &future,
	}
	if err := streaks.Save(ctx, seed); err != nil {
		t.Fatal("seed streak failed", err)
	}

	if _, err := tracker.RecordEvent(ctx, "user-1", ActivityNote, EventPayload{}); err != nil {
		t.Fatal("record event failed", err)
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak.CurrentStreak != 1 {
		t.Errorf("current_streak = %d, want 1 for future last_study_date", streak.CurrentStreak)
	}
	if streak.TotalStudyDays != 11 {
		t.Errorf("total_study_days = %d, want 11", streak.TotalStudyDays)
	}
	if streak.LongestStreak != 5 {
		t.Errorf("longest_streak = %d, want 5 preserved", streak.LongestStreak)
	}
	if streak.LastStudyDate == nil || !streak.LastStudyDate.Equal(utils.Midnight(today)) {
		t.Errorf("last_study_date = %v, want today", streak.LastStudyDate)
	}
}

func TestStreakMonotonicity(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	tracker, _, streaks, _ := newTestTracker(start)
	ctx := context.Background()

	// Irregular study pattern: runs of consecutive days with gaps between
	days := []int{0, 1, 2, 3, 7, 8, 9, 20, 21, 22, 23, 24, 25}
	for _, d := range days {
		tracker.Clock = utils.FixedClock{Fixed: start.AddDate(0, 0, d)}
		if _, err := tracker.RecordEvent(ctx, "user-1", ActivityNote, EventPayload{}); err != nil {
			t.Fatal("record event failed", err)
		}

		streak, _ := streaks.Get(ctx, "user-1")
		if streak.CurrentStreak > streak.LongestStreak {
			t.Fatalf("current_streak %d exceeds longest_streak %d at day %d",
				streak.CurrentStreak, streak.LongestStreak, d)
		}
	}

	streak, _ := streaks.Get(ctx, "user-1")
	if streak.LongestStreak != 6 {
		t.Errorf("longest_streak = %d, want 6", streak.LongestStreak)
	}
	if streak.TotalStudyDays != len(days) {
		t.Errorf("total_study_days = %d, want %d", streak.TotalStudyDays, len(days))
	}
}

func TestRecordQuizResultRunningAverage(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, _, performance := newTestTracker(now)
	ctx := context.Background()

	if _, err := tracker.RecordQuizResult(ctx, "user-1", "math", 70, 120); err != nil {
		t.Fatal("record quiz result failed", err)
	}
	perf, err := tracker.RecordQuizResult(ctx, "user-1", "math", 90, 150)
	if err != nil {
		t.Fatal("record quiz result failed", err)
	}

	if !almostEqual(perf.AverageScore, 80) {
		t.Errorf("average_score = %f, want 80", perf.AverageScore)
	}
	if !almostEqual(perf.BestScore, 90) {
		t.Errorf("best_score = %f, want 90", perf.BestScore)
	}
	if perf.TotalQuizzes != 2 {
		t.Errorf("total_quizzes = %d, want 2", perf.TotalQuizzes)
	}
	// 120s and 150s both truncate to 2 minutes
	if perf.TotalStudyTime != 4 {
		t.Errorf("total_study_time = %d, want 4", perf.TotalStudyTime)
	}
	if !almostEqual(perf.MasteryLevel, 80) {
		t.Errorf("mastery_level = %f, want 80", perf.MasteryLevel)
	}

	t.Run("ArithmeticMeanOverSequence", func(t *testing.T) {
		scores := []float64{55, 62.5, 98, 71, 84.25, 100}
		var sum float64
		for _, s := range scores {
			if _, err := tracker.RecordQuizResult(ctx, "user-2", "physics", s, 60); err != nil {
				t.Fatal("record quiz result failed", err)
			}
			sum += s
		}
		perf, _ := performance.Get(ctx, "user-2", "physics")
		want := sum / float64(len(scores))
		if math.Abs(perf.AverageScore-want) > 1e-6 {
			t.Errorf("average_score = %f, want %f", perf.AverageScore, want)
		}
		if !almostEqual(perf.BestScore, 100) {
			t.Errorf("best_score = %f, want 100", perf.BestScore)
		}
	})
}

func TestRecordQuizResultNoSubject(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	tracker, _, _, performance := newTestTracker(now)

	perf, err := tracker.RecordQuizResult(context.Background(), "user-1", "", 85, 60)
	if err != nil {
		t.Fatal("record quiz result failed", err)
	}
	if perf != nil {
		t.Errorf("expected no-op for quiz without subject, got %+v", perf)
	}
	if len(performance.rows) != 0 {
		t.Errorf("performance record created for subjectless quiz")
	}
}
