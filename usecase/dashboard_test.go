package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

type fakeGoalStore struct {
	goals []*model.WeeklyGoal
}

func (s *fakeGoalStore) ListForWeek(_ context.Context, userID string, weekStart time.Time) ([]*model.WeeklyGoal, error) {
	var out []*model.WeeklyGoal
	for _, g := range s.goals {
		if g.UserID == userID && g.WeekStart.Equal(weekStart) {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeAchievementStore struct {
	achievements []*model.Achievement
}

func (s *fakeAchievementStore) ListRecent(_ context.Context, userID string, limit int) ([]*model.Achievement, error) {
	var out []*model.Achievement
	for _, a := range s.achievements {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTotalsStore struct {
	notes  int
	sets   int
	scores []float64
}

func (s *fakeTotalsStore) CountNotes(_ context.Context, _ string) (int, error) {
	return s.notes, nil
}

func (s *fakeTotalsStore) CountQuizAttempts(_ context.Context, _ string) (int, error) {
	return len(s.scores), nil
}

func (s *fakeTotalsStore) CountFlashcardSets(_ context.Context, _ string) (int, error) {
	return s.sets, nil
}

func (s *fakeTotalsStore) QuizScores(_ context.Context, _ string) ([]float64, error) {
	return s.scores, nil
}

func newTestDashboard(now time.Time) (*DashboardService, *fakeActivityStore, *fakeStreakStore, *fakeTotalsStore) {
	activities := newFakeActivityStore()
	streaks := newFakeStreakStore()
	totals := &fakeTotalsStore{}
	svc := &DashboardService{
		Streaks:      streaks,
		Activities:   activities,
		Performance:  newFakePerformanceStore(),
		Goals:        &fakeGoalStore{},
		Achievements: &fakeAchievementStore{},
		Totals:       totals,
		Clock:        utils.FixedClock{Fixed: now},
	}
	return svc, activities, streaks, totals
}

func TestWeeklyActivitySeries(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC) // a Sunday
	svc, activities, _, _ := newTestDashboard(now)
	ctx := context.Background()
	today := utils.Midnight(now)

	// Activity on today, two days ago, and six days ago
	rows := []*model.DailyActivity{
		{UserID: "user-1", Date: today, NotesCreated: 2, QuizzesTaken: 1, FlashcardsStudied: 4},
		{UserID: "user-1", Date: today.AddDate(0, 0, -2), QuizzesTaken: 3},
		{UserID: "user-1", Date: today.AddDate(0, 0, -6), NotesCreated: 1, FlashcardsStudied: 1},
		// Outside the 7-day chart window but inside the 30-day list
		{UserID: "user-1", Date: today.AddDate(0, 0, -10), NotesCreated: 9},
	}
	for _, row := range rows {
		if err := activities.Save(ctx, row); err != nil {
			t.Fatal("save activity failed", err)
		}
	}

	snapshot, err := svc.GetDashboard(ctx, "user-1")
	if err != nil {
		t.Fatal("get dashboard failed", err)
	}

	if len(snapshot.WeeklyActivity) != 7 {
		t.Fatalf("weekly_activity has %d points, want 7", len(snapshot.WeeklyActivity))
	}

	// Oldest first: index 0 is six days ago, index 6 is today
	first := snapshot.WeeklyActivity[0]
	if !first.Date.Equal(today.AddDate(0, 0, -6)) {
		t.Errorf("first point date = %v, want %v", first.Date, today.AddDate(0, 0, -6))
	}
	if first.TotalActivity != 2 {
		t.Errorf("first point total = %d, want 2", first.TotalActivity)
	}

	last := snapshot.WeeklyActivity[6]
	if !last.Date.Equal(today) {
		t.Errorf("last point date = %v, want today", last.Date)
	}
	if last.TotalActivity != 7 {
		t.Errorf("last point total = %d, want 7", last.TotalActivity)
	}

	if got := snapshot.WeeklyActivity[4]; got.TotalActivity != 3 {
		t.Errorf("two-days-ago point total = %d, want 3", got.TotalActivity)
	}

	// Days without a row chart as zero
	for _, i := range []int{1, 2, 3, 5} {
		if snapshot.WeeklyActivity[i].TotalActivity != 0 {
			t.Errorf("point %d total = %d, want 0", i, snapshot.WeeklyActivity[i].TotalActivity)
		}
	}

	if len(snapshot.RecentActivities) != 4 {
		t.Errorf("recent_activities has %d rows, want 4", len(snapshot.RecentActivities))
	}
	if !snapshot.RecentActivities[0].Date.Equal(today) {
		t.Errorf("recent_activities not newest-first: %v", snapshot.RecentActivities[0].Date)
	}
}

func TestDashboardCreatesStreakRecord(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	svc, _, streaks, _ := newTestDashboard(now)
	ctx := context.Background()

	snapshot, err := svc.GetDashboard(ctx, "new-user")
	if err != nil {
		t.Fatal("get dashboard failed", err)
	}

	if snapshot.StudyStreak == nil {
		t.Fatal("study_streak missing from snapshot")
	}
	if snapshot.StudyStreak.CurrentStreak != 0 || snapshot.StudyStreak.TotalStudyDays != 0 {
		t.Errorf("new streak not zeroed: %+v", snapshot.StudyStreak)
	}

	saved, _ := streaks.Get(ctx, "new-user")
	if saved == nil {
		t.Error("streak record was not persisted by the dashboard read")
	}
}

func TestDashboardTotals(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	svc, _, _, totals := newTestDashboard(now)

	totals.notes = 12
	totals.sets = 3
	totals.scores = []float64{80, 70, 91}

	snapshot, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatal("get dashboard failed", err)
	}

	if snapshot.TotalNotes != 12 || snapshot.TotalQuizzes != 3 || snapshot.TotalFlashcardSets != 3 {
		t.Errorf("totals = %d/%d/%d, want 12/3/3",
			snapshot.TotalNotes, snapshot.TotalQuizzes, snapshot.TotalFlashcardSets)
	}
	if !almostEqual(snapshot.AverageQuizScore, 80.33) {
		t.Errorf("average_quiz_score = %f, want 80.33", snapshot.AverageQuizScore)
	}

	t.Run("ZeroWhenNoAttempts", func(t *testing.T) {
		totals.scores = nil
		snapshot, err := svc.GetDashboard(context.Background(), "user-1")
		if err != nil {
			t.Fatal("get dashboard failed", err)
		}
		if snapshot.AverageQuizScore != 0 {
			t.Errorf("average_quiz_score = %f, want 0", snapshot.AverageQuizScore)
		}
	})
}

func TestDashboardGoalsCurrentWeekOnly(t *testing.T) {
	now := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC) // a Wednesday
	svc, _, _, _ := newTestDashboard(now)
	weekStart := utils.WeekStart(now) // Monday 2026-03-16

	goals := &fakeGoalStore{goals: []*model.WeeklyGoal{
		{GoalID: "g1", UserID: "user-1", GoalType: model.GoalQuizzes, WeekStart: weekStart},
		{GoalID: "g2", UserID: "user-1", GoalType: model.GoalNotes, WeekStart: weekStart.AddDate(0, 0, -7)},
	}}
	svc.Goals = goals

	snapshot, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatal("get dashboard failed", err)
	}

	if len(snapshot.CurrentGoals) != 1 {
		t.Fatalf("current_goals has %d entries, want 1", len(snapshot.CurrentGoals))
	}
	if snapshot.CurrentGoals[0].GoalID != "g1" {
		t.Errorf("wrong goal selected: %s", snapshot.CurrentGoals[0].GoalID)
	}
}

func TestDashboardRecentAchievementsLimit(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	svc, _, _, _ := newTestDashboard(now)

	var all []*model.Achievement
	for i := 0; i < 8; i++ {
		all = append(all, &model.Achievement{
			AchievementID: string(rune('a' + i)),
			UserID:        "user-1",
			EarnedAt:      now.AddDate(0, 0, -i),
		})
	}
	svc.Achievements = &fakeAchievementStore{achievements: all}

	snapshot, err := svc.GetDashboard(context.Background(), "user-1")
	if err != nil {
		t.Fatal("get dashboard failed", err)
	}

	if len(snapshot.RecentAchievements) != 5 {
		t.Fatalf("recent_achievements has %d entries, want 5", len(snapshot.RecentAchievements))
	}
	if !snapshot.RecentAchievements[0].EarnedAt.Equal(now) {
		t.Errorf("achievements not newest-first")
	}
}
