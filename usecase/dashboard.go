package usecase

import (
	"context"
	"math"
	"time"

	"main/model"
	"main/utils"
)

// GoalStore reads weekly goals. Goal progress is maintained by the client;
// the dashboard only selects the current week.
type GoalStore interface {
	ListForWeek(ctx context.Context, userID string, weekStart time.Time) ([]*model.WeeklyGoal, error)
}

// AchievementStore reads earned achievements, newest first.
type AchievementStore interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]*model.Achievement, error)
}

// TotalsStore supplies the lifetime counts shown on the dashboard.
type TotalsStore interface {
	CountNotes(ctx context.Context, userID string) (int, error)
	CountQuizAttempts(ctx context.Context, userID string) (int, error)
	CountFlashcardSets(ctx context.Context, userID string) (int, error)
	QuizScores(ctx context.Context, userID string) ([]float64, error)
}

type ActivityPoint struct {
	Date          time.Time `json:"date"`
	TotalActivity int       `json:"total_activity"`
}

type DashboardSnapshot struct {
	StudyStreak         *model.StudyStreak          `json:"study_streak"`
	TotalNotes          int                         `json:"total_notes"`
	TotalQuizzes        int                         `json:"total_quizzes"`
	TotalFlashcardSets  int                         `json:"total_flashcard_decks"`
	AverageQuizScore    float64                     `json:"average_quiz_score"`
	RecentActivities    []*model.DailyActivity      `json:"recent_activities"`
	SubjectPerformances []*model.SubjectPerformance `json:"subject_performances"`
	CurrentGoals        []*model.WeeklyGoal         `json:"current_goals"`
	RecentAchievements  []*model.Achievement        `json:"recent_achievements"`
	WeeklyActivity      []ActivityPoint             `json:"weekly_activity"`
}

// DashboardService is a read-only composition over the tracker state. The one
// write it performs is creating an all-zero streak record for users who have
// never studied.
type DashboardService struct {
	Streaks      StreakStore
	Activities   ActivityStore
	Performance  PerformanceStore
	Goals        GoalStore
	Achievements AchievementStore
	Totals       TotalsStore
	Clock        utils.Clock
}

const (
	activityWindowDays = 30
	recentActivityMax  = 7
	recentAchievements = 5
)

func (svc *DashboardService) GetDashboard(ctx context.Context, userID string) (*DashboardSnapshot, error) {
	today := utils.Midnight(svc.Clock.Now())

	streak, err := svc.Streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if streak == nil {
		streak = &model.StudyStreak{UserID: userID}
		if err := svc.Streaks.Save(ctx, streak); err != nil {
			return nil, err
		}
	}

	// Trailing 30 days, newest first
	activities, err := svc.Activities.GetSince(ctx, userID, today.AddDate(0, 0, -activityWindowDays))
	if err != nil {
		return nil, err
	}
	recent := activities
	if len(recent) > recentActivityMax {
		recent = recent[:recentActivityMax]
	}

	performances, err := svc.Performance.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	goals, err := svc.Goals.ListForWeek(ctx, userID, utils.WeekStart(today))
	if err != nil {
		return nil, err
	}

	achievements, err := svc.Achievements.ListRecent(ctx, userID, recentAchievements)
	if err != nil {
		return nil, err
	}

	totalNotes, err := svc.Totals.CountNotes(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalQuizzes, err := svc.Totals.CountQuizAttempts(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalSets, err := svc.Totals.CountFlashcardSets(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores, err := svc.Totals.QuizScores(ctx, userID)
	if err != nil {
		return nil, err
	}
	var avgScore float64
	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avgScore = math.Round(sum/float64(len(scores))*100) / 100
	}

	return &DashboardSnapshot{
		StudyStreak:         streak,
		TotalNotes:          totalNotes,
		TotalQuizzes:        totalQuizzes,
		TotalFlashcardSets:  totalSets,
		AverageQuizScore:    avgScore,
		RecentActivities:    recent,
		SubjectPerformances: performances,
		CurrentGoals:        goals,
		RecentAchievements:  achievements,
		WeeklyActivity:      weeklySeries(activities, today),
	}, nil
}

// weeklySeries builds the 7-point chart series: today back six days, oldest
// first, zero for days without an activity row.
func weeklySeries(activities []*model.DailyActivity, today time.Time) []ActivityPoint {
	byDate := make(map[time.Time]*model.DailyActivity, len(activities))
	for _, a := range activities {
		byDate[utils.Midnight(a.Date)] = a
	}

	points := make([]ActivityPoint, 0, recentActivityMax)
	for i := recentActivityMax - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)
		point := ActivityPoint{Date: date}
		if a, ok := byDate[date]; ok {
			point.TotalActivity = a.NotesCreated + a.QuizzesTaken + a.FlashcardsStudied
		}
		points = append(points, point)
	}
	return points
}
