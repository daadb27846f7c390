package usecase

import (
	"context"
	"math"
	"time"

	"main/model"
	"main/utils"
)

type ActivityKind string

const (
	ActivityQuiz      ActivityKind = "quiz"
	ActivityFlashcard ActivityKind = "flashcard"
	ActivityNote      ActivityKind = "note"
)

// EventPayload carries the optional fields of a study event. Zero values fall
// back to the documented defaults (cards studied defaults to 1).
type EventPayload struct {
	Score            float64
	StudyTimeMinutes int
	CardsStudied     int
}

// ActivityStore persists per-user per-day activity rows. GetByDate returns
// nil without error when no row exists; Save upserts on (user_id, date).
type ActivityStore interface {
	GetByDate(ctx context.Context, userID string, date time.Time) (*model.DailyActivity, error)
	GetSince(ctx context.Context, userID string, from time.Time) ([]*model.DailyActivity, error)
	Save(ctx context.Context, activity *model.DailyActivity) error
}

// StreakStore persists one streak record per user. Get returns nil without
// error when the user has no record yet.
type StreakStore interface {
	Get(ctx context.Context, userID string) (*model.StudyStreak, error)
	Save(ctx context.Context, streak *model.StudyStreak) error
}

// PerformanceStore persists one record per (user, subject) pair.
type PerformanceStore interface {
	Get(ctx context.Context, userID string, subjectID string) (*model.SubjectPerformance, error)
	ListByUser(ctx context.Context, userID string) ([]*model.SubjectPerformance, error)
	Save(ctx context.Context, performance *model.SubjectPerformance) error
}

// TrackerService converts raw study events into daily activity counters,
// streaks and per-subject performance records.
type TrackerService struct {
	Activities  ActivityStore
	Streaks     StreakStore
	Performance PerformanceStore
	Clock       utils.Clock
}

// RecordEvent updates (or creates) today's activity row for the user and then
// advances the study streak. Missing payload fields never fail the call.
func (svc *TrackerService) RecordEvent(ctx context.Context, userID string, kind ActivityKind, payload EventPayload) (*model.DailyActivity, error) {
	today := utils.Midnight(svc.Clock.Now())

	activity, err := svc.Activities.GetByDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		activity = &model.DailyActivity{
			UserID: userID,
			Date:   today,
		}
	}

	switch kind {
	case ActivityQuiz:
		activity.QuizzesTaken++

		// Running mean over today's quizzes. The count is incremented
		// before the division, so the divisor is always >= 1.
		if activity.QuizzesTaken == 1 {
			activity.QuizScoreAverage = payload.Score
		} else {
			total := activity.QuizScoreAverage*float64(activity.QuizzesTaken-1) + payload.Score
			activity.QuizScoreAverage = total / float64(activity.QuizzesTaken)
		}
		activity.StudyTimeMinutes += payload.StudyTimeMinutes

	case ActivityFlashcard:
		cards := payload.CardsStudied
		if cards == 0 {
			cards = 1
		}
		activity.FlashcardsStudied += cards
		activity.StudyTimeMinutes += payload.StudyTimeMinutes

	case ActivityNote:
		activity.NotesCreated++
	}

	if err := svc.Activities.Save(ctx, activity); err != nil {
		return nil, err
	}

	if err := svc.UpdateStreak(ctx, userID, today); err != nil {
		return nil, err
	}

	return activity, nil
}

// UpdateStreak advances or resets the user's consecutive-day counter. It is
// idempotent per day and refuses to touch any state, including creating the
// streak record, unless an activity row exists for today.
func (svc *TrackerService) UpdateStreak(ctx context.Context, userID string, today time.Time) error {
	today = utils.Midnight(today)

	activity, err := svc.Activities.GetByDate(ctx, userID, today)
	if err != nil {
		return err
	}
	if activity == nil {
		return nil
	}

	streak, err := svc.Streaks.Get(ctx, userID)
	if err != nil {
		return err
	}
	if streak == nil {
		streak = &model.StudyStreak{UserID: userID}
	}

	yesterday := today.AddDate(0, 0, -1)

	switch {
	case streak.LastStudyDate == nil:
		// First study day ever
		streak.CurrentStreak = 1
		streak.LongestStreak = 1
		streak.TotalStudyDays = 1
		streak.LastStudyDate = &today

	case streak.LastStudyDate.Equal(today):
		// Already counted today

	case streak.LastStudyDate.Equal(yesterday):
		streak.CurrentStreak++
		streak.TotalStudyDays++
		streak.LastStudyDate = &today
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}

	default:
		// Gap of two or more days: the streak restarts at 1 and the
		// lifetime counter grows by exactly one.
		streak.CurrentStreak = 1
		streak.TotalStudyDays++
		streak.LastStudyDate = &today
	}

	return svc.Streaks.Save(ctx, streak)
}

// RecordQuizResult folds a completed quiz attempt into the (user, subject)
// performance record. Quizzes without a subject are ignored.
func (svc *TrackerService) RecordQuizResult(ctx context.Context, userID string, subjectID string, score float64, timeTakenSeconds int) (*model.SubjectPerformance, error) {
	if subjectID == "" {
		return nil, nil
	}

	performance, err := svc.Performance.Get(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if performance == nil {
		performance = &model.SubjectPerformance{
			UserID:    userID,
			SubjectID: subjectID,
		}
	}

	performance.TotalQuizzes++
	performance.LastStudied = svc.Clock.Now()

	if score > performance.BestScore {
		performance.BestScore = score
	}

	if performance.TotalQuizzes == 1 {
		performance.AverageScore = score
	} else {
		total := performance.AverageScore*float64(performance.TotalQuizzes-1) + score
		performance.AverageScore = total / float64(performance.TotalQuizzes)
	}

	// Quiz time arrives in seconds, study time is kept in whole minutes.
	performance.TotalStudyTime += timeTakenSeconds / 60

	performance.MasteryLevel = math.Min(performance.AverageScore, 100.0)

	if err := svc.Performance.Save(ctx, performance); err != nil {
		return nil, err
	}
	return performance, nil
}

// TrackQuizCompletion records a finished attempt in the daily activity log and
// the subject performance table.
func (svc *TrackerService) TrackQuizCompletion(ctx context.Context, userID string, subjectID string, score float64, timeTakenSeconds int) error {
	_, err := svc.RecordEvent(ctx, userID, ActivityQuiz, EventPayload{
		Score:            score,
		StudyTimeMinutes: timeTakenSeconds / 60,
	})
	if err != nil {
		return err
	}

	_, err = svc.RecordQuizResult(ctx, userID, subjectID, score, timeTakenSeconds)
	return err
}

// TrackFlashcardSession records a completed flashcard study session in the
// daily activity log.
func (svc *TrackerService) TrackFlashcardSession(ctx context.Context, userID string, cardsStudied int, durationSeconds int) error {
	_, err := svc.RecordEvent(ctx, userID, ActivityFlashcard, EventPayload{
		CardsStudied:     cardsStudied,
		StudyTimeMinutes: durationSeconds / 60,
	})
	return err
}
