package usecase

import (
	"context"
	"time"

	"main/model"
	"main/utils"
)

// ProgressStore persists one spaced-repetition record per (user, flashcard)
// pair. Get returns nil without error when the card was never reviewed.
type ProgressStore interface {
	Get(ctx context.Context, userID string, flashcardID string) (*model.FlashcardProgress, error)
	Save(ctx context.Context, progress *model.FlashcardProgress) error
}

// SchedulerService assigns the next review time for a flashcard from the
// reported difficulty grade.
type SchedulerService struct {
	Progress ProgressStore
	Clock    utils.Clock
}

// ReviewFlashcard records a single review. The next-review offset is a fixed
// function of the grade; mastery transitions are asymmetric: "again" and
// "hard" always clear the flag, "good" and "easy" only ever set it once the
// review count passes their threshold.
func (svc *SchedulerService) ReviewFlashcard(ctx context.Context, userID string, flashcardID string, grade model.ReviewGrade) (*model.FlashcardProgress, error) {
	now := svc.Clock.Now()

	progress, err := svc.Progress.Get(ctx, userID, flashcardID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		progress = &model.FlashcardProgress{
			UserID:      userID,
			FlashcardID: flashcardID,
			Difficulty:  grade,
		}
	}

	progress.Difficulty = grade
	progress.ReviewCount++
	progress.LastReviewed = now

	var next time.Time
	switch grade {
	case model.GradeAgain:
		next = now.Add(10 * time.Minute)
		progress.IsMastered = false
	case model.GradeHard:
		next = now.Add(24 * time.Hour)
		progress.IsMastered = false
	case model.GradeGood:
		next = now.Add(3 * 24 * time.Hour)
		if progress.ReviewCount >= 5 {
			progress.IsMastered = true
		}
	case model.GradeEasy:
		next = now.Add(7 * 24 * time.Hour)
		if progress.ReviewCount >= 3 {
			progress.IsMastered = true
		}
	}
	progress.NextReview = &next

	if err := svc.Progress.Save(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
