package usecase

import (
	"context"
	"errors"

	"main/model"
	"main/repository"
	"main/utils"

	"github.com/google/uuid"
)

// FlashcardSetStore persists flashcard sets and their cards.
type FlashcardSetStore interface {
	CreateSet(ctx context.Context, set *model.FlashcardSet) error
	GetSet(ctx context.Context, setID string, userID string) (*model.FlashcardSet, error)
	GetUserSets(ctx context.Context, userID string) ([]*model.FlashcardSet, error)
	UpdateSet(ctx context.Context, setID string, userID string, updates *model.FlashcardSet) error
	DeleteSet(ctx context.Context, setID string, userID string) error
	AddCard(ctx context.Context, setID string, userID string, card model.Flashcard) error
	RemoveCard(ctx context.Context, setID string, userID string, cardID string) error
	FindCard(ctx context.Context, cardID string, userID string) (*model.Flashcard, error)
}

type FlashcardsService struct {
	Sets      FlashcardSetStore
	Sessions  *repository.StudySessionsRepo
	Progress  *repository.FlashcardProgressRepo
	Scheduler *SchedulerService
	Tracker   *TrackerService
	Clock     utils.Clock
}

// FlashcardStats summarizes a user's progress across all cards.
type FlashcardStats struct {
	TotalCardsStudied int `json:"total_cards_studied"`
	CardsMastered     int `json:"cards_mastered"`
	CardsDue          int `json:"cards_due"`
	TotalSessions     int `json:"total_sessions"`
}

func (svc *FlashcardsService) CreateSet(ctx context.Context, set *model.FlashcardSet) error {
	if set.Title == "" {
		return errors.New("set title is required")
	}

	set.SetID = uuid.NewString()
	now := svc.Clock.Now()
	for i := range set.Cards {
		set.Cards[i].CardID = uuid.NewString()
		set.Cards[i].Order = i
		set.Cards[i].CreatedAt = now
	}

	return svc.Sets.CreateSet(ctx, set)
}

func (svc *FlashcardsService) GetSet(ctx context.Context, setID string, userID string) (*model.FlashcardSet, error) {
	return svc.Sets.GetSet(ctx, setID, userID)
}

func (svc *FlashcardsService) GetUserSets(ctx context.Context, userID string) ([]*model.FlashcardSet, error) {
	return svc.Sets.GetUserSets(ctx, userID)
}

func (svc *FlashcardsService) UpdateSet(ctx context.Context, setID string, userID string, updates *model.FlashcardSet) error {
	if updates.Title == "" {
		return errors.New("set title is required")
	}
	return svc.Sets.UpdateSet(ctx, setID, userID, updates)
}

func (svc *FlashcardsService) DeleteSet(ctx context.Context, setID string, userID string) error {
	return svc.Sets.DeleteSet(ctx, setID, userID)
}

func (svc *FlashcardsService) AddCard(ctx context.Context, setID string, userID string, card model.Flashcard) (*model.Flashcard, error) {
	if card.FrontText == "" || card.BackText == "" {
		return nil, errors.New("card front and back text are required")
	}

	card.CardID = uuid.NewString()
	card.CreatedAt = svc.Clock.Now()

	if err := svc.Sets.AddCard(ctx, setID, userID, card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (svc *FlashcardsService) RemoveCard(ctx context.Context, setID string, userID string, cardID string) error {
	return svc.Sets.RemoveCard(ctx, setID, userID, cardID)
}

// ReviewCard verifies the card is visible to the user and hands the grade to
// the spaced-repetition scheduler.
func (svc *FlashcardsService) ReviewCard(ctx context.Context, userID string, cardID string, grade model.ReviewGrade) (*model.FlashcardProgress, error) {
	if _, err := svc.Sets.FindCard(ctx, cardID, userID); err != nil {
		return nil, err
	}
	return svc.Scheduler.ReviewFlashcard(ctx, userID, cardID, grade)
}

// GetDueCards lists the progress records whose next review time has passed.
func (svc *FlashcardsService) GetDueCards(ctx context.Context, userID string) ([]*model.FlashcardProgress, error) {
	return svc.Progress.ListDue(ctx, userID, svc.Clock.Now())
}

// StartSession opens a study session against a set the user can see.
func (svc *FlashcardsService) StartSession(ctx context.Context, userID string, setID string) (*model.StudySession, error) {
	if _, err := svc.Sets.GetSet(ctx, setID, userID); err != nil {
		return nil, err
	}

	session := &model.StudySession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		SetID:     setID,
	}

	if err := svc.Sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession closes the session, derives its duration from the start time and
// records the studied cards as daily activity.
func (svc *FlashcardsService) EndSession(ctx context.Context, userID string, sessionID string, cardsStudied int, cardsMastered int) (*model.StudySession, error) {
	session, err := svc.Sessions.GetSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, errors.New("study session already completed")
	}

	now := svc.Clock.Now()
	session.CardsStudied = cardsStudied
	session.CardsMastered = cardsMastered
	session.SessionDuration = int(now.Sub(session.StartedAt).Seconds())
	session.CompletedAt = &now

	if err := svc.Sessions.CompleteSession(ctx, session); err != nil {
		return nil, err
	}

	if svc.Tracker != nil {
		if err := svc.Tracker.TrackFlashcardSession(ctx, userID, cardsStudied, session.SessionDuration); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func (svc *FlashcardsService) GetRecentSessions(ctx context.Context, userID string, limit int) ([]*model.StudySession, error) {
	return svc.Sessions.GetRecentSessions(ctx, userID, limit)
}

func (svc *FlashcardsService) GetStats(ctx context.Context, userID string) (*FlashcardStats, error) {
	studied, err := svc.Progress.CountStudied(ctx, userID)
	if err != nil {
		return nil, err
	}
	mastered, err := svc.Progress.CountMastered(ctx, userID)
	if err != nil {
		return nil, err
	}
	due, err := svc.Progress.CountDue(ctx, userID, svc.Clock.Now())
	if err != nil {
		return nil, err
	}
	sessions, err := svc.Sessions.CountUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &FlashcardStats{
		TotalCardsStudied: studied,
		CardsMastered:     mastered,
		CardsDue:          due,
		TotalSessions:     sessions,
	}, nil
}
