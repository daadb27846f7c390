package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

type fakeSetStore struct {
	sets map[string]*model.FlashcardSet
}

func newFakeSetStore() *fakeSetStore {
	return &fakeSetStore{sets: make(map[string]*model.FlashcardSet)}
}

func (s *fakeSetStore) CreateSet(_ context.Context, set *model.FlashcardSet) error {
	s.sets[set.SetID] = set
	return nil
}

func (s *fakeSetStore) GetSet(_ context.Context, setID string, userID string) (*model.FlashcardSet, error) {
	set, ok := s.sets[setID]
	if !ok || set.UserID != userID {
		return nil, errors.New("flashcard set not found")
	}
	return set, nil
}

func (s *fakeSetStore) GetUserSets(_ context.Context, userID string) ([]*model.FlashcardSet, error) {
	var out []*model.FlashcardSet
	for _, set := range s.sets {
		if set.UserID == userID {
			out = append(out, set)
		}
	}
	return out, nil
}

func (s *fakeSetStore) UpdateSet(_ context.Context, setID string, userID string, updates *model.FlashcardSet) error {
	if _, err := s.GetSet(context.Background(), setID, userID); err != nil {
		return err
	}
	updates.SetID = setID
	updates.UserID = userID
	s.sets[setID] = updates
	return nil
}

func (s *fakeSetStore) DeleteSet(_ context.Context, setID string, userID string) error {
	if _, err := s.GetSet(context.Background(), setID, userID); err != nil {
		return err
	}
	delete(s.sets, setID)
	return nil
}

func (s *fakeSetStore) AddCard(_ context.Context, setID string, userID string, card model.Flashcard) error {
	set, ok := s.sets[setID]
	if !ok || set.UserID != userID {
		return errors.New("flashcard set not found")
	}
	set.Cards = append(set.Cards, card)
	return nil
}

func (s *fakeSetStore) RemoveCard(_ context.Context, setID string, userID string, cardID string) error {
	set, ok := s.sets[setID]
	if !ok || set.UserID != userID {
		return errors.New("flashcard set not found")
	}
	for i, card := range set.Cards {
		if card.CardID == cardID {
			set.Cards = append(set.Cards[:i], set.Cards[i+1:]...)
			return nil
		}
	}
	return errors.New("card not found")
}

func (s *fakeSetStore) FindCard(_ context.Context, cardID string, userID string) (*model.Flashcard, error) {
	for _, set := range s.sets {
		if set.UserID != userID {
			continue
		}
		for i := range set.Cards {
			if set.Cards[i].CardID == cardID {
				return &set.Cards[i], nil
			}
		}
	}
	return nil, errors.New("card not found")
}

func TestCreateSetStampsCards(t *testing.T) {
	now := time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC)
	store := newFakeSetStore()
	svc := &FlashcardsService{Sets: store, Clock: utils.FixedClock{Fixed: now}}

	set := &model.FlashcardSet{
		UserID: "user-1",
		Title:  "Cell biology",
		Cards: []model.Flashcard{
			{FrontText: "Mitochondria", BackText: "Powerhouse of the cell"},
			{FrontText: "Ribosome", BackText: "Protein synthesis"},
		},
	}
	if err := svc.CreateSet(context.Background(), set); err != nil {
		t.Fatal("create set failed", err)
	}

	if set.SetID == "" {
		t.Error("set id not assigned")
	}
	for i, card := range set.Cards {
		if card.CardID == "" {
			t.Errorf("card %d: id not assigned", i)
		}
		if card.Order != i {
			t.Errorf("card %d: order = %d", i, card.Order)
		}
		if !card.CreatedAt.Equal(now) {
			t.Errorf("card %d: created_at = %v, want clock time %v", i, card.CreatedAt, now)
		}
	}
}

func TestAddCardStampsFromClock(t *testing.T) {
	now := time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC)
	store := newFakeSetStore()
	svc := &FlashcardsService{Sets: store, Clock: utils.FixedClock{Fixed: now}}

	set := &model.FlashcardSet{UserID: "user-1", Title: "Cell biology"}
	if err := svc.CreateSet(context.Background(), set); err != nil {
		t.Fatal("create set failed", err)
	}

	card, err := svc.AddCard(context.Background(), set.SetID, "user-1", model.Flashcard{
		FrontText: "Nucleus",
		BackText:  "Holds the genome",
	})
	if err != nil {
		t.Fatal("add card failed", err)
	}

	if card.CardID == "" {
		t.Error("card id not assigned")
	}
	if !card.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want clock time %v", card.CreatedAt, now)
	}

	t.Run("MissingText", func(t *testing.T) {
		if _, err := svc.AddCard(context.Background(), set.SetID, "user-1", model.Flashcard{FrontText: "orphan"}); err == nil {
			t.Error("expected error for card without back text")
		}
	})
}
