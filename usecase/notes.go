package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

const maxNotesPerUser = 100

type NotesService struct {
	Notes    *repository.NotesRepo
	Subjects *repository.SubjectsRepo
	Tracker  *TrackerService
}

func (svc *NotesService) validateNote(note *model.Note) error {
	note.Title = strings.TrimSpace(note.Title)
	if note.Title == "" {
		return errors.New("note title is required")
	}
	if len(note.Title) > 200 {
		return errors.New("note title exceeds maximum length")
	}

	if strings.TrimSpace(note.Content) == "" {
		return errors.New("note content is required")
	}
	if len(note.Content) > 50000 {
		return errors.New("note content exceeds maximum length")
	}

	normalizedTags := make([]string, 0)
	for _, tag := range note.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalizedTags = append(normalizedTags, trimmed)
		}
	}
	note.Tags = normalizedTags
	if len(note.Tags) > 10 {
		return errors.New("maximum 10 tags allowed")
	}

	if note.Difficulty == "" {
		note.Difficulty = model.NoteMedium
	}

	return nil
}

// CreateNote validates, persists and records the note as study activity.
// Activity recording is best effort: a tracker failure never rolls back the
// note itself.
func (svc *NotesService) CreateNote(ctx context.Context, note *model.Note) error {
	if err := svc.validateNote(note); err != nil {
		return err
	}

	if note.SubjectID != "" {
		if _, err := svc.Subjects.GetSubject(ctx, note.SubjectID); err != nil {
			return err
		}
	}

	count, err := svc.Notes.CountUserNotes(ctx, note.UserID)
	if err != nil {
		return err
	}
	if count >= maxNotesPerUser {
		return errors.New("user has reached maximum note limit")
	}

	note.NoteID = uuid.NewString()

	if err := svc.Notes.CreateNote(ctx, note); err != nil {
		return err
	}

	if svc.Tracker != nil {
		if _, err := svc.Tracker.RecordEvent(ctx, note.UserID, ActivityNote, EventPayload{}); err != nil {
			log.Printf("Warning: failed to record note activity for user %s: %v", note.UserID, err)
		}
	}

	return nil
}

func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return svc.Notes.GetUserNotes(ctx, userID)
}

func (svc *NotesService) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	return svc.Notes.GetNote(ctx, noteID, userID)
}

func (svc *NotesService) GetNotesBySubject(ctx context.Context, userID string, subjectID string) ([]*model.Note, error) {
	if _, err := svc.Subjects.GetSubject(ctx, subjectID); err != nil {
		return nil, err
	}
	return svc.Notes.GetNotesBySubject(ctx, userID, subjectID)
}

func (svc *NotesService) GetFavoriteNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return svc.Notes.GetFavoriteNotes(ctx, userID)
}

func (svc *NotesService) SearchNotes(ctx context.Context, userID string, query string) ([]*model.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("search query is required")
	}
	if len(query) < 2 {
		return nil, errors.New("search query must be at least 2 characters")
	}

	notes, err := svc.Notes.SearchNotes(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, nil
}

func (svc *NotesService) UpdateNote(ctx context.Context, noteID string, userID string, updates *model.Note) error {
	existing, err := svc.Notes.GetNote(ctx, noteID, userID)
	if err != nil {
		return err
	}

	if err := svc.validateNote(updates); err != nil {
		return err
	}

	if updates.SubjectID != "" && updates.SubjectID != existing.SubjectID {
		if _, err := svc.Subjects.GetSubject(ctx, updates.SubjectID); err != nil {
			return err
		}
	}

	return svc.Notes.UpdateNote(ctx, noteID, userID, updates)
}

func (svc *NotesService) ToggleFavorite(ctx context.Context, noteID string, userID string) error {
	return svc.Notes.ToggleFavorite(ctx, noteID, userID)
}

func (svc *NotesService) DeleteNote(ctx context.Context, noteID string, userID string) error {
	return svc.Notes.DeleteNote(ctx, noteID, userID)
}
