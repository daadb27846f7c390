package dto

import "main/model"

type CreateFlashcardSetRequest struct {
	Title       string              `json:"title" binding:"required,max=200"`
	Description string              `json:"description"`
	SubjectID   string              `json:"subject_id"`
	NoteID      string              `json:"note_id"`
	IsPublic    bool                `json:"is_public"`
	Cards       []CreateCardRequest `json:"cards" binding:"dive"`
}

type UpdateFlashcardSetRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	SubjectID   string `json:"subject_id"`
	IsPublic    bool   `json:"is_public"`
}

type CreateCardRequest struct {
	FrontText string `json:"front_text" binding:"required"`
	BackText  string `json:"back_text" binding:"required"`
	Hint      string `json:"hint"`
}

// ReviewRequest reports one review grade; the oneof rule keeps the closed
// grade set at the API boundary.
type ReviewRequest struct {
	Grade model.ReviewGrade `json:"grade" binding:"required,oneof=again hard good easy"`
}

type StartSessionRequest struct {
	SetID string `json:"set_id" binding:"required"`
}

type EndSessionRequest struct {
	CardsStudied  int `json:"cards_studied" binding:"omitempty,min=0"`
	CardsMastered int `json:"cards_mastered" binding:"omitempty,min=0"`
}

type GenerateFlashcardsRequest struct {
	NoteID   string `json:"note_id" binding:"required"`
	NumCards int    `json:"num_cards" binding:"omitempty,min=1,max=50"`
}
