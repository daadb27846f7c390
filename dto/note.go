package dto

import "main/model"

type CreateNoteRequest struct {
	Title      string               `json:"title" binding:"required,max=200"`
	Content    string               `json:"content" binding:"required"`
	SubjectID  string               `json:"subject_id"`
	Tags       []string             `json:"tags"`
	Difficulty model.NoteDifficulty `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type UpdateNoteRequest struct {
	Title      string               `json:"title" binding:"required,max=200"`
	Content    string               `json:"content" binding:"required"`
	SubjectID  string               `json:"subject_id"`
	Tags       []string             `json:"tags"`
	Difficulty model.NoteDifficulty `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

type GenerateNoteRequest struct {
	Topic       string `json:"topic" binding:"required,max=200"`
	Description string `json:"description"`
	Guidelines  string `json:"guidelines"`
	SubjectID   string `json:"subject_id"`
}

type CreateSubjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}
