package model

import "time"

type NoteDifficulty string

const (
	NoteEasy   NoteDifficulty = "easy"
	NoteMedium NoteDifficulty = "medium"
	NoteHard   NoteDifficulty = "hard"
)

type Subject struct {
	SubjectID   string    `bson:"subject_id" json:"subject_id"`
	Name        string    `bson:"name" json:"name" binding:"required,max=100"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Color       string    `bson:"color" json:"color"` // hex color code
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Tag struct {
	TagID     string    `bson:"tag_id" json:"tag_id"`
	Name      string    `bson:"name" json:"name" binding:"required,max=50"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Note struct {
	NoteID     string         `bson:"_id" json:"id"`
	UserID     string         `bson:"user_id" json:"user_id"`
	Title      string         `bson:"title" json:"title"`
	Content    string         `bson:"content" json:"content"`
	SubjectID  string         `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	Tags       []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	Difficulty NoteDifficulty `bson:"difficulty" json:"difficulty"`
	IsFavorite bool           `bson:"is_favorite" json:"is_favorite"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at" json:"updated_at"`
}
