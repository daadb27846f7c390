package model

import "time"

// ReviewGrade is the closed set of difficulty grades a review can report.
// Handlers bind with oneof validation so nothing outside the set reaches the
// scheduler.
type ReviewGrade string

const (
	GradeAgain ReviewGrade = "again"
	GradeHard  ReviewGrade = "hard"
	GradeGood  ReviewGrade = "good"
	GradeEasy  ReviewGrade = "easy"
)

type FlashcardSet struct {
	SetID       string      `bson:"_id" json:"id"`
	UserID      string      `bson:"user_id" json:"user_id"`
	Title       string      `bson:"title" json:"title"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	NoteID      string      `bson:"note_id,omitempty" json:"note_id,omitempty"`
	SubjectID   string      `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	IsPublic    bool        `bson:"is_public" json:"is_public"`
	Cards       []Flashcard `bson:"cards" json:"cards"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}

type Flashcard struct {
	CardID    string    `bson:"card_id" json:"card_id"`
	FrontText string    `bson:"front_text" json:"front_text"`
	BackText  string    `bson:"back_text" json:"back_text"`
	Hint      string    `bson:"hint,omitempty" json:"hint,omitempty"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// FlashcardProgress is the per-(user, card) spaced-repetition record.
type FlashcardProgress struct {
	UserID       string      `bson:"user_id" json:"user_id"`
	FlashcardID  string      `bson:"flashcard_id" json:"flashcard_id"`
	Difficulty   ReviewGrade `bson:"difficulty" json:"difficulty"`
	ReviewCount  int         `bson:"review_count" json:"review_count"`
	LastReviewed time.Time   `bson:"last_reviewed" json:"last_reviewed"`
	NextReview   *time.Time  `bson:"next_review,omitempty" json:"next_review,omitempty"`
	IsMastered   bool        `bson:"is_mastered" json:"is_mastered"`
}

type StudySession struct {
	SessionID       string     `bson:"_id" json:"id"`
	UserID          string     `bson:"user_id" json:"user_id"`
	SetID           string     `bson:"set_id" json:"set_id"`
	CardsStudied    int        `bson:"cards_studied" json:"cards_studied"`
	CardsMastered   int        `bson:"cards_mastered" json:"cards_mastered"`
	SessionDuration int        `bson:"session_duration" json:"session_duration"` // seconds
	StartedAt       time.Time  `bson:"started_at" json:"started_at"`
	CompletedAt     *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}
