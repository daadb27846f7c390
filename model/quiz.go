package model

import "time"

type QuizDifficulty string

const (
	QuizEasy   QuizDifficulty = "easy"
	QuizMedium QuizDifficulty = "medium"
	QuizHard   QuizDifficulty = "hard"
)

// Quiz embeds its questions and choices; attempts live in their own
// collection.
type Quiz struct {
	QuizID         string         `bson:"_id" json:"id"`
	UserID         string         `bson:"user_id" json:"user_id"`
	Title          string         `bson:"title" json:"title"`
	Description    string         `bson:"description,omitempty" json:"description,omitempty"`
	NoteID         string         `bson:"note_id,omitempty" json:"note_id,omitempty"`
	SubjectID      string         `bson:"subject_id,omitempty" json:"subject_id,omitempty"`
	Difficulty     QuizDifficulty `bson:"difficulty" json:"difficulty"`
	TimeLimit      int            `bson:"time_limit" json:"time_limit"` // seconds
	TotalQuestions int            `bson:"total_questions" json:"total_questions"`
	Questions      []Question     `bson:"questions" json:"questions"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
}

type Question struct {
	QuestionID   string   `bson:"question_id" json:"question_id"`
	QuestionText string   `bson:"question_text" json:"question_text"`
	Explanation  string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Order        int      `bson:"order" json:"order"`
	Choices      []Choice `bson:"choices" json:"choices"`
}

type Choice struct {
	ChoiceID   string `bson:"choice_id" json:"choice_id"`
	ChoiceText string `bson:"choice_text" json:"choice_text"`
	IsCorrect  bool   `bson:"is_correct" json:"-"`
	Order      int    `bson:"order" json:"order"`
}

type QuizAttempt struct {
	AttemptID      string       `bson:"_id" json:"id"`
	UserID         string       `bson:"user_id" json:"user_id"`
	QuizID         string       `bson:"quiz_id" json:"quiz_id"`
	Score          float64      `bson:"score" json:"score"` // percentage
	TotalQuestions int          `bson:"total_questions" json:"total_questions"`
	CorrectAnswers int          `bson:"correct_answers" json:"correct_answers"`
	TimeTaken      int          `bson:"time_taken" json:"time_taken"` // seconds
	Answers        []UserAnswer `bson:"answers" json:"answers"`
	CompletedAt    time.Time    `bson:"completed_at" json:"completed_at"`
}

type UserAnswer struct {
	QuestionID string `bson:"question_id" json:"question_id"`
	ChoiceID   string `bson:"choice_id" json:"choice_id"`
	IsCorrect  bool   `bson:"is_correct" json:"is_correct"`
}
