package dto

import "main/model"

type CreateQuizRequest struct {
	Title       string                  `json:"title" binding:"required,max=200"`
	Description string                  `json:"description"`
	SubjectID   string                  `json:"subject_id"`
	NoteID      string                  `json:"note_id"`
	Difficulty  model.QuizDifficulty    `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	TimeLimit   int                     `json:"time_limit" binding:"omitempty,min=0"`
	Questions   []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text" binding:"required"`
	Explanation  string                `json:"explanation"`
	Choices      []CreateChoiceRequest `json:"choices" binding:"required,min=2,dive"`
}

type CreateChoiceRequest struct {
	ChoiceText string `json:"choice_text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuizSubmission maps question IDs to the chosen choice IDs.
type QuizSubmission struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	TimeTaken int               `json:"time_taken" binding:"omitempty,min=0"` // seconds
}

type GenerateQuizRequest struct {
	NoteID       string `json:"note_id"`
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=20"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}
