package dto

import "main/model"

type RecordEventRequest struct {
	Kind             string  `json:"kind" binding:"required,oneof=quiz flashcard note"`
	Score            float64 `json:"score" binding:"omitempty,min=0,max=100"`
	StudyTimeMinutes int     `json:"study_time_minutes" binding:"omitempty,min=0"`
	CardsStudied     int     `json:"cards_studied" binding:"omitempty,min=0"`
}

type CreateGoalRequest struct {
	GoalType    model.GoalType `json:"goal_type" binding:"required,oneof=quizzes notes flashcards study_time"`
	TargetValue int            `json:"target_value" binding:"required,min=1"`
}

type UpdateGoalRequest struct {
	CurrentValue int  `json:"current_value" binding:"min=0"`
	IsAchieved   bool `json:"is_achieved"`
}
