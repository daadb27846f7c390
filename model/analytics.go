package model

import "time"

type GoalType string
type AchievementType string

const (
	GoalQuizzes    GoalType = "quizzes"
	GoalNotes      GoalType = "notes"
	GoalFlashcards GoalType = "flashcards"
	GoalStudyTime  GoalType = "study_time"

	AchievementFirstQuiz        AchievementType = "first_quiz"
	AchievementQuizStreak5      AchievementType = "quiz_streak_5"
	AchievementQuizStreak10     AchievementType = "quiz_streak_10"
	AchievementPerfectScore     AchievementType = "perfect_score"
	AchievementStudyStreak7     AchievementType = "study_streak_7"
	AchievementStudyStreak30    AchievementType = "study_streak_30"
	AchievementNotesMilestone10 AchievementType = "notes_milestone_10"
	AchievementNotesMilestone50 AchievementType = "notes_milestone_50"
	AchievementFlashcardMaster  AchievementType = "flashcard_master"
)

// DailyActivity is the per-user per-day counter row. One document per
// (user_id, date) pair; the date is stored as UTC midnight.
type DailyActivity struct {
	UserID            string    `bson:"user_id" json:"user_id"`
	Date              time.Time `bson:"date" json:"date"`
	NotesCreated      int       `bson:"notes_created" json:"notes_created"`
	QuizzesTaken      int       `bson:"quizzes_taken" json:"quizzes_taken"`
	FlashcardsStudied int       `bson:"flashcards_studied" json:"flashcards_studied"`
	StudyTimeMinutes  int       `bson:"study_time_minutes" json:"study_time_minutes"`
	QuizScoreAverage  float64   `bson:"quiz_score_average" json:"quiz_score_average"`
}

// StudyStreak tracks consecutive study days per user. LongestStreak never
// decreases and TotalStudyDays is monotonic.
type StudyStreak struct {
	UserID         string     `bson:"user_id" json:"user_id"`
	CurrentStreak  int        `bson:"current_streak" json:"current_streak"`
	LongestStreak  int        `bson:"longest_streak" json:"longest_streak"`
	LastStudyDate  *time.Time `bson:"last_study_date,omitempty" json:"last_study_date,omitempty"`
	TotalStudyDays int        `bson:"total_study_days" json:"total_study_days"`
}

// SubjectPerformance is the per-(user, subject) running quiz record.
type SubjectPerformance struct {
	UserID         string    `bson:"user_id" json:"user_id"`
	SubjectID      string    `bson:"subject_id" json:"subject_id"`
	TotalQuizzes   int       `bson:"total_quizzes" json:"total_quizzes"`
	AverageScore   float64   `bson:"average_score" json:"average_score"`
	BestScore      float64   `bson:"best_score" json:"best_score"`
	TotalStudyTime int       `bson:"total_study_time" json:"total_study_time"` // minutes
	MasteryLevel   float64   `bson:"mastery_level" json:"mastery_level"`       // 0-100
	LastStudied    time.Time `bson:"last_studied" json:"last_studied"`
}

// WeeklyGoal progress is client-managed; nothing in the trackers advances
// CurrentValue automatically.
type WeeklyGoal struct {
	GoalID       string    `bson:"goal_id" json:"goal_id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	GoalType     GoalType  `bson:"goal_type" json:"goal_type"`
	TargetValue  int       `bson:"target_value" json:"target_value"`
	CurrentValue int       `bson:"current_value" json:"current_value"`
	WeekStart    time.Time `bson:"week_start" json:"week_start"`
	WeekEnd      time.Time `bson:"week_end" json:"week_end"`
	IsAchieved   bool      `bson:"is_achieved" json:"is_achieved"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Achievement rows are written by external tooling; the API only reads them.
type Achievement struct {
	AchievementID   string          `bson:"achievement_id" json:"achievement_id"`
	UserID          string          `bson:"user_id" json:"user_id"`
	AchievementType AchievementType `bson:"achievement_type" json:"achievement_type"`
	Title           string          `bson:"title" json:"title"`
	Description     string          `bson:"description" json:"description"`
	Icon            string          `bson:"icon" json:"icon"`
	EarnedAt        time.Time       `bson:"earned_at" json:"earned_at"`
}
