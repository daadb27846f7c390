package usecase

import (
	"context"
	"errors"
	"math"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

type QuizzesService struct {
	Quizzes  *repository.QuizzesRepo
	Attempts *repository.QuizAttemptsRepo
	Tracker  *TrackerService
}

// QuizStats summarizes a user's attempt history.
type QuizStats struct {
	TotalAttempts int     `json:"total_attempts"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
}

func (svc *QuizzesService) validateQuiz(quiz *model.Quiz) error {
	if quiz.Title == "" {
		return errors.New("quiz title is required")
	}
	if len(quiz.Questions) == 0 {
		return errors.New("quiz must have at least one question")
	}

	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		if question.QuestionText == "" {
			return errors.New("question text is required")
		}
		if len(question.Choices) < 2 {
			return errors.New("question must have at least two choices")
		}

		correct := 0
		for _, choice := range question.Choices {
			if choice.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return errors.New("question must have exactly one correct choice")
		}
	}

	return nil
}

// CreateQuiz validates the quiz and assigns IDs to it and its embedded
// questions and choices.
func (svc *QuizzesService) CreateQuiz(ctx context.Context, quiz *model.Quiz) error {
	if err := svc.validateQuiz(quiz); err != nil {
		return err
	}

	quiz.QuizID = uuid.NewString()
	for qi := range quiz.Questions {
		question := &quiz.Questions[qi]
		question.QuestionID = uuid.NewString()
		question.Order = qi
		for ci := range question.Choices {
			question.Choices[ci].ChoiceID = uuid.NewString()
			question.Choices[ci].Order = ci
		}
	}

	if quiz.Difficulty == "" {
		quiz.Difficulty = model.QuizMedium
	}

	return svc.Quizzes.CreateQuiz(ctx, quiz)
}

func (svc *QuizzesService) GetQuiz(ctx context.Context, quizID string, userID string) (*model.Quiz, error) {
	return svc.Quizzes.GetQuiz(ctx, quizID, userID)
}

func (svc *QuizzesService) GetUserQuizzes(ctx context.Context, userID string) ([]*model.Quiz, error) {
	return svc.Quizzes.GetUserQuizzes(ctx, userID)
}

func (svc *QuizzesService) DeleteQuiz(ctx context.Context, quizID string, userID string) error {
	return svc.Quizzes.DeleteQuiz(ctx, quizID, userID)
}

// SubmitQuiz grades the submitted answers, stores the attempt and feeds the
// result into the study activity tracker. The score is the percentage of
// correct answers rounded to two decimal places; unanswered questions count
// as wrong.
func (svc *QuizzesService) SubmitQuiz(ctx context.Context, userID string, quizID string, answers map[string]string, timeTakenSeconds int) (*model.QuizAttempt, error) {
	quiz, err := svc.Quizzes.GetQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, errors.New("quiz has no questions")
	}

	correct := 0
	graded := make([]model.UserAnswer, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		choiceID, answered := answers[question.QuestionID]
		if !answered {
			continue
		}

		answer := model.UserAnswer{
			QuestionID: question.QuestionID,
			ChoiceID:   choiceID,
		}
		for _, choice := range question.Choices {
			if choice.ChoiceID == choiceID && choice.IsCorrect {
				answer.IsCorrect = true
				correct++
				break
			}
		}
		graded = append(graded, answer)
	}

	score := float64(correct) / float64(len(quiz.Questions)) * 100
	score = math.Round(score*100) / 100

	attempt := &model.QuizAttempt{
		AttemptID:      uuid.NewString(),
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: len(quiz.Questions),
		CorrectAnswers: correct,
		TimeTaken:      timeTakenSeconds,
		Answers:        graded,
	}

	if err := svc.Attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	if svc.Tracker != nil {
		if err := svc.Tracker.TrackQuizCompletion(ctx, userID, quiz.SubjectID, score, timeTakenSeconds); err != nil {
			return nil, err
		}
	}

	return attempt, nil
}

func (svc *QuizzesService) GetUserAttempts(ctx context.Context, userID string, limit int) ([]*model.QuizAttempt, error) {
	return svc.Attempts.GetUserAttempts(ctx, userID, limit)
}

func (svc *QuizzesService) GetQuizStats(ctx context.Context, userID string) (*QuizStats, error) {
	attempts, err := svc.Attempts.GetUserAttempts(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &QuizStats{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return stats, nil
	}

	var sum float64
	for _, attempt := range attempts {
		sum += attempt.Score
		if attempt.Score > stats.BestScore {
			stats.BestScore = attempt.Score
		}
	}
	stats.AverageScore = math.Round(sum/float64(len(attempts))*100) / 100

	return stats, nil
}
