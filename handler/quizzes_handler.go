package handler

import (
	"strconv"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

const defaultGeneratedQuestions = 5

func CreateQuizHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	quiz := quizFromRequest(userID.(string), &req)
	if err := quizzesService.CreateQuiz(c.Request.Context(), quiz); err != nil {
		respondDomainError(c, err, "Failed to create quiz")
		return
	}

	utils.Created(c, quiz)
}

func GetQuizzesHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	quizzes, err := quizzesService.GetUserQuizzes(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch quizzes")
		return
	}

	utils.Success(c, gin.H{"quizzes": quizzes, "count": len(quizzes)})
}

func GetQuizHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	quiz, err := quizzesService.GetQuiz(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch quiz")
		return
	}

	utils.Success(c, quiz)
}

func DeleteQuizHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := quizzesService.DeleteQuiz(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		respondDomainError(c, err, "Failed to delete quiz")
		return
	}

	utils.Success(c, gin.H{"message": "Quiz deleted successfully"})
}

// SubmitQuizHandler grades a submission. The attempt feeds the study
// trackers, so the cached dashboard is dropped afterwards.
func SubmitQuizHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.QuizSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	attempt, err := quizzesService.SubmitQuiz(ctx, userID.(string), c.Param("id"), req.Answers, req.TimeTaken)
	if err != nil {
		respondDomainError(c, err, "Failed to submit quiz")
		return
	}

	middleware.TrackQuizSubmission()
	middleware.TrackStudyEvent("quiz")
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Success(c, attempt)
}

func GetQuizAttemptsHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	attempts, err := quizzesService.GetUserAttempts(c.Request.Context(), userID.(string), limit)
	if err != nil {
		utils.InternalError(c, "Failed to fetch attempts")
		return
	}

	utils.Success(c, gin.H{"attempts": attempts, "count": len(attempts)})
}

func GetQuizStatsHandler(c *gin.Context, quizzesService *usecase.QuizzesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	stats, err := quizzesService.GetQuizStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch quiz stats")
		return
	}

	utils.Success(c, stats)
}

// GenerateQuizHandler builds a quiz from AI-generated questions, sourced
// either from one of the user's notes or from a free-form topic.
func GenerateQuizHandler(c *gin.Context, quizzesService *usecase.QuizzesService, notesService *usecase.NotesService, aiService *services.AIService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	if aiService == nil {
		utils.ServiceUnavailable(c, "AI generation is not configured")
		return
	}

	var req dto.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.NoteID == "" && req.Topic == "" {
		utils.BadRequest(c, "Either note_id or topic is required")
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = defaultGeneratedQuestions
	}

	ctx := c.Request.Context()

	var (
		generated []services.GeneratedQuestion
		title     string
		noteID    string
		subjectID string
		err       error
	)
	if req.NoteID != "" {
		note, noteErr := notesService.GetNote(ctx, req.NoteID, userID.(string))
		if noteErr != nil {
			respondDomainError(c, noteErr, "Failed to fetch note")
			return
		}
		title = "Quiz: " + note.Title
		noteID = note.NoteID
		subjectID = note.SubjectID
		generated, err = aiService.GenerateQuizQuestions(ctx, note.Content, note.Title, req.NumQuestions, req.Difficulty)
	} else {
		title = "Quiz: " + req.Topic
		generated, err = aiService.GenerateQuizFromTopic(ctx, req.Topic, req.NumQuestions, req.Difficulty)
	}
	if err != nil {
		middleware.TrackAIGeneration("quiz", false)
		utils.InternalError(c, "Failed to generate quiz questions")
		return
	}
	middleware.TrackAIGeneration("quiz", true)

	quiz := &model.Quiz{
		UserID:     userID.(string),
		Title:      title,
		NoteID:     noteID,
		SubjectID:  subjectID,
		Difficulty: model.QuizDifficulty(req.Difficulty),
		Questions:  questionsFromGenerated(generated),
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = model.QuizMedium
	}

	if err := quizzesService.CreateQuiz(ctx, quiz); err != nil {
		respondDomainError(c, err, "Failed to save generated quiz")
		return
	}

	utils.Created(c, quiz)
}

func quizFromRequest(userID string, req *dto.CreateQuizRequest) *model.Quiz {
	questions := make([]model.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		choices := make([]model.Choice, 0, len(q.Choices))
		for _, ch := range q.Choices {
			choices = append(choices, model.Choice{
				ChoiceText: ch.ChoiceText,
				IsCorrect:  ch.IsCorrect,
			})
		}
		questions = append(questions, model.Question{
			QuestionText: q.QuestionText,
			Explanation:  q.Explanation,
			Choices:      choices,
		})
	}

	return &model.Quiz{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		NoteID:      req.NoteID,
		SubjectID:   req.SubjectID,
		Difficulty:  req.Difficulty,
		TimeLimit:   req.TimeLimit,
		Questions:   questions,
	}
}

func questionsFromGenerated(generated []services.GeneratedQuestion) []model.Question {
	questions := make([]model.Question, 0, len(generated))
	for _, g := range generated {
		choices := make([]model.Choice, 0, len(g.Choices))
		for _, ch := range g.Choices {
			choices = append(choices, model.Choice{
				ChoiceText: ch.Text,
				IsCorrect:  ch.IsCorrect,
			})
		}
		questions = append(questions, model.Question{
			QuestionText: g.QuestionText,
			Explanation:  g.Explanation,
			Choices:      choices,
		})
	}
	return questions
}
