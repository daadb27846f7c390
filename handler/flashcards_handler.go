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

const defaultGeneratedCards = 10

func CreateFlashcardSetHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.CreateFlashcardSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cards := make([]model.Flashcard, 0, len(req.Cards))
	for _, card := range req.Cards {
		cards = append(cards, model.Flashcard{
			FrontText: card.FrontText,
			BackText:  card.BackText,
			Hint:      card.Hint,
		})
	}

	set := &model.FlashcardSet{
		UserID:      userID.(string),
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		NoteID:      req.NoteID,
		IsPublic:    req.IsPublic,
		Cards:       cards,
	}

	if err := flashcardsService.CreateSet(c.Request.Context(), set); err != nil {
		respondDomainError(c, err, "Failed to create flashcard set")
		return
	}

	utils.Created(c, set)
}

func GetFlashcardSetsHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	sets, err := flashcardsService.GetUserSets(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch flashcard sets")
		return
	}

	utils.Success(c, gin.H{"sets": sets, "count": len(sets)})
}

func GetFlashcardSetHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	set, err := flashcardsService.GetSet(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch flashcard set")
		return
	}

	utils.Success(c, set)
}

func UpdateFlashcardSetHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.UpdateFlashcardSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	updates := &model.FlashcardSet{
		Title:       req.Title,
		Description: req.Description,
		SubjectID:   req.SubjectID,
		IsPublic:    req.IsPublic,
	}

	if err := flashcardsService.UpdateSet(c.Request.Context(), c.Param("id"), userID.(string), updates); err != nil {
		respondDomainError(c, err, "Failed to update flashcard set")
		return
	}

	utils.Success(c, gin.H{"message": "Flashcard set updated successfully"})
}

func DeleteFlashcardSetHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := flashcardsService.DeleteSet(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		respondDomainError(c, err, "Failed to delete flashcard set")
		return
	}

	utils.Success(c, gin.H{"message": "Flashcard set deleted successfully"})
}

func AddCardHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	card := model.Flashcard{
		FrontText: req.FrontText,
		BackText:  req.BackText,
		Hint:      req.Hint,
	}

	created, err := flashcardsService.AddCard(c.Request.Context(), c.Param("id"), userID.(string), card)
	if err != nil {
		respondDomainError(c, err, "Failed to add card")
		return
	}

	utils.Created(c, created)
}

func RemoveCardHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := flashcardsService.RemoveCard(c.Request.Context(), c.Param("id"), userID.(string), c.Param("cardId")); err != nil {
		respondDomainError(c, err, "Failed to remove card")
		return
	}

	utils.Success(c, gin.H{"message": "Card removed successfully"})
}

// ReviewCardHandler grades one card review and returns the updated
// spaced-repetition progress including the next review time.
func ReviewCardHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	progress, err := flashcardsService.ReviewCard(ctx, userID.(string), c.Param("cardId"), req.Grade)
	if err != nil {
		respondDomainError(c, err, "Failed to review card")
		return
	}

	middleware.TrackFlashcardReview(string(req.Grade))
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Success(c, progress)
}

func GetDueCardsHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	due, err := flashcardsService.GetDueCards(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch due cards")
		return
	}

	utils.Success(c, gin.H{"due_cards": due, "count": len(due)})
}

func StartStudySessionHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	session, err := flashcardsService.StartSession(c.Request.Context(), userID.(string), req.SetID)
	if err != nil {
		respondDomainError(c, err, "Failed to start study session")
		return
	}

	utils.Created(c, session)
}

// EndStudySessionHandler closes a session. The studied cards count feeds the
// daily activity trackers, so the cached dashboard is dropped afterwards.
func EndStudySessionHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	session, err := flashcardsService.EndSession(ctx, userID.(string), c.Param("id"), req.CardsStudied, req.CardsMastered)
	if err != nil {
		respondDomainError(c, err, "Failed to end study session")
		return
	}

	middleware.TrackStudyEvent("flashcard")
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Success(c, session)
}

func GetStudySessionsHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	sessions, err := flashcardsService.GetRecentSessions(c.Request.Context(), userID.(string), limit)
	if err != nil {
		utils.InternalError(c, "Failed to fetch study sessions")
		return
	}

	utils.Success(c, gin.H{"sessions": sessions, "count": len(sessions)})
}

func GetFlashcardStatsHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	stats, err := flashcardsService.GetStats(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch flashcard stats")
		return
	}

	utils.Success(c, stats)
}

// GenerateFlashcardsHandler builds a flashcard set from AI-generated cards
// based on one of the user's notes.
func GenerateFlashcardsHandler(c *gin.Context, flashcardsService *usecase.FlashcardsService, notesService *usecase.NotesService, aiService *services.AIService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	if aiService == nil {
		utils.ServiceUnavailable(c, "AI generation is not configured")
		return
	}

	var req dto.GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	if req.NumCards == 0 {
		req.NumCards = defaultGeneratedCards
	}

	ctx := c.Request.Context()

	note, err := notesService.GetNote(ctx, req.NoteID, userID.(string))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch note")
		return
	}

	generated, err := aiService.GenerateFlashcards(ctx, note.Content, note.Title, req.NumCards)
	if err != nil {
		middleware.TrackAIGeneration("flashcards", false)
		utils.InternalError(c, "Failed to generate flashcards")
		return
	}
	middleware.TrackAIGeneration("flashcards", true)

	cards := make([]model.Flashcard, 0, len(generated))
	for _, g := range generated {
		cards = append(cards, model.Flashcard{
			FrontText: g.FrontText,
			BackText:  g.BackText,
			Hint:      g.Hint,
		})
	}

	set := &model.FlashcardSet{
		UserID:    userID.(string),
		Title:     "Flashcards: " + note.Title,
		NoteID:    note.NoteID,
		SubjectID: note.SubjectID,
		Cards:     cards,
	}

	if err := flashcardsService.CreateSet(ctx, set); err != nil {
		respondDomainError(c, err, "Failed to save generated flashcard set")
		return
	}

	utils.Created(c, set)
}
