package handler

import (
	"main/dto"
	"main/middleware"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	note := &model.Note{
		UserID:     userID.(string),
		Title:      req.Title,
		Content:    req.Content,
		SubjectID:  req.SubjectID,
		Tags:       req.Tags,
		Difficulty: req.Difficulty,
	}

	ctx := c.Request.Context()
	if err := notesService.CreateNote(ctx, note); err != nil {
		respondDomainError(c, err, "Failed to create note")
		return
	}

	middleware.TrackStudyEvent("note")
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Created(c, note)
}

func GetNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	notes, err := notesService.GetUserNotes(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	utils.Success(c, gin.H{"notes": notes, "count": len(notes)})
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	note, err := notesService.GetNote(c.Request.Context(), c.Param("id"), userID.(string))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch note")
		return
	}

	utils.Success(c, note)
}

func GetNotesBySubjectHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	notes, err := notesService.GetNotesBySubject(c.Request.Context(), userID.(string), c.Param("subjectId"))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch notes")
		return
	}

	utils.Success(c, gin.H{"notes": notes, "count": len(notes)})
}

func GetFavoriteNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	notes, err := notesService.GetFavoriteNotes(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch favorite notes")
		return
	}

	utils.Success(c, gin.H{"notes": notes, "count": len(notes)})
}

func SearchNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	notes, err := notesService.SearchNotes(c.Request.Context(), userID.(string), c.Query("q"))
	if err != nil {
		respondDomainError(c, err, "Failed to search notes")
		return
	}

	utils.Success(c, gin.H{"notes": notes, "count": len(notes)})
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	updates := &model.Note{
		Title:      req.Title,
		Content:    req.Content,
		SubjectID:  req.SubjectID,
		Tags:       req.Tags,
		Difficulty: req.Difficulty,
	}

	if err := notesService.UpdateNote(c.Request.Context(), c.Param("id"), userID.(string), updates); err != nil {
		respondDomainError(c, err, "Failed to update note")
		return
	}

	utils.Success(c, gin.H{"message": "Note updated successfully"})
}

func ToggleFavoriteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := notesService.ToggleFavorite(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		respondDomainError(c, err, "Failed to toggle favorite")
		return
	}

	utils.Success(c, gin.H{"message": "Favorite toggled"})
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := notesService.DeleteNote(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		respondDomainError(c, err, "Failed to delete note")
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

// GenerateNoteHandler asks the AI service for markdown study notes on a topic
// and stores the result as a regular note.
func GenerateNoteHandler(c *gin.Context, notesService *usecase.NotesService, aiService *services.AIService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	if aiService == nil {
		utils.ServiceUnavailable(c, "AI generation is not configured")
		return
	}

	var req dto.GenerateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	content, err := aiService.GenerateNotes(ctx, req.Topic, req.Description, req.Guidelines)
	if err != nil {
		middleware.TrackAIGeneration("notes", false)
		utils.InternalError(c, "Failed to generate notes")
		return
	}
	middleware.TrackAIGeneration("notes", true)

	note := &model.Note{
		UserID:    userID.(string),
		Title:     req.Topic,
		Content:   content,
		SubjectID: req.SubjectID,
	}
	if err := notesService.CreateNote(ctx, note); err != nil {
		respondDomainError(c, err, "Failed to save generated note")
		return
	}

	middleware.TrackStudyEvent("note")
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Created(c, note)
}
