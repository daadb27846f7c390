package handler

import (
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateSubjectHandler(c *gin.Context, subjectsRepo *repository.SubjectsRepo) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	subject := &model.Subject{
		SubjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}

	if err := subjectsRepo.CreateSubject(c.Request.Context(), subject); err != nil {
		respondDomainError(c, err, "Failed to create subject")
		return
	}

	utils.Created(c, subject)
}

func ListSubjectsHandler(c *gin.Context, subjectsRepo *repository.SubjectsRepo) {
	subjects, err := subjectsRepo.ListSubjects(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to fetch subjects")
		return
	}

	utils.Success(c, gin.H{"subjects": subjects, "count": len(subjects)})
}

func GetSubjectHandler(c *gin.Context, subjectsRepo *repository.SubjectsRepo) {
	subject, err := subjectsRepo.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err, "Failed to fetch subject")
		return
	}

	utils.Success(c, subject)
}

func UpdateSubjectHandler(c *gin.Context, subjectsRepo *repository.SubjectsRepo) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	updates := &model.Subject{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	if err := subjectsRepo.UpdateSubject(c.Request.Context(), c.Param("id"), updates); err != nil {
		respondDomainError(c, err, "Failed to update subject")
		return
	}

	utils.Success(c, gin.H{"message": "Subject updated successfully"})
}

func DeleteSubjectHandler(c *gin.Context, subjectsRepo *repository.SubjectsRepo) {
	if err := subjectsRepo.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err, "Failed to delete subject")
		return
	}

	utils.Success(c, gin.H{"message": "Subject deleted successfully"})
}

func CreateTagHandler(c *gin.Context, tagsRepo *repository.TagsRepo) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	tag := &model.Tag{
		TagID:     uuid.NewString(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := tagsRepo.CreateTag(c.Request.Context(), tag); err != nil {
		respondDomainError(c, err, "Failed to create tag")
		return
	}

	utils.Created(c, tag)
}

func ListTagsHandler(c *gin.Context, tagsRepo *repository.TagsRepo) {
	tags, err := tagsRepo.ListTags(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to fetch tags")
		return
	}

	utils.Success(c, gin.H{"tags": tags, "count": len(tags)})
}
