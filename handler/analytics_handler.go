package handler

import (
	"log"
	"strconv"
	"time"

	"main/dto"
	"main/middleware"
	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordEventHandler feeds one raw study event into the trackers and returns
// the updated daily activity row.
func RecordEventHandler(c *gin.Context, trackerService *usecase.TrackerService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	activity, err := trackerService.RecordEvent(ctx, userID.(string), usecase.ActivityKind(req.Kind), usecase.EventPayload{
		Score:            req.Score,
		StudyTimeMinutes: req.StudyTimeMinutes,
		CardsStudied:     req.CardsStudied,
	})
	if err != nil {
		utils.InternalError(c, "Failed to record study event")
		return
	}

	middleware.TrackStudyEvent(req.Kind)
	services.InvalidateDashboard(ctx, userID.(string))

	utils.Success(c, activity)
}

// GetDashboardHandler serves the aggregated dashboard, preferring the Redis
// snapshot when one is fresh. Cache failures fall back to a live aggregation.
func GetDashboardHandler(c *gin.Context, dashboardService *usecase.DashboardService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	ctx := c.Request.Context()

	if services.GlobalDashboardCache != nil {
		cached, err := services.GlobalDashboardCache.Get(ctx, userID.(string))
		if err != nil {
			log.Printf("Warning: dashboard cache read failed for user %s: %v", userID.(string), err)
		}
		if cached != nil {
			utils.Success(c, cached)
			return
		}
	}

	snapshot, err := dashboardService.GetDashboard(ctx, userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to build dashboard")
		return
	}

	if services.GlobalDashboardCache != nil {
		if err := services.GlobalDashboardCache.Set(ctx, userID.(string), snapshot); err != nil {
			log.Printf("Warning: dashboard cache write failed for user %s: %v", userID.(string), err)
		}
	}

	utils.Success(c, snapshot)
}

// GetStreakHandler returns the user's streak record, an all-zero one when
// they have never studied.
func GetStreakHandler(c *gin.Context, streakRepo *repository.StudyStreakRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	streak, err := streakRepo.Get(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch streak")
		return
	}
	if streak == nil {
		streak = &model.StudyStreak{UserID: userID.(string)}
	}

	utils.Success(c, streak)
}

func GetSubjectPerformanceHandler(c *gin.Context, performanceRepo *repository.SubjectPerformanceRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	performances, err := performanceRepo.ListByUser(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch subject performance")
		return
	}

	utils.Success(c, gin.H{"performances": performances, "count": len(performances)})
}

// CreateGoalHandler creates a goal for the current week. The week runs
// Monday through Sunday.
func CreateGoalHandler(c *gin.Context, goalRepo *repository.WeeklyGoalRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	weekStart := utils.WeekStart(utils.Midnight(time.Now()))
	goal := &model.WeeklyGoal{
		GoalID:      uuid.NewString(),
		UserID:      userID.(string),
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		WeekStart:   weekStart,
		WeekEnd:     weekStart.AddDate(0, 0, 6),
		CreatedAt:   time.Now(),
	}

	if err := goalRepo.Create(c.Request.Context(), goal); err != nil {
		utils.InternalError(c, "Failed to create goal")
		return
	}

	utils.Created(c, goal)
}

func ListGoalsHandler(c *gin.Context, goalRepo *repository.WeeklyGoalRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	weekStart := utils.WeekStart(utils.Midnight(time.Now()))
	goals, err := goalRepo.ListForWeek(c.Request.Context(), userID.(string), weekStart)
	if err != nil {
		utils.InternalError(c, "Failed to fetch goals")
		return
	}

	utils.Success(c, gin.H{"goals": goals, "count": len(goals)})
}

func UpdateGoalHandler(c *gin.Context, goalRepo *repository.WeeklyGoalRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := goalRepo.Update(c.Request.Context(), c.Param("id"), userID.(string), req.CurrentValue, req.IsAchieved); err != nil {
		respondDomainError(c, err, "Failed to update goal")
		return
	}

	utils.Success(c, gin.H{"message": "Goal updated successfully"})
}

func DeleteGoalHandler(c *gin.Context, goalRepo *repository.WeeklyGoalRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := goalRepo.Delete(c.Request.Context(), c.Param("id"), userID.(string)); err != nil {
		respondDomainError(c, err, "Failed to delete goal")
		return
	}

	utils.Success(c, gin.H{"message": "Goal deleted successfully"})
}

func ListAchievementsHandler(c *gin.Context, achievementRepo *repository.AchievementRepo) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	achievements, err := achievementRepo.ListRecent(c.Request.Context(), userID.(string), limit)
	if err != nil {
		utils.InternalError(c, "Failed to fetch achievements")
		return
	}

	utils.Success(c, gin.H{"achievements": achievements, "count": len(achievements)})
}
