package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DailyActivityRepo stores one document per (user_id, date). The unique
// compound index created in SetupIndexes makes the upsert atomic.
type DailyActivityRepo struct {
	MongoCollection *mongo.Collection
}

func GetDailyActivityRepo(client *mongo.Client) *DailyActivityRepo {
	return &DailyActivityRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("daily_activities"),
	}
}

func (r *DailyActivityRepo) GetByDate(ctx context.Context, userID string, date time.Time) (*model.DailyActivity, error) {
	var activity model.DailyActivity
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "date": date}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *DailyActivityRepo) GetSince(ctx context.Context, userID string, from time.Time) ([]*model.DailyActivity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "date": bson.M{"$gte": from}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []*model.DailyActivity
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *DailyActivityRepo) Save(ctx context.Context, activity *model.DailyActivity) error {
	filter := bson.M{"user_id": activity.UserID, "date": activity.Date}
	opts := options.Replace().SetUpsert(true)

	_, err := r.MongoCollection.ReplaceOne(ctx, filter, activity, opts)
	return err
}

// StudyStreakRepo stores one streak document per user.
type StudyStreakRepo struct {
	MongoCollection *mongo.Collection
}

func GetStudyStreakRepo(client *mongo.Client) *StudyStreakRepo {
	return &StudyStreakRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("study_streaks"),
	}
}

func (r *StudyStreakRepo) Get(ctx context.Context, userID string) (*model.StudyStreak, error) {
	var streak model.StudyStreak
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&streak)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &streak, nil
}

func (r *StudyStreakRepo) Save(ctx context.Context, streak *model.StudyStreak) error {
	filter := bson.M{"user_id": streak.UserID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.MongoCollection.ReplaceOne(ctx, filter, streak, opts)
	return err
}

// SubjectPerformanceRepo stores one document per (user_id, subject_id).
type SubjectPerformanceRepo struct {
	MongoCollection *mongo.Collection
}

func GetSubjectPerformanceRepo(client *mongo.Client) *SubjectPerformanceRepo {
	return &SubjectPerformanceRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("subject_performances"),
	}
}

func (r *SubjectPerformanceRepo) Get(ctx context.Context, userID string, subjectID string) (*model.SubjectPerformance, error) {
	var performance model.SubjectPerformance
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "subject_id": subjectID}).Decode(&performance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &performance, nil
}

func (r *SubjectPerformanceRepo) ListByUser(ctx context.Context, userID string) ([]*model.SubjectPerformance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "average_score", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var performances []*model.SubjectPerformance
	if err = cursor.All(ctx, &performances); err != nil {
		return nil, err
	}
	return performances, nil
}

func (r *SubjectPerformanceRepo) Save(ctx context.Context, performance *model.SubjectPerformance) error {
	filter := bson.M{"user_id": performance.UserID, "subject_id": performance.SubjectID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.MongoCollection.ReplaceOne(ctx, filter, performance, opts)
	return err
}

// FlashcardProgressRepo stores one document per (user_id, flashcard_id).
type FlashcardProgressRepo struct {
	MongoCollection *mongo.Collection
}

func GetFlashcardProgressRepo(client *mongo.Client) *FlashcardProgressRepo {
	return &FlashcardProgressRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("flashcard_progress"),
	}
}

func (r *FlashcardProgressRepo) Get(ctx context.Context, userID string, flashcardID string) (*model.FlashcardProgress, error) {
	var progress model.FlashcardProgress
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "flashcard_id": flashcardID}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *FlashcardProgressRepo) Save(ctx context.Context, progress *model.FlashcardProgress) error {
	filter := bson.M{"user_id": progress.UserID, "flashcard_id": progress.FlashcardID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.MongoCollection.ReplaceOne(ctx, filter, progress, opts)
	return err
}

// CountStudied counts cards the user has reviewed at least once.
func (r *FlashcardProgressRepo) CountStudied(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

func (r *FlashcardProgressRepo) CountMastered(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "is_mastered": true})
	return int(count), err
}

// CountDue counts cards whose next review time has passed.
func (r *FlashcardProgressRepo) CountDue(ctx context.Context, userID string, now time.Time) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "next_review": bson.M{"$lte": now}})
	return int(count), err
}

func (r *FlashcardProgressRepo) ListDue(ctx context.Context, userID string, now time.Time) ([]*model.FlashcardProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "next_review", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "next_review": bson.M{"$lte": now}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var due []*model.FlashcardProgress
	if err = cursor.All(ctx, &due); err != nil {
		return nil, err
	}
	return due, nil
}

// WeeklyGoalRepo manages client-defined weekly goals. Nothing in the
// trackers advances goal progress.
type WeeklyGoalRepo struct {
	MongoCollection *mongo.Collection
}

func GetWeeklyGoalRepo(client *mongo.Client) *WeeklyGoalRepo {
	return &WeeklyGoalRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("weekly_goals"),
	}
}

func (r *WeeklyGoalRepo) Create(ctx context.Context, goal *model.WeeklyGoal) error {
	_, err := r.MongoCollection.InsertOne(ctx, goal)
	return err
}

func (r *WeeklyGoalRepo) ListForWeek(ctx context.Context, userID string, weekStart time.Time) ([]*model.WeeklyGoal, error) {
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "week_start": weekStart})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []*model.WeeklyGoal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *WeeklyGoalRepo) Update(ctx context.Context, goalID string, userID string, currentValue int, isAchieved bool) error {
	filter := bson.M{"goal_id": goalID, "user_id": userID}
	update := bson.M{"$set": bson.M{
		"current_value": currentValue,
		"is_achieved":   isAchieved,
	}}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("goal not found")
	}
	return nil
}

func (r *WeeklyGoalRepo) Delete(ctx context.Context, goalID string, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"goal_id": goalID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("goal not found")
	}
	return nil
}

// AchievementRepo reads achievement rows; they are written by external
// tooling, never by the API.
type AchievementRepo struct {
	MongoCollection *mongo.Collection
}

func GetAchievementRepo(client *mongo.Client) *AchievementRepo {
	return &AchievementRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("achievements"),
	}
}

func (r *AchievementRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*model.Achievement, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "earned_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var achievements []*model.Achievement
	if err = cursor.All(ctx, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

// TotalsRepo backs the dashboard's lifetime counters by reading the notes,
// quiz attempt and flashcard set collections directly.
type TotalsRepo struct {
	Notes    *mongo.Collection
	Attempts *mongo.Collection
	Sets     *mongo.Collection
}

func GetTotalsRepo(client *mongo.Client) *TotalsRepo {
	db := client.Database(os.Getenv("MONGO_DB"))
	return &TotalsRepo{
		Notes:    db.Collection("notes"),
		Attempts: db.Collection("quiz_attempts"),
		Sets:     db.Collection("flashcard_sets"),
	}
}

func (r *TotalsRepo) CountNotes(ctx context.Context, userID string) (int, error) {
	count, err := r.Notes.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

func (r *TotalsRepo) CountQuizAttempts(ctx context.Context, userID string) (int, error) {
	count, err := r.Attempts.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

func (r *TotalsRepo) CountFlashcardSets(ctx context.Context, userID string) (int, error) {
	count, err := r.Sets.CountDocuments(ctx, bson.M{"user_id": userID})
	return int(count), err
}

func (r *TotalsRepo) QuizScores(ctx context.Context, userID string) ([]float64, error) {
	opts := options.Find().SetProjection(bson.M{"score": 1})

	cursor, err := r.Attempts.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Score float64 `bson:"score"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	scores := make([]float64, len(docs))
	for i, d := range docs {
		scores[i] = d.Score
	}
	return scores, nil
}
