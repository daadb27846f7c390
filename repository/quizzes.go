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

type QuizzesRepo struct {
	MongoCollection *mongo.Collection
}

func GetQuizzesRepo(client *mongo.Client) *QuizzesRepo {
	return &QuizzesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("quizzes"),
	}
}

// CreateQuiz inserts a quiz with its embedded questions and choices
func (r *QuizzesRepo) CreateQuiz(ctx context.Context, quiz *model.Quiz) error {
	if quiz.UserID == "" {
		return errors.New("user ID is required")
	}

	quiz.CreatedAt = time.Now()
	quiz.TotalQuestions = len(quiz.Questions)

	_, err := r.MongoCollection.InsertOne(ctx, quiz)
	return err
}

func (r *QuizzesRepo) GetQuiz(ctx context.Context, quizID string, userID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": quizID, "user_id": userID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("quiz not found")
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizzesRepo) GetUserQuizzes(ctx context.Context, userID string) ([]*model.Quiz, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []*model.Quiz
	if err = cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizzesRepo) DeleteQuiz(ctx context.Context, quizID string, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": quizID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("quiz not found")
	}
	return nil
}

type QuizAttemptsRepo struct {
	MongoCollection *mongo.Collection
}

func GetQuizAttemptsRepo(client *mongo.Client) *QuizAttemptsRepo {
	return &QuizAttemptsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("quiz_attempts"),
	}
}

func (r *QuizAttemptsRepo) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error {
	attempt.CompletedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, attempt)
	return err
}

// GetUserAttempts retrieves a user's attempts, newest first
func (r *QuizAttemptsRepo) GetUserAttempts(ctx context.Context, userID string, limit int) ([]*model.QuizAttempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.QuizAttempt
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *QuizAttemptsRepo) CountUserAttempts(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
