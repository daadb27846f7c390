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

type FlashcardSetsRepo struct {
	MongoCollection *mongo.Collection
}

func GetFlashcardSetsRepo(client *mongo.Client) *FlashcardSetsRepo {
	return &FlashcardSetsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("flashcard_sets"),
	}
}

func (r *FlashcardSetsRepo) CreateSet(ctx context.Context, set *model.FlashcardSet) error {
	if set.UserID == "" {
		return errors.New("user ID is required")
	}

	set.CreatedAt = time.Now()
	set.UpdatedAt = time.Now()
	if set.Cards == nil {
		set.Cards = []model.Flashcard{}
	}

	_, err := r.MongoCollection.InsertOne(ctx, set)
	return err
}

// GetSet retrieves a set the user owns or any public set
func (r *FlashcardSetsRepo) GetSet(ctx context.Context, setID string, userID string) (*model.FlashcardSet, error) {
	filter := bson.M{
		"_id": setID,
		"$or": []bson.M{
			{"user_id": userID},
			{"is_public": true},
		},
	}

	var set model.FlashcardSet
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("flashcard set not found")
		}
		return nil, err
	}
	return &set, nil
}

// GetUserSets retrieves the user's own sets plus public ones
func (r *FlashcardSetsRepo) GetUserSets(ctx context.Context, userID string) ([]*model.FlashcardSet, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user_id": userID},
			{"is_public": true},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sets []*model.FlashcardSet
	if err = cursor.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *FlashcardSetsRepo) UpdateSet(ctx context.Context, setID string, userID string, updates *model.FlashcardSet) error {
	filter := bson.M{"_id": setID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":       updates.Title,
			"description": updates.Description,
			"subject_id":  updates.SubjectID,
			"is_public":   updates.IsPublic,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("flashcard set not found")
	}
	return nil
}

func (r *FlashcardSetsRepo) DeleteSet(ctx context.Context, setID string, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": setID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("flashcard set not found")
	}
	return nil
}

// AddCard appends a card to a set the user owns
func (r *FlashcardSetsRepo) AddCard(ctx context.Context, setID string, userID string, card model.Flashcard) error {
	filter := bson.M{"_id": setID, "user_id": userID}
	update := bson.M{
		"$push": bson.M{"cards": card},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("flashcard set not found")
	}
	return nil
}

func (r *FlashcardSetsRepo) RemoveCard(ctx context.Context, setID string, userID string, cardID string) error {
	filter := bson.M{"_id": setID, "user_id": userID}
	update := bson.M{
		"$pull": bson.M{"cards": bson.M{"card_id": cardID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("flashcard set not found")
	}
	return nil
}

// FindCard locates a card by ID in any set visible to the user
func (r *FlashcardSetsRepo) FindCard(ctx context.Context, cardID string, userID string) (*model.Flashcard, error) {
	filter := bson.M{
		"cards.card_id": cardID,
		"$or": []bson.M{
			{"user_id": userID},
			{"is_public": true},
		},
	}

	var set model.FlashcardSet
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&set)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("flashcard not found")
		}
		return nil, err
	}

	for i := range set.Cards {
		if set.Cards[i].CardID == cardID {
			return &set.Cards[i], nil
		}
	}
	return nil, errors.New("flashcard not found")
}

type StudySessionsRepo struct {
	MongoCollection *mongo.Collection
}

func GetStudySessionsRepo(client *mongo.Client) *StudySessionsRepo {
	return &StudySessionsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("study_sessions"),
	}
}

func (r *StudySessionsRepo) CreateSession(ctx context.Context, session *model.StudySession) error {
	session.StartedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, session)
	return err
}

func (r *StudySessionsRepo) GetSession(ctx context.Context, sessionID string, userID string) (*model.StudySession, error) {
	var session model.StudySession
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": sessionID, "user_id": userID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("study session not found")
		}
		return nil, err
	}
	return &session, nil
}

func (r *StudySessionsRepo) CompleteSession(ctx context.Context, session *model.StudySession) error {
	filter := bson.M{"_id": session.SessionID, "user_id": session.UserID}
	update := bson.M{
		"$set": bson.M{
			"cards_studied":    session.CardsStudied,
			"cards_mastered":   session.CardsMastered,
			"session_duration": session.SessionDuration,
			"completed_at":     session.CompletedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("study session not found")
	}
	return nil
}

// GetRecentSessions retrieves the user's latest sessions, newest first
func (r *StudySessionsRepo) GetRecentSessions(ctx context.Context, userID string, limit int) ([]*model.StudySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.StudySession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *StudySessionsRepo) CountUserSessions(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
