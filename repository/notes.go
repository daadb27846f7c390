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

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

// CreateNote creates a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	note.CreatedAt = time.Now()
	note.UpdatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetUserNotes retrieves all notes for a user, newest first
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	var notes []*model.Note
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNote retrieves a specific note
func (r *NotesRepo) GetNote(ctx context.Context, noteID string, userID string) (*model.Note, error) {
	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("note not found")
		}
		return nil, err
	}
	return &note, nil
}

// GetNotesBySubject retrieves a user's notes for one subject
func (r *NotesRepo) GetNotesBySubject(ctx context.Context, userID string, subjectID string) ([]*model.Note, error) {
	var notes []*model.Note
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "subject_id": subjectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetFavoriteNotes retrieves all favorite notes for a user
func (r *NotesRepo) GetFavoriteNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	var notes []*model.Note
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "is_favorite": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SearchNotes searches notes by title, content or tags
func (r *NotesRepo) SearchNotes(ctx context.Context, userID string, query string) ([]*model.Note, error) {
	filter := bson.M{
		"user_id": userID,
		"$or": []bson.M{
			{"title": bson.M{"$regex": query, "$options": "i"}},
			{"content": bson.M{"$regex": query, "$options": "i"}},
			{"tags": bson.M{"$regex": query, "$options": "i"}},
		},
	}

	var notes []*model.Note
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote updates a specific note
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, userID string, updates *model.Note) error {
	updates.UpdatedAt = time.Now()

	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":      updates.Title,
			"content":    updates.Content,
			"subject_id": updates.SubjectID,
			"tags":       updates.Tags,
			"difficulty": updates.Difficulty,
			"updated_at": updates.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return errors.New("note not found")
	}

	return nil
}

// ToggleFavorite flips the is_favorite flag on a note
func (r *NotesRepo) ToggleFavorite(ctx context.Context, noteID string, userID string) error {
	var note model.Note
	filter := bson.M{
		"_id":     noteID,
		"user_id": userID,
	}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errors.New("note not found")
		}
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"is_favorite": !note.IsFavorite,
			"updated_at":  time.Now(),
		},
	}

	_, err = r.MongoCollection.UpdateOne(ctx, filter, update)
	return err
}

// DeleteNote deletes a specific note
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return errors.New("note not found")
	}

	return nil
}

// CountUserNotes counts the number of notes for a user
func (r *NotesRepo) CountUserNotes(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
