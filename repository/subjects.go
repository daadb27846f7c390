package repository

import (
	"context"
	"errors"
	"os"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subjects and tags are shared lookup tables: any authenticated user can
// create them, everyone reads them.

type SubjectsRepo struct {
	MongoCollection *mongo.Collection
}

func GetSubjectsRepo(client *mongo.Client) *SubjectsRepo {
	return &SubjectsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("subjects"),
	}
}

func (r *SubjectsRepo) CreateSubject(ctx context.Context, subject *model.Subject) error {
	_, err := r.MongoCollection.InsertOne(ctx, subject)
	if mongo.IsDuplicateKeyError(err) {
		return errors.New("subject name already exists")
	}
	return err
}

func (r *SubjectsRepo) GetSubject(ctx context.Context, subjectID string) (*model.Subject, error) {
	var subject model.Subject
	err := r.MongoCollection.FindOne(ctx, bson.M{"subject_id": subjectID}).Decode(&subject)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("subject not found")
		}
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectsRepo) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []*model.Subject
	if err = cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *SubjectsRepo) UpdateSubject(ctx context.Context, subjectID string, updates *model.Subject) error {
	update := bson.M{
		"$set": bson.M{
			"name":        updates.Name,
			"description": updates.Description,
			"color":       updates.Color,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"subject_id": subjectID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("subject not found")
	}
	return nil
}

func (r *SubjectsRepo) DeleteSubject(ctx context.Context, subjectID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("subject not found")
	}
	return nil
}

type TagsRepo struct {
	MongoCollection *mongo.Collection
}

func GetTagsRepo(client *mongo.Client) *TagsRepo {
	return &TagsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("tags"),
	}
}

func (r *TagsRepo) CreateTag(ctx context.Context, tag *model.Tag) error {
	_, err := r.MongoCollection.InsertOne(ctx, tag)
	if mongo.IsDuplicateKeyError(err) {
		return errors.New("tag already exists")
	}
	return err
}

func (r *TagsRepo) ListTags(ctx context.Context) ([]*model.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tags []*model.Tag
	if err = cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
