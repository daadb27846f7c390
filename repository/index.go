package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the collection indexes. The unique compound indexes on
// the analytics collections are what enforce the one-record-per-key rule for
// daily activity, streaks, subject performance and flashcard progress.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexSets := map[string][]mongo.IndexModel{
		"notes": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "updated_at", Value: -1},
				},
				Options: options.Index().SetName("user_notes_date"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "subject_id", Value: 1},
				},
				Options: options.Index().SetName("user_notes_subject"),
			},
			{
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "content", Value: "text"},
					{Key: "tags", Value: "text"},
				},
				Options: options.Index().
					SetName("note_text_search").
					SetDefaultLanguage("english").
					SetWeights(bson.D{
						{Key: "title", Value: 10},
						{Key: "content", Value: 5},
						{Key: "tags", Value: 3},
					}),
			},
		},
		"subjects": {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("subject_name").SetUnique(true),
			},
		},
		"tags": {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("tag_name").SetUnique(true),
			},
		},
		"quizzes": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName("user_quizzes_date"),
			},
		},
		"quiz_attempts": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "completed_at", Value: -1},
				},
				Options: options.Index().SetName("user_attempts_date"),
			},
			{
				Keys:    bson.D{{Key: "quiz_id", Value: 1}},
				Options: options.Index().SetName("quiz_attempts"),
			},
		},
		"flashcard_sets": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "updated_at", Value: -1},
				},
				Options: options.Index().SetName("user_sets_date"),
			},
			{
				Keys:    bson.D{{Key: "is_public", Value: 1}},
				Options: options.Index().SetName("public_sets"),
			},
		},
		"study_sessions": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "started_at", Value: -1},
				},
				Options: options.Index().SetName("user_sessions_date"),
			},
		},
		"daily_activities": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "date", Value: -1},
				},
				Options: options.Index().
					SetName("user_daily_activity").
					SetUnique(true),
			},
		},
		"study_streaks": {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_streak").SetUnique(true),
			},
		},
		"subject_performances": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "subject_id", Value: 1},
				},
				Options: options.Index().
					SetName("user_subject_performance").
					SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "average_score", Value: -1},
				},
				Options: options.Index().SetName("user_performance_order"),
			},
		},
		"flashcard_progress": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "flashcard_id", Value: 1},
				},
				Options: options.Index().
					SetName("user_card_progress").
					SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "next_review", Value: 1},
				},
				Options: options.Index().SetName("user_due_cards"),
			},
		},
		"weekly_goals": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "goal_type", Value: 1},
					{Key: "week_start", Value: 1},
				},
				Options: options.Index().
					SetName("user_weekly_goal").
					SetUnique(true),
			},
		},
		"achievements": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "achievement_type", Value: 1},
				},
				Options: options.Index().
					SetName("user_achievement").
					SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "earned_at", Value: -1},
				},
				Options: options.Index().SetName("user_achievements_date"),
			},
		},
		"users": {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("username_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_id_index").SetUnique(true),
			},
		},
		"sessions": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "is_active", Value: 1},
				},
				Options: options.Index().SetName("user_active_sessions"),
			},
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("session_id_unique").SetUnique(true),
			},
		},
	}

	for collection, indexes := range indexSets {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
