package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: email_unique index created")
	return nil
}

func EnsureItineraryIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("itineraries").Indexes()

	shareIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "shareableUUID", Value: 1}},
		Options: options.Index().
			SetName("shareableUUID_unique").
			SetUnique(true),
	}

	log.Println("EnsureItineraryIndexes: creating shareableUUID_unique index")
	if _, err := indexes.CreateOne(ctx, shareIndex); err != nil {
		log.Println("EnsureItineraryIndexes: shareableUUID index error:", err)
		return err
	}

	ownerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}

	log.Println("EnsureItineraryIndexes: creating userId_index index")
	if _, err := indexes.CreateOne(ctx, ownerIndex); err != nil {
		log.Println("EnsureItineraryIndexes: userId index error:", err)
		return err
	}

	log.Println("EnsureItineraryIndexes: itinerary indexes created")
	return nil
}
