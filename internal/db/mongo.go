package db

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, one per entity.
const (
	UsersCollection     = "users"
	MealsCollection     = "meals"
	GroceriesCollection = "groceries"
	ExpensesCollection  = "expenses"
	DepositsCollection  = "deposits"
	SettingsCollection  = "settings"
)

// MongoDB connection instance, established once at startup and reused.
var (
	MongoClient *mongo.Client
	database    *mongo.Database
)

// ConnectMongoDB initializes the database connection
func ConnectMongoDB(uri, dbName string) *mongo.Database {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		slog.Error("MongoDB connection failed", "error", err)
		os.Exit(1)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		slog.Error("MongoDB ping failed", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to MongoDB", "database", dbName)
	MongoClient = client
	database = client.Database(dbName)
	return database
}

// GetCollection returns a MongoDB collection
func GetCollection(name string) *mongo.Collection {
	return database.Collection(name)
}
