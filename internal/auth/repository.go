package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pathway-compass/survey-portal-backend/internal/survey"
)

// ErrUserNotFound is returned when no account matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository abstracts account lookups over the users collection.
// Accounts live in the same per-user documents the survey store writes;
// this repository only ever touches whole records.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*survey.UserRecord, error)
	FindByID(ctx context.Context, id string) (*survey.UserRecord, error)
	Insert(ctx context.Context, record *survey.UserRecord) error
}

// MongoUserRepository reads and writes the users collection.
type MongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository creates a repository over the given database.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection(survey.UsersCollection)}
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*survey.UserRecord, error) {
	var rec survey.UserRecord
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &rec, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*survey.UserRecord, error) {
	var rec survey.UserRecord
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &rec, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, record *survey.UserRecord) error {
	if _, err := r.users.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// MemoryUserRepository backs tests and local development.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*survey.UserRecord
	byEmail map[string]*survey.UserRecord
}

// NewMemoryUserRepository creates an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]*survey.UserRecord),
		byEmail: make(map[string]*survey.UserRecord),
	}
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*survey.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return rec, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*survey.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return rec, nil
}

func (r *MemoryUserRepository) Insert(ctx context.Context, record *survey.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[record.Email]; exists {
		return fmt.Errorf("email %s already registered", record.Email)
	}
	r.byID[record.ID] = record
	r.byEmail[record.Email] = record
	return nil
}
