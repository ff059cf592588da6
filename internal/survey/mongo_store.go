package survey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pathway-compass/survey-portal-backend/internal/registry"
)

// MongoStore persists user records in a single `users` collection, one
// document per user with the projects map embedded. Writes load the
// whole document, mutate it in memory, and replace it. There is no
// transaction and no version stamp, so two concurrent editors of the
// same record can lose each other's writes. Known consistency gap.
type MongoStore struct {
	users *mongo.Collection
}

// UsersCollection is the collection holding per-user documents.
const UsersCollection = "users"

// NewMongoStore creates a store over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{users: db.Collection(UsersCollection)}
}

func (s *MongoStore) loadRecord(ctx context.Context, userID string) (*UserRecord, error) {
	var rec UserRecord
	err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return &rec, nil
}

func (s *MongoStore) replaceRecord(ctx context.Context, rec *UserRecord) error {
	rec.UpdatedAt = time.Now()
	if _, err := s.users.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec); err != nil {
		return fmt.Errorf("write user %s: %w", rec.ID, err)
	}
	return nil
}

func (s *MongoStore) LoadProject(ctx context.Context, userID, projectID string) (*Project, error) {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	project, ok := rec.Projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return project, nil
}

func (s *MongoStore) ListProjects(ctx context.Context, userID string) ([]*Project, error) {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*Project, 0, len(rec.Projects))
	for _, p := range rec.Projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MongoStore) CreateProject(ctx context.Context, userID string, project *Project) error {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}
	if rec.Projects == nil {
		rec.Projects = make(map[string]*Project)
	}
	if _, exists := rec.Projects[project.ID]; exists {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	rec.Projects[project.ID] = project
	return s.replaceRecord(ctx, rec)
}

func (s *MongoStore) DeleteProject(ctx context.Context, userID, projectID string) error {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}
	if _, ok := rec.Projects[projectID]; !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	delete(rec.Projects, projectID)
	return s.replaceRecord(ctx, rec)
}

func (s *MongoStore) MergeSection(ctx context.Context, userID, projectID string, key registry.SectionKey, answers SectionAnswers) error {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}
	project, ok := rec.Projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if project.Sections == nil {
		project.Sections = make(SectionMap)
	}
	project.Sections[key] = answers
	project.UpdatedAt = time.Now()
	return s.replaceRecord(ctx, rec)
}

func (s *MongoStore) SetProgress(ctx context.Context, userID, projectID string, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress %d out of range", percent)
	}
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}
	project, ok := rec.Projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	project.Progress = percent
	project.UpdatedAt = time.Now()
	return s.replaceRecord(ctx, rec)
}

func (s *MongoStore) MarkSubmitted(ctx context.Context, userID, projectID string) error {
	rec, err := s.loadRecord(ctx, userID)
	if err != nil {
		return err
	}
	project, ok := rec.Projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	project.Submitted = true
	project.UpdatedAt = time.Now()
	return s.replaceRecord(ctx, rec)
}

// AllProjects streams every stored project to fn. Used by the progress
// drift audit job.
func (s *MongoStore) AllProjects(ctx context.Context, fn func(userID string, project *Project) error) error {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("scan users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var rec UserRecord
		if err := cursor.Decode(&rec); err != nil {
			return fmt.Errorf("decode user: %w", err)
		}
		for _, p := range rec.Projects {
			if err := fn(rec.ID, p); err != nil {
				return err
			}
		}
	}
	return cursor.Err()
}
