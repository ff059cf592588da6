package survey

import (
	"context"
	"errors"
	"time"

	"pathway-compass/survey-portal-backend/internal/registry"
)

// ErrNotFound is returned when the owning user record or the project id
// inside it does not exist.
var ErrNotFound = errors.New("not found")

// UserRecord is the per-user document. Projects are stored as a map
// field inside it, so every write in this package is a read-modify-write
// of the whole record.
type UserRecord struct {
	ID           string              `bson:"_id" json:"id"`
	Email        string              `bson:"email" json:"email"`
	Name         string              `bson:"name" json:"name"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Projects     map[string]*Project `bson:"projects,omitempty" json:"projects,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// Store isolates the rest of the system from the persistence technology.
//
// MergeSection and SetProgress are read-modify-write over the whole user
// record with no transaction and no concurrency token: a write from
// another session landing between this store's read and write is
// overwritten. That lost-update behavior is part of the contract, not an
// oversight; callers must not assume anything stronger.
type Store interface {
	LoadProject(ctx context.Context, userID, projectID string) (*Project, error)
	ListProjects(ctx context.Context, userID string) ([]*Project, error)
	CreateProject(ctx context.Context, userID string, project *Project) error
	DeleteProject(ctx context.Context, userID, projectID string) error

	// MergeSection replaces one section's answers inside one project and
	// writes the record back. Other projects and sections are untouched.
	MergeSection(ctx context.Context, userID, projectID string, key registry.SectionKey, answers SectionAnswers) error

	// SetProgress rewrites the stored progress percentage, same shape as
	// MergeSection but scoped to the progress field.
	SetProgress(ctx context.Context, userID, projectID string, percent int) error

	// MarkSubmitted records the explicit submission action.
	MarkSubmitted(ctx context.Context, userID, projectID string) error
}
