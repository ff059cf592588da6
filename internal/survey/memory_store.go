package survey

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pathway-compass/survey-portal-backend/internal/registry"
)

// MemoryStore is an in-memory Store used by tests and local development.
// It follows the same read-modify-write discipline as the Mongo store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*UserRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*UserRecord)}
}

// PutUser inserts or replaces a user record.
func (s *MemoryStore) PutUser(record *UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
}

func (s *MemoryStore) record(userID string) (*UserRecord, error) {
	rec, ok := s.records[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return rec, nil
}

func (s *MemoryStore) project(userID, projectID string) (*Project, error) {
	rec, err := s.record(userID)
	if err != nil {
		return nil, err
	}
	project, ok := rec.Projects[projectID]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	return project, nil
}

func (s *MemoryStore) LoadProject(ctx context.Context, userID, projectID string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, err := s.project(userID, projectID)
	if err != nil {
		return nil, err
	}
	return project.Clone(), nil
}

func (s *MemoryStore) ListProjects(ctx context.Context, userID string) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, err := s.record(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*Project, 0, len(rec.Projects))
	for _, p := range rec.Projects {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CreateProject(ctx context.Context, userID string, project *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.record(userID)
	if err != nil {
		return err
	}
	if rec.Projects == nil {
		rec.Projects = make(map[string]*Project)
	}
	if _, exists := rec.Projects[project.ID]; exists {
		return fmt.Errorf("project %s already exists", project.ID)
	}
	rec.Projects[project.ID] = project.Clone()
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DeleteProject(ctx context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.record(userID)
	if err != nil {
		return err
	}
	if _, ok := rec.Projects[projectID]; !ok {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	delete(rec.Projects, projectID)
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) MergeSection(ctx context.Context, userID, projectID string, key registry.SectionKey, answers SectionAnswers) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, err := s.project(userID, projectID)
	if err != nil {
		return err
	}
	if project.Sections == nil {
		project.Sections = make(SectionMap)
	}
	project.Sections[key] = answers.Clone()
	project.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) SetProgress(ctx context.Context, userID, projectID string, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress %d out of range", percent)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	project, err := s.project(userID, projectID)
	if err != nil {
		return err
	}
	project.Progress = percent
	project.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) MarkSubmitted(ctx context.Context, userID, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, err := s.project(userID, projectID)
	if err != nil {
		return err
	}
	project.Submitted = true
	project.UpdatedAt = time.Now()
	return nil
}

// AllProjects walks every stored project. Used by the progress drift
// audit job; the callback receives clones.
func (s *MemoryStore) AllProjects(ctx context.Context, fn func(userID string, project *Project) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for userID, rec := range s.records {
		for _, p := range rec.Projects {
			if err := fn(userID, p.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}
