package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathway-compass/survey-portal-backend/internal/notifications"
	"pathway-compass/survey-portal-backend/internal/projection"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
	"pathway-compass/survey-portal-backend/internal/wizard"
)

// ErrValidationIncomplete blocks step completion and submission while a
// required answer is missing. It is preventive, not fatal: handlers map
// it to 422 and the client disables its controls.
var ErrValidationIncomplete = errors.New("required answers missing")

// ErrUnknownSection is returned for section keys outside the registry.
var ErrUnknownSection = errors.New("unknown section")

// CreateProjectRequest carries a new project's details.
type CreateProjectRequest struct {
	Name    string `json:"name" binding:"required"`
	Details string `json:"details"`
}

// SaveSectionRequest carries one section's answers. Complete marks the
// wizard step done, which is the only trigger for a progress write.
type SaveSectionRequest struct {
	Answers  survey.SectionAnswers `json:"answers"`
	Complete bool                  `json:"complete"`
}

// SaveSectionResult reports the wizard state after a save.
type SaveSectionResult struct {
	Progress       int   `json:"progress"`
	CurrentStep    int   `json:"current_step"`
	CompletedSteps []int `json:"completed_steps"`
	StepCompleted  bool  `json:"step_completed"`
}

// NavigateRequest asks for a wizard navigation action on derived state.
type NavigateRequest struct {
	Action string `json:"action" binding:"required"` // goto, skip_to_end, restart
	Target int    `json:"target"`
}

// NavigateResult reports whether the move was allowed and where the
// wizard landed. Disallowed moves are not errors; the step is simply
// unchanged.
type NavigateResult struct {
	Allowed     bool `json:"allowed"`
	CurrentStep int  `json:"current_step"`
}

// SectionState is one section's slice of the wizard state response.
type SectionState struct {
	Key               registry.SectionKey `json:"key"`
	Step              int                 `json:"step"`
	Title             string              `json:"title"`
	Completed         bool                `json:"completed"`
	RequiredSatisfied bool                `json:"required_satisfied"`
}

// WizardStateResponse is the derived wizard state for a project.
type WizardStateResponse struct {
	CurrentStep    int            `json:"current_step"`
	CompletedSteps []int          `json:"completed_steps"`
	Progress       int            `json:"progress"`
	StoredProgress int            `json:"stored_progress"`
	Sections       []SectionState `json:"sections"`
}

// Service wires the answer store, wizard state machine, projection
// engine, and progress broadcaster together.
type Service struct {
	store    survey.Store
	cache    *projection.Cache
	notifier notifications.Broadcaster
	logger   *zap.Logger
}

// NewService creates the survey project service. notifier may be nil
// when no live updates are wanted (tests, workers).
func NewService(store survey.Store, cache *projection.Cache, notifier notifications.Broadcaster, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateProject creates an empty project owned by the user.
func (s *Service) CreateProject(ctx context.Context, userID string, req CreateProjectRequest) (*survey.Project, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	now := time.Now()
	project := &survey.Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Details:   req.Details,
		Progress:  wizard.DeriveProgress(nil),
		Sections:  make(survey.SectionMap),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateProject(ctx, userID, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject loads one project.
func (s *Service) GetProject(ctx context.Context, userID, projectID string) (*survey.Project, error) {
	return s.store.LoadProject(ctx, userID, projectID)
}

// ListProjects lists the user's projects in creation order.
func (s *Service) ListProjects(ctx context.Context, userID string) ([]*survey.Project, error) {
	return s.store.ListProjects(ctx, userID)
}

// DeleteProject removes a project permanently.
func (s *Service) DeleteProject(ctx context.Context, userID, projectID string) error {
	if err := s.store.DeleteProject(ctx, userID, projectID); err != nil {
		return err
	}
	s.cache.Invalidate(projectID)
	return nil
}

// SaveSection merges one section's answers into the project. When
// complete is set, the section's required answers are enforced, the
// step is marked done, and the stored progress is rewritten. Saving
// without complete never touches progress, so the stored value goes
// stale after edits to earlier sections (known limitation; see the
// drift audit).
func (s *Service) SaveSection(ctx context.Context, userID, projectID string, key registry.SectionKey, req SaveSectionRequest) (*SaveSectionResult, error) {
	step := registry.StepFor(key)
	if step == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	if req.Complete && !projection.RequiredSatisfied(key, req.Answers) {
		return nil, fmt.Errorf("section %s: %w", key, ErrValidationIncomplete)
	}

	if err := s.store.MergeSection(ctx, userID, projectID, key, req.Answers); err != nil {
		return nil, err
	}
	s.cache.Invalidate(projectID)

	project, err := s.store.LoadProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	state := wizard.NewFromSections(sectionKeys(project.Sections))
	result := &SaveSectionResult{
		CurrentStep:    state.Current(),
		CompletedSteps: state.Completed(),
		Progress:       project.Progress,
		StepCompleted:  req.Complete,
	}
	if !req.Complete {
		return result, nil
	}

	progress := state.CompleteStep(step)
	result.CurrentStep = state.Current()
	result.CompletedSteps = state.Completed()
	result.Progress = progress

	// A failed progress write is logged, not surfaced: the section merge
	// already landed and there is no rollback. Stored progress catches
	// up on the next completion event.
	if err := s.store.SetProgress(ctx, userID, projectID, progress); err != nil {
		s.logger.Error("Failed to persist progress",
			zap.Error(err),
			zap.String("project_id", projectID),
			zap.Int("progress", progress))
	}

	if s.notifier != nil {
		s.notifier.BroadcastProgress(userID, notifications.ProgressUpdate{
			ProjectID: projectID,
			Section:   string(key),
			Progress:  progress,
			UpdatedAt: time.Now(),
		})
	}
	return result, nil
}

// WizardState derives the wizard state from persisted sections.
func (s *Service) WizardState(ctx context.Context, userID, projectID string) (*WizardStateResponse, error) {
	project, err := s.store.LoadProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	state := wizard.NewFromSections(sectionKeys(project.Sections))
	resp := &WizardStateResponse{
		CurrentStep:    state.Current(),
		CompletedSteps: state.Completed(),
		Progress:       state.Progress(),
		StoredProgress: project.Progress,
	}
	for _, key := range registry.SectionOrder() {
		answers := project.Sections[key]
		resp.Sections = append(resp.Sections, SectionState{
			Key:               key,
			Step:              registry.StepFor(key),
			Title:             registry.PathwayTitle(key),
			Completed:         state.IsCompleted(registry.StepFor(key)),
			RequiredSatisfied: projection.RequiredSatisfied(key, answers),
		})
	}
	return resp, nil
}

// Navigate applies a navigation action to the derived wizard state and
// reports where it landed. Disallowed moves leave the step unchanged.
func (s *Service) Navigate(ctx context.Context, userID, projectID string, req NavigateRequest) (*NavigateResult, error) {
	project, err := s.store.LoadProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	state := wizard.NewFromSections(sectionKeys(project.Sections))
	var allowed bool
	switch req.Action {
	case "goto":
		allowed = state.GoToStep(req.Target)
	case "skip_to_end":
		allowed = state.SkipToEnd()
	case "restart":
		state.Restart()
		allowed = true
	default:
		return nil, fmt.Errorf("unknown navigation action %q", req.Action)
	}
	return &NavigateResult{Allowed: allowed, CurrentStep: state.Current()}, nil
}

// Projection returns the aggregated view of a project's answers,
// cached briefly between writes.
func (s *Service) Projection(ctx context.Context, userID, projectID string) (*projection.Projection, error) {
	if cached, ok := s.cache.Get(projectID); ok {
		return cached, nil
	}

	project, err := s.store.LoadProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	p := projection.Build(project)
	s.cache.Set(projectID, p)
	return p, nil
}

// Submit records the explicit submission action. The wizard must be on
// its final step with that step's required answers present.
func (s *Service) Submit(ctx context.Context, userID, projectID string) error {
	project, err := s.store.LoadProject(ctx, userID, projectID)
	if err != nil {
		return err
	}

	state := wizard.NewFromSections(sectionKeys(project.Sections))
	finalKey, _ := registry.SectionFor(wizard.TotalSteps)
	if state.Current() != wizard.TotalSteps || !projection.RequiredSatisfied(finalKey, project.Sections[finalKey]) {
		return fmt.Errorf("project %s: %w", projectID, ErrValidationIncomplete)
	}
	return s.store.MarkSubmitted(ctx, userID, projectID)
}

func sectionKeys(sections survey.SectionMap) []registry.SectionKey {
	keys := make([]registry.SectionKey, 0, len(sections))
	for key := range sections {
		keys = append(keys, key)
	}
	return keys
}
