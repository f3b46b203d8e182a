package runs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/the127/osmhistory/internal/importer"
	"github.com/the127/osmhistory/internal/services/kv"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const latestKey = "imports/latest"

type State string

const (
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Run is the status record of one import, kept in the kv store.
type Run struct {
	Id         uuid.UUID      `json:"id"`
	Path       string         `json:"path"`
	Format     string         `json:"format"`
	State      State          `json:"state"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
	Stats      importer.Stats `json:"stats"`
	Error      string         `json:"error,omitempty"`
}

type Service interface {
	// Save stores the run and marks it as the latest one.
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
	Latest(ctx context.Context) (*Run, error)
}

type service struct {
	store kv.Store
}

func NewService(store kv.Store) Service {
	return &service{
		store: store,
	}
}

func runKey(id uuid.UUID) string {
	return fmt.Sprintf("imports/%s", id)
}

func (s *service) Save(ctx context.Context, run *Run) error {
	encoded, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding import run: %w", err)
	}

	err = s.store.Set(ctx, runKey(run.Id), string(encoded))
	if err != nil {
		return fmt.Errorf("storing import run: %w", err)
	}

	err = s.store.Set(ctx, latestKey, run.Id.String())
	if err != nil {
		return fmt.Errorf("storing latest import run: %w", err)
	}

	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	value, ok, err := s.store.Get(ctx, runKey(id))
	if err != nil {
		return nil, fmt.Errorf("reading import run: %w", err)
	}
	if !ok {
		return nil, apiError.ErrApiImportRunNotFound
	}

	var run Run
	err = json.Unmarshal([]byte(value), &run)
	if err != nil {
		return nil, fmt.Errorf("decoding import run: %w", err)
	}

	return &run, nil
}

func (s *service) Latest(ctx context.Context) (*Run, error) {
	value, ok, err := s.store.Get(ctx, latestKey)
	if err != nil {
		return nil, fmt.Errorf("reading latest import run: %w", err)
	}
	if !ok {
		return nil, apiError.ErrApiImportRunNotFound
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("parsing latest import run id %q: %w", value, err)
	}

	return s.Get(ctx, id)
}
