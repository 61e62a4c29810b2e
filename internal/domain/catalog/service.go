package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

const msgRequiredFields = "Disease, specialty, and at least one symptom are required."

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Conditions returns the ranking snapshot in catalog iteration order. Any
// repository failure is reported as apperr.ErrCatalogUnavailable; an empty
// catalog is not an error.
func (s *Service) Conditions(ctx context.Context) ([]*Condition, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.CatalogUnavailable(err)
	}
	return items, nil
}

func (s *Service) Symptoms(ctx context.Context) ([]string, error) {
	items, err := s.repo.Symptoms(ctx)
	if err != nil {
		return nil, apperr.Storage("list symptoms", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// ListForAdmin returns the catalog ordered by disease name with each
// condition's symptoms sorted alphabetically.
func (s *Service) ListForAdmin(ctx context.Context) ([]*Condition, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list conditions", err)
	}
	out := make([]*Condition, len(items))
	for i, c := range items {
		cp := c.Clone()
		sort.Strings(cp.Symptoms)
		out[i] = cp
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Disease < out[j].Disease })
	return out, nil
}

func (s *Service) Create(ctx context.Context, in *Input) (*Condition, error) {
	c, ok := in.Normalize()
	if !ok {
		return nil, apperr.Validation(msgRequiredFields)
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, classify("create condition", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, in *Input) (*Condition, error) {
	c, ok := in.Normalize()
	if !ok {
		return nil, apperr.Validation(msgRequiredFields)
	}
	c.ID = id
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, classify("update condition", err)
	}
	return c, nil
}

// Sync upserts the built-in seed catalog.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	res, err := Sync(ctx, s.repo)
	if err != nil {
		return res, apperr.Storage("sync seed catalog", err)
	}
	return res, nil
}

// classify keeps conflict and not-found errors as they are and marks
// everything else as a storage failure.
func classify(op string, err error) error {
	if errors.Is(err, apperr.ErrConflict) || errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	return apperr.Storage(op, err)
}
