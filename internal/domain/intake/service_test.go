package intake

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediqueue/mediqueue/internal/domain/catalog"
	"github.com/mediqueue/mediqueue/internal/domain/queue"
	"github.com/mediqueue/mediqueue/internal/domain/triage"
	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

type staticCatalog struct {
	items []*catalog.Condition
	err   error
}

func (s staticCatalog) Conditions(context.Context) ([]*catalog.Condition, error) {
	return s.items, s.err
}

type failingWriter struct{ err error }

func (f failingWriter) Append(context.Context, *queue.Entry) error { return f.err }

func newTestService(t *testing.T) (*Service, *queue.Service) {
	t.Helper()
	q := queue.NewService(queue.NewMemoryRepo(), nil, zerolog.Nop(), queue.DefaultLimits)
	return NewService(staticCatalog{items: catalog.SeedConditions()}, q, triage.DefaultPolicy()), q
}

func TestSubmit_UrgentCase(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	res, err := svc.Submit(ctx, &Request{
		PatientName: "  Jane Doe ",
		Symptoms:    []string{"Chest Pain", " Shortness of Breath", "Dizziness", "Chest Pain"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", res.PatientName)
	assert.Equal(t, []string{"Chest Pain", "Shortness of Breath", "Dizziness"}, res.Symptoms)
	assert.Equal(t, triage.Urgent, res.Urgency)
	assert.Equal(t, triage.Assignment{Doctor: "Dr. Ahmed", Specialty: "Pulmonology"}, res.Assignment)
	assert.Len(t, res.LikelyConditions, 3)
	assert.Equal(t, "Triage support only. Not a confirmed medical diagnosis.", res.Disclaimer)

	items, err := q.List(ctx, 30)
	require.NoError(t, err)
	require.Len(t, items, 1)
	entry := items[0]
	assert.Equal(t, "Jane Doe", entry.PatientName)
	assert.Equal(t, "Urgent", entry.UrgencyLabel)
	assert.Equal(t, 5, entry.UrgencyScore)
	assert.Equal(t, "Dr. Ahmed", entry.AssignedDoctor)
	assert.Equal(t, res.LikelyConditions, entry.LikelyConditions)
}

func TestSubmit_DefaultsPatientName(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.Submit(context.Background(), &Request{PatientName: "   ", Symptoms: []string{"Cough"}})
	require.NoError(t, err)
	assert.Equal(t, "Unknown Patient", res.PatientName)
	assert.Equal(t, triage.Standard, res.Urgency)
}

func TestSubmit_NoMatchFallsBackToInternalMedicine(t *testing.T) {
	svc, q := newTestService(t)
	res, err := svc.Submit(context.Background(), &Request{Symptoms: []string{"Hiccups"}})
	require.NoError(t, err)

	assert.Empty(t, res.LikelyConditions)
	assert.NotNil(t, res.LikelyConditions)
	assert.Equal(t, triage.Standard, res.Urgency)
	assert.Equal(t, triage.Assignment{Doctor: "Dr. Li", Specialty: "Internal Medicine"}, res.Assignment)

	items, _ := q.List(context.Background(), 30)
	assert.Len(t, items, 1, "an empty ranking is still queued")
}

func TestSubmit_EmptySymptoms(t *testing.T) {
	svc, q := newTestService(t)
	for _, symptoms := range [][]string{nil, {}, {" ", ""}} {
		_, err := svc.Submit(context.Background(), &Request{Symptoms: symptoms})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
		assert.Equal(t, "At least one symptom is required.", err.Error())
	}
	items, _ := q.List(context.Background(), 30)
	assert.Empty(t, items)
}

func TestSubmit_CatalogUnavailable(t *testing.T) {
	q := queue.NewService(queue.NewMemoryRepo(), nil, zerolog.Nop(), queue.DefaultLimits)
	cat := catalog.NewService(brokenCatalogRepo{})
	svc := NewService(cat, q, triage.DefaultPolicy())

	_, err := svc.Submit(context.Background(), &Request{Symptoms: []string{"Cough"}})
	assert.ErrorIs(t, err, apperr.ErrCatalogUnavailable)

	items, _ := q.List(context.Background(), 30)
	assert.Empty(t, items)
}

func TestSubmit_EmptyCatalogIsNotAFailure(t *testing.T) {
	q := queue.NewService(queue.NewMemoryRepo(), nil, zerolog.Nop(), queue.DefaultLimits)
	svc := NewService(staticCatalog{}, q, triage.DefaultPolicy())

	res, err := svc.Submit(context.Background(), &Request{Symptoms: []string{"Cough", "Fever", "Chills"}})
	require.NoError(t, err)
	assert.Empty(t, res.LikelyConditions)
	assert.Equal(t, triage.Priority, res.Urgency, "three symptoms are priority even without a match")
}

func TestSubmit_StorageFailure(t *testing.T) {
	storage := apperr.Storage("append queue entry", errors.New("disk full"))
	svc := NewService(staticCatalog{items: catalog.SeedConditions()}, failingWriter{err: storage}, triage.DefaultPolicy())

	res, err := svc.Submit(context.Background(), &Request{Symptoms: []string{"Cough"}})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, apperr.ErrStorageFailure)
}

func TestSubmit_EqualUrgencyServedFIFO(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	// Three symptoms with a non-red-flag top match classify as priority.
	_, err := svc.Submit(ctx, &Request{PatientName: "A", Symptoms: []string{"Fever", "Cough", "Sore Throat"}})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, &Request{PatientName: "B", Symptoms: []string{"Fever", "Cough", "Sore Throat"}})
	require.NoError(t, err)

	items, err := q.List(ctx, 30)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].UrgencyScore)
	assert.Equal(t, "A", items[0].PatientName)
	assert.Equal(t, "B", items[1].PatientName)
}

func TestSubmit_CustomPolicy(t *testing.T) {
	q := queue.NewService(queue.NewMemoryRepo(), nil, zerolog.Nop(), queue.DefaultLimits)
	p := triage.DefaultPolicy()
	p.Doctors = map[string]string{"Pulmonology": "Dr. Osei"}
	svc := NewService(staticCatalog{items: catalog.SeedConditions()}, q, p)

	res, err := svc.Submit(context.Background(), &Request{Symptoms: []string{"Cough"}})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Osei", res.Assignment.Doctor)
}

// brokenCatalogRepo fails every call.
type brokenCatalogRepo struct{}

func (brokenCatalogRepo) List(context.Context) ([]*catalog.Condition, error) {
	return nil, errors.New("connection refused")
}
func (brokenCatalogRepo) GetByID(context.Context, int64) (*catalog.Condition, error) {
	return nil, errors.New("connection refused")
}
func (brokenCatalogRepo) Symptoms(context.Context) ([]string, error) {
	return nil, errors.New("connection refused")
}
func (brokenCatalogRepo) Create(context.Context, *catalog.Condition) error {
	return errors.New("connection refused")
}
func (brokenCatalogRepo) Update(context.Context, *catalog.Condition) error {
	return errors.New("connection refused")
}
func (brokenCatalogRepo) Upsert(context.Context, *catalog.Condition) (bool, error) {
	return false, errors.New("connection refused")
}
