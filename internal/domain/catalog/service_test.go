package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

// failingRepo fails every call with err.
type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]*Condition, error) { return nil, f.err }
func (f failingRepo) GetByID(context.Context, int64) (*Condition, error) { return nil, f.err }
func (f failingRepo) Symptoms(context.Context) ([]string, error) { return nil, f.err }
func (f failingRepo) Create(context.Context, *Condition) error { return f.err }
func (f failingRepo) Update(context.Context, *Condition) error { return f.err }
func (f failingRepo) Upsert(context.Context, *Condition) (bool, error) { return false, f.err }

func newSeededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(NewMemoryRepo())
	if _, err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("seed sync: %v", err)
	}
	return svc
}

func TestService_SyncIsIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Created != 16 || first.Updated != 0 {
		t.Errorf("expected 16 created, got %+v", first)
	}

	second, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Created != 0 || second.Updated != 16 {
		t.Errorf("expected 16 updated, got %+v", second)
	}

	items, _ := repo.List(ctx)
	if len(items) != 16 {
		t.Errorf("expected 16 conditions, got %d", len(items))
	}
}

func TestService_SyncKeepsAdminAdditions(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()
	if _, err := svc.Create(ctx, &Input{Disease: "Sinusitis", Specialty: "ENT", Symptoms: SymptomList{"Headache"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Sync(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	items, _ := svc.Conditions(ctx)
	if len(items) != 17 {
		t.Errorf("expected admin addition to survive sync, got %d conditions", len(items))
	}
}

func TestService_ConditionsInInsertionOrder(t *testing.T) {
	svc := newSeededService(t)
	items, err := svc.Conditions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Disease != "Acute Coronary Syndrome" || items[15].Disease != "Tuberculosis (Pulmonary)" {
		t.Errorf("unexpected order: first=%s last=%s", items[0].Disease, items[15].Disease)
	}
	want := []string{"Chest Pain", "Shortness of Breath", "Nausea/Vomiting", "Fatigue", "Palpitations"}
	if !reflect.DeepEqual(items[0].Symptoms, want) {
		t.Errorf("expected stored symptom order, got %q", items[0].Symptoms)
	}
}

func TestService_ConditionsFailureIsCatalogUnavailable(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("connection refused")})
	_, err := svc.Conditions(context.Background())
	if !errors.Is(err, apperr.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestService_EmptyCatalogIsNotAnError(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	items, err := svc.Conditions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty catalog, got %d", len(items))
	}
}

func TestService_ListForAdminSorted(t *testing.T) {
	svc := newSeededService(t)
	items, err := svc.ListForAdmin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Disease > items[i].Disease {
			t.Fatalf("diseases not sorted: %s before %s", items[i-1].Disease, items[i].Disease)
		}
	}
	acs := items[0]
	if acs.Disease != "Acute Appendicitis" {
		t.Fatalf("expected Acute Appendicitis first, got %s", acs.Disease)
	}
	if !reflect.DeepEqual(acs.Symptoms, []string{"Abdominal Pain", "Fever", "Nausea/Vomiting"}) {
		t.Errorf("expected sorted symptoms, got %q", acs.Symptoms)
	}

	// The ranking snapshot must be unaffected by the admin sort.
	ranking, _ := svc.Conditions(context.Background())
	if ranking[0].Disease != "Acute Coronary Syndrome" {
		t.Error("admin listing mutated the ranking snapshot")
	}
}

func TestService_Symptoms(t *testing.T) {
	svc := newSeededService(t)
	items, err := svc.Symptoms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[string]bool{}
	for i, s := range items {
		if seen[s] {
			t.Errorf("duplicate symptom %q", s)
		}
		seen[s] = true
		if i > 0 && items[i-1] > s {
			t.Errorf("symptoms not sorted at %d", i)
		}
	}
	if !seen["Chest Pain"] || !seen["Night Sweats"] {
		t.Error("expected seed symptoms present")
	}
}

func TestService_SymptomsEmptyCatalog(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	items, err := svc.Symptoms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", items)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Create(context.Background(), &Input{Disease: "Flu"})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestService_CreateDuplicate(t *testing.T) {
	svc := newSeededService(t)
	_, err := svc.Create(context.Background(), &Input{Disease: "Migraine", Specialty: "Neurology", Symptoms: SymptomList{"Dizziness"}})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestService_Update(t *testing.T) {
	svc := newSeededService(t)
	ctx := context.Background()

	c, err := svc.Update(ctx, 5, &Input{Disease: "Migraine", Specialty: "Neurology", RedFlag: true, Symptoms: SymptomList{"Aura", "Severe Headache"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 5 {
		t.Errorf("expected id 5, got %d", c.ID)
	}

	items, _ := svc.Conditions(ctx)
	if !items[4].RedFlag || !reflect.DeepEqual(items[4].Symptoms, []string{"Aura", "Severe Headache"}) {
		t.Errorf("update not applied: %+v", items[4])
	}
}

func TestService_UpdateNotFound(t *testing.T) {
	svc := newSeededService(t)
	_, err := svc.Update(context.Background(), 999, &Input{Disease: "X", Specialty: "Y", Symptoms: SymptomList{"Z"}})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestService_UpdateRenameConflict(t *testing.T) {
	svc := newSeededService(t)
	_, err := svc.Update(context.Background(), 5, &Input{Disease: "Cholera", Specialty: "Neurology", Symptoms: SymptomList{"Dizziness"}})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestService_WriteFailureIsStorageFailure(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("disk full")})
	_, err := svc.Create(context.Background(), &Input{Disease: "Flu", Specialty: "IM", Symptoms: SymptomList{"Fever"}})
	if !errors.Is(err, apperr.ErrStorageFailure) {
		t.Errorf("expected storage failure, got %v", err)
	}
}
