//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediqueue/mediqueue/internal/domain/catalog"
	"github.com/mediqueue/mediqueue/internal/platform/apperr"
)

func newCatalogService(t *testing.T) *catalog.Service {
	t.Helper()
	resetTables(t)
	svc := catalog.NewService(catalog.NewRepoPG(globalPool))
	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	return svc
}

func TestCatalogPG_SyncIsIdempotent(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	res, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.SyncResult{Created: 0, Updated: 16}, res)

	items, err := svc.Conditions(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 16)
}

func TestCatalogPG_InsertionOrder(t *testing.T) {
	svc := newCatalogService(t)

	items, err := svc.Conditions(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 16)
	assert.Equal(t, "Acute Coronary Syndrome", items[0].Disease)
	assert.Equal(t, []string{"Chest Pain", "Shortness of Breath", "Nausea/Vomiting", "Fatigue", "Palpitations"}, items[0].Symptoms)
	assert.Equal(t, "Tuberculosis (Pulmonary)", items[15].Disease)
}

func TestCatalogPG_Symptoms(t *testing.T) {
	svc := newCatalogService(t)

	symptoms, err := svc.Symptoms(context.Background())
	require.NoError(t, err)
	assert.IsIncreasing(t, symptoms)
	assert.Contains(t, symptoms, "Night Sweats")
}

func TestCatalogPG_CreateAndUpdate(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, &catalog.Input{Disease: "Otitis Media", Specialty: "ENT", Symptoms: catalog.SymptomList{"Ear Pain", "Fever", "Ear Pain"}})
	require.NoError(t, err)
	assert.Equal(t, int64(17), c.ID)

	_, err = svc.Create(ctx, &catalog.Input{Disease: "Otitis Media", Specialty: "ENT", Symptoms: catalog.SymptomList{"Ear Pain"}})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Update(ctx, c.ID, &catalog.Input{Disease: "Otitis Media", Specialty: "ENT", RedFlag: true, Symptoms: catalog.SymptomList{"Hearing Loss", "Ear Pain"}})
	require.NoError(t, err)

	items, err := svc.Conditions(ctx)
	require.NoError(t, err)
	last := items[len(items)-1]
	assert.True(t, last.RedFlag)
	assert.Equal(t, []string{"Hearing Loss", "Ear Pain"}, last.Symptoms)

	_, err = svc.Update(ctx, c.ID, &catalog.Input{Disease: "Migraine", Specialty: "ENT", Symptoms: catalog.SymptomList{"Ear Pain"}})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Update(ctx, 9999, &catalog.Input{Disease: "Nothing", Specialty: "ENT", Symptoms: catalog.SymptomList{"Ear Pain"}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
