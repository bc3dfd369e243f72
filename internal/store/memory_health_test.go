package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/hyno-health-api/internal/catalog"
	"github.com/harentsoaR/hyno-health-api/internal/models"
)

var (
	_ catalog.Writer = (*Memory)(nil)
	_ catalog.Writer = (*MongoCatalog)(nil)
)

func TestJournalFilterMatch(t *testing.T) {
	e := &models.JournalEntry{Date: "2026-10-10", Symptoms: "Sore throat", Notes: "Drank ginger tea"}
	tests := []struct {
		name   string
		filter JournalFilter
		want   bool
	}{
		{"empty", JournalFilter{}, true},
		{"from inclusive", JournalFilter{From: "2026-10-10"}, true},
		{"after range", JournalFilter{To: "2026-10-09"}, false},
		{"before range", JournalFilter{From: "2026-10-11"}, false},
		{"symptoms ignore case", JournalFilter{Query: "THROAT"}, true},
		{"notes", JournalFilter{Query: "ginger"}, true},
		{"no match", JournalFilter{Query: "fever"}, false},
		{"range and query", JournalFilter{From: "2026-10-01", To: "2026-10-31", Query: "tea"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.match(e))
		})
	}
}

func TestMemoryJournalOrderAndScope(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory("")
	require.NoError(t, err)

	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	for _, e := range []*models.JournalEntry{
		{UserID: "u1", Date: "2026-10-12", Notes: "first", CreatedAt: at},
		{UserID: "u1", Date: "2026-10-13", Notes: "second", CreatedAt: at},
		{UserID: "u1", Date: "2026-10-12", Notes: "third", CreatedAt: at.Add(time.Hour)},
		{UserID: "u2", Date: "2026-10-14", Notes: "other user", CreatedAt: at},
	} {
		require.NoError(t, m.InsertJournalEntry(ctx, e))
	}

	entries, err := m.ListJournal(ctx, "u1", JournalFilter{})
	require.NoError(t, err)
	notes := make([]string, 0, len(entries))
	for _, e := range entries {
		notes = append(notes, e.Notes)
	}
	assert.Equal(t, []string{"second", "third", "first"}, notes)

	none, err := m.ListJournal(ctx, "u3", JournalFilter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	err = m.DeleteJournalEntry(ctx, "u2", entries[0].ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryHealthWritesRollBack(t *testing.T) {
	ctx := context.Background()
	// The snapshot directory does not exist, so every write fails.
	m, err := NewMemory(filepath.Join(t.TempDir(), "missing", "snapshot.json"))
	require.NoError(t, err)

	assert.Error(t, m.InsertJournalEntry(ctx, &models.JournalEntry{UserID: "u1", Date: "2026-10-14"}))
	assert.Error(t, m.InsertMedication(ctx, &models.Medication{UserID: "u1", Name: "Aspirin"}))
	assert.Error(t, m.SaveGoals(ctx, &models.HealthGoals{UserID: "u1", Water: "2L"}))
	assert.Error(t, m.SeedDoctors(ctx, catalog.StaticDoctors()))

	entries, err := m.ListJournal(ctx, "u1", JournalFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
	meds, err := m.ListMedications(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, meds)
	g, err := m.GetGoals(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, g.Water)
	doctors, err := m.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, doctors)
}

func TestMemoryCatalogSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	m, err := NewMemory(path)
	require.NoError(t, err)

	require.NoError(t, m.SeedHospitals(ctx, catalog.StaticHospitals()))
	require.NoError(t, m.DeleteHospital(ctx, "h1"))
	// Seeding a populated collection changes nothing.
	require.NoError(t, m.SeedHospitals(ctx, catalog.StaticHospitals()))
	require.NoError(t, m.InsertDoctor(ctx, &models.Doctor{ID: "doc99", Name: "Dr. New"}))
	assert.ErrorIs(t, m.InsertDoctor(ctx, &models.Doctor{ID: "doc99"}), ErrDuplicateID)
	assert.ErrorIs(t, m.DeleteDoctor(ctx, "doc1"), ErrNotFound)

	reloaded, err := NewMemory(path)
	require.NoError(t, err)
	hospitals, err := reloaded.ListHospitals(ctx)
	require.NoError(t, err)
	assert.Len(t, hospitals, len(catalog.StaticHospitals())-1)
	for _, h := range hospitals {
		assert.NotEqual(t, "h1", h.ID)
	}
	doctors, err := reloaded.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. New", doctors[0].Name)
}
