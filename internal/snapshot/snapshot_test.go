package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavish/registry-harvester/internal/db"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func sampleSnapshot(names ...string) *Snapshot {
	snap := &Snapshot{
		WindowStart: "01/07/2026",
		WindowEnd:   "07/07/2026",
		TotalCount:  len(names),
	}
	for _, name := range names {
		snap.Companies = append(snap.Companies, db.CompanySummary{
			Name:         name,
			FileNumber:   "C12345",
			Category:     "DOMESTIC",
			Incorporated: "02/07/2026",
			Nature:       "PRIVATE",
			Status:       "Live",
		})
	}
	return snap
}

func TestWriteLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	want := sampleSnapshot("ACME TRADING LTD", "BETA HOLDINGS LTD")
	name, err := store.Write(want)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{20}\.json$`, name)

	got, err := store.Load(name)
	require.NoError(t, err)
	assert.Equal(t, want.WindowStart, got.WindowStart)
	assert.Equal(t, want.WindowEnd, got.WindowEnd)
	assert.Equal(t, want.TotalCount, got.TotalCount)
	assert.ElementsMatch(t, want.Companies, got.Companies)
}

func TestLatestPicksLexicographicallyLast(t *testing.T) {
	store := testStore(t)

	base := time.Date(2026, 7, 7, 10, 0, 0, 0, time.UTC)
	clock := base
	store.now = func() time.Time { return clock }

	for i, name := range []string{"FIRST LTD", "SECOND LTD", "THIRD LTD"} {
		clock = base.Add(time.Duration(i) * time.Second)
		_, err := store.Write(sampleSnapshot(name))
		require.NoError(t, err)
	}

	names, err := store.Names()
	require.NoError(t, err)
	require.Len(t, names, 3)
	assert.IsIncreasing(t, names)

	snap, name, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, names[2], name)
	require.Len(t, snap.Companies, 1)
	assert.Equal(t, "THIRD LTD", snap.Companies[0].Name)
}

func TestLatestEmptyCache(t *testing.T) {
	store := testStore(t)

	snap, name, err := store.Latest()
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Empty(t, name)
}

func TestWriteRejectsInvalidSnapshot(t *testing.T) {
	store := testStore(t)

	// Window dates must be dd/mm/yyyy.
	_, err := store.Write(&Snapshot{
		WindowStart: "2026-07-01",
		WindowEnd:   "07/07/2026",
		Companies:   []db.CompanySummary{{Name: "ACME TRADING LTD"}},
	})
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	store := testStore(t)

	_, err := store.Write(sampleSnapshot("ACME TRADING LTD"))
	require.NoError(t, err)
	_, err = store.Write(sampleSnapshot("BETA HOLDINGS LTD"))
	require.NoError(t, err)

	require.NoError(t, store.Clear())

	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}
