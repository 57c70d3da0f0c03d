package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/sim"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func episode(pilot string, fruits, ticks int, cause string) sim.Episode {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return sim.Episode{
		Pilot:     pilot,
		TileCount: 10,
		Walls:     true,
		Ticks:     ticks,
		Fruits:    fruits,
		Reward:    float64(fruits) - 0.1*float64(ticks),
		Cause:     cause,
		StartedAt: start,
		EndedAt:   start.Add(time.Duration(ticks) * 125 * time.Millisecond),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRecent(t *testing.T) {
	store := openTemp(t)

	for i, ep := range []sim.Episode{
		episode("greedy", 3, 40, "self"),
		episode("", 1, 12, "wall"),
		episode("greedy", 7, 90, "limit"),
	} {
		id, err := store.SaveEpisode(ep)
		if err != nil {
			t.Fatalf("SaveEpisode(%d) failed: %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("SaveEpisode(%d) id = %d, expected %d", i, id, i+1)
		}
	}

	recent, err := store.RecentEpisodes(10)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 episodes, got %d", len(recent))
	}

	// Newest first
	if recent[0].Fruits != 7 || recent[0].Cause != "limit" {
		t.Errorf("recent[0] = %+v", recent[0])
	}
	if recent[1].Pilot != "keyboard" {
		t.Errorf("empty pilot should be stored as keyboard, got %q", recent[1].Pilot)
	}

	got := recent[2]
	want := episode("greedy", 3, 40, "self")
	if !got.Walls || got.FixedTail || got.TileCount != 10 || got.Ticks != 40 {
		t.Errorf("fields not preserved: %+v", got)
	}
	if !got.StartedAt.Equal(want.StartedAt) || !got.EndedAt.Equal(want.EndedAt) {
		t.Errorf("times = %v..%v, expected %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}
	if got.Duration() != 5*time.Second {
		t.Errorf("Duration() = %v, expected 5s", got.Duration())
	}
}

func TestRecentEpisodesLimit(t *testing.T) {
	store := openTemp(t)
	for i := 0; i < 5; i++ {
		if err := store.RecordEpisode(episode("greedy", i, 10, "self")); err != nil {
			t.Fatalf("RecordEpisode() failed: %v", err)
		}
	}

	recent, err := store.RecentEpisodes(2)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Fruits != 4 {
		t.Errorf("RecentEpisodes(2) = %+v", recent)
	}
}

func TestEpisodesByPilotAndStats(t *testing.T) {
	store := openTemp(t)
	store.RecordEpisode(episode("greedy", 2, 20, "self"))
	store.RecordEpisode(episode("greedy", 6, 60, "wall"))
	store.RecordEpisode(episode("qlearn", 1, 10, "wall"))

	eps, err := store.EpisodesByPilot("greedy", 10)
	if err != nil {
		t.Fatalf("EpisodesByPilot() failed: %v", err)
	}
	if len(eps) != 2 {
		t.Fatalf("Expected 2 greedy episodes, got %d", len(eps))
	}

	stats, err := store.Stats("greedy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Episodes != 2 || stats.BestFruits != 6 || stats.TotalFruits != 8 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgFruits != 4 || stats.AvgTicks != 40 {
		t.Errorf("averages = %v fruits, %v ticks", stats.AvgFruits, stats.AvgTicks)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.Stats("nobody")
	if err != nil {
		t.Fatalf("Stats(nobody) failed: %v", err)
	}
	if empty.Episodes != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	pilots, err := store.Pilots()
	if err != nil {
		t.Fatalf("Pilots() failed: %v", err)
	}
	if len(pilots) != 2 || pilots[0] != "greedy" || pilots[1] != "qlearn" {
		t.Errorf("Pilots() = %v", pilots)
	}
}

func TestClearEpisodes(t *testing.T) {
	store := openTemp(t)
	store.RecordEpisode(episode("greedy", 2, 20, "self"))
	store.RecordEpisode(episode("qlearn", 1, 10, "wall"))

	if err := store.ClearEpisodes("greedy"); err != nil {
		t.Fatalf("ClearEpisodes() failed: %v", err)
	}
	eps, _ := store.RecentEpisodes(10)
	if len(eps) != 1 || eps[0].Pilot != "qlearn" {
		t.Errorf("after clearing greedy: %+v", eps)
	}

	if err := store.ClearEpisodes(""); err != nil {
		t.Fatalf("ClearEpisodes(all) failed: %v", err)
	}
	eps, _ = store.RecentEpisodes(10)
	if len(eps) != 0 {
		t.Errorf("Expected empty journal, got %d episodes", len(eps))
	}
}

func TestPersistenceAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.RecordEpisode(episode("greedy", 3, 30, "self"))
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	eps, err := store.RecentEpisodes(10)
	if err != nil {
		t.Fatalf("RecentEpisodes() failed: %v", err)
	}
	if len(eps) != 1 {
		t.Errorf("Expected 1 episode after reopen, got %d", len(eps))
	}
}
