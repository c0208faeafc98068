package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, rec ScoreRecord) {
	t.Helper()
	if _, err := store.SaveScore(rec); err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", rec, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 12, Moves: 8})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 12 {
		t.Errorf("Expected high score 12 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "match3", Player: "alice", Score: 10, Moves: 20})
	mustSave(t, store, ScoreRecord{GameID: "match3", Player: "bob", Score: 5, Moves: 9})
	mustSave(t, store, ScoreRecord{GameID: "match3", Player: "carol", Score: 20, Moves: 31})
	mustSave(t, store, ScoreRecord{GameID: "match3_zen", Player: "dave", Score: 50, Moves: 70})

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []struct {
		player string
		score  int
		moves  int
	}{
		{"carol", 20, 31},
		{"alice", 10, 20},
		{"bob", 5, 9},
	}
	for i, w := range want {
		got := scores[i]
		if got.Player != w.player || got.Score != w.score || got.Moves != w.moves {
			t.Errorf("scores[%d] = %+v, want %+v", i, got, w)
		}
		if got.GameID != "match3" {
			t.Errorf("scores[%d].GameID = %q, want match3", i, got.GameID)
		}
		if got.CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt was not parsed", i)
		}
	}

	zen, err := store.TopScores("match3_zen", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(zen) != 1 {
		t.Errorf("Expected 1 zen score, got %d", len(zen))
	}
}

func TestStoreTiesPreferFewerMoves(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "match3", Player: "slow", Score: 10, Moves: 40})
	mustSave(t, store, ScoreRecord{GameID: "match3", Player: "fast", Score: 10, Moves: 12})

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "fast" {
		t.Errorf("Expected the game with fewer moves first, got %q", scores[0].Player)
	}
}

func TestStoreSaveDefaultsAndValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreRecord{Score: 1}); !errors.Is(err, ErrEmptyGameID) {
		t.Errorf("SaveScore() without game id: got %v, want ErrEmptyGameID", err)
	}

	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 3})
	scores, err := store.AllScores("match3")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != DefaultPlayer {
		t.Errorf("Expected one score by %q, got %+v", DefaultPlayer, scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, ScoreRecord{GameID: "test", Score: (i + 1) * 100})
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores("test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 100})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 300})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 200})

	high, err = store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 100})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 200})
	mustSave(t, store, ScoreRecord{GameID: "match3_zen", Score: 300})

	n, err := store.ClearScores("match3")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 cleared scores, got %d", n)
	}

	classic, _ := store.TopScores("match3", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	zen, _ := store.TopScores("match3_zen", 10)
	if len(zen) != 1 {
		t.Errorf("Zen scores should not be affected by clearing classic")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		mustSave(t, store, ScoreRecord{GameID: "test", Score: i * 10, Moves: i})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() on empty table failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestMoves != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 10, Moves: 5})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 30, Moves: 18})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 30, Moves: 12})
	mustSave(t, store, ScoreRecord{GameID: "match3", Score: 20, Moves: 1})
	mustSave(t, store, ScoreRecord{GameID: "match3_zen", Score: 7, Moves: 2})

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 4 || stats.HighScore != 30 || stats.TotalMoves != 36 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 22.5 {
		t.Errorf("Expected average 22.5, got %v", stats.AvgScore)
	}
	// The best game is the 30-point one with fewer moves
	if stats.BestMoves != 12 {
		t.Errorf("Expected best game moves 12, got %d", stats.BestMoves)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["match3_zen"].HighScore != 7 || all["match3_zen"].BestMoves != 2 {
		t.Errorf("Unexpected zen stats: %+v", all["match3_zen"])
	}
	if all["match3"].BestMoves != 12 {
		t.Errorf("Expected classic best game moves 12, got %d", all["match3"].BestMoves)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
