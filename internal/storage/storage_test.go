package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/twisty"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func solvedFacelets(t *testing.T) string {
	t.Helper()
	p, err := twisty.NewPuzzle(twisty.DefaultLayout(3), 1)
	if err != nil {
		t.Fatalf("NewPuzzle: %v", err)
	}
	return p.Facelets()
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}

	// Reopening must not reapply the migration.
	again, err := Open(db.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again.Close()
}

func TestHistoryCodec(t *testing.T) {
	moves, _ := twisty.ParseMoves("R U R' U' | 2-3L2 M' Y")
	blob, err := EncodeHistory(moves)
	if err != nil {
		t.Fatalf("EncodeHistory: %v", err)
	}
	got, err := DecodeHistory(blob)
	if err != nil {
		t.Fatalf("DecodeHistory: %v", err)
	}
	if twisty.FormatMoves(got) != twisty.FormatMoves(moves) {
		t.Errorf("decoded %q, want %q", twisty.FormatMoves(got), twisty.FormatMoves(moves))
	}

	empty, err := DecodeHistory(nil)
	if err != nil || empty != nil {
		t.Errorf("DecodeHistory(nil) = %v, %v", empty, err)
	}
	if _, err := DecodeHistory([]byte("not zstd")); err == nil {
		t.Error("expected error for corrupt blob")
	}
}

func TestStateHash(t *testing.T) {
	a := StateHash("UUUU")
	if a != StateHash("UUUU") {
		t.Error("hash not stable")
	}
	if a == StateHash("UUUD") {
		t.Error("different states share a hash")
	}
}

func TestSolveRepository(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)
	moves := NewMoveRepository(db)
	facelets := solvedFacelets(t)

	scramble, _ := twisty.ParseMoves("R U")
	history, _ := twisty.ParseMoves("R U | U' R'")
	id, err := solves.Create(NewSolve{
		Order:    3,
		Duration: 1500 * time.Millisecond,
		Scramble: scramble,
		History:  history,
		Facelets: facelets,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("get", func(t *testing.T) {
		s, err := solves.Get(id)
		if err != nil || s == nil {
			t.Fatalf("Get: %v, %v", s, err)
		}
		if s.Order != 3 || s.MoveCount != 4 || s.Duration() != 1500*time.Millisecond {
			t.Errorf("got %+v", s)
		}
		if s.ScrambleText == nil || *s.ScrambleText != "R U" {
			t.Errorf("scramble = %v", s.ScrambleText)
		}
		if s.Notes != nil {
			t.Errorf("notes = %q, want nil", *s.Notes)
		}
		if s.StateHash != StateHash(facelets) {
			t.Errorf("state hash = %s", s.StateHash)
		}
	})

	t.Run("missing", func(t *testing.T) {
		s, err := solves.Get("nope")
		if err != nil || s != nil {
			t.Errorf("Get(nope) = %v, %v", s, err)
		}
		if _, err := solves.History("nope"); err == nil {
			t.Error("expected error for missing history")
		}
	})

	t.Run("history", func(t *testing.T) {
		got, err := solves.History(id)
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		if twisty.FormatMoves(got) != "R U | U' R'" {
			t.Errorf("history = %q", twisty.FormatMoves(got))
		}
	})

	t.Run("moves", func(t *testing.T) {
		records, err := moves.GetBySolve(id)
		if err != nil {
			t.Fatalf("GetBySolve: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("got %d records, want 4", len(records))
		}
		r := records[0]
		if r.Notation != "R" || r.Axis != "x" || r.LayerLow != 2 || r.LayerHigh != 2 || r.Amount != -1 {
			t.Errorf("record 0 = %+v", r)
		}
		if records[3].MoveIndex != 3 || records[3].Notation != "R'" || records[3].Amount != 1 {
			t.Errorf("record 3 = %+v", records[3])
		}
		if got := twisty.FormatMoves(ToMoves(records)); got != "R U U' R'" {
			t.Errorf("ToMoves = %q", got)
		}

		counts, err := moves.AxisCounts(id)
		if err != nil {
			t.Fatalf("AxisCounts: %v", err)
		}
		if counts["x"] != 2 || counts["y"] != 2 {
			t.Errorf("counts = %v", counts)
		}
	})

	t.Run("list and best", func(t *testing.T) {
		fast, err := solves.Create(NewSolve{Order: 3, Duration: time.Second, Facelets: facelets, Notes: "pb"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := solves.Create(NewSolve{Order: 2, Duration: 500 * time.Millisecond, Facelets: "x"}); err != nil {
			t.Fatalf("Create: %v", err)
		}

		all, err := solves.List(0, 10)
		if err != nil || len(all) != 3 {
			t.Fatalf("List(0) = %d, %v", len(all), err)
		}
		threes, err := solves.List(3, 10)
		if err != nil || len(threes) != 2 {
			t.Fatalf("List(3) = %d, %v", len(threes), err)
		}

		best, err := solves.Best(3)
		if err != nil || best == nil || best.SolveID != fast {
			t.Fatalf("Best(3) = %+v, %v", best, err)
		}
		if best.Notes == nil || *best.Notes != "pb" {
			t.Errorf("notes = %v", best.Notes)
		}
		none, err := solves.Best(7)
		if err != nil || none != nil {
			t.Errorf("Best(7) = %v, %v", none, err)
		}

		n, err := solves.CountByState(facelets)
		if err != nil || n != 2 {
			t.Errorf("CountByState = %d, %v", n, err)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		if err := solves.Delete(id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		records, err := moves.GetBySolve(id)
		if err != nil {
			t.Fatalf("GetBySolve: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("%d move records survived delete", len(records))
		}
	})
}

func TestCreateRejectsUnknownMove(t *testing.T) {
	db := openTestDB(t)
	solves := NewSolveRepository(db)

	_, err := solves.Create(NewSolve{Order: 3, History: []twisty.Move{"Q"}, Facelets: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	list, err := solves.List(0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("failed create left %d rows", len(list))
	}
}
