package twisty

import (
	"errors"
	"testing"
)

func TestInverse(t *testing.T) {
	tests := []struct {
		move, want Move
	}{
		{"R", "R'"},
		{"R'", "R"},
		{"R2", "R2"},
		{"u", "u'"},
		{"M'", "M"},
		{"2-3L", "2-3L'"},
		{"2-3L'", "2-3L"},
		{"3R2", "3R2"},
		{"RG", "R'G"},
		{"R'G", "RG"},
		{Savepoint, Savepoint},
	}
	for _, tt := range tests {
		t.Run(string(tt.move), func(t *testing.T) {
			if got := tt.move.Inverse(); got != tt.want {
				t.Errorf("%q.Inverse() = %q, want %q", tt.move, got, tt.want)
			}
		})
	}
}

func TestInverseIsInvolution(t *testing.T) {
	v, err := NewVocabulary(5, nil)
	if err != nil {
		t.Fatal(err)
	}
	moves := append(v.Moves(), "2-3L", "2R'", "4U2", "1-2F", "2-4B'")
	for _, m := range moves {
		if got := m.Inverse().Inverse(); got != m {
			t.Errorf("inverse(inverse(%q)) = %q", m, got)
		}
		if got := m.AsUndo().Inverse().Inverse(); got != m.AsUndo() {
			t.Errorf("inverse(inverse(%q)) = %q", m.AsUndo(), got)
		}
	}
}

func TestUndoMarker(t *testing.T) {
	m := Move("R'")
	u := m.AsUndo()
	if u != "R'G" {
		t.Errorf("AsUndo() = %q, want R'G", u)
	}
	if !u.IsUndo() || m.IsUndo() {
		t.Error("IsUndo should only hold for marked moves")
	}
	if u.Base() != m {
		t.Errorf("Base() = %q, want %q", u.Base(), m)
	}
	if u.AsUndo() != u {
		t.Error("AsUndo should not mark twice")
	}
	if Savepoint.AsUndo() != Savepoint {
		t.Error("savepoints carry no undo marker")
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U' | 2-3L2 u")
	if err != nil {
		t.Fatalf("ParseMoves failed: %v", err)
	}
	want := []Move{"R", "U", "R'", "U'", Savepoint, "2-3L2", "u"}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, moves[i], want[i])
		}
	}
}

func TestParseMovesSkipsInvalid(t *testing.T) {
	moves, err := ParseMoves("R Q U 3-2L 2M x R3")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("expected ErrInvalidNotation, got %v", err)
	}
	if FormatMoves(moves) != "R U" {
		t.Errorf("kept %q, want \"R U\"", FormatMoves(moves))
	}
}

func TestFormatMoves(t *testing.T) {
	if got := FormatMoves(SexyMove); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}
	if FormatMoves(nil) != "" {
		t.Error("FormatMoves(nil) should be empty")
	}
}

func TestInvert(t *testing.T) {
	got := FormatMoves(Invert(SexyMove))
	if got != "U R U' R'" {
		t.Errorf("Invert(SexyMove) = %q", got)
	}
}
