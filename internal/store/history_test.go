package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	apperror "github.com/LearnWithSuryaa/analyzer-app/foundation/core/error"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *SQLiteStore, entries ...*Entry) {
	t.Helper()
	for _, e := range entries {
		if err := s.Save(context.Background(), e); err != nil {
			t.Fatalf("Save(%q) error = %v", e.Input, err)
		}
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := &Entry{
		Input:        "aku dhahar",
		Normalized:   "aku dhahar",
		Verdict:      "ambiguous",
		SentenceType: "simple",
		Correction:   "aku mangan",
		Result:       json.RawMessage(`{"input":"aku dhahar"}`),
	}
	seed(t, s, entry)

	if entry.ID == "" {
		t.Fatal("Save() should assign an ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("Save() should assign a timestamp")
	}

	got, err := s.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Input != "aku dhahar" || got.Correction != "aku mangan" || got.Verdict != "ambiguous" {
		t.Errorf("Get() = %+v", got)
	}
	if got.Valid {
		t.Error("entry should be invalid")
	}
	if string(got.Result) != `{"input":"aku dhahar"}` {
		t.Errorf("Result = %s", got.Result)
	}
	if !got.CreatedAt.Equal(entry.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, entry.CreatedAt)
	}
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !apperror.HasCode(err, apperror.CodeNotFound) {
		t.Errorf("Get() error = %v, want NOT_FOUND", err)
	}
}

func TestSQLiteStore_List(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	seed(t, s,
		&Entry{Input: "aku mangan", Valid: true, Verdict: "appropriate", CreatedAt: base},
		&Entry{Input: "aku dhahar", Verdict: "ambiguous", CreatedAt: base.Add(time.Minute)},
		&Entry{Input: "qwerty mangan", Error: "syntax error", CreatedAt: base.Add(2 * time.Minute)},
		&Entry{Input: "bapak sare", Valid: true, Verdict: "appropriate", CreatedAt: base.Add(3 * time.Minute)},
	)

	valid, invalid := true, false

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{"bapak sare", "qwerty mangan", "aku dhahar", "aku mangan"}},
		{"valid only", Filter{Valid: &valid}, []string{"bapak sare", "aku mangan"}},
		{"invalid only", Filter{Valid: &invalid}, []string{"qwerty mangan", "aku dhahar"}},
		{"syntax errors", Filter{SyntaxErrors: true}, []string{"qwerty mangan"}},
		{"since", Filter{Since: base.Add(2 * time.Minute)}, []string{"bapak sare", "qwerty mangan"}},
		{"limit", Filter{Limit: 2}, []string{"bapak sare", "qwerty mangan"}},
		{"offset", Filter{Offset: 3}, []string{"aku mangan"}},
		{"limit and offset", Filter{Limit: 1, Offset: 1}, []string{"qwerty mangan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Input)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("List()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSQLiteStore_Stats(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 0 || stats.Oldest != nil {
		t.Errorf("empty Stats() = %+v", stats)
	}

	seed(t, s,
		&Entry{Input: "aku mangan", Valid: true, Verdict: "appropriate"},
		&Entry{Input: "aku dhahar", Verdict: "ambiguous"},
		&Entry{Input: "bapak mangan", Verdict: "inappropriate"},
		&Entry{Input: "qwerty mangan", Error: "syntax error"},
	)

	stats, err = s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 4 || stats.Valid != 1 || stats.Invalid != 2 || stats.SyntaxErrors != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.ByVerdict["ambiguous"] != 1 || stats.ByVerdict["appropriate"] != 1 {
		t.Errorf("ByVerdict = %v", stats.ByVerdict)
	}
	if stats.Oldest == nil || stats.Newest == nil {
		t.Error("Stats() should report the time range")
	}
}

func TestSQLiteStore_Prune(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	seed(t, s,
		&Entry{Input: "old", CreatedAt: now.Add(-48 * time.Hour)},
		&Entry{Input: "older", CreatedAt: now.Add(-72 * time.Hour)},
		&Entry{Input: "fresh", CreatedAt: now.Add(-time.Hour)},
	)

	n, err := s.Prune(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Prune() removed %d, want 2", n)
	}

	entries, _ := s.List(context.Background(), Filter{})
	if len(entries) != 1 || entries[0].Input != "fresh" {
		t.Errorf("remaining entries = %v", entries)
	}
}

func TestSQLiteStore_InMemory(t *testing.T) {
	a, err := NewSQLiteStore(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer a.Close()
	b, err := NewSQLiteStore(Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer b.Close()

	seed(t, a, &Entry{Input: "aku mangan", Valid: true})

	if err := a.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if entries, _ := b.List(context.Background(), Filter{}); len(entries) != 0 {
		t.Errorf("in-memory stores share %d entries", len(entries))
	}
}
