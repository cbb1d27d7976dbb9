package view

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/midaytech/brainloop/internal/models"
)

var today = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func fixtures() []models.Problem {
	return []models.Problem{
		{
			ID: "1", Title: "Two Sum", Status: models.Done,
			Difficulty: models.Easy, NextRevisionDate: models.NewDate(2024, 6, 9),
			TimeTaken: 12,
		},
		{
			ID: "2", Title: "LRU Cache", Status: models.InProgress,
			Difficulty: models.Medium, NextRevisionDate: models.NewDate(2024, 6, 12),
		},
		{
			ID: "3", Title: "Merge k Sorted Lists", Status: models.ToDo,
			Difficulty: models.Hard,
		},
		{
			ID: "4", Title: "two pointers drill", Status: models.Done,
			Difficulty: models.Easy, NextRevisionDate: models.NewDate(2024, 6, 10),
			TimeTaken: 30,
		},
		{
			ID: "5", Title: "Graph Valid Tree", Status: models.InProgress,
			Difficulty: models.Medium, NextRevisionDate: models.NewDate(2024, 5, 30),
		},
	}
}

func ids(problems []models.Problem) []models.ID {
	out := make([]models.ID, len(problems))
	for i := range problems {
		out[i] = problems[i].ID
	}

	return out
}

func TestApply(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want []models.ID
	}{
		{
			name: "no sort keeps input order",
			opts: Options{},
			want: []models.ID{"1", "2", "3", "4", "5"},
		},
		{
			name: "descending without a key keeps input order",
			opts: Options{Direction: Descending},
			want: []models.ID{"1", "2", "3", "4", "5"},
		},
		{
			name: "sort by title",
			opts: Options{SortKey: SortTitle},
			want: []models.ID{"5", "2", "3", "1", "4"},
		},
		{
			name: "search is case insensitive",
			opts: Options{Search: "TWO"},
			want: []models.ID{"1", "4"},
		},
		{
			name: "status filter",
			opts: Options{Status: models.InProgress},
			want: []models.ID{"2", "5"},
		},
		{
			name: "difficulty filter",
			opts: Options{Difficulty: models.Easy},
			want: []models.ID{"1", "4"},
		},
		{
			name: "only due",
			opts: Options{OnlyDue: true, Today: today},
			want: []models.ID{"1", "4", "5"},
		},
		{
			name: "filters are conjunctive",
			opts: Options{Search: "two", Difficulty: models.Easy, OnlyDue: true, Today: today},
			want: []models.ID{"1", "4"},
		},
		{
			name: "next revision date ascending puts missing first",
			opts: Options{SortKey: SortNextDate},
			want: []models.ID{"3", "5", "1", "4", "2"},
		},
		{
			name: "next revision date descending",
			opts: Options{SortKey: SortNextDate, Direction: Descending},
			want: []models.ID{"2", "4", "1", "5", "3"},
		},
		{
			name: "time taken compares as strings",
			opts: Options{SortKey: SortTimeTaken, Direction: Descending},
			want: []models.ID{"4", "1", "2", "3", "5"},
		},
		{
			name: "no match",
			opts: Options{Search: "heap"},
			want: []models.ID{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(fixtures(), tc.opts))

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplySearchProperty(t *testing.T) {
	for _, term := range []string{"t", "S", "cache", "ee", "x"} {
		for _, p := range Apply(fixtures(), Options{Search: term}) {
			if !strings.Contains(strings.ToLower(p.Title), strings.ToLower(term)) {
				t.Errorf("%q does not contain %q", p.Title, term)
			}
		}
	}
}

func TestApplyStatusStability(t *testing.T) {
	asc := ids(Apply(fixtures(), Options{SortKey: SortStatus}))
	desc := ids(Apply(fixtures(), Options{SortKey: SortStatus, Direction: Descending}))

	// equal statuses keep input order in both directions
	wantAsc := []models.ID{"1", "4", "2", "5", "3"}
	wantDesc := []models.ID{"3", "2", "5", "1", "4"}

	if diff := cmp.Diff(wantAsc, asc); diff != "" {
		t.Errorf("ascending mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(wantDesc, desc); diff != "" {
		t.Errorf("descending mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	problems := fixtures()

	Apply(problems, Options{SortKey: SortDifficulty, Direction: Descending})

	if diff := cmp.Diff([]models.ID{"1", "2", "3", "4", "5"}, ids(problems)); diff != "" {
		t.Fatalf("input reordered (-want +got):\n%s", diff)
	}
}

func TestMemo(t *testing.T) {
	var m Memo

	problems := fixtures()
	opts := Options{Search: "two"}

	first := m.Apply(problems, opts)
	second := m.Apply(problems, opts)

	if &first[0] != &second[0] {
		t.Fatal("expected cached result for identical inputs")
	}

	third := m.Apply(problems, Options{Search: "tw"})
	if len(third) != 2 || &third[0] == &first[0] {
		t.Fatal("expected recomputation when options change")
	}

	fresh := fixtures()

	fourth := m.Apply(fresh, Options{Search: "tw"})
	if &fourth[0] == &third[0] {
		t.Fatal("expected recomputation for a new collection")
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":           SortNone,
		"none":       SortNone,
		"title":      SortTitle,
		"Next":       SortNextDate,
		"STATUS":     SortStatus,
		"difficulty": SortDifficulty,
		"time":       SortTimeTaken,
	}

	for in, want := range cases {
		got, err := ParseSortKey(in)
		if err != nil {
			t.Fatalf("ParseSortKey(%q): %v", in, err)
		}

		if got != want {
			t.Errorf("ParseSortKey(%q): expected %s, got %s", in, want, got)
		}
	}

	if _, err := ParseSortKey("priority"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestTagNames(t *testing.T) {
	problems := []models.Problem{
		{Tags: []models.Tag{{Name: "graph10"}, {Name: "dp"}}},
		{Tags: []models.Tag{{Name: "graph2"}, {Name: "dp"}}},
		{Tags: []models.Tag{{Name: "arrays"}}},
	}

	want := []string{"arrays", "dp", "graph2", "graph10"}

	if diff := cmp.Diff(want, TagNames(problems)); diff != "" {
		t.Fatalf("TagNames() mismatch (-want +got):\n%s", diff)
	}
}
