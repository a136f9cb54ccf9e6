package search

import (
	"slices"
	"testing"

	"github.com/xtruder/bookmarks-search/internal/bookmarks"
)

var (
	github = bookmarks.Record{AddedAt: 1, Title: "GitHub", URL: "https://github.com", Browser: bookmarks.Chrome}
	notes  = bookmarks.Record{AddedAt: 2, Title: "My Github Notes", URL: "https://notes.example/gh", Folder: "Work", Browser: bookmarks.Chrome}
)

func titles(records []bookmarks.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		record bookmarks.Record
		want   int
	}{
		{"exact title", "GitHub", github, ExactTitle},
		{"exact title is case sensitive", "github", github, TitleHit},
		{"exact description", "「Work」https://notes.example/gh", notes, ExactDescription},
		{"exact url without folder matches description", "https://github.com", github, ExactDescription},
		{"title hit", "notes", notes, TitleHit},
		{"description hit", "example", notes, DescriptionHit},
		{"folder hit counts as description", "work", notes, DescriptionHit},
		{"two title hits", "my notes", notes, 2 * TitleHit},
		{"title and description hits", "notes work", notes, TitleHit + DescriptionHit},
		{"second token misses", "github zzz", github, 0},
		{"first token misses", "zzz github", github, 0},
		{"regexp metacharacters are literal", "git.ub", github, 0},
		{"no match", "gitlab", github, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := ParseQuery(tt.query)
			if !ok {
				t.Fatalf("ParseQuery(%q) reported empty", tt.query)
			}
			if got := q.Score(tt.record); got != tt.want {
				t.Fatalf("Score(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestRank_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		if got := Rank(slices.Values([]bookmarks.Record{github, notes}), q); len(got) != 0 {
			t.Fatalf("Rank(%q) = %v, want empty", q, titles(got))
		}
	}
}

func TestRank_CaseInsensitiveTokens(t *testing.T) {
	got := Rank(slices.Values([]bookmarks.Record{github, notes}), "github")
	want := []string{"GitHub", "My Github Notes"}
	if !slices.Equal(titles(got), want) {
		t.Fatalf("Rank = %v, want %v", titles(got), want)
	}
}

func TestRank_ExactTitleFirst(t *testing.T) {
	// notes is older here, so it would win a tie.
	older := notes
	older.AddedAt = 0
	older.Title = "GitHub notes GitHub"

	got := Rank(slices.Values([]bookmarks.Record{older, github}), "GitHub")
	want := []string{"GitHub", "GitHub notes GitHub"}
	if !slices.Equal(titles(got), want) {
		t.Fatalf("Rank = %v, want %v", titles(got), want)
	}
}

func TestRank_AndChainExcludes(t *testing.T) {
	onlyBar := bookmarks.Record{Title: "bar only", URL: "https://bar.example"}
	both := bookmarks.Record{Title: "foo", URL: "https://bar.example"}

	got := Rank(slices.Values([]bookmarks.Record{onlyBar, both}), "foo bar")
	if !slices.Equal(titles(got), []string{"foo"}) {
		t.Fatalf("Rank = %v, want [foo]", titles(got))
	}
}

func TestRank_TitleOutranksDescription(t *testing.T) {
	inDesc := bookmarks.Record{Title: "Docs", URL: "https://golang.org"}
	inTitle := bookmarks.Record{Title: "golang blog", URL: "https://blog.example"}

	got := Rank(slices.Values([]bookmarks.Record{inDesc, inTitle}), "golang")
	if !slices.Equal(titles(got), []string{"golang blog", "Docs"}) {
		t.Fatalf("Rank = %v", titles(got))
	}
}

func TestRank_StableTies(t *testing.T) {
	records := []bookmarks.Record{
		{AddedAt: 1, Title: "first go", URL: "https://1.example"},
		{AddedAt: 2, Title: "second", URL: "https://go.example"},
		{AddedAt: 3, Title: "third go", URL: "https://3.example"},
		{AddedAt: 4, Title: "fourth go", URL: "https://4.example"},
	}

	got := Rank(slices.Values(records), "go")
	want := []string{"first go", "third go", "fourth go", "second"}
	if !slices.Equal(titles(got), want) {
		t.Fatalf("Rank = %v, want %v", titles(got), want)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	records := []bookmarks.Record{notes, github}
	_ = Rank(slices.Values(records), "github")
	if records[0].Title != notes.Title || records[1].Title != github.Title {
		t.Fatalf("input reordered: %v", titles(records))
	}
}
