package x

import (
	"slices"
	"testing"
)

func TestFilterTake(t *testing.T) {
	seq := slices.Values([]int{1, 2, 3, 4, 5, 6})
	even := Filter(seq, func(v int) bool { return v%2 == 0 })

	if got := slices.Collect(even); !slices.Equal(got, []int{2, 4, 6}) {
		t.Fatalf("Filter = %v", got)
	}
	if got := slices.Collect(Take(even, 2)); !slices.Equal(got, []int{2, 4}) {
		t.Fatalf("Take(2) = %v", got)
	}
	if got := slices.Collect(Take(even, 0)); !slices.Equal(got, []int{2, 4, 6}) {
		t.Fatalf("Take(0) = %v", got)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	key := Key("https://example.com")
	if _, ok := c.Get(key); ok {
		t.Fatalf("empty cache returned a value")
	}
	if err := c.Set(key, "200"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := c.Get(key); !ok || v != "200" {
		t.Fatalf("Get = %q, %v", v, ok)
	}
	if Key("a", "bc") == Key("ab", "c") {
		t.Fatalf("Key should separate parts")
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Fatalf("value survived Clear")
	}
}
