package spellbind

import (
	"math"
	"testing"

	verb "github.com/spellbind/spellbind/verbosity"
)

func equal[T comparable](t *testing.T, want, got T) {
	t.Helper()
	if want == got {
		return
	}
	t.Errorf("Expected %v, got %v", want, got)
}

func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	b, err := NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	return b
}

func TestBuilderRejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
	}{
		{"negative max edit distance", []Option{WithMaxDictionaryEditDistance(-1)}},
		{"prefix below max edit distance", []Option{WithMaxDictionaryEditDistance(5), WithPrefixLength(3)}},
		{"zero prefix", []Option{WithPrefixLength(0)}},
		{"negative count threshold", []Option{WithCountThreshold(-1)}},
		{"compact level too high", []Option{WithCompactLevel(17)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewBuilder(c.opts...); err == nil {
				t.Error("expected configuration error, got nil")
			}
		})
	}
}

func TestCreateEntryAccumulatesWithSaturation(t *testing.T) {
	b := newTestBuilder(t)

	equal(t, true, b.CreateEntry("word", math.MaxInt64-5))
	equal(t, false, b.CreateEntry("word", 10))

	engine := b.Build()
	count, prs := engine.WordFrequency("word")
	equal(t, true, prs)
	equal(t, int64(math.MaxInt64), count)
}

func TestCreateEntrySkipsNonPositiveCounts(t *testing.T) {
	b := newTestBuilder(t, WithCountThreshold(1))

	equal(t, false, b.CreateEntry("ghost", 0))
	equal(t, false, b.CreateEntry("ghost", -3))

	engine := b.Build()
	equal(t, 0, engine.WordCount())
}

func TestBelowThresholdWordsMigrateOnceAccumulated(t *testing.T) {
	b := newTestBuilder(t, WithCountThreshold(3))

	equal(t, false, b.CreateEntry("tea", 1))
	equal(t, false, b.CreateEntry("tea", 1))
	equal(t, true, b.CreateEntry("tea", 1))

	engine := b.Build()
	count, prs := engine.WordFrequency("tea")
	equal(t, true, prs)
	equal(t, int64(3), count)

	result, err := engine.Lookup("tea", verb.Top)
	equal(t, nil, err)
	equal(t, 1, result.Len())
	equal(t, "tea", result[0].Term)
	equal(t, 0, result[0].Distance)
}

func TestKnownWordOnlyGeneratesDeletesOnce(t *testing.T) {
	b := newTestBuilder(t)

	b.CreateEntry("steam", 10)
	engine1 := b.Build()
	buckets := engine1.EntryCount()

	b2 := newTestBuilder(t)
	b2.CreateEntry("steam", 10)
	b2.CreateEntry("steam", 5)
	engine2 := b2.Build()

	equal(t, buckets, engine2.EntryCount())
	count, _ := engine2.WordFrequency("steam")
	equal(t, int64(15), count)
	for _, bucket := range engine2.Deletes() {
		seen := 0
		for _, word := range bucket {
			if word == "steam" {
				seen++
			}
		}
		equal(t, 1, seen)
	}
}

func TestDeleteIndexCoversPrefixDeleteSet(t *testing.T) {
	b := newTestBuilder(t, WithMaxDictionaryEditDistance(2), WithPrefixLength(7))
	b.CreateEntry("hello", 10)
	engine := b.Build()

	// closure of the prefix under up to two deletions, plus the prefix
	wantDeletes := map[string]bool{"hello": true}
	depth1 := []string{"ello", "hllo", "helo", "hell"}
	for _, d := range depth1 {
		wantDeletes[d] = true
		for i := 0; i < len(d); i++ {
			wantDeletes[d[:i]+d[i+1:]] = true
		}
	}

	hasher := compactHasher{mask: (math.MaxUint64 >> (3 + defaultCompactLevel)) << 2}
	for del := range wantDeletes {
		bucket := engine.Deletes()[hasher.Hash(del)]
		found := false
		for _, word := range bucket {
			if word == "hello" {
				found = true
			}
		}
		if !found {
			t.Errorf("delete %q does not map back to hello", del)
		}
	}
}

func TestShortWordContributesEmptyStringDelete(t *testing.T) {
	b := newTestBuilder(t, WithMaxDictionaryEditDistance(2))
	b.CreateEntry("at", 10)
	engine := b.Build()

	hasher := compactHasher{mask: (math.MaxUint64 >> (3 + defaultCompactLevel)) << 2}
	bucket := engine.Deletes()[hasher.Hash("")]
	found := false
	for _, word := range bucket {
		if word == "at" {
			found = true
		}
	}
	equal(t, true, found)
}

func TestPrebuiltDeletesSkipRegeneration(t *testing.T) {
	b1 := newTestBuilder(t)
	b1.CreateEntry("hello", 10)
	b1.CreateEntry("world", 8)
	source := b1.Build()

	b2 := newTestBuilder(t, WithPrebuiltDeletes(source.Deletes()))
	b2.CreateEntry("hello", 10)
	b2.CreateEntry("world", 8)
	seeded := b2.Build()

	// counts repopulated, deletes not duplicated
	count, prs := seeded.WordFrequency("hello")
	equal(t, true, prs)
	equal(t, int64(10), count)
	for hash, bucket := range seeded.Deletes() {
		seen := make(map[string]int)
		for _, word := range bucket {
			seen[word]++
		}
		for word, n := range seen {
			if n != 1 {
				t.Errorf("bucket %d lists %q %d times", hash, word, n)
			}
		}
	}

	result, err := seeded.Lookup("helo", verb.Top)
	equal(t, nil, err)
	equal(t, 1, result.Len())
	equal(t, "hello", result[0].Term)
}

func TestNewEngineFromLines(t *testing.T) {
	engine, err := NewEngine(
		[]string{"hello\t10000", "help\t5000", "world\t8000"},
		[]string{"hello world\t2000"},
	)
	equal(t, nil, err)
	equal(t, 3, engine.WordCount())
	equal(t, 5, engine.MaxWordLength())
}

func TestNewEngineRejectsMalformedLines(t *testing.T) {
	if _, err := NewEngine([]string{"hello 10000"}, nil); err == nil {
		t.Error("expected ParseError for missing tab, got nil")
	}
	if _, err := NewEngine([]string{"hello\tmany"}, nil); err == nil {
		t.Error("expected ParseError for non-integer count, got nil")
	}
}
