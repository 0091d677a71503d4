// Package spellbind is a fast spelling correction and word segmentation
// engine. It precomputes delete variants of every lexicon word into a
// hash-keyed index, so candidate lookup probes a handful of buckets
// instead of scanning the whole lexicon, then verifies candidates with a
// bounded Damerau-Levenshtein (optimal string alignment) distance.
package spellbind

import (
	"fmt"
	"math"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hbollon/go-edlib"

	"github.com/spellbind/spellbind/staging"
	"github.com/spellbind/spellbind/utilities"
)

const (
	defaultMaxEditDistance = 2
	defaultPrefixLength    = 7
	defaultCountThreshold  = 1
	defaultInitialCapacity = 16
	defaultCompactLevel    = 5

	// N is the number of words in the corpus the published frequency
	// lexicons were counted over; word occurrence probability is count/N.
	// The exact literal is load-bearing for compound ranking and for
	// compatibility with existing lexicons.
	N int64 = 1024908267229
)

// StringHasher maps a string to a 64-bit hash. Distinct delete variants
// should rarely collide; collisions are tolerated because suggestions are
// verified via the edit distance afterwards.
type StringHasher interface {
	Hash(s string) uint64
}

type compactHasher struct {
	mask uint64
}

func (h compactHasher) Hash(s string) uint64 {
	return utilities.StringHash(s, h.mask)
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDictionaryEditDistance sets the upper bound on edit distance for
// which the delete index is built and queries may be issued.
func WithMaxDictionaryEditDistance(maxEditDistance int) Option {
	return func(b *Builder) {
		b.maxDictionaryEditDistance = maxEditDistance
	}
}

// WithPrefixLength sets the length words and queries are truncated to
// before delete-variant expansion.
func WithPrefixLength(prefixLength int) Option {
	return func(b *Builder) {
		b.prefixLength = prefixLength
	}
}

// WithCountThreshold sets the minimum accumulated count for a word to be
// considered a known spelling.
func WithCountThreshold(countThreshold int64) Option {
	return func(b *Builder) {
		b.countThreshold = countThreshold
	}
}

// WithInitialCapacity hints the initial sizing of the word table.
func WithInitialCapacity(capacity int) Option {
	return func(b *Builder) {
		b.initialCapacity = capacity
	}
}

// WithCompactLevel trades delete-index memory against hash collisions,
// 0 (fewest collisions) to 16 (most compact).
func WithCompactLevel(level int) Option {
	return func(b *Builder) {
		b.compactLevel = level
	}
}

// WithStringHasher injects the hash used to key the delete index.
func WithStringHasher(hasher StringHasher) Option {
	return func(b *Builder) {
		b.hasher = hasher
	}
}

// WithDistanceComparer injects the bounded edit distance implementation.
func WithDistanceComparer(comparer DistanceComparer) Option {
	return func(b *Builder) {
		b.comparer = comparer
	}
}

// WithPrebuiltDeletes seeds the builder with an already-generated delete
// index. Lexicon ingestion still populates word counts, but skips delete
// generation for words the supplied index already lists under their
// truncated prefix.
func WithPrebuiltDeletes(deletes map[uint64][]string) Option {
	return func(b *Builder) {
		b.deletes = deletes
		b.prebuilt = true
	}
}

// Builder accumulates the lexicon and the delete-variant index. It is not
// safe for concurrent use; call Build to obtain the immutable Engine that
// serves queries.
type Builder struct {
	maxDictionaryEditDistance int
	prefixLength              int
	countThreshold            int64
	initialCapacity           int
	compactLevel              int

	hasher   StringHasher
	comparer DistanceComparer

	deletes             map[uint64][]string
	words               map[string]int64
	belowThresholdWords map[string]int64
	bigrams             map[string]int64
	bigramCountMin      int64
	maxWordLength       int
	prebuilt            bool

	stage *staging.Stage[string]
}

// NewBuilder creates a Builder with the default configuration
// (max edit distance 2, prefix length 7, count threshold 1), modified by
// the given options.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		maxDictionaryEditDistance: defaultMaxEditDistance,
		prefixLength:              defaultPrefixLength,
		countThreshold:            defaultCountThreshold,
		initialCapacity:           defaultInitialCapacity,
		compactLevel:              defaultCompactLevel,
		bigramCountMin:            math.MaxInt64,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.maxDictionaryEditDistance < 0 {
		return nil, fmt.Errorf("%w: maxDictionaryEditDistance must be >= 0", ErrInvalidArgument)
	}
	if b.prefixLength < 1 || b.prefixLength < b.maxDictionaryEditDistance {
		return nil, fmt.Errorf("%w: prefixLength must be >= 1 and >= maxDictionaryEditDistance", ErrInvalidArgument)
	}
	if b.countThreshold < 0 {
		return nil, fmt.Errorf("%w: countThreshold must be >= 0", ErrInvalidArgument)
	}
	if b.initialCapacity < 0 {
		return nil, fmt.Errorf("%w: initialCapacity must be >= 0", ErrInvalidArgument)
	}
	if b.compactLevel < 0 || b.compactLevel > 16 {
		return nil, fmt.Errorf("%w: compactLevel must be between 0 and 16", ErrInvalidArgument)
	}

	if b.hasher == nil {
		b.hasher = compactHasher{mask: (math.MaxUint64 >> (3 + b.compactLevel)) << 2}
	}
	if b.comparer == nil {
		b.comparer = NewDamerauOSA()
	}
	if b.deletes == nil {
		b.deletes = make(map[uint64][]string)
	}

	b.words = make(map[string]int64, b.initialCapacity)
	b.belowThresholdWords = make(map[string]int64)
	b.bigrams = make(map[string]int64)
	b.stage = staging.NewSuggestionStage[string](b.initialCapacity)

	return b, nil
}

// CreateEntry adds word with the given count to the lexicon, accumulating
// counts for duplicates with saturation. It reports whether the word was
// newly added as a known spelling (count at or above the threshold).
func (b *Builder) CreateEntry(word string, count int64) bool {
	if count <= 0 {
		if b.countThreshold > 0 {
			// no point adding words that will never reach the threshold
			return false
		}
		count = 0
	}

	if b.countThreshold > 1 {
		if previous, prs := b.belowThresholdWords[word]; prs {
			count = utilities.SaturatingAdd(previous, count)

			if count < b.countThreshold {
				b.belowThresholdWords[word] = count
				return false
			}
			// the accumulated count just crossed the threshold
			delete(b.belowThresholdWords, word)
			b.addWord(word, count)
			return true
		}
	}

	if previous, prs := b.words[word]; prs {
		// known word, only the count changes; deletes were generated on
		// first insertion
		b.words[word] = utilities.SaturatingAdd(previous, count)
		return false
	}

	if count < b.countThreshold {
		b.belowThresholdWords[word] = count
		return false
	}

	b.addWord(word, count)
	return true
}

func (b *Builder) addWord(word string, count int64) {
	b.words[word] = count

	if len(word) > b.maxWordLength {
		b.maxWordLength = len(word)
	}

	b.generateDeletes(word)
}

func (b *Builder) generateDeletes(word string) {
	if b.prebuilt && b.indexedInPrebuilt(word) {
		return
	}

	for del := range b.editsPrefix(word).Iter() {
		b.stage.Add(b.hasher.Hash(del), word)
	}
}

// indexedInPrebuilt reports whether the supplied delete index already
// lists word under its truncated prefix.
func (b *Builder) indexedInPrebuilt(word string) bool {
	prefix := word
	if len(prefix) > b.prefixLength {
		prefix = prefix[:b.prefixLength]
	}
	for _, indexed := range b.deletes[b.hasher.Hash(prefix)] {
		if indexed == word {
			return true
		}
	}
	return false
}

// AddBigram records a space-separated two-word phrase with its count.
func (b *Builder) AddBigram(key string, count int64) {
	b.bigrams[key] = count
	if count < b.bigramCountMin {
		b.bigramCountMin = count
	}
}

// PurgeBelowThresholdWords drops the staging map of words that never
// reached the count threshold.
func (b *Builder) PurgeBelowThresholdWords() {
	b.belowThresholdWords = make(map[string]int64)
}

// edits creates a set of inexpensive and language independent edits:
// only deletes, no transposes, replacements, or inserts. Replaces and
// inserts are expensive and language dependent (Chinese has 70,000
// Unicode Han characters).
func (b *Builder) edits(word string, editDistance int, deleteWords mapset.Set[string]) mapset.Set[string] {
	editDistance++
	if len(word) > 1 && editDistance <= b.maxDictionaryEditDistance {
		for i := 0; i < len(word); i++ {
			del := word[:i] + word[i+1:]
			if deleteWords.Add(del) {
				// recursion, if maximum edit distance not yet reached
				if editDistance < b.maxDictionaryEditDistance {
					deleteWords = b.edits(del, editDistance, deleteWords)
				}
			}
		}
	}

	return deleteWords
}

func (b *Builder) editsPrefix(word string) mapset.Set[string] {
	edits := mapset.NewThreadUnsafeSet[string]()

	if len(word) <= b.maxDictionaryEditDistance {
		edits.Add("")
	}
	if len(word) > b.prefixLength {
		word = word[:b.prefixLength]
	}

	edits.Add(word)

	return b.edits(word, 0, edits)
}

// Build commits all staged deletes and returns the finished Engine. The
// Builder must not be used afterwards.
func (b *Builder) Build() *Engine {
	b.stage.CommitTo(b.deletes)
	b.stage.Clear()

	return &Engine{
		maxDictionaryEditDistance: b.maxDictionaryEditDistance,
		prefixLength:              b.prefixLength,
		maxWordLength:             b.maxWordLength,
		hasher:                    b.hasher,
		comparer:                  b.comparer,
		deletes:                   b.deletes,
		words:                     b.words,
		bigrams:                   b.bigrams,
		bigramCountMin:            b.bigramCountMin,
	}
}

// Engine serves spelling lookups against a lexicon built by a Builder.
// All state is read-only after Build, so an Engine may be shared by
// concurrent readers without synchronization.
type Engine struct {
	maxDictionaryEditDistance int
	prefixLength              int
	maxWordLength             int

	hasher   StringHasher
	comparer DistanceComparer

	deletes        map[uint64][]string
	words          map[string]int64
	bigrams        map[string]int64
	bigramCountMin int64
}

// NewEngine builds an Engine from materialized lexicon lines, each
// formatted as key<TAB>count. Bigram keys are two space-separated words.
func NewEngine(unigramLines, bigramLines []string, opts ...Option) (*Engine, error) {
	b, err := NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	for i, line := range unigramLines {
		key, count, err := parseLexiconLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		b.CreateEntry(key, count)
	}
	for i, line := range bigramLines {
		key, count, err := parseLexiconLine(line)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: line, Err: err}
		}
		b.AddBigram(key, count)
	}
	return b.Build(), nil
}

// WordCount returns the number of known words.
func (e *Engine) WordCount() int {
	return len(e.words)
}

// EntryCount returns the number of delete-index buckets.
func (e *Engine) EntryCount() int {
	return len(e.deletes)
}

// MaxWordLength returns the length of the longest indexed word.
func (e *Engine) MaxWordLength() int {
	return e.maxWordLength
}

// MaxDictionaryEditDistance returns the edit distance bound the delete
// index was built for.
func (e *Engine) MaxDictionaryEditDistance() int {
	return e.maxDictionaryEditDistance
}

// WordFrequency returns the lexicon count for word.
func (e *Engine) WordFrequency(word string) (int64, bool) {
	count, prs := e.words[word]
	return count, prs
}

// Deletes exposes the delete index, e.g. for snapshotting. Callers must
// treat it as read-only.
func (e *Engine) Deletes() map[uint64][]string {
	return e.deletes
}

// Words exposes the word counts, e.g. for snapshotting. Callers must
// treat it as read-only.
func (e *Engine) Words() map[string]int64 {
	return e.words
}

// DefaultAlgorithmComparer returns the edlib-backed OSA comparer,
// equivalent in results to the built-in DamerauOSA.
func DefaultAlgorithmComparer() AlgorithmComparer {
	return NewAlgorithmComparer(edlib.OSADamerauLevenshtein)
}
