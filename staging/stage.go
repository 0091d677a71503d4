// Package staging accumulates (delete-hash, word) pairs while an index is
// being built, then bulk-commits them into the permanent delete index.
// Entries for the same hash are chained through a single node slice so the
// build avoids growing one slice per bucket.
package staging

type node[T any] struct {
	value T
	next  int
}

type entry struct {
	count int
	first int
}

type Stage[T any] struct {
	Deletes map[uint64]entry
	Nodes   []node[T]
}

func NewSuggestionStage[T any](initialCapacity int) *Stage[T] {
	return &Stage[T]{
		Deletes: make(map[uint64]entry, initialCapacity),
		Nodes:   make([]node[T], 0, initialCapacity),
	}
}

func (s *Stage[T]) DeleteCount() int {
	return len(s.Deletes)
}

func (s *Stage[T]) NodeCount() int {
	return len(s.Nodes)
}

func (s *Stage[T]) Clear() {
	s.Deletes = make(map[uint64]entry)
	s.Nodes = s.Nodes[:0]
}

// Add records value under deleteHash. Values are chained newest-first;
// CommitTo restores insertion order.
func (s *Stage[T]) Add(deleteHash uint64, value T) {
	e, prs := s.Deletes[deleteHash]
	if !prs {
		e = entry{
			count: 0,
			first: -1,
		}
	}

	next := e.first
	e.count++
	e.first = s.NodeCount()
	s.Deletes[deleteHash] = e
	s.Nodes = append(s.Nodes, node[T]{
		value: value,
		next:  next,
	})
}

// CommitTo appends every staged value to its bucket in permanentDeletes,
// creating buckets as needed. Staged values land after any values already
// present, in the order they were added.
func (s *Stage[T]) CommitTo(permanentDeletes map[uint64][]T) {
	for key, e := range s.Deletes {
		chained := make([]T, e.count)
		i := e.count - 1
		for next := e.first; next >= 0; {
			n := s.Nodes[next]
			chained[i] = n.value
			next = n.next
			i--
		}

		if existing, prs := permanentDeletes[key]; prs {
			permanentDeletes[key] = append(existing, chained...)
		} else {
			permanentDeletes[key] = chained
		}
	}
}
