package spellbind

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/spellbind/spellbind/utilities"
	verb "github.com/spellbind/spellbind/verbosity"
)

// Lookup returns ranked spelling suggestions for input within the
// configured maximum edit distance.
func (e *Engine) Lookup(input string, verbosity verb.Verbosity) (Suggestions, error) {
	return e.LookupWithOptions(input, verbosity, e.maxDictionaryEditDistance, false)
}

// LookupEditDistance is Lookup with a per-query edit distance bound,
// which must not exceed the bound the delete index was built for.
func (e *Engine) LookupEditDistance(input string, verbosity verb.Verbosity, maxEditDistance int) (Suggestions, error) {
	return e.LookupWithOptions(input, verbosity, maxEditDistance, false)
}

// LookupWithOptions returns ranked spelling suggestions for input.
//
// verbosity=Top: the suggestion with the highest term frequency of the suggestions of smallest edit distance found
// verbosity=Closest: all suggestions of smallest edit distance found, the suggestions are ordered by term frequency
// verbosity=All: all suggestions <= maxEditDistance, the suggestions are ordered by edit distance, then by term frequency (slower, no early termination)
//
// With includeUnknown, an otherwise empty result carries the input itself
// at distance maxEditDistance+1 and frequency 0.
func (e *Engine) LookupWithOptions(input string, verbosity verb.Verbosity, maxEditDistance int, includeUnknown bool) (Suggestions, error) {
	// the delete index only covers deletes up to the distance it was
	// built for
	if maxEditDistance > e.maxDictionaryEditDistance {
		return nil, fmt.Errorf("%w: maxEditDistance %d exceeds dictionary maximum %d",
			ErrInvalidArgument, maxEditDistance, e.maxDictionaryEditDistance)
	}
	if len(e.words) == 0 {
		return nil, ErrNotInitialized
	}

	suggestions := make(Suggestions, 0)
	inputLen := len(input)

	finish := func() (Suggestions, error) {
		if len(suggestions) > 1 {
			sort.Sort(suggestions)
		}
		if includeUnknown && len(suggestions) == 0 {
			suggestions = append(suggestions, NewSuggestion(input, maxEditDistance+1, 0))
		}
		return suggestions, nil
	}

	// early exit - input is too long to be within maxEditDistance of any
	// indexed word
	if inputLen-maxEditDistance > e.maxWordLength {
		return finish()
	}

	// quick look for exact match
	if count, prs := e.words[input]; prs {
		suggestions = append(suggestions, NewSuggestion(input, 0, count))
		// early exit - return exact match, unless caller wants all matches
		if verbosity != verb.All {
			return finish()
		}
	}

	// early termination, if we only want to check if the word is in the
	// lexicon or get its frequency
	if maxEditDistance == 0 {
		return finish()
	}

	// deletes we've considered already
	deletesConsidered := mapset.NewThreadUnsafeSet[string]()
	// suggestions we've considered already, the exact match above included
	suggestionsConsidered := mapset.NewThreadUnsafeSet[string]()
	suggestionsConsidered.Add(input)

	maxEditDistance2 := maxEditDistance
	candidatePointer := 0
	candidates := make([]string, 0)

	inputPrefixLen := inputLen
	if inputPrefixLen > e.prefixLength {
		inputPrefixLen = e.prefixLength
		candidates = append(candidates, input[:inputPrefixLen])
	} else {
		candidates = append(candidates, input)
	}

	for candidatePointer < len(candidates) {
		candidate := candidates[candidatePointer]
		candidatePointer++
		candidateLen := len(candidate)
		lengthDiff := inputPrefixLen - candidateLen

		// candidates are enqueued by non-decreasing deletion depth, so
		// once the depth exceeds the bound no later candidate can beat it
		if lengthDiff > maxEditDistance2 {
			if verbosity == verb.All {
				continue
			}
			break
		}

		for _, suggestion := range e.deletes[e.hasher.Hash(candidate)] {
			if suggestion == input {
				continue
			}
			suggestionLen := len(suggestion)

			if utilities.Abs(suggestionLen-inputLen) > maxEditDistance2 || // length gap alone exceeds the bound
				suggestionLen < candidateLen || // delete of a shorter word, in this bucket only by hash collision
				(suggestionLen == candidateLen && suggestion != candidate) { // equal length match must be exact
				continue
			}

			suggestionPrefixLen := utilities.Min(suggestionLen, e.prefixLength)
			if suggestionPrefixLen > inputPrefixLen && suggestionPrefixLen-candidateLen > maxEditDistance2 {
				continue
			}

			var distance int
			if candidateLen == 0 {
				// no common chars: both strings fit within maxEditDistance
				distance = utilities.Max(inputLen, suggestionLen)
				if distance > maxEditDistance2 || !suggestionsConsidered.Add(suggestion) {
					continue
				}
			} else if suggestionLen == 1 {
				if strings.IndexByte(input, suggestion[0]) < 0 {
					distance = inputLen
				} else {
					distance = inputLen - 1
				}
				if distance > maxEditDistance2 || !suggestionsConsidered.Add(suggestion) {
					continue
				}
			} else {
				// Simultaneous deletes of maxEditDistance on the lexicon
				// word and the input can pair strings whose true edit
				// distance exceeds the bound (bank==bnak and bank==bink,
				// but bank!=kanb and bank!=xban and bank!=baxn for
				// maxEditDistance=1), so the distance is verified below.
				// When the whole prefix was consumed by deletes, a cheap
				// suffix comparison rejects most over-bound pairs without
				// the full distance computation.
				if e.prefixLength-maxEditDistance == candidateLen {
					minSuffix := utilities.Min(inputLen, suggestionLen) - e.prefixLength
					if (minSuffix > 1 && input[inputLen+1-minSuffix:] != suggestion[suggestionLen+1-minSuffix:]) ||
						(minSuffix > 0 && input[inputLen-minSuffix] != suggestion[suggestionLen-minSuffix] &&
							(input[inputLen-minSuffix-1] != suggestion[suggestionLen-minSuffix] ||
								input[inputLen-minSuffix] != suggestion[suggestionLen-minSuffix-1])) {
						continue
					}
				}

				// deleteInSuggestionPrefix is somewhat expensive, and only
				// pays off when early termination can use the result
				if (verbosity != verb.All && !e.deleteInSuggestionPrefix(candidate, candidateLen, suggestion, suggestionLen)) ||
					!suggestionsConsidered.Add(suggestion) {
					continue
				}
				distance = e.comparer.Distance(input, suggestion, maxEditDistance2)
				if distance < 0 {
					continue
				}
			}

			if distance <= maxEditDistance2 {
				suggestionCount := e.words[suggestion]
				item := NewSuggestion(suggestion, distance, suggestionCount)
				if len(suggestions) > 0 {
					switch verbosity {
					case verb.Closest:
						// keep only the ties at the smallest distance found
						if distance < maxEditDistance2 {
							suggestions = suggestions[:0]
						}
					case verb.Top:
						if distance < maxEditDistance2 || suggestionCount > suggestions[0].Frequency {
							maxEditDistance2 = distance
							suggestions[0] = item
						}
						continue
					}
				}
				if verbosity != verb.All {
					maxEditDistance2 = distance
				}
				suggestions = append(suggestions, item)
			}
		}

		// derive deletes from the candidate and enqueue the unseen ones,
		// until the maximum deletion depth is reached
		if lengthDiff < maxEditDistance && candidateLen <= e.prefixLength {
			// no point creating deletes deeper than suggestions already found
			if verbosity != verb.All && lengthDiff >= maxEditDistance2 {
				continue
			}

			for i := 0; i < candidateLen; i++ {
				del := candidate[:i] + candidate[i+1:]
				if deletesConsidered.Add(del) {
					candidates = append(candidates, del)
				}
			}
		}
	}

	return finish()
}

// deleteInSuggestionPrefix checks whether all delete chars are present in
// the suggestion prefix in correct order, otherwise this is just a hash
// collision.
func (e *Engine) deleteInSuggestionPrefix(del string, delLen int, suggestion string, suggestionLen int) bool {
	if delLen == 0 {
		return true
	}
	if e.prefixLength < suggestionLen {
		suggestionLen = e.prefixLength
	}
	j := 0
	for i := 0; i < delLen; i++ {
		delChar := del[i]
		for j < suggestionLen && delChar != suggestion[j] {
			j++
		}
		if j == suggestionLen {
			return false
		}
	}
	return true
}
