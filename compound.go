package spellbind

import (
	"math"
	"strings"

	verb "github.com/spellbind/spellbind/verbosity"
)

// LookupCompound supports compound aware automatic spelling correction of
// multi-word input strings with three cases:
// 1. mistakenly inserted space into a correct word led to two incorrect terms
// 2. mistakenly omitted space between two correct words led to one incorrect combined term
// 3. multiple independent input terms with/without spelling errors
func (e *Engine) LookupCompound(input string) (Suggestions, error) {
	return e.LookupCompoundWithEditDistance(input, e.maxDictionaryEditDistance)
}

// LookupCompoundWithEditDistance is LookupCompound with a per-query edit
// distance bound. It returns a single Suggestion carrying the corrected,
// space-joined phrase, its distance to the input, and a composite
// frequency estimate.
func (e *Engine) LookupCompoundWithEditDistance(input string, editDistanceMax int) (Suggestions, error) {
	if editDistanceMax > e.maxDictionaryEditDistance {
		return nil, ErrInvalidArgument
	}
	if len(e.words) == 0 {
		return nil, ErrNotInitialized
	}

	terms := splitTerms(input)
	suggestionParts := make(Suggestions, 0, len(terms))

	// translate every term to its best suggestion, otherwise it remains
	// unchanged
	lastCombined := false

	for i, term := range terms {
		suggestions, err := e.LookupWithOptions(term, verb.Top, editDistanceMax, false)
		if err != nil {
			return nil, err
		}

		// combi check, always before split
		if i > 0 && !lastCombined {
			combined, err := e.combineWords(terms[i-1], term, suggestions, suggestionParts[len(suggestionParts)-1], editDistanceMax)
			if err != nil {
				return nil, err
			}
			if combined != nil {
				suggestionParts[len(suggestionParts)-1] = combined
				lastCombined = true
				continue
			}
		}
		lastCombined = false

		// never split terms with a perfect suggestion or single chars
		if len(suggestions) > 0 && (suggestions[0].Distance == 0 || len(term) == 1) {
			suggestionParts = append(suggestionParts, suggestions[0])
			continue
		}

		part, err := e.splitWords(term, suggestions, editDistanceMax)
		if err != nil {
			return nil, err
		}
		suggestionParts = append(suggestionParts, part)
	}

	// The probability of the phrase is the product of the part
	// probabilities: count = N * Π(part.count / N).
	frequency := float64(N)
	var sb strings.Builder
	for _, part := range suggestionParts {
		sb.WriteString(part.Term)
		sb.WriteByte(' ')
		frequency *= float64(part.Frequency) / float64(N)
	}

	term := strings.TrimRight(sb.String(), " ")
	distance := e.comparer.Distance(input, term, math.MaxInt32)

	return Suggestions{NewSuggestion(term, distance, int64(frequency))}, nil
}

// combineWords checks whether merging the previous term into the current
// one beats the two separate corrections. It returns the combined
// suggestion to replace the previous part with, or nil to keep the parts
// separate.
func (e *Engine) combineWords(previousTerm, term string, suggestions Suggestions, previousPart *Suggestion, editDistanceMax int) (*Suggestion, error) {
	combined, err := e.LookupWithOptions(previousTerm+term, verb.Top, editDistanceMax, false)
	if err != nil {
		return nil, err
	}
	if len(combined) == 0 {
		return nil, nil
	}

	best1 := previousPart
	var best2 *Suggestion
	if len(suggestions) > 0 {
		best2 = suggestions[0]
	} else {
		// unknown term, fall back to its estimated occurrence probability
		best2 = NewSuggestion(term, editDistanceMax+1, estimatedWordOccurrenceCount(term))
	}

	// edit distance between the two split terms and their best
	// corrections, as the comparative value for the combination
	distance := best1.Distance + best2.Distance

	if distance >= 0 &&
		(combined[0].Distance+1 < distance ||
			(combined[0].Distance+1 == distance &&
				combined[0].Frequency > best1.Frequency/N*best2.Frequency)) {
		return combined[0], nil
	}
	return nil, nil
}

// splitWords corrects a term by trying every split position and scoring
// the resulting word pairs with the bigram lexicon, falling back to a
// Naive-Bayes unigram estimate. The best split, the term's own top
// suggestion, or an estimated placeholder is returned.
func (e *Engine) splitWords(term string, suggestions Suggestions, editDistanceMax int) (*Suggestion, error) {
	var suggestionSplitBest *Suggestion
	if len(suggestions) > 0 {
		// the single-term correction competes against the splits
		suggestionSplitBest = suggestions[0]
	}

	if len(term) > 1 {
		for j := 1; j < len(term); j++ {
			part1 := term[:j]
			part2 := term[j:]

			suggestions1, err := e.LookupWithOptions(part1, verb.Top, editDistanceMax, false)
			if err != nil {
				return nil, err
			}
			if len(suggestions1) == 0 {
				continue
			}
			suggestions2, err := e.LookupWithOptions(part2, verb.Top, editDistanceMax, false)
			if err != nil {
				return nil, err
			}
			if len(suggestions2) == 0 {
				continue
			}

			splitTerm := suggestions1[0].Term + " " + suggestions2[0].Term
			splitDistance := e.comparer.Distance(term, splitTerm, editDistanceMax)
			if splitDistance < 0 {
				splitDistance = editDistanceMax + 1
			}

			if suggestionSplitBest != nil {
				if splitDistance > suggestionSplitBest.Distance {
					continue
				}
				if splitDistance < suggestionSplitBest.Distance {
					suggestionSplitBest = nil
				}
			}

			var frequency int64
			if bigramCount, prs := e.bigrams[splitTerm]; prs {
				frequency = bigramCount

				// boost splits whose corrections are part of, or identical
				// to, the input term
				if len(suggestions) > 0 {
					if suggestions1[0].Term+suggestions2[0].Term == term {
						// make the count bigger than the count of the
						// single term correction
						frequency = max(frequency, suggestions[0].Frequency+2)
					} else if suggestions1[0].Term == suggestions[0].Term || suggestions2[0].Term == suggestions[0].Term {
						frequency = max(frequency, suggestions[0].Frequency+1)
					}
				} else if suggestions1[0].Term+suggestions2[0].Term == term {
					frequency = max(frequency, max(suggestions1[0].Frequency, suggestions2[0].Frequency))
				}
			} else {
				// The Naive Bayes probability of the word combination is
				// the product of the two word probabilities:
				// P(AB) = P(A) * P(B). Use it to estimate the frequency
				// count of the combination, which then ranks the best
				// splitting variant.
				frequency = min(e.bigramCountMin,
					int64(float64(suggestions1[0].Frequency)/float64(N)*float64(suggestions2[0].Frequency)))
			}

			split := NewSuggestion(splitTerm, splitDistance, frequency)
			if suggestionSplitBest == nil || split.Frequency > suggestionSplitBest.Frequency {
				suggestionSplitBest = split
			}
		}

		if suggestionSplitBest != nil {
			return suggestionSplitBest, nil
		}
	}

	return NewSuggestion(term, editDistanceMax+1, estimatedWordOccurrenceCount(term)), nil
}

// estimatedWordOccurrenceCount approximates the count of a word absent
// from the lexicon: P = 10 / (N * 10^len).
func estimatedWordOccurrenceCount(term string) int64 {
	return int64(10.0 / math.Pow(10, float64(len(term))))
}

// splitTerms tokenizes on ASCII space, dropping empty tokens so runs of
// spaces cannot produce empty parts in the joined result.
func splitTerms(input string) []string {
	fields := strings.Split(input, " ")
	terms := fields[:0]
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}
