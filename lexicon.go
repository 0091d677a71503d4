package spellbind

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// LexiconDelimiter separates the key from the count in lexicon lines,
// for unigrams and bigrams alike.
const LexiconDelimiter = "\t"

func parseLexiconLine(line string) (string, int64, error) {
	key, countText, found := strings.Cut(line, LexiconDelimiter)
	if !found {
		return "", 0, errors.New("missing tab delimiter")
	}
	count, err := strconv.ParseInt(countText, 10, 64)
	if err != nil {
		return "", 0, err
	}
	return key, count, nil
}

// LoadDictionary ingests unigram lexicon lines (word<TAB>count) from r.
// Malformed lines abort the load with a ParseError.
func (b *Builder) LoadDictionary(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	lineNumber := 0
	loaded := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, count, err := parseLexiconLine(line)
		if err != nil {
			return &ParseError{Line: lineNumber, Text: line, Err: err}
		}
		if b.CreateEntry(key, count) {
			loaded++
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Debugf("loaded %d words from %d lexicon lines", loaded, lineNumber)
	return nil
}

// LoadDictionaryFile ingests a unigram lexicon file.
func (b *Builder) LoadDictionaryFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return b.LoadDictionary(f)
}

// LoadBigramDictionary ingests bigram lexicon lines (w1 w2<TAB>count)
// from r. Malformed lines abort the load with a ParseError.
func (b *Builder) LoadBigramDictionary(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if line == "" {
			continue
		}
		key, count, err := parseLexiconLine(line)
		if err != nil {
			return &ParseError{Line: lineNumber, Text: line, Err: err}
		}
		b.AddBigram(key, count)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Debugf("loaded %d bigram lines", lineNumber)
	return nil
}

// LoadBigramDictionaryFile ingests a bigram lexicon file.
func (b *Builder) LoadBigramDictionaryFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return b.LoadBigramDictionary(f)
}
