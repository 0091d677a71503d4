// Package indexfile reads and writes binary snapshots of a prebuilt
// delete index, so engines can skip delete-variant generation on startup.
package indexfile

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is the serialized form of a delete index together with the
// parameters it was generated for. A snapshot is only valid for an engine
// configured with the same max edit distance and prefix length.
type Snapshot struct {
	MaxDictionaryEditDistance int                 `msgpack:"max_edit_distance"`
	PrefixLength              int                 `msgpack:"prefix_length"`
	Deletes                   map[uint64][]string `msgpack:"deletes"`
	Words                     map[string]int64    `msgpack:"words"`
}

// Write encodes the snapshot to w as msgpack.
func Write(w io.Writer, snapshot *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(snapshot)
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	var snapshot Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("indexfile: decoding snapshot: %w", err)
	}
	return &snapshot, nil
}

// Save writes the snapshot to path, replacing any existing file.
func Save(path string, snapshot *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, snapshot); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Validate checks that the snapshot parameters match the engine
// configuration it is about to seed.
func (s *Snapshot) Validate(maxDictionaryEditDistance, prefixLength int) error {
	if s.MaxDictionaryEditDistance != maxDictionaryEditDistance || s.PrefixLength != prefixLength {
		return fmt.Errorf("indexfile: snapshot built for maxEditDistance=%d prefixLength=%d, engine configured with %d/%d",
			s.MaxDictionaryEditDistance, s.PrefixLength, maxDictionaryEditDistance, prefixLength)
	}
	return nil
}
