// Package fixtures holds the example briefing entries used to seed demo and
// test databases.
package fixtures

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed example_entries.yaml
var exampleEntries []byte

// DefaultStatus is the workflow status of entries that don't set one.
const DefaultStatus = "submitted"

// ErrEmptyFixture is returned when a fixture holds no entries.
var ErrEmptyFixture = errors.New("fixture has no entries")

// Entry is one example briefing entry.
type Entry struct {
	Category  string `yaml:"category"`
	Priority  string `yaml:"priority"`
	Region    string `yaml:"region"`
	Country   string `yaml:"country"`
	Headline  string `yaml:"headline"`
	Entry     string `yaml:"entry"`
	SourceURL string `yaml:"source_url"`
	PuNote    string `yaml:"pu_note"`
	Author    string `yaml:"author"`
	Status    string `yaml:"status"`
	Approved  bool   `yaml:"approved"`
}

// Fixture is a set of example entries, in insertion order.
type Fixture struct {
	Entries []Entry `yaml:"entries"`
}

// Counts returns the number of approved and pending entries.
func (f Fixture) Counts() (approved, pending int) {
	for _, e := range f.Entries {
		if e.Approved {
			approved++
		} else {
			pending++
		}
	}
	return approved, pending
}

// Load decodes a fixture from r. Unknown keys are rejected.
func Load(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, ErrEmptyFixture
		}
		return f, fmt.Errorf("decode fixture: %w", err)
	}

	if len(f.Entries) == 0 {
		return f, ErrEmptyFixture
	}

	for i := range f.Entries {
		e := &f.Entries[i]
		if e.Headline == "" {
			return f, fmt.Errorf("entry %d: missing headline", i+1)
		}
		if e.Category == "" {
			return f, fmt.Errorf("entry %d: missing category", i+1)
		}
		if e.Status == "" {
			e.Status = DefaultStatus
		}
	}

	return f, nil
}

// LoadFile decodes the fixture at path.
func LoadFile(path string) (Fixture, error) {
	fp, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer fp.Close() // nolint: errcheck
	return Load(fp)
}

// Default returns the embedded example entries.
func Default() Fixture {
	f, err := Load(bytes.NewReader(exampleEntries))
	if err != nil {
		panic(fmt.Sprintf("embedded fixture: %v", err))
	}
	return f
}
