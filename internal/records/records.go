// Package records keeps the best escape times across sessions in a small
// YAML file.
package records

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Maze-Escape/internal/game"
)

// DefaultKeep is how many times the board holds.
const DefaultKeep = 5

// Record is one escape on the board.
type Record struct {
	Seconds float64   `yaml:"seconds"`
	Seed    int64     `yaml:"seed"`
	Session string    `yaml:"session"`
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
	When    time.Time `yaml:"when"`
}

type fileFormat struct {
	Best []Record `yaml:"best"`
}

// Store is a fastest-first board of escape times. It is owned by the
// frontend; the simulation never sees it.
type Store struct {
	path string // empty keeps the board in memory only
	keep int
	best []Record
}

// Open loads the board at path, or starts an empty one if the file does not
// exist yet.
func Open(path string, keep int) (*Store, error) {
	if keep < 1 {
		keep = DefaultKeep
	}
	s := &Store{path: path, keep: keep}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open records: %w", err)
	}
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parse records %s: %w", path, err)
	}
	s.best = ff.Best
	s.sortAndTrim()
	return s, nil
}

// Best returns a copy of the board, fastest first.
func (s *Store) Best() []Record {
	return append([]Record(nil), s.best...)
}

// Submit offers a finished session. Only escapes qualify. It returns the
// 1-based rank the run took, or 0 if it did not make the board.
func (s *Store) Submit(sum game.SessionSummary, when time.Time) int {
	if sum.Outcome != game.OutcomeEscaped {
		return 0
	}
	rec := Record{
		Seconds: sum.Elapsed,
		Seed:    sum.Seed,
		Session: sum.ID,
		Width:   sum.Width,
		Height:  sum.Height,
		When:    when.UTC(),
	}
	s.best = append(s.best, rec)
	s.sortAndTrim()
	for i, r := range s.best {
		if r.Session == rec.Session && r.Seconds == rec.Seconds {
			return i + 1
		}
	}
	return 0
}

// Save writes the board, replacing the file atomically.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(fileFormat{Best: s.best})
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".records-*.yaml")
	if err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save records: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

func (s *Store) sortAndTrim() {
	sort.SliceStable(s.best, func(i, j int) bool { return s.best[i].Seconds < s.best[j].Seconds })
	if len(s.best) > s.keep {
		s.best = s.best[:s.keep]
	}
}
