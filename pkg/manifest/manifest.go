// Package manifest maintains the persistent index of merged batches.
// The manifest is the only mutable state this engine owns: entries are
// upserted by id and the file is rewritten whole, sorted descending by
// createdAt, pretty-printed with a trailing newline.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aerolex/termgate/pkg/config"
	"github.com/aerolex/termgate/pkg/model"
	"github.com/aerolex/termgate/pkg/safeio"
)

// Entry summarizes one merged batch.
type Entry struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
	TermCount  int       `json:"termCount"`
	Categories []string  `json:"categories"`
}

// Manifest is the ordered collection of batch entries.
type Manifest struct {
	Batches []Entry `json:"batches"`
}

// Load reads the manifest at path. A missing file yields an empty
// manifest, not an error; the manifest is created on first merge.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from validated config/flags
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Batches: []Entry{}}, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Batches == nil {
		m.Batches = []Entry{}
	}
	return &m, nil
}

// Upsert replaces the entry with the same id in place, or appends when no
// entry matches, then restores canonical order. Re-running the same merge
// leaves exactly one entry for the batch id.
func (m *Manifest) Upsert(entry Entry) {
	replaced := false
	for i := range m.Batches {
		if m.Batches[i].ID == entry.ID {
			m.Batches[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		m.Batches = append(m.Batches, entry)
	}
	m.sort()
}

// Find returns the entry with the given id, if present.
func (m *Manifest) Find(id string) (Entry, bool) {
	for _, e := range m.Batches {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// sort orders entries descending by createdAt. The sort is stable so
// entries sharing a timestamp keep their relative order.
func (m *Manifest) sort() {
	sort.SliceStable(m.Batches, func(i, j int) bool {
		return m.Batches[i].CreatedAt.After(m.Batches[j].CreatedAt)
	})
}

// Save rewrites the manifest file whole: pretty-printed JSON with a
// trailing newline, preserving existing file permissions.
func (m *Manifest) Save(path string) error {
	m.sort()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest directory: %w", err)
		}
	}
	if err := safeio.WriteFilePreservePerms(path, data); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}

// EntryID derives the manifest entry id from the batch artifact path:
// the file basename without its extension.
func EntryID(batchPath string) string {
	base := filepath.Base(batchPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// batchNameDateRe matches the date embedded in the batch naming
// convention, e.g. "batch-2025-01-15-001".
var batchNameDateRe = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

// NewEntry builds the manifest entry for a validated batch. The createdAt
// source follows configuration: merge time (the historical behavior, which
// keeps membership idempotent but lets re-merges reorder entries) or the
// date embedded in the batch filename when parseable.
func NewEntry(batch *model.Batch, batchPath string, timestampSource string, now time.Time) Entry {
	createdAt := now
	if timestampSource == config.TimestampBatchName {
		if ts, ok := parseBatchNameDate(batchPath); ok {
			createdAt = ts
		}
	}

	cats := batch.CategorySet()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	sort.Strings(names)

	return Entry{
		ID:         EntryID(batchPath),
		Path:       batchPath,
		CreatedAt:  createdAt,
		TermCount:  len(batch.Terms),
		Categories: names,
	}
}

func parseBatchNameDate(batchPath string) (time.Time, bool) {
	matches := batchNameDateRe.FindStringSubmatch(filepath.Base(batchPath))
	if matches == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse("2006-01-02", matches[1]+"-"+matches[2]+"-"+matches[3])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Merge is the full upsert-and-persist operation: load (or create) the
// manifest at manifestPath, upsert the batch's entry, and rewrite the file.
func Merge(batch *model.Batch, batchPath, manifestPath, timestampSource string, now time.Time) (*Manifest, error) {
	m, err := Load(manifestPath)
	if err != nil {
		return nil, err
	}
	m.Upsert(NewEntry(batch, batchPath, timestampSource, now))
	if err := m.Save(manifestPath); err != nil {
		return nil, err
	}
	return m, nil
}
