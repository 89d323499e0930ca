// Package corpus loads the published term corpus that provides context
// for cross-batch checks. The corpus is read-only input; its absence is
// not fatal, but consumers are told the load ran in degraded mode.
package corpus

import (
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/aerolex/termgate/pkg/logger"
	"github.com/aerolex/termgate/pkg/model"
	"github.com/aerolex/termgate/pkg/safeio"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Corpus is the set of previously accepted terms.
type Corpus struct {
	Terms []model.Term

	// Degraded is set when the corpus could not be (fully) loaded and
	// cross-batch checks are running against incomplete context.
	Degraded bool
	// LoadErrors counts corpus files that were skipped as unreadable.
	LoadErrors int

	byID map[string]model.Term
}

// Empty returns a corpus with no terms, marked degraded.
func Empty() *Corpus {
	return &Corpus{Degraded: true, byID: map[string]model.Term{}}
}

// New builds a corpus from an in-memory term set. Later terms shadow
// earlier ones with the same id.
func New(terms []model.Term) *Corpus {
	c := &Corpus{byID: make(map[string]model.Term, len(terms))}
	for _, t := range terms {
		if _, dup := c.byID[t.ID]; !dup {
			c.Terms = append(c.Terms, t)
		}
		c.byID[t.ID] = t
	}
	return c
}

// Load reads all term files under dir matching the doublestar patterns.
// A missing directory degrades to an empty corpus rather than failing;
// unreadable individual files are skipped and counted.
func Load(dir string, patterns []string) (*Corpus, error) {
	if _, err := os.Stat(dir); err != nil {
		logger.Warn("corpus directory unavailable, continuing with empty corpus",
			logger.String("dir", dir), logger.Err(err))
		return Empty(), nil
	}

	var files []string
	fsys := os.DirFS(dir)
	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			logger.Warn("invalid corpus pattern skipped", logger.String("pattern", pat), logger.Err(err))
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	c := &Corpus{byID: make(map[string]model.Term)}
	if len(files) == 0 {
		return c, nil
	}

	type fileTerms struct {
		path  string
		terms []model.Term
	}
	loaded := make([]fileTerms, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	var mu sync.Mutex

	for i, rel := range files {
		g.Go(func() error {
			data, err := safeio.ReadFileContained(dir, dir+"/"+rel)
			if err != nil {
				logger.Warn("skipping unreadable corpus file", logger.String("file", rel), logger.Err(err))
				mu.Lock()
				c.LoadErrors++
				mu.Unlock()
				return nil
			}
			terms, err := model.DecodeTerms(data)
			if err != nil {
				logger.Warn("skipping malformed corpus file", logger.String("file", rel), logger.Err(err))
				mu.Lock()
				c.LoadErrors++
				mu.Unlock()
				return nil
			}
			loaded[i] = fileTerms{path: rel, terms: terms}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in sorted-file order so duplicate ids resolve deterministically
	// (last file read wins).
	for _, ft := range loaded {
		for _, term := range ft.terms {
			if _, dup := c.byID[term.ID]; dup {
				logger.Warn("duplicate term id across corpus files, keeping later definition",
					logger.String("id", term.ID), logger.String("file", ft.path))
			}
			c.byID[term.ID] = term
		}
	}
	// Build the ordered slice from the id map, dropping shadowed duplicates.
	seen := make(map[string]bool, len(c.byID))
	for _, ft := range loaded {
		for _, term := range ft.terms {
			if !seen[term.ID] {
				seen[term.ID] = true
				c.Terms = append(c.Terms, c.byID[term.ID])
			}
		}
	}

	if c.LoadErrors > 0 {
		c.Degraded = true
	}
	return c, nil
}

// Has reports whether the corpus contains a term with the given id.
func (c *Corpus) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of distinct terms in the corpus.
func (c *Corpus) Len() int {
	return len(c.byID)
}

// CategoryCounts returns per-category term counts across the corpus.
func (c *Corpus) CategoryCounts() map[model.Category]int {
	counts := make(map[model.Category]int)
	for _, t := range c.byID {
		counts[t.Category]++
	}
	return counts
}

// HasCategory reports whether any corpus term belongs to the category.
func (c *Corpus) HasCategory(cat model.Category) bool {
	for _, t := range c.byID {
		if t.Category == cat {
			return true
		}
	}
	return false
}
