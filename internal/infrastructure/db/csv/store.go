// Package csv implements the record store on plain CSV files, one file per
// collection: projects, reward_tiers, users, pledges.
//
// Each collection is guarded by its own mutex held for the duration of one
// read-all/write-all cycle, so two mutations of the same collection never
// interleave destructively. The lock does not span multiple collections;
// cross-collection consistency is the pledge ledger's job.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

const (
	projectsFile = "projects.csv"
	tiersFile    = "reward_tiers.csv"
	usersFile    = "users.csv"
	pledgesFile  = "pledges.csv"

	dateLayout = "2006-01-02"
)

// Store owns the four collection files under one data directory.
type Store struct {
	dir      string
	projects collection
	tiers    collection
	users    collection
	pledges  collection
}

// Open validates that every collection file exists and returns the store.
// A missing file is an initialization error, not a per-call condition.
func Open(dir string) (*Store, error) {
	s := &Store{
		dir:      dir,
		projects: collection{path: filepath.Join(dir, projectsFile), header: projectColumns},
		tiers:    collection{path: filepath.Join(dir, tiersFile), header: tierColumns},
		users:    collection{path: filepath.Join(dir, usersFile), header: userColumns},
		pledges:  collection{path: filepath.Join(dir, pledgesFile), header: pledgeColumns},
	}
	for _, c := range []*collection{&s.projects, &s.tiers, &s.users, &s.pledges} {
		if _, err := os.Stat(c.path); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	}
	return s, nil
}

// Dir returns the data directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

// Bootstrap creates or replaces the collection files under dir with the
// given records plus an empty pledge ledger. Used by the seed tool; entity
// validation is the caller's responsibility.
func Bootstrap(dir string, projects []domain.Project, tiers []domain.RewardTier, users []domain.User) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("bootstrap store: %w", err)
	}

	projectRows := make([][]string, 0, len(projects))
	for i := range projects {
		projectRows = append(projectRows, encodeProject(&projects[i]))
	}
	tierRows := make([][]string, 0, len(tiers))
	for i := range tiers {
		tierRows = append(tierRows, encodeTier(&tiers[i]))
	}
	userRows := make([][]string, 0, len(users))
	for i := range users {
		userRows = append(userRows, encodeUser(&users[i]))
	}

	files := []struct {
		c    collection
		rows [][]string
	}{
		{collection{path: filepath.Join(dir, projectsFile), header: projectColumns}, projectRows},
		{collection{path: filepath.Join(dir, tiersFile), header: tierColumns}, tierRows},
		{collection{path: filepath.Join(dir, usersFile), header: userColumns}, userRows},
		{collection{path: filepath.Join(dir, pledgesFile), header: pledgeColumns}, nil},
	}
	for i := range files {
		f := &files[i]
		if err := f.c.write(f.rows); err != nil {
			return fmt.Errorf("bootstrap store: %w", err)
		}
	}
	return nil
}

// collection is one CSV file plus the mutex linearizing access to it.
type collection struct {
	mu     sync.Mutex
	path   string
	header []string
}

// rows returns every data row in file order.
func (c *collection) rows() ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// read loads all rows without the header. Caller holds c.mu.
func (c *collection) read() ([][]string, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(c.path), err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// mutate runs one read-modify-rewrite cycle under the collection lock. fn
// returns the new rows and whether anything changed; an unchanged
// collection is not rewritten.
func (c *collection) mutate(fn func(rows [][]string) ([][]string, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.read()
	if err != nil {
		return err
	}
	rows, changed := fn(rows)
	if !changed {
		return nil
	}
	return c.write(rows)
}

// write rewrites the whole file: header first, then rows. Caller holds c.mu
// (or exclusively owns the collection, as Bootstrap does).
func (c *collection) write(rows [][]string) error {
	f, err := os.Create(c.path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(c.header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(c.path), err)
	}
	return f.Close()
}
