package sharing

import (
	"sort"
	"sync"
)

// Stats accumulates the outcome of a reconciliation run. Increments are
// lock-guarded so albums can be reconciled concurrently; read the fields
// only after Run returns.
type Stats struct {
	mu sync.Mutex

	AlbumsProcessed   int
	SharesSucceeded   int
	SharesFailed      int
	RemovalsSucceeded int
	RemovalsFailed    int

	unresolved map[string]struct{}
}

func newStats() *Stats {
	return &Stats{unresolved: make(map[string]struct{})}
}

func (s *Stats) countAlbum() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AlbumsProcessed++
}

func (s *Stats) countShare(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.SharesSucceeded++
	} else {
		s.SharesFailed++
	}
}

func (s *Stats) countRemoval(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.RemovalsSucceeded++
	} else {
		s.RemovalsFailed++
	}
}

func (s *Stats) addUnresolved(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unresolved[email] = struct{}{}
}

// Unresolved returns the sorted set of emails that could not be resolved
// against the user directory.
func (s *Stats) Unresolved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails := make([]string, 0, len(s.unresolved))
	for email := range s.unresolved {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}
