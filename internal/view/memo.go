package view

import (
	"sync"

	"github.com/midaytech/brainloop/internal/models"
)

// Memo caches the last derivation. The cache is reused only when called
// with the same backing collection and identical options.
type Memo struct {
	first  *models.Problem
	result []models.Problem
	opts   Options
	n      int
	valid  bool
	mu     sync.Mutex
}

func (m *Memo) Apply(problems []models.Problem, opts Options) []models.Problem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first *models.Problem
	if len(problems) > 0 {
		first = &problems[0]
	}

	if m.valid && m.first == first && m.n == len(problems) && m.sameOptions(opts) {
		return m.result
	}

	m.result = Apply(problems, opts)
	m.first = first
	m.n = len(problems)
	m.opts = opts
	m.valid = true

	return m.result
}

func (m *Memo) sameOptions(opts Options) bool {
	return m.opts.Search == opts.Search &&
		m.opts.Status == opts.Status &&
		m.opts.Difficulty == opts.Difficulty &&
		m.opts.SortKey == opts.SortKey &&
		m.opts.Direction == opts.Direction &&
		m.opts.OnlyDue == opts.OnlyDue &&
		m.opts.Today.Equal(opts.Today)
}

// Reset drops the cached result.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.valid = false
	m.result = nil
}
