// Package jobstore is an in-memory, uuid-keyed store of scheduling
// jobs, grounded on qplay's internal/qservice/pstore.go programStore
// (same RWMutex-map-uuid shape), retargeted from storing qprog.Program
// values to storing scheduler requests/results.
package jobstore

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kegliz/qroute/internal/scheduler"
)

// Job is one scheduling request and its outcome, saved once the search
// has finished. Err is set if the request was rejected or the search
// failed outright; Result is nil in that case, and also when the
// search was exhausted without completing the program.
type Job struct {
	ID      string
	Request scheduler.Request
	Result  *scheduler.Result
	Err     error
}

// Store is an in-memory job table.
type Store interface {
	// Save assigns a new ID to job and records it.
	Save(job *Job) string
	// Get returns the job with the given id.
	Get(id string) (*Job, error)
}

type store struct {
	jobs map[string]*Job
	sync.RWMutex
}

// New creates an empty Store.
func New() Store {
	return &store{jobs: make(map[string]*Job)}
}

func (s *store) Save(job *Job) string {
	id := uuid.New().String()
	job.ID = id
	s.Lock()
	s.jobs[id] = job
	s.Unlock()
	return id
}

func (s *store) Get(id string) (*Job, error) {
	s.RLock()
	job, ok := s.jobs[id]
	s.RUnlock()
	if !ok {
		return nil, fmt.Errorf("jobstore: job %s not found", id)
	}
	return job, nil
}
