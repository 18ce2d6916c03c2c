package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

// JobStatus represents the state of a transcription job.
type JobStatus string

const (
	StatusQueued      JobStatus = "queued"
	StatusStructuring JobStatus = "structuring"
	StatusSyncing     JobStatus = "syncing"
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"
	StatusPartial     JobStatus = "partial"
)

// Job tracks one recognition result on its way through structuring and
// Logseq sync.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	Page  string `json:"page"`
	Title string `json:"title"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	input  recognition.Result
	result *structure.Document
	errors []string
}

// Progress tracks per-phase outcomes.
type Progress struct {
	Lines     int      `json:"lines"`
	Commands  int      `json:"commands"`
	Unmatched int      `json:"unmatched_words"`
	Created   int      `json:"blocks_created"`
	Updated   int      `json:"blocks_updated"`
	Skipped   int      `json:"blocks_skipped"`
	Errors    []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetInput stores the recognition result to process.
func (j *Job) SetInput(res recognition.Result) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.input = res
}

// Input returns the recognition result to process.
func (j *Job) Input() recognition.Result {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.input
}

// SetResult stores the structured document and its summary counts.
func (j *Job) SetResult(doc *structure.Document) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = doc
	j.Progress.Lines = len(doc.Lines)
	j.Progress.Commands = len(doc.Commands)
	j.Progress.Unmatched = len(doc.Unmatched)
	j.UpdatedAt = time.Now()
}

// Result returns the structured document, nil until structuring finished.
func (j *Job) Result() *structure.Document {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// SetSyncCounts records the outcome of the Logseq sync phase.
func (j *Job) SetSyncCounts(created, updated, skipped int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Created = created
	j.Progress.Updated = updated
	j.Progress.Skipped = skipped
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Page     string    `json:"page"`
	Title    string    `json:"title"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:       j.ID,
		Page:     j.Page,
		Title:    j.Title,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: j.Progress,
	}
	snap.Progress.Errors = errs
	return snap
}

// NewJobID derives a job id from the submission context and time.
func NewJobID(page string, now time.Time) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", page, now.UnixNano())))
	return fmt.Sprintf("%x", h)[:20]
}
