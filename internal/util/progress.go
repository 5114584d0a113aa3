package util

import (
	"fmt"
	"sync"
)

// ExtractionProgress tracks how many oracle batches of an analysis request
// have completed or failed. It is safe for concurrent use by the batch
// workers of a single request.
type ExtractionProgress struct {
	mu        sync.Mutex
	total     int
	completed int
	failed    int
}

// NewExtractionProgress creates a tracker for the given number of batches.
func NewExtractionProgress(total int) *ExtractionProgress {
	if total < 0 {
		total = 0
	}
	return &ExtractionProgress{total: total}
}

// MarkCompleted records one successfully extracted batch and returns the
// updated progress snapshot.
func (p *ExtractionProgress) MarkCompleted() (done int, percentage int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed++
	return p.completed + p.failed, p.percentageLocked()
}

// MarkFailed records one failed batch and returns the updated progress
// snapshot. Failed batches still count toward completion so the
// percentage reaches 100 even when some batches are dropped.
func (p *ExtractionProgress) MarkFailed() (done int, percentage int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
	return p.completed + p.failed, p.percentageLocked()
}

// Failed returns the number of batches recorded as failed.
func (p *ExtractionProgress) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// Step renders the progress as a "done/total" fraction.
func (p *ExtractionProgress) Step() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("%d/%d", p.completed+p.failed, p.total)
}

func (p *ExtractionProgress) percentageLocked() int {
	if p.total <= 0 {
		return 0
	}
	done := p.completed + p.failed
	if done > p.total {
		done = p.total
	}
	return int(int64(done) * 100 / int64(p.total))
}
