package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar follows one phase of a run. Total is the number of steps the
// phase will take, and Finished counts the steps the driver has completed so
// far. The driver advances the bar from the engine goroutine while the HTTP
// handlers read it, so reads go through view.
type ProgressBar struct {
	lock sync.Mutex

	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

type progressView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished marks amount more steps of the phase as done.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.Finished += amount
}

func (b *ProgressBar) view() progressView {
	b.lock.Lock()
	defer b.lock.Unlock()

	return progressView{
		ID:        b.ID,
		Name:      b.Name,
		StartTime: b.StartTime,
		Total:     b.Total,
		Finished:  b.Finished,
	}
}
