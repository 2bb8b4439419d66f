// Package stats counts log lines by severity and by id, the way a UVM report
// summary does.
package stats

import (
	"iter"
	"sort"
	"sync"

	"github.com/Raamakrishnan/ulog/internal/model"
)

// IDCount is the number of lines carrying one id.
type IDCount struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// Summary holds a point-in-time snapshot of the counts.
type Summary struct {
	Total          int64                    `json:"total"`
	SeverityCounts map[model.Severity]int64 `json:"severity_counts"`
	IDCounts       []IDCount                `json:"id_counts"` // sorted by id
}

// Aggregator accumulates counts as lines arrive. It is safe for concurrent use.
type Aggregator struct {
	mu             sync.RWMutex
	total          int64
	severityCounts map[model.Severity]int64
	idCounts       map[string]int64
}

func New() *Aggregator {
	return &Aggregator{
		severityCounts: make(map[model.Severity]int64),
		idCounts:       make(map[string]int64),
	}
}

// Record adds a line to the counts.
func (a *Aggregator) Record(line model.Line) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.severityCounts[line.Severity]++
	a.idCounts[line.ID]++
}

// Snapshot returns the current counts. Every severity is present, with zero
// when no line carried it.
func (a *Aggregator) Snapshot() Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	counts := make(map[model.Severity]int64, len(model.Severities))
	for _, s := range model.Severities {
		counts[s] = a.severityCounts[s]
	}

	ids := make([]IDCount, 0, len(a.idCounts))
	for id, n := range a.idCounts {
		ids = append(ids, IDCount{ID: id, Count: n})
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ID < ids[j].ID })

	return Summary{
		Total:          a.total,
		SeverityCounts: counts,
		IDCounts:       ids,
	}
}

// Summarize counts every line of seq.
func Summarize(seq iter.Seq[model.Line]) Summary {
	a := New()
	for line := range seq {
		a.Record(line)
	}
	return a.Snapshot()
}
