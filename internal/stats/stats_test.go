package stats

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raamakrishnan/ulog/internal/filter"
	"github.com/Raamakrishnan/ulog/internal/model"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	log := model.NewLog()
	log.Append(model.Line{Severity: model.Info, ID: "CFG"})
	log.Append(model.Line{Severity: model.Info, ID: "RNTST"})
	log.Append(model.Line{Severity: model.Error, ID: "id1"})
	log.Append(model.Line{Severity: model.Info, ID: "CFG"})

	s := Summarize(log.All())

	assert.Equal(t, int64(4), s.Total)
	assert.Equal(t, map[model.Severity]int64{
		model.Info:    3,
		model.Warning: 0,
		model.Error:   1,
		model.Fatal:   0,
	}, s.SeverityCounts)
	assert.Equal(t, []IDCount{{"CFG", 2}, {"RNTST", 1}, {"id1", 1}}, s.IDCounts)
}

func TestSummarizeMatchesFilter(t *testing.T) {
	t.Parallel()

	log := model.NewLog()
	for i := 0; i < 10; i++ {
		log.Append(model.Line{Severity: model.Severities[i%4], ID: "x"})
	}

	f, err := filter.New(filter.WithSeverities(model.Error, model.Fatal))
	require.NoError(t, err)

	s := Summarize(filter.Apply(log, f))
	assert.Equal(t, int64(4), s.Total)
	assert.Zero(t, s.SeverityCounts[model.Info])
	assert.Equal(t, int64(2), s.SeverityCounts[model.Error])
}

func TestAggregatorConcurrentRecord(t *testing.T) {
	t.Parallel()

	a := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.Record(model.Line{Severity: model.Warning, ID: "w"})
			}
		}()
	}
	wg.Wait()

	s := a.Snapshot()
	assert.Equal(t, int64(800), s.Total)
	assert.Equal(t, int64(800), s.SeverityCounts[model.Warning])
}

func TestSummaryJSON(t *testing.T) {
	t.Parallel()

	a := New()
	a.Record(model.Line{Severity: model.Fatal, ID: "id1"})

	data, err := json.Marshal(a.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"total": 1,
		"severity_counts": {"UVM_INFO": 0, "UVM_WARNING": 0, "UVM_ERROR": 0, "UVM_FATAL": 1},
		"id_counts": [{"id": "id1", "count": 1}]
	}`, string(data))
}
