package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raamakrishnan/ulog/internal/model"
)

func TestStreamParsesInOrder(t *testing.T) {
	input := make(chan model.RawLine, 10)
	s := NewReader(nil, Skip, nil).Stream(input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.Start(ctx)

	input <- model.RawLine{Text: "UVM_INFO a.sv(1) @ 0: top [a] first", Source: "sim.log", Number: 1}
	input <- model.RawLine{Text: "garbage", Source: "sim.log", Number: 2}
	input <- model.RawLine{Text: "UVM_ERROR a.sv(2) @ 5ns: top [b] second", Source: "sim.log", Number: 3}
	close(input)

	var got []model.Line
	for line := range s.Lines() {
		got = append(got, line)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, model.Nanosecond, got[1].Unit)
	assert.Equal(t, int64(1), s.Skipped())
	assert.NoError(t, s.Err())
}

func TestStreamFailPolicy(t *testing.T) {
	input := make(chan model.RawLine, 10)
	s := NewReader(nil, Fail, nil).Stream(input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input <- model.RawLine{Text: "UVM_INFO a.sv(1) @ 0: top [a] first", Number: 1}
	input <- model.RawLine{Text: "UVM_INFO a.sv(1) @ 0: top [a", Number: 2}
	input <- model.RawLine{Text: "UVM_INFO a.sv(1) @ 0: top [a] never", Number: 3}

	go s.Start(ctx)

	var got []model.Line
	for line := range s.Lines() {
		got = append(got, line)
	}

	require.Len(t, got, 1)
	var lerr *LineError
	require.ErrorAs(t, s.Err(), &lerr)
	assert.Equal(t, 2, lerr.Number)
}

func TestStreamStopsOnCancel(t *testing.T) {
	input := make(chan model.RawLine)
	s := NewReader(nil, Skip, nil).Stream(input)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not stop after cancel")
	}
}
