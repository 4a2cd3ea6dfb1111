package fleet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/fleetops/verscan/pkg/errors"
	"github.com/fleetops/verscan/pkg/header"
	"github.com/fleetops/verscan/pkg/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimum = "2.9.7653.47581"

type fakeExecutor struct {
	mu   sync.Mutex
	fail map[string]error

	calls []string
}

func (e *fakeExecutor) Execute(_ context.Context, host, minimum string) (*record.Record, error) {
	e.mu.Lock()
	e.calls = append(e.calls, host)
	e.mu.Unlock()

	if err, ok := e.fail[host]; ok {
		return nil, err
	}

	r := record.New(host, minimum)
	r.InstallCheck = record.InstallStateInstalled
	for _, name := range record.SourceNames {
		r.SetSource(name, minimum)
	}
	r.Finalize()
	return r, nil
}

type fakeProber struct {
	down map[string]bool
}

func (p *fakeProber) IsReachable(_ context.Context, host string) bool {
	return !p.down[host]
}

func hosts(n int) []string {
	hs := make([]string, n)
	for i := range hs {
		hs[i] = fmt.Sprintf("host-%d", i)
	}
	return hs
}

func TestCollectAllMalformedMinimum(t *testing.T) {
	c := New(&fakeExecutor{}, &fakeProber{})

	_, err := c.CollectAll(t.Context(), hosts(3), "not.a.version")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestCollectAllHealthyFleet(t *testing.T) {
	hs := hosts(5)
	c := New(&fakeExecutor{}, &fakeProber{})

	records, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, records, len(hs))

	for i, r := range records {
		assert.Equal(t, hs[i], r.Host, "input order must be preserved")
		assert.True(t, r.ValidationPassed)
	}

	s := Summarize(records)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 5, s.Passed)
	assert.Zero(t, s.Failed)
}

func TestCollectAllUnreachableHostIsolated(t *testing.T) {
	hs := hosts(4)
	c := New(&fakeExecutor{}, &fakeProber{down: map[string]bool{"host-2": true}})

	records, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, records, len(hs))

	placeholder := records[2]
	assert.Equal(t, "host-2", placeholder.Host)
	assert.Equal(t, record.InstallStateUnknown, placeholder.InstallCheck)
	assert.False(t, placeholder.ValidationPassed)
	assert.Len(t, placeholder.UnknownSources(), len(record.SourceNames))

	for i, r := range records {
		if i == 2 {
			continue
		}
		assert.True(t, r.ValidationPassed, "host %s affected by host-2 failure", r.Host)
	}
}

func TestCollectAllTransportErrorPlaceholder(t *testing.T) {
	hs := hosts(3)
	exec := &fakeExecutor{fail: map[string]error{
		"host-1": errors.New(errors.ErrCodeTransport, "connection reset"),
	}}
	c := New(exec, &fakeProber{})

	records, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, records, 3, "default behavior synthesizes a placeholder")

	assert.Equal(t, "host-1", records[1].Host)
	assert.Equal(t, record.InstallStateUnknown, records[1].InstallCheck)
	assert.False(t, records[1].ValidationPassed)
}

func TestCollectAllTransportErrorSkip(t *testing.T) {
	hs := hosts(3)
	exec := &fakeExecutor{fail: map[string]error{
		"host-1": errors.New(errors.ErrCodeTransport, "connection reset"),
	}}
	c := New(exec, &fakeProber{}, WithSkipOnTransportError())

	records, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, records, 2, "skip behavior omits the failed host")
	assert.Equal(t, "host-0", records[0].Host)
	assert.Equal(t, "host-2", records[1].Host)
}

func TestCollectAllConcurrentPreservesOrder(t *testing.T) {
	hs := hosts(20)
	c := New(&fakeExecutor{}, &fakeProber{}, WithConcurrency(8))

	records, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, records, len(hs))
	for i, r := range records {
		assert.Equal(t, hs[i], r.Host)
	}
}

func TestCollectAllProgressEvents(t *testing.T) {
	hs := hosts(6)
	var events []ProgressEvent
	c := New(&fakeExecutor{}, &fakeProber{down: map[string]bool{"host-3": true}},
		WithConcurrency(3),
		WithProgress(func(ev ProgressEvent) {
			events = append(events, ev)
		}),
	)

	_, err := c.CollectAll(t.Context(), hs, minimum)
	require.NoError(t, err)
	require.Len(t, events, len(hs))

	completed := make([]int, 0, len(events))
	outcomes := map[Outcome]int{}
	for _, ev := range events {
		completed = append(completed, ev.Completed)
		outcomes[ev.Outcome]++
		assert.Equal(t, len(hs), ev.Total)
	}
	assert.True(t, sort.IntsAreSorted(completed), "completed counts must be monotonic")
	assert.Equal(t, len(hs), completed[len(completed)-1])
	assert.Equal(t, 5, outcomes[OutcomeCollected])
	assert.Equal(t, 1, outcomes[OutcomeUnreachable])

	last := events[len(events)-1]
	assert.InDelta(t, 100.0, last.Percent(), 0.01)
}

func TestCollectAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	exec := &fakeExecutor{}
	c := New(exec, &fakeProber{})

	records, err := c.CollectAll(ctx, hosts(5), minimum)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
	assert.Empty(t, records)
	assert.Empty(t, exec.calls, "no dispatch after cancellation")
}

func TestSummarize(t *testing.T) {
	passed := record.New("a", minimum)
	passed.InstallCheck = record.InstallStateInstalled
	for _, name := range record.SourceNames {
		passed.SetSource(name, minimum)
	}
	passed.Finalize()

	absent := record.New("b", minimum)
	absent.InstallCheck = record.InstallStateNotInstalled
	absent.Finalize()

	unreachable := record.New("c", minimum)
	unreachable.Finalize()

	s := Summarize([]*record.Record{passed, absent, unreachable})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 2, s.Failed)
	assert.Equal(t, 1, s.NotInstalled)
	assert.Equal(t, 1, s.Unknown)
}

func TestNewReport(t *testing.T) {
	records := []*record.Record{record.New("a", minimum)}
	r := NewReport("v0.1.0", minimum, records)

	assert.Equal(t, header.KindAuditReport, r.Kind)
	assert.Equal(t, record.APIVersion, r.APIVersion)
	assert.Equal(t, minimum, r.MinimumVersion)
	assert.NotEmpty(t, r.Metadata["run-id"])
	assert.Equal(t, "v0.1.0", r.Metadata["version"])
	assert.Equal(t, 1, r.Summary.Total)
}
