package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2esource/internal/checkpoint"
	"e2esource/internal/protocol"
	"e2esource/internal/telemetry"
	"e2esource/sink"
	"e2esource/sink/stdout"
	"e2esource/source/e2etest"
)

type captureSink struct {
	pushed []protocol.Message
	failOn int
	closed bool
}

func (c *captureSink) Configure(any) error { return nil }
func (c *captureSink) Push(m protocol.Message) error {
	if c.failOn > 0 && len(c.pushed)+1 == c.failOn {
		return errors.New("sink unavailable")
	}
	c.pushed = append(c.pushed, m)
	return nil
}
func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

var _ sink.Adapter = (*captureSink)(nil)

func newSource(t *testing.T, n int64) e2etest.Adapter {
	t.Helper()
	src, err := e2etest.NewAdapter(e2etest.DriverExceptionAfterN)
	require.NoError(t, err)
	require.NoError(t, src.Configure(e2etest.Config{ThrowAfterNRecords: n}))
	src.(*e2etest.ExceptionAfterNDriver).SetClock(func() time.Time { return time.UnixMilli(1) })
	return src
}

func values(msgs []protocol.Message) (states, records []int64) {
	for _, m := range msgs {
		switch m.Type {
		case protocol.TypeState:
			states = append(states, m.State.Data.Column1)
		case protocol.TypeRecord:
			records = append(records, m.Record.Data.Column1)
		}
	}
	return states, records
}

func TestRunner_PersistsLastStateAndResumes(t *testing.T) {
	store := checkpoint.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())

	// first run: fresh, fails after 7 records
	cs := &captureSink{}
	r := NewRunner()
	r.SetSource(newSource(t, 7))
	r.SetStore(store)
	r.SetMetrics(metrics)
	r.AddSink(cs)

	err := r.Run(context.Background())
	require.ErrorIs(t, err, e2etest.ErrScheduledFailure)
	states, records := values(cs.pushed)
	assert.Equal(t, []int64{0, 5}, states)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, records)

	cp, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, &protocol.ColumnData{Column1: 5}, cp)

	// second run resumes the value sequence from the checkpoint, with a fresh
	// threshold window
	cs2 := &captureSink{}
	r2 := NewRunner()
	r2.SetSource(newSource(t, 7))
	r2.SetStore(store)
	r2.SetMetrics(metrics)
	r2.AddSink(cs2)

	err = r2.Run(context.Background())
	require.ErrorIs(t, err, e2etest.ErrScheduledFailure)
	states, records = values(cs2.pushed)
	assert.Equal(t, []int64{5, 10}, states)
	assert.Equal(t, []int64{6, 7, 8, 9, 10, 11, 12}, records)

	cp, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, &protocol.ColumnData{Column1: 10}, cp)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Failures))
	assert.Equal(t, 14.0, testutil.ToFloat64(metrics.Messages.WithLabelValues("RECORD")))
	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.Checkpoint))

	require.NoError(t, r.Close())
	assert.True(t, cs.closed)
}

func TestRunner_SinkFailureSkipsCheckpoint(t *testing.T) {
	store := checkpoint.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	cs := &captureSink{failOn: 1}
	r := NewRunner()
	r.SetSource(newSource(t, 3))
	r.SetStore(store)
	r.AddSink(cs)

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, e2etest.ErrScheduledFailure)

	cp, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, cp, "a state no sink accepted must not be persisted")
}

func TestRunner_RunFromExplicitCheckpoint(t *testing.T) {
	var buf bytes.Buffer
	out, err := sink.NewAdapter("stdout")
	require.NoError(t, err)
	require.NoError(t, out.Configure(stdout.Config{Writer: &buf}))

	r := NewRunner()
	r.SetSource(newSource(t, 0))
	r.AddSink(out)

	err = r.RunFrom(context.Background(), &protocol.ColumnData{Column1: 5})
	require.ErrorIs(t, err, e2etest.ErrScheduledFailure)
	assert.Equal(t, `{"type":"STATE","state":{"data":{"column1":5}}}`+"\n", buf.String())
}

func TestRunner_NoSource(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background()))
}

func TestCompile_BuildsRunnerFromPipelineFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("source.json", `{"throw_after_n_records": 2}`)
	write("state.json", `{"column1": 40}`)
	write("pipeline.yml", `schema_version: v1
source: { kind: e2e_test, driver: exception_after_n, config: source.json }
state: { path: state.json }
sinks: [stdout]
`)

	r, err := Compile(filepath.Join(dir, "pipeline.yml"))
	require.NoError(t, err)
	cs := &captureSink{}
	r.AddSink(cs)

	err = r.Run(context.Background())
	require.ErrorIs(t, err, e2etest.ErrScheduledFailure)
	states, records := values(cs.pushed)
	assert.Equal(t, []int64{40}, states)
	assert.Equal(t, []int64{41, 42}, records)
}

func TestCompile_Rejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"kind":   "source: { kind: kafka, config: source.json }\nsinks: [stdout]\n",
		"driver": "source: { kind: e2e_test, driver: infinite_feed, config: source.json }\nsinks: [stdout]\n",
		"sink":   "source: { kind: e2e_test, config: source.json }\nsinks: [s3]\n",
		"none":   "source: { kind: e2e_test, config: source.json }\n",
		"config": "source: { kind: e2e_test, config: missing.json }\nsinks: [stdout]\n",
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "source.json"), []byte(`{"throw_after_n_records": 1}`), 0o644))
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Compile(path)
			assert.Error(t, err)
		})
	}
}
