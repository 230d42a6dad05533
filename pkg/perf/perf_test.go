package perf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderSummary(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		samples []time.Duration
		want    Summary
	}{
		{
			name: "empty",
			size: 4,
			want: Summary{Name: "empty"},
		},
		{
			name:    "single sample",
			size:    4,
			samples: []time.Duration{2 * time.Millisecond},
			want:    Summary{Name: "single sample", Samples: 1, Mean: 2, P95: 2, Max: 2},
		},
		{
			name:    "rolling window keeps the latest",
			size:    3,
			samples: []time.Duration{100 * time.Millisecond, 1 * time.Millisecond, 2 * time.Millisecond, 3 * time.Millisecond},
			want:    Summary{Name: "rolling window keeps the latest", Samples: 3, Mean: 2, StdDev: 1, P95: 3, Max: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(tt.size)
			for _, d := range tt.samples {
				r.Record(tt.name, d)
			}
			got := r.Summary(tt.name)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.Equal(t, tt.want.Samples, got.Samples)
			assert.InDelta(t, tt.want.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.want.StdDev, got.StdDev, 1e-9)
			assert.InDelta(t, tt.want.P95, got.P95, 1e-9)
			assert.InDelta(t, tt.want.Max, got.Max, 1e-9)
		})
	}
}

func TestRecorderTimeAndNames(t *testing.T) {
	r := NewRecorder(0)
	r.Time(Update, func() { time.Sleep(time.Millisecond) })
	r.Record(Draw, time.Millisecond)

	assert.Equal(t, []string{Draw, Update}, r.Names())
	assert.GreaterOrEqual(t, r.Summary(Update).Mean, 1.0)
}

func TestReporterCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "perf")
	r := NewRecorder(8)
	r.Record(Update, 4*time.Millisecond)
	r.Record(Draw, 8*time.Millisecond)

	reporter, err := NewReporter(NewReporterOptions{Recorder: r, CSVDir: dir})
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, reporter.Report(now))
	require.NoError(t, reporter.Report(now.Add(time.Second)))
	require.NoError(t, reporter.Close())
	require.NoError(t, reporter.Close())

	b, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 5, "one header and two rows per report")
	assert.Equal(t, "time,name,samples,mean_ms,stddev_ms,p95_ms,max_ms", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-05-01T12:00:00Z,draw,1,8"), lines[1])
	assert.Equal(t, 1, strings.Count(string(b), "time,name"))
}

func TestReporterWithoutCSV(t *testing.T) {
	r := NewRecorder(8)
	r.Record(Frame, time.Millisecond)
	reporter, err := NewReporter(NewReporterOptions{Recorder: r})
	require.NoError(t, err)
	assert.NoError(t, reporter.Report(time.Now()))
	assert.NoError(t, reporter.Close())
}
