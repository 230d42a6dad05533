package perf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/gocarina/gocsv"
)

// Row is one line of perf.csv.
type Row struct {
	Time     string  `csv:"time"`
	Name     string  `csv:"name"`
	Samples  int     `csv:"samples"`
	MeanMS   float64 `csv:"mean_ms"`
	StdDevMS float64 `csv:"stddev_ms"`
	P95MS    float64 `csv:"p95_ms"`
	MaxMS    float64 `csv:"max_ms"`
}

// Reporter logs the recorder's summaries on an interval and optionally
// writes them to perf.csv in a directory.
type Reporter struct {
	recorder      *Recorder
	interval      time.Duration
	mu            sync.Mutex
	file          *os.File
	headerWritten bool
}

type NewReporterOptions struct {
	Recorder *Recorder
	Interval time.Duration
	// CSVDir enables CSV output when set
	CSVDir string
}

func NewReporter(opts NewReporterOptions) (*Reporter, error) {
	r := &Reporter{
		recorder: opts.Recorder,
		interval: opts.Interval,
	}
	if opts.CSVDir == "" {
		return r, nil
	}

	if err := os.MkdirAll(opts.CSVDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create perf directory: %v", err)
	}
	f, err := os.Create(filepath.Join(opts.CSVDir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create perf.csv: %v", err)
	}
	r.file = f
	return r, nil
}

// Start reports every interval until ctx is cancelled.
func (r *Reporter) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if err := r.Report(t); err != nil {
				log.Error("Failed to write perf report: %v", err)
			}
		}
	}
}

// Report logs and writes the current summaries.
func (r *Reporter) Report(now time.Time) error {
	rows := []Row{}
	for _, name := range r.recorder.Names() {
		s := r.recorder.Summary(name)
		if s.Samples == 0 {
			continue
		}
		log.Info("perf %s: mean %.2fms stddev %.2fms p95 %.2fms max %.2fms (%d samples)",
			s.Name, s.Mean, s.StdDev, s.P95, s.Max, s.Samples)
		rows = append(rows, Row{
			Time:     now.UTC().Format(time.RFC3339),
			Name:     s.Name,
			Samples:  s.Samples,
			MeanMS:   s.Mean,
			StdDevMS: s.StdDev,
			P95MS:    s.P95,
			MaxMS:    s.Max,
		})
	}
	return r.write(rows)
}

func (r *Reporter) write(rows []Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil || len(rows) == 0 {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.file); err != nil {
			return fmt.Errorf("failed to write perf rows: %v", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, r.file); err != nil {
		return fmt.Errorf("failed to write perf rows: %v", err)
	}
	return nil
}

func (r *Reporter) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
