package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"
	"unsafe"

	"github.com/hupe1980/indirectvec"
	"github.com/hupe1980/indirectvec/testutil"
	"golang.org/x/sync/errgroup"
)

const recordBytes = int(unsafe.Sizeof(testutil.Record{}))

// Trial is the outcome of sorting one data set both ways.
type Trial struct {
	Seed          int64   `json:"seed"`
	IndirectMs    float64 `json:"indirect_ms"`
	ContiguousMs  float64 `json:"contiguous_ms"`
	Speedup       float64 `json:"speedup"`
	AddressStable bool    `json:"address_stable"`
}

// Report aggregates all trials.
type Report struct {
	Count         int     `json:"count"`
	RecordBytes   int     `json:"record_bytes"`
	Stable        bool    `json:"stable"`
	Trials        []Trial `json:"trials"`
	MeanSpeedup   float64 `json:"mean_speedup"`
	Creates       int64   `json:"creates"`
	Destroys      int64   `json:"destroys"`
	SortedObjects int64   `json:"sorted_objects"`
}

func (c Config) validate() error {
	switch {
	case c.Count <= 0:
		return errors.New("count must be positive")
	case c.Keys <= 0:
		return errors.New("keys must be positive")
	case c.Trials <= 0:
		return errors.New("trials must be positive")
	case c.Workers <= 0:
		return errors.New("workers must be positive")
	case c.Skew < 0:
		return errors.New("skew must not be negative")
	}
	return nil
}

// Run executes c.Trials trials, at most c.Workers at a time.
func Run(ctx context.Context, c Config, logger *slog.Logger) (*Report, error) {
	metrics := &indirectvec.BasicMetricsCollector{}
	vlog := indirectvec.NewLogger(logger.Handler())

	trials := make([]Trial, c.Trials)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i := range trials {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := c.Seed + int64(i)
			t, err := runTrial(c, seed,
				indirectvec.WithMetricsCollector(metrics),
				indirectvec.WithLogger(vlog.WithName(fmt.Sprintf("trial-%d", i))),
			)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			logger.Info("trial done", "trial", i, "indirect_ms", t.IndirectMs, "contiguous_ms", t.ContiguousMs)
			trials[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{
		Count:       c.Count,
		RecordBytes: recordBytes,
		Stable:      c.Stable,
		Trials:      trials,
	}
	for _, t := range trials {
		r.MeanSpeedup += t.Speedup
	}
	r.MeanSpeedup /= float64(len(trials))

	stats := metrics.GetStats()
	r.Creates = stats.Creates
	r.Destroys = stats.Destroys
	r.SortedObjects = stats.SortedElements
	return r, nil
}

func runTrial(c Config, seed int64, opts ...indirectvec.Option) (Trial, error) {
	rng := testutil.NewRNG(seed)
	var recs []testutil.Record
	if c.Skew > 0 {
		recs = rng.SkewedRecords(c.Count, c.Keys, float64(c.Skew)/100)
	} else {
		recs = rng.Records(c.Count, c.Keys)
	}

	v, err := indirectvec.NewFromSlice(c.Count, recs, opts...)
	if err != nil {
		return Trial{}, err
	}
	defer v.Close()

	addrs := make(map[*testutil.Record]int, v.Len())
	for r := range v.Values() {
		addrs[r] = r.Seq
	}

	start := time.Now()
	if c.Stable {
		v.StableSortFunc(testutil.ByKey)
	} else {
		v.SortFunc(testutil.ByKey)
	}
	indirect := time.Since(start)

	if !v.IsSortedFunc(testutil.ByKey) {
		return Trial{}, errors.New("indirect vector not sorted")
	}
	if err := v.Check(); err != nil {
		return Trial{}, err
	}

	stable := true
	for r := range v.Values() {
		if seq, ok := addrs[r]; !ok || seq != r.Seq {
			stable = false
			break
		}
	}

	cmpKey := func(a, b testutil.Record) int { return a.Key - b.Key }
	start = time.Now()
	if c.Stable {
		slices.SortStableFunc(recs, cmpKey)
	} else {
		slices.SortFunc(recs, cmpKey)
	}
	contiguous := time.Since(start)

	t := Trial{
		Seed:          seed,
		IndirectMs:    millis(indirect),
		ContiguousMs:  millis(contiguous),
		AddressStable: stable,
	}
	if indirect > 0 {
		t.Speedup = float64(contiguous) / float64(indirect)
	}
	return t, nil
}

// WriteText prints a human-readable summary.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "records: %d x %d bytes, stable: %v\n", r.Count, r.RecordBytes, r.Stable)
	for i, t := range r.Trials {
		fmt.Fprintf(w, "trial %d (seed %d): indirect %.2fms contiguous %.2fms speedup %.2fx address-stable %v\n",
			i, t.Seed, t.IndirectMs, t.ContiguousMs, t.Speedup, t.AddressStable)
	}
	fmt.Fprintf(w, "mean speedup: %.2fx\n", r.MeanSpeedup)
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
