// Command bloomdemo builds a Bloom filter, populates it with a synthetic
// corpus, serializes it to disk, and measures the empirical false-positive
// rate against a known-absent corpus.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wjleon/bloom-filter-project/bloom"
	"github.com/wjleon/bloom-filter-project/bloomtesting"
)

func main() {
	entries := flag.Int("entries", 10_000_000, "expected number of distinct elements")
	fpRate := flag.Float64("fp-rate", 0.01, "target false positive probability")
	out := flag.String("out", "bloomfilter.bin", "serialized filter output path")
	checks := flag.Int("checks", 1_000_000, "number of known-absent membership checks")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "bloomdemo: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log.Sugar(), *entries, *fpRate, *out, *checks); err != nil {
		log.Sugar().Errorf("bloomdemo failed: %v", err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger, entries int, fpRate float64, out string, checks int) error {
	f, err := bloom.New(entries, fpRate)
	if err != nil {
		return err
	}
	log.Infow("filter created", "entries", entries, "fpRate", fpRate, "m", f.M(), "k", f.K())

	for key := range bloomtesting.SequenceKeys("element", 1, entries) {
		f.Insert(key)
	}
	log.Infow("filter populated", "inserted", f.InsertedCount(), "fillRatio", f.FillRatio())

	// A failed save is reported but does not end the run; the in-memory
	// filter remains valid and the measurement below still stands.
	if err := saveFilter(out, f); err != nil {
		log.Errorw("serialization failed, continuing with in-memory filter", "path", out, "err", err)
	} else {
		log.Infow("filter serialized", "path", out, "bytes", bloom.EncodedBytesV1(f.M()))
	}

	// Spot checks from the original corpus boundaries.
	for _, key := range []string{"element1", "element2"} {
		if !f.MightContain([]byte(key)) {
			return fmt.Errorf("inserted key %q reported absent", key)
		}
		log.Infow("membership check", "key", key, "mightContain", true)
	}
	log.Infow("membership check", "key", "element0", "mightContain", f.MightContain([]byte("element0")))

	// Keys prefixed with the largest inserted name cannot collide with any
	// inserted elementN name.
	absentPrefix := fmt.Sprintf("element%d", entries)
	r := bloomtesting.Measure(f, bloomtesting.SequenceKeys(absentPrefix, 0, checks), 0)
	for _, sample := range r.Samples {
		log.Infow("false positive", "key", string(sample))
	}
	log.Infow("measurement complete",
		"falsePositives", r.FalsePositives,
		"checks", r.Checks,
		"empiricalRate", r.Rate,
		"estimatedRate", f.EstimatedFalsePositiveRate(),
	)
	return nil
}

func saveFilter(path string, f *bloom.Filter) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return bloom.WriteV1(file, f)
}
