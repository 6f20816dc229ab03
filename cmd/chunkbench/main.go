// Command chunkbench times set operations over directories of integer lists.
//
//	chunkbench -m intersection -r -encoding chunkset ./census1881
//	chunkbench gen -N 1000 -M 100000 > clustered.txt
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/chunkset"
	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/codec"
	"github.com/hupe1980/chunkset/internal/bench"
	"github.com/hupe1980/chunkset/internal/dataset"
	"github.com/hupe1980/chunkset/resource"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "gen" {
		err = runGen(os.Args[2:])
	} else {
		err = runBench(ctx, os.Args[1:])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBench(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chunkbench", flag.ContinueOnError)
	var (
		mode        = fs.String("m", string(bench.Intersection), "operation to time")
		runOptimize = fs.Bool("r", false, "turn on run optimization")
		copyOnWrite = fs.Bool("c", false, "turn on copy-on-write")
		ext         = fs.String("e", ".txt", "extension of the data files")
		encoding    = fs.String("encoding", "chunkset", "set encoding")
		verbose     = fs.Bool("v", false, "verbose output")
		budget      = fs.Duration("budget", 0, "time to spend repeating the operation (default: 100x build time)")
		metricsAddr = fs.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
		workers     = fs.Int("workers", 0, "parallel file readers (default: GOMAXPROCS)")
		saveDir     = fs.String("save", "", "save every list as a snapshot under this directory and load it back")
		codecName   = fs.String("codec", "none", "snapshot codec: none, lz4 or zstd")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: chunkbench [options] <directory>\n")
		fmt.Fprintf(fs.Output(), "       chunkbench gen -N number -M maxval\n")
		fmt.Fprintf(fs.Output(), "encodings: %v\nmodes: %v\n", bench.EncodingNames(), bench.Modes)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("missing data directory")
	}
	dir := fs.Arg(0)

	m, err := bench.ParseMode(*mode)
	if err != nil {
		return err
	}
	enc, err := bench.EncodingByName(*encoding)
	if err != nil {
		return err
	}
	c, ok := codec.ByName(*codecName)
	if !ok {
		return fmt.Errorf("codec %q: %w", *codecName, codec.ErrInvalidCodec)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := chunkset.NewTextLogger(level)

	var rec *bench.Prometheus
	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		rec = bench.NewPrometheus(reg)
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			logger.Info("prometheus metrics available", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server", "error", err)
			}
		}()
	}

	rc := resource.NewController(resource.Config{MaxWorkers: int64(*workers)})
	lists, err := dataset.LoadDir(ctx, dir, *ext, rc, dataset.WithLogger(logger.Logger))
	if err != nil {
		return fmt.Errorf("load %s: %w", dir, err)
	}

	values := make([][]uint32, len(lists))
	for i, l := range lists {
		values[i] = l.Values
	}
	cfg := bench.Config{RunOptimize: *runOptimize, CopyOnWrite: *copyOnWrite}
	suite := bench.NewSuite(enc, values, cfg)

	logger.Debug("loaded sets",
		"count", suite.Len(),
		"dir", dir,
		"encoding", enc.Name(),
		"size_bytes", suite.SizeInBytes(),
		"shrunk_bytes", suite.Shrunk(),
		"build", suite.BuildTime(),
	)

	if *saveDir != "" {
		opts := []chunkset.Option{chunkset.WithCodec(c), chunkset.WithLogger(logger), chunkset.WithResourceController(rc)}
		if rec != nil {
			opts = append(opts, chunkset.WithMetricsCollector(rec))
		}
		st, err := bench.Snapshot(ctx, blobstore.NewLocalStore(*saveDir), "", lists, cfg, opts...)
		if err != nil {
			return err
		}
		logger.Info("snapshots verified", "sets", st.Sets, "raw_bytes", st.RawBytes, "save", st.Save, "load", st.Load)
	}

	var r bench.Recorder
	if rec != nil {
		rec.ObserveSuite(suite)
		r = rec
	}
	res, err := suite.Run(ctx, m, *budget, r)
	if err != nil {
		return err
	}
	logger.Debug("run finished", "mode", res.Mode, "loops", res.Loops, "elapsed", res.Elapsed, "checksum", res.Checksum)

	fmt.Printf(" %-10s %-20s %12.2f bits/value %14d ns/pass\n",
		enc.Name(), res.Mode, suite.BitsPerValue(), res.PerLoop().Nanoseconds())
	return nil
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	var (
		n       = fs.Uint("N", 0, "number of values")
		limit   = fs.Uint("M", 0, "values are drawn from [0, M)")
		seed    = fs.Int64("seed", time.Now().UnixNano(), "random seed")
		uniform = fs.Bool("uniform", false, "draw uniformly instead of clustered")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *n == 0 {
		return fmt.Errorf("N = %d M = %d: N must be greater than zero", *n, *limit)
	}
	if *n > *limit || *limit > 1<<32-1 {
		return fmt.Errorf("N = %d M = %d: N must be smaller than M and M must fit in 32 bits", *n, *limit)
	}

	rng := rand.New(rand.NewSource(*seed))
	generate := dataset.Clustered
	if *uniform {
		generate = dataset.Uniform
	}
	values, err := generate(rng, uint32(*n), uint32(*limit))
	if err != nil {
		return err
	}

	// bufio errors are sticky; Flush reports the first one.
	w := bufio.NewWriter(os.Stdout)
	var scratch [10]byte
	for i, v := range values {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.Write(strconv.AppendUint(scratch[:0], uint64(v), 10))
	}
	return w.Flush()
}
