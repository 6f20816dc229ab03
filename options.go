package chunkset

import (
	"log/slog"

	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/codec"
	"github.com/hupe1980/chunkset/resource"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	rc               *resource.Controller
	catalog          blobstore.Catalog
	copyOnWrite      bool
}

// Option configures snapshot and union behavior.
type Option func(*options)

// WithCodec configures the codec used to compress saved snapshots.
// Load detects the codec from the frame and ignores this option.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &chunkset.BasicMetricsCollector{}
//	_ = chunkset.Save(ctx, store, "a", bm, chunkset.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Saves: %d, Bytes: %d\n", stats.SaveCount, stats.SaveBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := chunkset.NewJSONLogger(slog.LevelInfo)
//	_ = chunkset.Save(ctx, store, "a", bm, chunkset.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController paces snapshot IO and bounds decode memory with rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithCatalog records saved snapshots in c. Load verifies the cardinality of
// a snapshot against its catalog entry when one exists.
func WithCatalog(c blobstore.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithCopyOnWrite enables copy-on-write on sets returned by Load.
func WithCopyOnWrite(enabled bool) Option {
	return func(o *options) {
		o.copyOnWrite = enabled
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
