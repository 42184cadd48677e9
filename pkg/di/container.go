// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/sarmeta/pkg/codec"
	"github.com/ssargent/sarmeta/pkg/config"
	"github.com/ssargent/sarmeta/pkg/endian"
	"github.com/ssargent/sarmeta/pkg/leader"
	"github.com/ssargent/sarmeta/pkg/logger"
	"github.com/ssargent/sarmeta/pkg/metrics"
	"github.com/ssargent/sarmeta/pkg/storage"
)

// ArchiveOpener opens the keyword-list archive.
type ArchiveOpener func() (*storage.Archive, error)

// Container holds all the dependencies for the application
type Container struct {
	config        *config.Config
	logger        logger.ILogger
	metrics       *metrics.Metrics
	codec         *codec.RecordCodec
	order         endian.Order
	archiveOpener ArchiveOpener
}

// NewContainer validates cfg and builds the shared services from it.
func NewContainer(cfg *config.Config, log logger.ILogger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		level, _ := cfg.LogLevel()
		log = logger.NewStdErrLogger(level)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewMetrics()
	}

	order, _ := cfg.ByteOrder()

	c := &Container{
		config:  cfg,
		logger:  log,
		metrics: m,
		order:   order,
		codec: codec.NewRecordCodec(
			codec.WithLogger(log),
			codec.WithMetrics(m),
			codec.WithStrictText(cfg.Codec.StrictText),
			codec.WithMaxTableEntries(cfg.Codec.MaxTableEntries),
		),
	}
	c.archiveOpener = func() (*storage.Archive, error) {
		return storage.Open(cfg.DataDir, storage.WithLogger(log), storage.WithMetrics(m))
	}
	return c, nil
}

// Config returns the configuration the container was built from
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the shared logger
func (c *Container) Logger() logger.ILogger {
	return c.logger
}

// Metrics returns the shared metrics, nil when disabled
func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// Codec returns the configured record codec
func (c *Container) Codec() *codec.RecordCodec {
	return c.codec
}

// ByteOrder returns the configured default byte order
func (c *Container) ByteOrder() endian.Order {
	return c.order
}

// OpenArchive opens the keyword-list archive under the data directory
func (c *Container) OpenArchive() (*storage.Archive, error) {
	return c.archiveOpener()
}

// SetArchiveOpener allows overriding the archive opener (for testing)
func (c *Container) SetArchiveOpener(opener ArchiveOpener) {
	c.archiveOpener = opener
}

// Leader returns a closed handle on the leader file at path
func (c *Container) Leader(path string, writable bool) *leader.File {
	return leader.New(leader.Config{
		FilePath: path,
		Writable: writable,
		Logger:   c.logger,
	}, c.codec)
}
