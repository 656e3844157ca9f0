package media

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/nainya/osinfodb/internal/location"
	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/internal/metrics"
	"github.com/nainya/osinfodb/pkg/iso9660"
)

type probeOptions struct {
	fs      afero.Fs
	log     *logger.Logger
	metrics *metrics.Metrics
}

// Option configures CreateFromLocation
type Option func(*probeOptions)

// WithFs reads locations from fs instead of the host filesystem
func WithFs(fs afero.Fs) Option {
	return func(o *probeOptions) { o.fs = fs }
}

// WithLogger sets the probe logger
func WithLogger(l *logger.Logger) Option {
	return func(o *probeOptions) { o.log = l }
}

// WithMetrics records probe outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *probeOptions) { o.metrics = m }
}

// CreateFromLocation reads the volume descriptors of the image at loc and
// returns an unidentified Media carrying them. The media id is loc.
func CreateFromLocation(ctx context.Context, loc string, opts ...Option) (*Media, error) {
	o := probeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.OrNop(o.log).ProbeLogger("media")

	start := time.Now()
	m, err := createFromLocation(ctx, location.OrOS(o.fs), loc)
	duration := time.Since(start)

	log.LogProbe("media", loc, duration, err)
	o.metrics.RecordProbe("media", Kind(err).String(), duration)
	return m, err
}

func createFromLocation(ctx context.Context, fs afero.Fs, loc string) (*Media, error) {
	f, err := location.Open(fs, loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := iso9660.Read(ctx, f)
	if err != nil {
		return nil, err
	}
	return FromDescriptor(loc, d.Primary), nil
}

// FromDescriptor builds an unidentified Media from a primary volume descriptor
func FromDescriptor(id string, pvd *iso9660.PrimaryVolumeDescriptor) *Media {
	m := New(id, "")
	setIfPresent(m, ParamVolumeID, pvd.Volume)
	setIfPresent(m, ParamSystemID, pvd.System)
	setIfPresent(m, ParamPublisherID, pvd.Publisher)
	setIfPresent(m, ParamApplicationID, pvd.Application)
	if size := pvd.VolumeSize(); size > 0 {
		m.SetParamInt64(ParamVolumeSize, size)
	}
	return m
}

func setIfPresent(m *Media, key, value string) {
	if value != "" {
		m.SetParam(key, value)
	}
}
