package tree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/nainya/osinfodb/internal/location"
	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/internal/metrics"
)

// Key-file names tried in order
var treeinfoNames = []string{".treeinfo", "treeinfo"}

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

// CreateFromLocation fetches the key-file under loc and returns an
// unidentified Tree. The tree id and url are loc.
func CreateFromLocation(ctx context.Context, loc string, opts ...Option) (*Tree, error) {
	o := probeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.OrNop(o.log).ProbeLogger("tree")

	start := time.Now()
	t, err := createFromLocation(ctx, location.OrOS(o.fs), loc)
	duration := time.Since(start)

	log.LogProbe("tree", loc, duration, err)
	o.metrics.RecordProbe("tree", status(err), duration)
	return t, err
}

func createFromLocation(ctx context.Context, fs afero.Fs, loc string) (*Tree, error) {
	if _, err := location.Resolve(loc); err != nil {
		return nil, err
	}
	data, err := fetchTreeinfo(ctx, fs, loc)
	if err != nil {
		return nil, err
	}
	ti, err := ParseTreeinfo(data)
	if err != nil {
		return nil, fmt.Errorf("parsing treeinfo at %s: %w", loc, err)
	}

	t := New(loc, "")
	t.SetParam(ParamURL, loc)
	ti.Apply(t)
	return t, nil
}

func fetchTreeinfo(ctx context.Context, fs afero.Fs, loc string) ([]byte, error) {
	for _, name := range treeinfoNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := location.Open(fs, location.Join(loc, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w under %s", ErrNoTreeinfo, loc)
}

func status(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNoTreeinfo):
		return "no-treeinfo"
	case errors.Is(err, ErrMalformedTreeinfo):
		return "malformed"
	}
	return "io"
}
