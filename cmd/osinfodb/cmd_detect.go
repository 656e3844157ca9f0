package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nainya/osinfodb/pkg/catalog"
	"github.com/nainya/osinfodb/pkg/media"
	"github.com/nainya/osinfodb/pkg/tree"
)

// detection is the outcome for one location
type detection struct {
	location  string
	matched   bool
	osID      string
	entryID   string
	languages []string
	err       error
}

func detectCmd(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "detect <location>...",
		Short: "Identify installation media or trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "media" && kind != "tree" {
				return fmt.Errorf("detect: --type must be media or tree, got %q", kind)
			}
			ctx := cmd.Context()

			db, err := a.loadCatalog(ctx, "detect")
			if err != nil {
				return err
			}

			results := make([]detection, len(args))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, loc := range args {
				i, loc := i, loc
				g.Go(func() error {
					if kind == "tree" {
						results[i] = a.detectTree(gctx, db, loc)
					} else {
						results[i] = a.detectMedia(gctx, db, loc)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				printDetection(cmd.OutOrStdout(), kind, r)
				if r.err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("detect: %d of %d locations could not be probed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "type", "media", "location type: media or tree")
	return cmd
}

func (a *app) detectMedia(ctx context.Context, db *catalog.Db, loc string) detection {
	d := detection{location: loc}
	m, err := media.CreateFromLocation(ctx, loc, media.WithLogger(a.log), media.WithMetrics(a.metrics))
	if err != nil {
		d.err = err
		return d
	}
	if db.IdentifyMedia(m) {
		d.matched = true
		d.osID = m.OsID()
		d.entryID = m.ID()
		d.languages = m.Languages()
	}
	return d
}

func (a *app) detectTree(ctx context.Context, db *catalog.Db, loc string) detection {
	d := detection{location: loc}
	t, err := tree.CreateFromLocation(ctx, loc, tree.WithLogger(a.log), tree.WithMetrics(a.metrics))
	if err != nil {
		d.err = err
		return d
	}
	if db.IdentifyTree(t) {
		d.matched = true
		d.osID = t.OsID()
		d.entryID = t.ID()
	}
	return d
}

func printDetection(w io.Writer, kind string, d detection) {
	switch {
	case d.err != nil:
		fmt.Fprintf(w, "%s: error: %v\n", d.location, d.err)
	case !d.matched:
		fmt.Fprintf(w, "%s: unknown %s\n", d.location, kind)
	default:
		fmt.Fprintf(w, "%s:\n  os: %s\n  %s: %s\n", d.location, d.osID, kind, d.entryID)
		if len(d.languages) > 0 {
			fmt.Fprintf(w, "  languages: %s\n", strings.Join(d.languages, ", "))
		}
	}
}
