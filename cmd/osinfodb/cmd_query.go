package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nainya/osinfodb/pkg/catalog"
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/filter"
)

var queryCollections = []string{"os", "platform", "device", "deployment"}

func queryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "query <os|platform|device|deployment> [key=value ...]",
		Short:     "List catalog entities matching parameter constraints",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: queryCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, rejected := filter.Parse(args[1:])
			if len(rejected) > 0 {
				return fmt.Errorf("query: expected key=value, got %s", strings.Join(rejected, " "))
			}

			db, err := a.loadCatalog(cmd.Context(), "query")
			if err != nil {
				return err
			}

			ids, err := queryIDs(db, args[0], f)
			if err != nil {
				return err
			}
			printIDs(cmd.OutOrStdout(), ids)
			return nil
		},
	}
	return cmd
}

func queryIDs(db *catalog.Db, collection string, f *filter.Filter) ([]string, error) {
	switch collection {
	case "os":
		return ids(db.OsList().Filtered(f)), nil
	case "platform":
		return ids(db.PlatformList().Filtered(f)), nil
	case "device":
		return ids(db.DeviceList().Filtered(f)), nil
	case "deployment":
		return ids(db.DeploymentList().Filtered(f)), nil
	}
	return nil, fmt.Errorf("query: unknown collection %q (want one of %s)", collection, strings.Join(queryCollections, ", "))
}

func ids[T entity.Item](l *entity.List[T]) []string {
	out := make([]string, 0, l.Len())
	for _, e := range l.Elements() {
		out = append(out, e.ID())
	}
	return out
}

func printIDs(w io.Writer, list []string) {
	for _, id := range list {
		fmt.Fprintln(w, id)
	}
}
