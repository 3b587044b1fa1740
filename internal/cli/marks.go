package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andypowell00/food-notes-ui/internal/syncstore"
)

func (a *App) marksCmd() *cobra.Command {
	var flags backendFlags
	cmd := &cobra.Command{
		Use:   "marks",
		Short: "List the safe and unsafe ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := a.gateway(cmd.Context(), flags)
			if err != nil {
				return err
			}
			marks := syncstore.NewSafeUnsafe(gw, syncstore.WithNotifier(syncstore.LogNotifier{Log: a.Log}))
			defer marks.Close()
			if err := marks.Load(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(a.Out, "safe:")
			for _, ing := range marks.Safe() {
				fmt.Fprintf(a.Out, "  %s\n", nameOr(ing.Name, ing.ID))
			}
			fmt.Fprintln(a.Out, "unsafe:")
			for _, ing := range marks.Unsafe() {
				fmt.Fprintf(a.Out, "  %s\n", nameOr(ing.Name, ing.ID))
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
