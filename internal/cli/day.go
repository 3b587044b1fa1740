package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andypowell00/food-notes-ui/internal/core/domain"
	"github.com/andypowell00/food-notes-ui/internal/core/ports"
	"github.com/andypowell00/food-notes-ui/internal/syncstore"
)

func (a *App) dayCmd() *cobra.Command {
	var flags backendFlags
	cmd := &cobra.Command{
		Use:   "day YYYY-MM-DD",
		Short: "Show everything recorded for one day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("bad day %q: %w", args[0], err)
			}
			gw, err := a.gateway(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return a.printDay(cmd.Context(), gw, day.Format(domain.DayLayout))
		},
	}
	flags.register(cmd)
	return cmd
}

// dayView is one entry with its attached items, loaded through the stores.
type dayView struct {
	entry       domain.Entry
	ingredients *syncstore.EntryIngredients
	symptoms    *syncstore.EntrySymptoms
	supplements *syncstore.EntrySupplements
	meals       *syncstore.EntryMeals
	names       *syncstore.Ingredients
}

func (a *App) printDay(ctx context.Context, gw ports.DiaryGateway, day string) error {
	entries := gw.ListEntries(ctx)
	if entries.Failed() {
		return entries.Failure()
	}
	var entry *domain.Entry
	for _, e := range entries.Value() {
		if e.Day() == day {
			entry = &e
			break
		}
	}
	if entry == nil {
		_, err := fmt.Fprintf(a.Out, "No entry for %s.\n", day)
		return err
	}

	notify := syncstore.WithNotifier(syncstore.LogNotifier{Log: a.Log})
	v := dayView{
		entry:       *entry,
		ingredients: syncstore.NewEntryIngredients(gw, notify),
		symptoms:    syncstore.NewEntrySymptoms(gw, notify),
		supplements: syncstore.NewEntrySupplements(gw, notify),
		meals:       syncstore.NewEntryMeals(gw, notify),
		names:       syncstore.NewIngredients(gw, notify),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return v.ingredients.SetEntry(gctx, entry.ID) })
	g.Go(func() error { return v.symptoms.SetEntry(gctx, entry.ID) })
	g.Go(func() error { return v.supplements.SetEntry(gctx, entry.ID) })
	g.Go(func() error { return v.meals.SetEntry(gctx, entry.ID) })
	g.Go(func() error { return v.names.Load(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	return v.write(a.Out)
}

func (v dayView) write(out io.Writer) error {
	names := make(map[int64]string)
	for _, ing := range v.names.Items() {
		names[ing.ID] = ing.Name
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tentry %d\tsymptomatic: %s\n", v.entry.Day(), v.entry.ID, yesNo(v.entry.Symptomatic))

	fmt.Fprintln(w, "\nINGREDIENTS\tNOTES")
	for _, ei := range v.ingredients.Items() {
		fmt.Fprintf(w, "%s\t%s\n", nameOr(names[ei.IngredientID], ei.IngredientID), ei.Notes)
	}
	fmt.Fprintln(w, "\nSYMPTOMS\tNOTES")
	for _, es := range v.symptoms.Items() {
		fmt.Fprintf(w, "%s\t%s\n", nameOr(es.SymptomTitle, es.SymptomID), es.Notes)
	}
	fmt.Fprintln(w, "\nSUPPLEMENTS\t")
	for _, es := range v.supplements.Items() {
		fmt.Fprintf(w, "%s\t\n", nameOr(es.SupplementName, es.SupplementID))
	}
	fmt.Fprintln(w, "\nMEALS\tINGREDIENTS")
	for _, em := range v.meals.Items() {
		list := ""
		for i, ing := range em.Ingredients {
			if i > 0 {
				list += ", "
			}
			list += ing.Name
		}
		fmt.Fprintf(w, "%s\t%s\n", nameOr(em.MealName, em.MealID), list)
	}
	return w.Flush()
}

func nameOr(name string, id int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
