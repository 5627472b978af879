package cli

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/foods/internal/dashboard"
	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/ui"
)

func newListCmd(app *App) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List foods",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.loaded(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			defer ctrl.Dispose()
			ui.Panel(app.out, listLines(ctrl.Items(), group))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&group, "group", "g", false, "Group by availability")
	return cmd
}

func listLines(items dashboard.Snapshot, group bool) []string {
	t := ui.Current()
	av, un := items.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Foods"),
		t.Success.Render(t.MarkAvailable), av,
		t.Unavailable.Render(t.MarkUnavailable), un,
		t.Accent.Render("Total"), len(items),
	)

	lines := []string{header, t.Muted.Render(ui.AvailabilityBar(av, av+un, 28)), ""}
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "", t.Muted.Render("Tip: add with `foods add --name \"Pasta\" --price 12.5`"))
	return lines
}

func flatLines(items []*model.Food) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no foods")}
	}
	out := make([]string, 0, len(items))
	for _, f := range items {
		mark, style := t.MarkUnavailable, t.Unavailable
		if f.Available {
			mark, style = t.MarkAvailable, t.Success
		}
		name := ansi.Truncate(f.Name, 60, "...")
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(fmt.Sprintf("#%-3d", f.ID)),
			style.Render(mark),
			name,
			t.Accent.Render(ui.Price(f.Price)),
		))
	}
	return out
}

func groupLines(items []*model.Food) []string {
	t := ui.Current()
	var avail, sold []*model.Food
	for _, f := range items {
		if f.Available {
			avail = append(avail, f)
		} else {
			sold = append(sold, f)
		}
	}
	section := func(title string, fs []*model.Food) []string {
		lines := []string{t.Accent.Render(title)}
		if len(fs) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(fs)...)
	}
	lines := section("Available", avail)
	lines = append(lines, "")
	return append(lines, section("Unavailable", sold)...)
}
