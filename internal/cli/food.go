package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/ui"
)

func foodFlags(fs *pflag.FlagSet, in *model.FoodInput) {
	fs.StringVar(&in.Name, "name", "", "Food name")
	fs.StringVar(&in.Description, "description", "", "Short description")
	fs.Float64Var(&in.Price, "price", 0, "Price")
	fs.StringVar(&in.Image, "image", "", "Image URL")
}

func newAddCmd(app *App) *cobra.Command {
	var in model.FoodInput
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a food (new foods start available)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := in.Validate(); err != nil {
				return usageError{msg: "add: " + err.Error()}
			}
			ctrl, err := app.loaded(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			defer ctrl.Dispose()

			f, err := ctrl.AddItem(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}
			ui.OK(app.out, fmt.Sprintf("added #%d %s", f.ID, f.Name))
			return nil
		},
	}
	foodFlags(cmd.Flags(), &in)
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var in model.FoodInput
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a food; flags not given keep their value",
		Args:  exactArgs(1, "foods edit <id> [--name --description --price --image]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			ctrl, err := app.loaded(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			defer ctrl.Dispose()

			target, ok := ctrl.Find(id)
			if !ok {
				return fmt.Errorf("edit: no food with id %d", id)
			}
			next := target.Input()
			fs := cmd.Flags()
			if fs.Changed("name") {
				next.Name = in.Name
			}
			if fs.Changed("description") {
				next.Description = in.Description
			}
			if fs.Changed("price") {
				next.Price = in.Price
			}
			if fs.Changed("image") {
				next.Image = in.Image
			}
			if err := next.Validate(); err != nil {
				return usageError{msg: "edit: " + err.Error()}
			}

			ctrl.BeginEdit(target)
			f, err := ctrl.UpdateItem(cmd.Context(), next)
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			ui.OK(app.out, fmt.Sprintf("updated #%d %s", f.ID, f.Name))
			return nil
		},
	}
	foodFlags(cmd.Flags(), &in)
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a food",
		Args:    exactArgs(1, "foods rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			ctrl, err := app.loaded(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			defer ctrl.Dispose()

			if err := ctrl.DeleteItem(cmd.Context(), id); err != nil {
				fmt.Fprintln(app.errOut, ui.Current().Muted.Render("Hint: run `foods ls` to see valid ids"))
				return fmt.Errorf("rm: %w", err)
			}
			ui.OK(app.out, fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

func parseID(op, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("%s: not a valid id: %s", op, s)
	}
	return id, nil
}
