package cmd

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func (a *app) newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "answer queries interactively until exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd)
		},
	}
}

func menuForm(act *action, country, weight *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[action]().
				Title("Parcel lookup").
				Options(
					huh.NewOption("All parcels for a country", actionList),
					huh.NewOption("Parcel with an exact weight", actionFind),
					huh.NewOption("Parcels heavier than a weight", actionHeavier),
					huh.NewOption("Parcels lighter than a weight", actionLighter),
					huh.NewOption("Total load and valuation", actionTotals),
					huh.NewOption("Cheapest and most expensive parcel", actionCheapest),
					huh.NewOption("Lightest and heaviest parcel", actionLightest),
					huh.NewOption("Exit", actionExit),
				).
				Value(act),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Country").
				Value(country).
				Validate(validateCountry),
		).WithHideFunc(func() bool { return *act == actionExit }),
		huh.NewGroup(
			huh.NewInput().
				Title("Weight (g)").
				Value(weight).
				Validate(func(s string) error {
					_, err := parseWeight(s)
					return err
				}),
		).WithHideFunc(func() bool { return !act.needsWeight() }),
	)
}

func validateCountry(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("country is required")
	}
	if strings.Contains(s, ",") {
		return errors.New("country cannot contain a comma")
	}
	return nil
}

// runMenu repeats the lookup form until the user picks Exit or aborts.
func (a *app) runMenu(cmd *cobra.Command) error {
	p := a.printer(cmd)
	for {
		var (
			act             action
			country, weight string
		)
		if err := menuForm(&act, &country, &weight).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if act == actionExit {
			return nil
		}

		var w int
		if act.needsWeight() {
			w, _ = parseWeight(weight)
		}
		if err := a.perform(p, act, strings.TrimSpace(country), w); err != nil {
			return err
		}
	}
}
