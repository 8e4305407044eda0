package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	logger "github.com/parcelindex/parcels/internal/logger"
	"github.com/parcelindex/parcels/internal/render"
)

type action int

const (
	actionList action = iota + 1
	actionFind
	actionHeavier
	actionLighter
	actionTotals
	actionCheapest
	actionLightest
	actionExit
)

func (act action) needsWeight() bool {
	switch act {
	case actionFind, actionHeavier, actionLighter:
		return true
	}
	return false
}

// perform answers one query about country against the loaded index.
func (a *app) perform(p *render.Printer, act action, country string, weight int) error {
	log := logger.WithCountry(country)
	log.Debugf("query %d weight %d", act, weight)

	switch act {
	case actionList:
		if !p.Parcels("Parcels for "+country, a.idx.AllForCountry(country)) {
			p.Empty(country)
		}
	case actionFind:
		pc, ok := a.idx.FindByWeight(country, weight)
		if !ok {
			p.Empty(fmt.Sprintf("%s weighing %d g", country, weight))
			return nil
		}
		p.Parcel("Found", pc)
	case actionHeavier:
		if !p.Parcels(fmt.Sprintf("Parcels for %s heavier than %d g", country, weight), a.idx.HeavierThan(country, weight)) {
			p.Empty(fmt.Sprintf("%s heavier than %d g", country, weight))
		}
	case actionLighter:
		if !p.Parcels(fmt.Sprintf("Parcels for %s lighter than %d g", country, weight), a.idx.LighterThan(country, weight)) {
			p.Empty(fmt.Sprintf("%s lighter than %d g", country, weight))
		}
	case actionTotals:
		t, ok := a.idx.Totals(country)
		if !ok {
			p.Empty(country)
			return nil
		}
		p.Totals(country, t)
	case actionCheapest:
		e, ok := a.idx.ValuationExtremes(country)
		if !ok {
			p.Empty(country)
			return nil
		}
		p.Extremes(country, "Cheapest", "Most expensive", e)
	case actionLightest:
		e, ok := a.idx.WeightExtremes(country)
		if !ok {
			p.Empty(country)
			return nil
		}
		p.Extremes(country, "Lightest", "Heaviest", e)
	default:
		return fmt.Errorf("unknown action %d", act)
	}
	return nil
}

func parseWeight(s string) (int, error) {
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("weight %q is not a whole number of grams", s)
	}
	return w, nil
}

// countryArg rejects a blank country before the index is consulted.
func countryArg(_ *cobra.Command, args []string) error {
	return validateCountry(args[0])
}

func (a *app) countryCmd(use, short string, act action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " COUNTRY",
		Short: short,
		Args:  cobra.MatchAll(cobra.ExactArgs(1), countryArg),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.perform(a.printer(cmd), act, args[0], 0)
		},
	}
}

func (a *app) weightCmd(use, short string, act action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " COUNTRY WEIGHT",
		Short: short,
		Args:  cobra.MatchAll(cobra.ExactArgs(2), countryArg),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := parseWeight(args[1])
			if err != nil {
				return err
			}
			return a.perform(a.printer(cmd), act, args[0], w)
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return a.countryCmd("list", "list every parcel for a country, lightest first", actionList)
}

func (a *app) newFindCmd() *cobra.Command {
	return a.weightCmd("find", "find a parcel for a country by exact weight", actionFind)
}

func (a *app) newHeavierCmd() *cobra.Command {
	return a.weightCmd("heavier", "list parcels for a country heavier than a weight", actionHeavier)
}

func (a *app) newLighterCmd() *cobra.Command {
	return a.weightCmd("lighter", "list parcels for a country lighter than a weight", actionLighter)
}

func (a *app) newTotalsCmd() *cobra.Command {
	return a.countryCmd("totals", "show total weight and valuation for a country", actionTotals)
}

func (a *app) newCheapestCmd() *cobra.Command {
	return a.countryCmd("cheapest", "show the cheapest and most expensive parcel for a country", actionCheapest)
}

func (a *app) newLightestCmd() *cobra.Command {
	return a.countryCmd("lightest", "show the lightest and heaviest parcel for a country", actionLightest)
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "show bucket occupancy of the loaded index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.printer(cmd).Stats(a.idx.Stats(), a.idx.Countries())
			return nil
		},
	}
}
