// Package render formats query results for the terminal.
package render

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/parcelindex/parcels"
	"github.com/parcelindex/parcels/parcel"
)

var headers = []string{"Destination", "Weight (g)", "Valuation ($)"}

// Printer writes styled results to w. Styles degrade to plain text when w is
// not a terminal or color is off.
type Printer struct {
	w      io.Writer
	r      *lipgloss.Renderer
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	header lipgloss.Style
}

func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{
		w:      w,
		r:      r,
		title:  r.NewStyle().Bold(true),
		label:  r.NewStyle(),
		muted:  r.NewStyle(),
		header: r.NewStyle().Bold(true).Padding(0, 1),
	}
	if color {
		p.title = p.title.Foreground(lipgloss.Color("42"))
		p.label = p.label.Foreground(lipgloss.Color("214"))
		p.muted = p.muted.Foreground(lipgloss.Color("241"))
	}
	return p
}

func weight(p parcel.Parcel) string { return strconv.Itoa(p.Weight) }

func valuation(v float64) string { return fmt.Sprintf("%.2f", v) }

// Parcels writes ps as a table under title. It reports whether anything was
// written so callers can fall back to Empty.
func (p *Printer) Parcels(title string, ps iter.Seq[parcel.Parcel]) bool {
	var rows [][]string
	for pc := range ps {
		rows = append(rows, []string{pc.Destination, weight(pc), valuation(pc.Valuation)})
	}
	if len(rows) == 0 {
		return false
	}

	cell := p.r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if col > 0 {
				return cell.Align(lipgloss.Right)
			}
			return cell
		})

	fmt.Fprintln(p.w, p.title.Render(title))
	fmt.Fprintln(p.w, t.String())
	return true
}

// Parcel writes a single labelled parcel.
func (p *Printer) Parcel(label string, pc parcel.Parcel) {
	fmt.Fprintf(p.w, "%s %s, %s g, $%s\n",
		p.label.Render(label+":"), pc.Destination, weight(pc), valuation(pc.Valuation))
}

func (p *Printer) Totals(country string, t parcels.Totals) {
	fmt.Fprintln(p.w, p.title.Render("Totals for "+country))
	fmt.Fprintf(p.w, "%s %d\n", p.label.Render("Parcels:"), t.Count)
	fmt.Fprintf(p.w, "%s %d g\n", p.label.Render("Total weight:"), t.Weight)
	fmt.Fprintf(p.w, "%s $%s\n", p.label.Render("Total valuation:"), valuation(t.Valuation))
}

// Extremes writes a pair of parcels under the given labels.
func (p *Printer) Extremes(country, minLabel, maxLabel string, e parcels.Extremes) {
	fmt.Fprintln(p.w, p.title.Render(country))
	p.Parcel(minLabel, e.Min)
	p.Parcel(maxLabel, e.Max)
}

// Empty reports that a query found nothing.
func (p *Printer) Empty(country string) {
	fmt.Fprintln(p.w, p.muted.Render("no parcels found for "+country))
}

func (p *Printer) Stats(s parcels.Stats, countries []string) {
	fmt.Fprintln(p.w, p.title.Render("Index"))
	fmt.Fprintf(p.w, "%s %d\n", p.label.Render("Parcels:"), s.Parcels)
	fmt.Fprintf(p.w, "%s %d\n", p.label.Render("Countries:"), s.Countries)
	fmt.Fprintf(p.w, "%s %d/%d\n", p.label.Render("Buckets used:"), s.UsedSlots, parcels.Capacity)
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render("Collision policy:"), s.Policy)
	for _, c := range countries {
		fmt.Fprintf(p.w, "  %s %s\n", p.muted.Render(fmt.Sprintf("[%3d]", parcels.Hash(c))), c)
	}
}
