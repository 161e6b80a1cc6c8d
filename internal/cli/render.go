package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
	"github.com/tripagent-dev/tripagent/pkg/planner/store"
)

const renderWidth = 80

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleCaser   = cases.Title(language.English)
	highlight    = color.New(color.FgCyan).SprintFunc()
)

// renderItinerary writes a human-readable itinerary to out.
func renderItinerary(out io.Writer, it *schema.Itinerary) {
	name := it.TripName
	if name == "" {
		name = "Your trip"
	}
	fmt.Fprintln(out, headingStyle.Render(titleCaser.String(name)))
	fmt.Fprintf(out, "%s to %s, %d adult(s), %d child(ren)\n",
		it.StartDate, it.EndDate, it.NumberOfAdults, it.NumberOfChildren)
	if it.Notes != "" {
		fmt.Fprintln(out, subtleStyle.Render(wordwrap.String(it.Notes, renderWidth)))
	}
	fmt.Fprintln(out)

	for i, dest := range it.Destinations {
		fmt.Fprintf(out, "%s %s (%s to %s)\n",
			headingStyle.Render(fmt.Sprintf("%d.", i+1)),
			highlight(dest.Location), dest.ArrivalDate, dest.DepartureDate)

		if dest.Accommodation.Name != "" {
			fmt.Fprintf(out, "   Stay: %s, %s (%s %s)\n",
				dest.Accommodation.Name, dest.Accommodation.Address,
				dest.Accommodation.PriceTotal, dest.Accommodation.Currency)
		}

		if len(dest.Activities) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Date", "Time", "Activity", "Notes"})
			for _, act := range dest.Activities {
				t.AppendRow(table.Row{act.Date, act.Time, act.Name, wordwrap.String(act.Notes, 40)})
			}
			t.Render()
		}

		for _, leg := range dest.Transportation {
			fmt.Fprintf(out, "   %s via %s: %s to %s at %s\n",
				titleCaser.String(leg.Type), leg.Provider,
				leg.PickupLocation, leg.DropoffLocation, leg.PickupTime)
		}
		fmt.Fprintln(out)
	}
}

// renderIdeas writes the numbered idea list to out. Display numbering is
// 1-based and purely presentational.
func renderIdeas(out io.Writer, list *schema.PromptsList) {
	fmt.Fprintln(out, headingStyle.Render("Trip ideas"))
	for i, p := range list.Prompts {
		fmt.Fprintf(out, "%d. %s\n", i+1, wordwrap.String(p.Text, renderWidth))
	}
}

// renderSavedTrips writes the stored itinerary summaries to out.
func renderSavedTrips(out io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No saved trips yet.")
		return
	}
	for _, r := range records {
		fmt.Fprintf(out, "%s  %s (%s to %s)\n", subtleStyle.Render(r.ID), r.TripName, r.StartDate, r.EndDate)
	}
}
