package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/tollfee/core/holiday"
)

var (
	holidaysYear   int
	holidaysOutput string
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List the holidays and days before holidays of a year",
	RunE:  runHolidays,
}

func init() {
	holidaysCmd.Flags().IntVarP(&holidaysYear, "year", "y", time.Now().Year(), "calendar year")
	holidaysCmd.Flags().StringVarP(&holidaysOutput, "output", "o", "text", "output format: text, yaml or json")
	rootCmd.AddCommand(holidaysCmd)
}

// holidayListing is the structured output of the holidays command.
type holidayListing struct {
	Year       int            `json:"year" yaml:"year"`
	Easter     string         `json:"easter" yaml:"easter"`
	Holidays   []holidayEntry `json:"holidays" yaml:"holidays"`
	DaysBefore []string       `json:"days_before" yaml:"days_before"`
}

type holidayEntry struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

func buildListing(year int) holidayListing {
	var cal holiday.Calendar
	l := holidayListing{Year: year, Easter: holiday.EasterSunday(year).Format(time.DateOnly)}
	for _, h := range cal.Named(year) {
		l.Holidays = append(l.Holidays, holidayEntry{Date: h.Date.Format(time.DateOnly), Name: h.Name})
	}
	for _, d := range cal.DaysBeforeHolidays(year) {
		l.DaysBefore = append(l.DaysBefore, d.Format(time.DateOnly))
	}
	return l
}

func runHolidays(cmd *cobra.Command, args []string) error {
	if !holiday.ValidYear(holidaysYear) {
		return fmt.Errorf("year must be between %d and %d, got %d", holiday.MinYear, holiday.MaxYear, holidaysYear)
	}
	return writeListing(cmd.OutOrStdout(), buildListing(holidaysYear), holidaysOutput)
}

func writeListing(w io.Writer, l holidayListing, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	case "text", "":
		for _, h := range l.Holidays {
			if _, err := fmt.Fprintf(w, "%s  %s\n", h.Date, h.Name); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
