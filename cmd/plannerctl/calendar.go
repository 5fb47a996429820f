package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	var owners []string
	var asJSON bool
	calendarCmd := &cobra.Command{
		Use:   "calendar YEAR MONTH",
		Short: "Show the month grid with bucketed posts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
			month, err := strconv.Atoi(args[1])
			if err != nil || month < 1 || month > 12 {
				return fmt.Errorf("invalid month %q", args[1])
			}

			grid, err := newGateway().FetchMonth(cmd.Context(), year, month, owners)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(grid)
			}

			for _, cell := range grid.Cells {
				if !cell.InMonth || len(cell.Posts) == 0 {
					continue
				}
				fmt.Fprintf(os.Stdout, "%s\n", cell.Date.String())
				for _, p := range cell.Posts {
					fmt.Fprintf(os.Stdout, "  [%s] %s (%s)\n", p.Status, p.Theme, p.Channel)
				}
			}
			return nil
		},
	}
	calendarCmd.Flags().StringSliceVarP(&owners, "owners", "o", nil, "Filter by owner id (repeatable)")
	calendarCmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw grid as JSON")
	rootCmd.AddCommand(calendarCmd)
}
