package main

import (
	"github.com/spf13/cobra"
)

func init() {
	directoryCmd := &cobra.Command{
		Use:   "directory",
		Short: "Show the account and responsible roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := newGateway().FetchDirectory(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(dir)
		},
	}
	rootCmd.AddCommand(directoryCmd)
}
