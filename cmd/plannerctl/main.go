package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grupo-nexus/planner/client"
)

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "plannerctl",
		Short: "CLI client for the planner REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Planner service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", os.Getenv("PLANNER_TOKEN"), "Session token from a previous login (defaults to PLANNER_TOKEN)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newGateway builds a gateway for the configured endpoint, reusing the
// session token when one was passed.
func newGateway() *client.HTTPGateway {
	gw := client.NewHTTPGateway(apiFlag)
	if tokenFlag != "" {
		gw.SetToken(tokenFlag)
	}
	return gw
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, string(data))
	return nil
}
