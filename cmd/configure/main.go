package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planwell/dayplan/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dayplan-configure",
		Short: "Configuration tool for the dayplan API",
		Long:  "CLI tool for checking backend connectivity, minting tokens and managing users",
	}

	rootCmd.AddCommand(commands.NewTestCmd())
	rootCmd.AddCommand(commands.NewTokenCmd())
	rootCmd.AddCommand(commands.NewUserCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
