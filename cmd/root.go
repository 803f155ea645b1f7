package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// catalogPath is the sqlite catalog `eprdesc init` creates in the
// working directory.
const catalogPath = "eprdesc.db"

var rootCmd = &cobra.Command{
	Use:   "eprdesc",
	Short: "eprdesc — Bruker BES3T descriptor file tools",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
