package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List frameworks available in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		for _, fw := range cat.Frameworks() {
			fmt.Printf("%-12s %3d questions", fw.Name, len(fw.Questions))
			if fw.Description != "" {
				fmt.Printf("  %s", fw.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(frameworksCmd)
}
