package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/esg-merge-cli/internal/model"
)

var (
	generateCount      int
	generateFrameworks []string
	generateOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate merged questions from two or more frameworks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(generateFrameworks) < 2 {
			return eris.New("at least two --framework values are required")
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		m, err := initMerger()
		if err != nil {
			return err
		}

		merged, err := m.Generate(cmd.Context(), cat.Resolve(generateFrameworks), generateCount)
		if err != nil {
			return err
		}

		return printMerged(merged, generateOutput)
	},
}

func printMerged(merged []model.MergedQuestion, output string) error {
	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(merged)
	}

	for i, q := range merged {
		fmt.Printf("%d. %s\n", i+1, q.Text)
		fmt.Printf("   sources: %s (%s) + %s (%s)\n",
			q.OriginalQuestions[0].Framework, q.OriginalQuestions[0].Ref,
			q.OriginalQuestions[1].Framework, q.OriginalQuestions[1].Ref,
		)
		if !q.GeneratedByModel {
			fmt.Println("   (deterministic merge)")
		}
	}
	return nil
}

func init() {
	generateCmd.Flags().IntVar(&generateCount, "count", 5, "number of merged questions to produce")
	generateCmd.Flags().StringSliceVar(&generateFrameworks, "framework", nil, "framework name (repeat for each)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "text", "output format: text or json")
	rootCmd.AddCommand(generateCmd)
}
