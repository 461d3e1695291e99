package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/petcheck/internal/classifier"
	"github.com/Veraticus/petcheck/internal/model"
	"github.com/Veraticus/petcheck/internal/pattern"
)

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <pet-label> <classifier-label>",
		Short: "Check whether a classifier label matches a pet label",
		Example: `  petcheck match "cat" "tabby, tabby cat"
  petcheck match "beagle" "Beagle, English beagle"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := model.PetLabel(classifier.Normalize(args[0]))
			answer := classifier.Normalize(args[1])

			if pattern.Match(label, answer) {
				fmt.Fprintf(cmd.OutOrStdout(), "match: %q is found in %q\n", label, answer)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "no match: %q is not found in %q\n", label, answer)
			}
			return nil
		},
	}
}
