package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/petcheck/internal/cli"
	"github.com/Veraticus/petcheck/internal/common"
	"github.com/Veraticus/petcheck/internal/petlabel"
)

func labelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Show the pet label derived from each image filename",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := viper.GetString("images.dir")
			if cmd.Flags().Changed("dir") {
				dir, _ = cmd.Flags().GetString("dir")
			}

			records, err := petlabel.FromDir(dir)
			if err != nil {
				return common.NewUserError("failed to list images", err)
			}

			for _, r := range records.Sorted() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", r.Filename, r.PetLabel)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d images", len(records))))
			return nil
		},
	}

	cmd.Flags().String("dir", "pet_images/", "Directory containing the pet images")

	return cmd
}
