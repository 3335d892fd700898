package main

import (
	"fmt"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/pkg/ports"
	"github.com/spf13/cobra"
)

var nextOrderCmd = &cobra.Command{
	Use:   "next-order",
	Short: "Propose the order of a new step in a scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioID, _ := cmd.Flags().GetString("scenario")

		var lister ports.StepLister
		switch {
		case cfg.StepsEndpoint != "":
			lister = stepLister(cfg, nil)
		case cfg.Redis.Addr != "":
			index, closeIndex, err := stepIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeIndex()
			lister = index
		default:
			return errNoStepSource
		}

		auth, err := scenarist.New(authoringOptions(cfg, lister, nil, nil)...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), auth.NextOrder(cmd.Context(), scenarioID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nextOrderCmd)
	nextOrderCmd.Flags().String("scenario", "", "Scenario identifier")
	_ = nextOrderCmd.MarkFlagRequired("scenario")
}
