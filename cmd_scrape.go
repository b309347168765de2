package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newScrapeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Scrape the current plans and replace the stored catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agent, err := newAgent(*envFile)
			if err != nil {
				return err
			}

			plans := agent.Refresh(cmd.Context())
			if len(plans) == 0 {
				return errors.New("no plans were scraped, check the page structure")
			}

			out := cmd.OutOrStdout()
			for _, p := range plans {
				fmt.Fprintf(out, "%s - $%v\n", p.Name, p.Price)
			}
			fmt.Fprintf(out, "saved %d plans\n", len(plans))
			return nil
		},
	}
}
