package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
)

var errNoPlans = errors.New("no plans were loaded or scraped, check the page structure")

type chatAgent interface {
	EnsureCatalog(ctx context.Context) catalogx.Catalog
	Recommend(ctx context.Context, userText string) string
}

func newChatCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask for plan recommendations interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			agent, err := newAgent(*envFile)
			if err != nil {
				return err
			}
			return runChat(cmd.Context(), agent, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runChat(ctx context.Context, agent chatAgent, in io.Reader, out io.Writer) error {
	plans := agent.EnsureCatalog(ctx)
	if len(plans) == 0 {
		return errNoPlans
	}

	fmt.Fprintf(out, "Plan Recommendation Assistant (%d plans)\n", len(plans))
	fmt.Fprintln(out, strings.Repeat("=", 40))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nWhat are you looking for in a plan? (or 'quit' to exit): ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "":
			fmt.Fprintln(out, "Please enter a valid request.")
			continue
		}

		fmt.Fprintln(out, "\nLet me think...")
		fmt.Fprintf(out, "\n%s\n", agent.Recommend(ctx, input))
	}
}
