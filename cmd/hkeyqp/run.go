package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "run [scenario]",
		Short:         "Run one or all of the S1-S6 canned scenarios",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var which string
			if len(args) == 1 {
				which = args[0]
			}
			return runAll(which)
		},
	}
	return cmd
}

func runAll(which string) error {
	failures := 0
	for _, s := range scenarios() {
		if which != "" && s.name != which {
			continue
		}
		fmt.Printf("%s: %s\n", s.name, s.desc)
		if err := s.run(); err != nil {
			fmt.Printf("  FAIL: %v\n", err)
			failures++
			continue
		}
		fmt.Println("  PASS")
	}
	if failures > 0 {
		return fmt.Errorf("%d scenario(s) failed", failures)
	}
	return nil
}
