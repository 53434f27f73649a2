package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <image>",
		Short: "Check an image against the badge rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			s, err := newSession(cfg, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			res := s.Result()
			printResult(out, res)
			if s.CanHotfix() {
				fmt.Fprintln(out, color.YellowString("Autofix available: run `happybadge fix %s`", args[0]))
			}
			if !res.Passed() {
				return errComplaints
			}
			return nil
		},
	}
}
