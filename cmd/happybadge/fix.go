package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/HappyBadge/pkg/badge"
	"github.com/dixieflatline76/HappyBadge/pkg/shell"
	"github.com/dixieflatline76/HappyBadge/util/log"
)

type fixOptions struct {
	output string
	report string
}

func newFixCmd(root *rootOptions) *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix <image>",
		Short: "Resize an image to 512x512 and cut it to a transparent circle",
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

			if s.CanHotfix() {
				if err := s.Hotfix(); err != nil {
					return err
				}
			} else {
				log.Debugf("session %s: geometry already satisfied, nothing to fix", s.ID)
			}

			output := opts.output
			if output == "" {
				output = defaultOutputPath(args[0])
			}
			if err := writePNG(output, s.Image()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Badge written to %s\n", output)

			report := opts.report
			if report == "" {
				report = cfg.ReportPath
			}
			if report != "" {
				if err := writePNG(report, shell.RenderReport(s.Image(), s.Result())); err != nil {
					return err
				}
				fmt.Fprintf(out, "Report written to %s\n", report)
			}

			printResult(out, s.Result())
			if !s.Result().Passed() {
				return errComplaints
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (default <image>_badge.png)")
	cmd.Flags().StringVar(&opts.report, "report", "", "also write a report card PNG")
	return cmd
}

// defaultOutputPath turns photo.jpg into photo_badge.png next to it.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_badge.png"
}

func writePNG(path string, img image.Image) error {
	data, err := badge.EncodeImage(img, badge.FormatPNG, 0)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
