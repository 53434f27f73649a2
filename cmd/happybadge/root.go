package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dixieflatline76/HappyBadge/config"
	"github.com/dixieflatline76/HappyBadge/pkg/badge"
	"github.com/dixieflatline76/HappyBadge/pkg/shell"
	"github.com/dixieflatline76/HappyBadge/util/log"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitComplaints = 2
)

// errComplaints marks a run that worked but left complaints.
var errComplaints = errors.New("image does not satisfy the badge rules")

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errComplaints):
		return exitComplaints
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("error: %v", err))
		return exitError
	}
}

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "happybadge",
		Short:         "HappyBadge: validate and fix circular badge images",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetDebug(opts.debug)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.happybadge/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newFixCmd(opts))
	return cmd
}

// loadConfig loads .env and the config file.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	return config.Load(o.configPath)
}

// newValidator builds the engine, wiring the face detector when configured.
func newValidator(cfg *config.Config) (*badge.Validator, error) {
	var opts []badge.NormalizerOption
	if cfg.Tuning.FitMode == badge.FitFace && cfg.Tuning.FaceCascadePath != "" {
		cascade, err := os.ReadFile(cfg.Tuning.FaceCascadePath)
		if err != nil {
			return nil, fmt.Errorf("reading face cascade: %w", err)
		}
		finder, err := badge.NewFaceFinder(cascade, cfg.Tuning)
		if err != nil {
			return nil, err
		}
		opts = append(opts, badge.WithFaceFinder(finder))
	}
	return badge.NewValidator(cfg.Tuning, opts...), nil
}

// newSession creates a session and uploads the file at path.
func newSession(cfg *config.Config, path string) (*shell.Session, error) {
	v, err := newValidator(cfg)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	s := shell.NewSession(v, shell.WithThumbnail(cfg.ThumbnailOnUpload))
	if err := s.Upload(data); err != nil {
		if badge.IsKind(err, badge.KindDecodeFailure) {
			return nil, fmt.Errorf("%s is not a supported image (PNG or JPEG): %w", path, err)
		}
		return nil, err
	}
	log.Debugf("session %s: %s uploaded", s.ID, path)
	return s, nil
}

// printResult writes complaints in red, or the perfect label in green.
func printResult(w io.Writer, res badge.Result) {
	if res.Passed() {
		color.New(color.FgGreen, color.Bold).Fprintln(w, badge.PerfectText)
		return
	}
	red := color.New(color.FgRed)
	for _, c := range res.Complaints {
		red.Fprintf(w, "✗ %s\n", c.Message)
	}
}
