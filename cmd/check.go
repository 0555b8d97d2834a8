package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
)

func checkCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one wake alert check and print the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at, expected RFC3339: %w", err)
				}
				now = parsed
			}
			return runCheck(cmd.Context(), os.Stdout, now)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate as if run at this RFC3339 time")

	return cmd
}

func runCheck(ctx context.Context, w io.Writer, now time.Time) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.alertService.Run(ctx, now)
	if err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(w, "check failed: %v\n", err)
		return err
	}

	printResult(w, result)
	return nil
}

func printResult(w io.Writer, result *alert.Result) {
	stateColor := color.New(color.FgGreen)
	switch result.State {
	case domain.CheckStateAlertSent:
		stateColor = color.New(color.FgRed, color.Bold)
	case domain.CheckStateNoWakeFound, domain.CheckStateAlreadyRunning:
		stateColor = color.New(color.FgYellow)
	}

	label := color.New(color.FgHiBlack)

	label.Fprint(w, "state:     ")
	stateColor.Fprintln(w, result.State.String())

	if wake := result.WakeTimeDisplay(); wake != "" {
		label.Fprint(w, "wake time: ")
		fmt.Fprintln(w, wake)
		label.Fprint(w, "steps:     ")
		fmt.Fprintf(w, "%d / %d (%d points, %d malformed, %d outside window)\n",
			result.TotalSteps, result.Threshold, result.CountedPoints, result.SkippedPoints, result.OutsidePoints)
	}

	label.Fprint(w, "segments:  ")
	fmt.Fprintf(w, "%d merged, %d qualifying\n", result.SegmentCount, result.QualifyingCount)

	fmt.Fprintln(w, result.Message())
}
