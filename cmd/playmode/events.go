package main

import (
	"fmt"
	"os"

	"github.com/cargorun/playmode/event"
	"github.com/spf13/cobra"
)

func EventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <recording>",
		Short: "print the events of a recording written by sim --record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed reading recording: %w", err)
			}
			events, err := event.DecodeRecording(data)
			if err != nil {
				return fmt.Errorf("failed decoding recording: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, ev := range events {
				fmt.Fprintf(out, "%6d %T %+v\n", ev.Time(), ev, ev)
			}
			fmt.Fprintf(out, "%d events\n", len(events))
			return nil
		},
	}
}
