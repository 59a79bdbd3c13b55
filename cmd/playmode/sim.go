package main

import (
	"fmt"
	"os"

	"github.com/cargorun/playmode/game"
	"github.com/cargorun/playmode/oerror"
	"github.com/cargorun/playmode/sim"
	"github.com/cargorun/playmode/worker"
	"github.com/spf13/cobra"
)

func SimCmd() *cobra.Command {
	var (
		frames  int
		runs    int
		workers int
		record  string
	)
	c := &cobra.Command{
		Use:   "sim",
		Short: "play the arena headless with a scripted player",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := newHost()
			if err != nil {
				return err
			}
			defer h.close()

			results := make([]*sim.Result, runs)
			pool := worker.New(workers)
			for i := range runs {
				pool.Submit(func() {
					runSeed := h.seed + int64(i)
					res, err := sim.Run(h.log, h.settings, runSeed, frames)
					if err != nil {
						h.log.WithField("seed", runSeed).Errorf("simulation failed: %v", err)
						return
					}
					results[i] = res
				})
			}
			pool.Close()
			if n := pool.Panics(); n > 0 {
				return oerror.New("%d of %d runs panicked", n, runs)
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				if res == nil {
					return fmt.Errorf("run with seed %d did not finish", h.seed+int64(i))
				}
				fmt.Fprintf(out, "seed=%d frames=%d status=%s health=%d cargo=%d events=%d fingerprint=%016x\n",
					res.Seed, res.Frames, res.Status, res.Health, res.Cargo, res.Events, res.Fingerprint)
				fmt.Fprintf(out, "  walk iterations mean=%.2f median=%.1f max=%.0f truncated=%d closest to robot=%.2f\n",
					game.Mean(res.Iterations), game.Median(res.Iterations), game.Max(res.Iterations), res.Truncated, res.ClosestToRobot)

				if record == "" {
					continue
				}
				path := record
				if runs > 1 {
					path = fmt.Sprintf("%s.%d", record, res.Seed)
				}
				if err := os.WriteFile(path, res.Recording, 0644); err != nil {
					return fmt.Errorf("failed writing recording: %w", err)
				}
			}
			return nil
		},
	}
	c.Flags().IntVar(&frames, "frames", 3600, "maximum amount of frames to simulate per run")
	c.Flags().IntVar(&runs, "runs", 1, "amount of runs, each seeded one higher than the last")
	c.Flags().IntVar(&workers, "workers", 0, "amount of runs simulated at once, one per CPU if zero")
	c.Flags().StringVar(&record, "record", "", "file to write the events of each run to")
	return c
}
