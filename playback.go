package main

import (
	"context"
	"time"

	"github.com/CodeStranger-Fred/gridq/mdp"
)

// runPlayback advances pb once per tick until it reaches a terminal cell,
// limit steps have been taken (0 for no limit) or ctx is cancelled.
func runPlayback(ctx context.Context, pb *mdp.Playback, interval time.Duration, limit int, onStep func(step int, o mdp.Outcome)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			o, moved := pb.Advance()
			if !moved {
				return nil
			}
			step++
			onStep(step, o)
			if o.Done || (limit > 0 && step >= limit) {
				return nil
			}
		}
	}
}
