package service

import (
	"context"
	"log"
	"time"
)

// Sweeper: job periódico que cancela los matches clavados esperando prueba.
// Es el único actor que muta estado sin estímulo externo, y nunca asume ser
// el único escritor: cada cancelación pasa por el lock del match.
type Sweeper struct {
	matches  *MatchService
	interval time.Duration
}

func NewSweeper(matches *MatchService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Sweeper{matches: matches, interval: interval}
}

// Start corre el barrido hasta que el contexto muera (shutdown limpio).
func (w *Sweeper) Start(ctx context.Context) {
	go func() {
		t := time.NewTicker(w.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				if n := w.matches.ExpireOverdue(ctx, now.UTC()); n > 0 {
					log.Printf("[sweeper] expired %d match(es) without proof", n)
				}
			}
		}
	}()
}
