package game

import (
	"log/slog"
)

// flushTelemetry logs and writes perf stats once per configured interval.
func (g *Game) flushTelemetry() {
	interval := g.cfg.Telemetry.LogInterval
	if interval <= 0 || g.elapsed-g.lastPerfLog < interval {
		return
	}
	g.lastPerfLog = g.elapsed

	stats := g.perfCollector.Stats()
	if g.logStats {
		slog.Info("perf",
			"frame", g.frame,
			"mode", g.mode.String(),
			"elements", g.scene.ElementCount(),
			"pending_reveals", g.scene.Queue.Pending(),
			"stats", stats,
		)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WritePerf(stats, g.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
