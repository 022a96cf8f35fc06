package generator

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunForever runs the generator on its configured interval until the
// context is canceled. The first run happens immediately.
func (g *Generator) RunForever(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if _, err := g.Run(ctx, time.Time{}); err != nil {
			g.log.Warn("generator run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
