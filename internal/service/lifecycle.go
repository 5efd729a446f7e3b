// internal/service/lifecycle.go
package service

import (
	"time"

	"github.com/dmarins/campaigns-backend/internal/model"
)

// EffectiveStatus is the single source of truth for whether a campaign's
// displayed status diverges from its stored status. A campaign whose end
// date is strictly in the past reads as expired even while the stored value
// still says active or paused. Nothing here ever resurrects an expired
// campaign; only an explicit update payload can do that.
func EffectiveStatus(c *model.Campaign, now time.Time) string {
	if now.After(c.EndDate) && c.Status != model.StatusExpired {
		return model.StatusExpired
	}
	return c.Status
}

// ProjectExpiry applies EffectiveStatus in place. Reads project without
// writing back; the stored value is converged separately by the sweeper.
func ProjectExpiry(c *model.Campaign, now time.Time) {
	c.Status = EffectiveStatus(c, now)
}
