package driven

import (
	"time"

	"github.com/custodia-labs/scenaria-core/internal/core/domain"
)

// EditMetrics records outcomes of fragment relocation and edit application
type EditMetrics interface {
	// ObserveLocate records one relocation attempt. method is empty when
	// no match was found.
	ObserveLocate(method domain.MatchMethod, confidence float64, elapsed time.Duration)

	// ObserveApply records one apply attempt by outcome
	// ("applied", "no_match", "locked", "error").
	ObserveApply(outcome string)
}
