package platform

import "walkwatch/internal/core/idlewatch"

// NewActivitySource returns a platform-specific source of time-since-last-input.
func NewActivitySource() idlewatch.ActivitySource {
	return newActivitySource()
}
