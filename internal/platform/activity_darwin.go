package platform

import (
	"time"

	"walkwatch/internal/core/idlewatch"
)

type activitySource struct{}

func newActivitySource() idlewatch.ActivitySource {
	return &activitySource{}
}

func (source *activitySource) IdleDuration() (time.Duration, error) {
	return 0, idlewatch.ErrUnsupported
}
