package platform

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"walkwatch/internal/core/idlewatch"
)

type activitySource struct {
	xprintidlePath string
}

type unsupportedActivitySource struct{}

func newActivitySource() idlewatch.ActivitySource {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedActivitySource{}
	}
	return &activitySource{xprintidlePath: path}
}

func (source *activitySource) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(source.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedActivitySource) IdleDuration() (time.Duration, error) {
	return 0, idlewatch.ErrUnsupported
}
