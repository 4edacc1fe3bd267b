// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"strconv"
	"time"
)

// TimeScaleEnv names the environment variable that scales the timeouts of
// tests, for slow machines.
const TimeScaleEnv = "BINDX_TEST_TIME_SCALE"

// Scaled returns d multiplied by the scale in $BINDX_TEST_TIME_SCALE. A
// missing, malformed or non-positive scale counts as 1.
func Scaled(d time.Duration) time.Duration {
	scale, err := strconv.ParseFloat(os.Getenv(TimeScaleEnv), 64)
	if err != nil || scale <= 0 {
		return d
	}
	return time.Duration(float64(d) * scale)
}
