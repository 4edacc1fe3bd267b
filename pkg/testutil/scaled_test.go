package testutil

import (
	"testing"
	"time"

	. "github.com/aurelia/aurelia-sub054/pkg/tt"
)

func TestScaled(t *testing.T) {
	Test(t, Fn("Scaled", func(scale string, d time.Duration) time.Duration {
		t.Setenv(TimeScaleEnv, scale)
		return Scaled(d)
	}), Table{
		Args("", time.Second).Rets(time.Second),
		Args("2", 3*time.Second).Rets(6*time.Second),
		Args("0.5", 10*time.Millisecond).Rets(5*time.Millisecond),
		Args("fast", time.Second).Rets(time.Second),
		Args("0", time.Second).Rets(time.Second),
		Args("-1", time.Second).Rets(time.Second),
	})
}
