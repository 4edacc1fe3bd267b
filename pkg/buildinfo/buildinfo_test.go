package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "github.com/aurelia/aurelia-sub054/pkg/prog/progtest"
	"github.com/aurelia/aurelia-sub054/pkg/tt"
)

func TestProgram(t *testing.T) {
	Test(t, &Program{},
		ThatBindx("-version").WritesStdout(Value.Version+"\n"),
		ThatBindx("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatBindx("-buildinfo").WritesStdout(
			fmt.Sprintf("Version: %v\nGo version: %v\n", Value.Version, Value.GoVersion)),
		ThatBindx("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatBindx("a + b").ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func vcs(revision, time, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: time},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestDevVersion(t *testing.T) {
	tt.Test(t, tt.Fn("devVersion", func(override string, bi *debug.BuildInfo) string {
		return devVersion("0.7.0", override, func() (*debug.BuildInfo, bool) {
			return bi, bi != nil
		})
	}), tt.Table{
		tt.Args("", (*debug.BuildInfo)(nil)).Rets("0.7.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}).
			Rets("0.7.0-dev.unknown"),
		tt.Args("", &debug.BuildInfo{Main: debug.Module{Version: "v0.6.1"}}).
			Rets("0.6.1"),
		tt.Args("", vcs("abcdef0123456789", "2026-03-04T05:06:07Z", "false")).
			Rets("0.7.0-dev.0.20260304050607-abcdef012345"),
		tt.Args("", vcs("abcdef0123456789", "2026-03-04T05:06:07Z", "true")).
			Rets("0.7.0-dev.0.20260304050607-abcdef012345-dirty"),
		tt.Args("", vcs("abcdef0123456789", "yesterday", "false")).
			Rets("0.7.0-dev.unknown"),
		tt.Args("", vcs("", "2026-03-04T05:06:07Z", "false")).
			Rets("0.7.0-dev.unknown"),
		tt.Args("20260304050607-abcdef012345", (*debug.BuildInfo)(nil)).
			Rets("0.7.0-dev.0.20260304050607-abcdef012345"),
	})
}
