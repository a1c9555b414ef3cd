package debug

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func withCapture(t *testing.T, lvl int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(lvl)
	t.Cleanup(func() {
		Init(LevelOff)
		SetOutput(os.Stdout)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		name  string
		level int
		want  []string
		skip  []string
	}{
		{"off", LevelOff, nil, []string{"[INFO]", "[LIVE]", "[VERBOSE]", "[TRACE]"}},
		{"info", LevelInfo, []string{"[INFO]"}, []string{"[LIVE]", "[VERBOSE]", "[TRACE]"}},
		{"live", LevelLive, []string{"[INFO]", "[LIVE]"}, []string{"[VERBOSE]", "[TRACE]"}},
		{"trace", LevelTrace, []string{"[INFO]", "[LIVE]", "[VERBOSE]", "[TRACE]"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := withCapture(t, tc.level)
			Info("info %d", 1)
			Live("live %d", 2)
			Verbose("verbose %d", 3)
			Trace("trace %d", 4)

			got := buf.String()
			for _, w := range tc.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %s: %q", w, got)
				}
			}
			for _, s := range tc.skip {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %s: %q", s, got)
				}
			}
		})
	}
}

func TestPrefixAndHelpers(t *testing.T) {
	buf := withCapture(t, LevelLive)
	Transition("CameraLive", "Previewing", "capture")
	Shot("mock", "abc", 640, 480)
	Error(errors.New("boom"))
	Error(nil)

	got := buf.String()
	for _, w := range []string{
		"[cardcam] ",
		"Flow CameraLive -> Previewing (capture)",
		"Photo abc taken by mock (640x480)",
		"[ERROR] boom",
	} {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q: %q", w, got)
		}
	}
	if strings.Count(got, "[ERROR]") != 1 {
		t.Errorf("nil error should not be logged: %q", got)
	}
}

func TestIsEnabled(t *testing.T) {
	withCapture(t, LevelVerbose)
	if !IsEnabled(LevelInfo) || !IsEnabled(LevelVerbose) {
		t.Error("levels up to verbose should be enabled")
	}
	if IsEnabled(LevelTrace) {
		t.Error("trace should not be enabled at verbose level")
	}
	if Level() != LevelVerbose {
		t.Errorf("Level() = %d, want %d", Level(), LevelVerbose)
	}
}
