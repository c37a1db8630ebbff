package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	tests := []struct {
		name                  string
		version, commit, date string
		info                  debug.BuildInfo
		wantV, wantC, wantD   string
	}{
		{
			name:    "module version and vcs",
			version: "dev", commit: "none", date: "unknown",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
				},
			},
			wantV: "v0.3.0", wantC: "abc123", wantD: "2026-10-01T00:00:00Z",
		},
		{
			name:    "devel build keeps dev",
			version: "dev", commit: "none", date: "unknown",
			info:  debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			wantV: "dev", wantC: "none", wantD: "unknown",
		},
		{
			name:    "ldflags win",
			version: "v1.0.0", commit: "fff", date: "today",
			info: debug.BuildInfo{
				Main:     debug.Module{Version: "v0.3.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
			},
			wantV: "v1.0.0", wantC: "fff", wantD: "today",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = tt.version, tt.commit, tt.date
			fillFrom(&tt.info)
			if Version != tt.wantV || Commit != tt.wantC || Date != tt.wantD {
				t.Errorf("got %s/%s/%s, want %s/%s/%s", Version, Commit, Date, tt.wantV, tt.wantC, tt.wantD)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
