package main

import (
	"runtime/debug"
	"testing"
)

// TestResolveVersion documents where --version gets its value:
// - a release build's ldflags version wins
// - `go install ...@vX` falls back to the module version in build info
// - local builds ("(devel)", empty or missing build info) report "dev"
func TestResolveVersion(t *testing.T) {
	testCases := map[string]struct {
		ldflags string
		info    *debug.BuildInfo
		want    string
	}{
		"ldflags wins":         {"v1.2.3", &debug.BuildInfo{Main: debug.Module{Version: "v0.0.0"}}, "v1.2.3"},
		"go install version":   {"dev", &debug.BuildInfo{Main: debug.Module{Version: "v1.4.0"}}, "v1.4.0"},
		"local devel build":    {"dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev"},
		"empty module version": {"dev", &debug.BuildInfo{}, "dev"},
		"no build info":        {"dev", nil, "dev"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := resolveVersion(tc.ldflags, tc.info); got != tc.want {
				t.Errorf("resolveVersion(%q) = %q, want %q", tc.ldflags, got, tc.want)
			}
		})
	}
}
