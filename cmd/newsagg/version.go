package main

import "runtime/debug"

// version is injected at build time:
//
//	go build -ldflags="-X main.version=$(git describe --tags --always --dirty)" ./cmd/newsagg
var version = "dev"

// resolveVersion prefers the ldflags version, then the module version recorded
// by go install, then "dev".
func resolveVersion(v string, info *debug.BuildInfo) string {
	if v != "dev" {
		return v
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

func readBuildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}
