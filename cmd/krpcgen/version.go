package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the module version for released builds and
// "devel-<VERSION>[+<rev>][-dirty]" for builds from a checkout.
func Version() string {
	info, _ := debug.ReadBuildInfo()
	return buildVersion(strings.TrimSpace(embeddedVersion), info)
}

func buildVersion(base string, info *debug.BuildInfo) string {
	if info == nil {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	var sb strings.Builder
	sb.WriteString("devel-")
	sb.WriteString(base)
	if len(rev) >= 7 {
		sb.WriteString("+")
		sb.WriteString(rev[:7])
	}
	if dirty {
		sb.WriteString("-dirty")
	}
	return sb.String()
}
