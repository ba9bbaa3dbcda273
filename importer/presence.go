package importer

import (
	"strings"

	"github.com/ws1importer/ws1importer/types"
)

// presence is the result of the remote existence check. It is the only
// meaningful decision point in a run.
type presence int

const (
	// presenceAbsent - no version of the title exists on the server.
	presenceAbsent presence = iota
	// presenceNeedsUpdate - the title exists but not this version, so the
	// record needs a new version uploaded.
	presenceNeedsUpdate
	// presenceIdentical - this exact version is already on the server.
	presenceIdentical
)

type presenceResult struct {
	state presence
	app   *types.Application
}

// classifyPresence inspects the application search result for a macOS app
// matching the title and version being imported. The server may report a
// shortened application name, so a server name contained in the local name
// counts as the same title (matching the console's own search behavior).
func classifyPresence(search *types.ApplicationSearchResult, appName, appVersion string) presenceResult {
	titleFound := false
	for i := range search.Application {
		app := &search.Application[i]
		if app.Platform != types.PlatformMacOS || !strings.Contains(appName, app.ApplicationName) {
			continue
		}
		titleFound = true
		if app.ActualFileVersion == appVersion {
			return presenceResult{state: presenceIdentical, app: app}
		}
	}
	if titleFound {
		return presenceResult{state: presenceNeedsUpdate}
	}
	return presenceResult{state: presenceAbsent}
}
