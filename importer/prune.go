package importer

import (
	"sort"
	"strconv"
	"strings"

	version "github.com/hashicorp/go-version"
	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/settings"
	"github.com/ws1importer/ws1importer/types"
)

// prune deletes versions of the title beyond the retention count, oldest
// first. In dry-run mode it only reports the plan. There is no transactional
// guarantee: a failed delete aborts the run and leaves the set partially
// pruned; a re-run picks up where it left off.
func (im *Importer) prune(search *types.ApplicationSearchResult, appName string, out *Outputs) error {
	policy := im.settings.Prune
	if policy.Mode == settings.PruneOff {
		DebugLogger(LogHolder{RunID: im.runID, AppName: appName, Message: "version pruning is disabled, skipping"})
		return nil
	}

	var versions []*types.Application
	for i := range search.Application {
		app := &search.Application[i]
		if app.Platform == types.PlatformMacOS && strings.Contains(appName, app.ApplicationName) {
			versions = append(versions, app)
		}
	}

	InfoLogger(LogHolder{
		RunID:   im.runID,
		AppName: appName,
		Message: "found " + strconv.Itoa(len(versions)) + " versions on server, keeping up to " + strconv.Itoa(policy.Keep),
	})

	excess := len(versions) - policy.Keep
	if excess <= 0 {
		return nil
	}

	sortOldestFirst(versions)
	doomed := versions[:excess]

	if policy.Mode == settings.PruneDryRun {
		for _, app := range doomed {
			InfoLogger(LogHolder{
				RunID:      im.runID,
				AppName:    appName,
				AppVersion: app.ActualFileVersion,
				AppID:      strconv.Itoa(app.ID.Value),
				Message:    "dry run - this version would be pruned",
			})
		}
		return nil
	}

	var prunedVersions []string
	for _, app := range doomed {
		DebugLogger(LogHolder{RunID: im.runID, AppVersion: app.ActualFileVersion, Message: "deleting old version"})
		if err := im.client.DeleteInternalApplication(app.ID.Value); err != nil {
			return errors.Wrapf(err, "pruning version [%s] of [%s]", app.ActualFileVersion, appName)
		}
		InfoLogger(LogHolder{
			RunID:      im.runID,
			AppName:    appName,
			AppVersion: app.ActualFileVersion,
			Message:    "successfully deleted old version",
		})
		prunedVersions = append(prunedVersions, "["+app.ActualFileVersion+"]")
	}

	out.Pruned = true
	out.Summary = &SummaryResult{
		SummaryText:  "Old software versions pruned",
		ReportFields: []string{"name", "pruned_versions", "pruned_versions_num"},
		Data: map[string]string{
			"name":                appName,
			"pruned_versions":     strings.Join(prunedVersions, " "),
			"pruned_versions_num": strconv.Itoa(len(prunedVersions)),
		},
	}
	return nil
}

// sortOldestFirst orders the version set ascending. When every reported
// version string parses, versions are compared numerically; otherwise the
// service-reported order is kept as-is, which lists older uploads first.
func sortOldestFirst(apps []*types.Application) {
	type entry struct {
		app *types.Application
		ver *version.Version
	}

	entries := make([]entry, len(apps))
	for i, app := range apps {
		v, err := version.NewVersion(app.ActualFileVersion)
		if err != nil {
			return
		}
		entries[i] = entry{app: app, ver: v}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ver.LessThan(entries[j].ver)
	})
	for i := range entries {
		apps[i] = entries[i].app
	}
}
