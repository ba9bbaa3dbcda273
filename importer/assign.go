package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/pkginfo"
	"github.com/ws1importer/ws1importer/types"
)

// Assignment rules carry a marker in their description so a later run can
// tell its own rules from ones an operator made by hand. The done marker
// means every configured rule has reached its effective date.
const (
	tagManaged  = "#AUTOPKG"
	tagComplete = "#AUTOPKG_DONE"
)

const effectiveDateLayout = "2006-01-02"

// assignSimple assigns the app to a single smart group with the configured
// push mode (v1 assignment API).
func (im *Importer) assignSimple(appID int, info *pkginfo.PkgInfo, out *Outputs) error {
	groupName := im.settings.SmartGroupName
	sg, err := im.client.FindSmartGroup(groupName)
	if err != nil {
		return err
	}
	DebugLogger(LogHolder{RunID: im.runID, SmartGroup: groupName, Message: "smart group ID: " + strconv.Itoa(sg.SmartGroupID)})

	pushMode := im.settings.PushMode
	assignment := types.AppAssignment{
		SmartGroupIDs: []int{sg.SmartGroupID},
		DeploymentParameters: types.DeploymentParameters{
			PushMode:     pushMode,
			AssignmentID: 1,
			// Desired state management only makes sense when the app is
			// pushed automatically.
			MacOsDesiredStateManagement:          pushMode == "Auto",
			RemoveOnUnEnroll:                     false,
			AutoUpdateDevicesWithPreviousVersion: true,
			VisibleInAppCatalog:                  true,
		},
	}

	if err := im.client.AddAssignment(appID, assignment); err != nil {
		return errors.Wrapf(err, "assigning app [%s] to group [%s]", info.Name, groupName)
	}

	out.AssignmentsChanged = true
	InfoLogger(LogHolder{
		RunID:      im.runID,
		AppName:    info.Name,
		AppVersion: info.Version,
		SmartGroup: groupName,
		Message:    "successfully assigned the app to the group",
	})

	if out.Summary == nil {
		out.Summary = &SummaryResult{
			SummaryText:  "The following new app assignment was made in WorkSpace ONE:",
			ReportFields: []string{"name", "version", "assignment_group"},
			Data: map[string]string{
				"name":             info.Name,
				"version":          info.Version,
				"assignment_group": groupName,
			},
		}
	} else {
		out.Summary.ReportFields = append(out.Summary.ReportFields, "assignment_group")
		out.Summary.Data["assignment_group"] = groupName
	}
	return nil
}

// applyAssignmentRules reconciles the configured rule collection against
// whatever is on the server and replaces the collection when new rules have
// become due (v2 assignment-rules API).
//
// A rule with an effective date in the future would hide previous versions
// of the app from newly enrolled devices, so future-dated rules (and all
// rules after them) are held back until a later run.
func (im *Importer) applyAssignmentRules(appID int, info *pkginfo.PkgInfo, out *Outputs, createdNew bool) error {
	app, err := im.client.GetInternalApplication(appID)
	if err != nil {
		return errors.Wrap(err, "getting internal app details")
	}
	DebugLogger(LogHolder{RunID: im.runID, AppID: strconv.Itoa(appID), Message: "app uuid: " + app.UUID})

	existing, err := im.client.AssignmentRules(app.UUID)
	if err != nil {
		return errors.Wrap(err, "getting existing app assignment rules")
	}

	if len(existing.Assignments) == 0 && !createdNew {
		InfoLogger(LogHolder{
			RunID:   im.runID,
			AppName: info.Name,
			Message: "no existing assignment rules found, operator must have removed those - skipping",
		})
		return nil
	}

	today := im.today()
	baseDay := today
	if len(existing.Assignments) > 0 {
		for _, rule := range existing.Assignments {
			desc := rule.Distribution.Description
			if strings.Contains(desc, tagComplete) {
				InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, Message: "assignment rules are already marked as complete"})
				return nil
			}
			if !strings.Contains(desc, tagManaged) {
				InfoLogger(LogHolder{
					RunID:   im.runID,
					AppName: info.Name,
					Message: "existing assignment rules were not made by this importer - skipping",
				})
				return nil
			}
		}

		if d := existing.Assignments[0].Distribution.EffectiveDate; d != "" {
			day, err := parseEffectiveDate(d)
			if err != nil {
				return err
			}
			baseDay = day
		}
	}

	rules, applied, err := im.buildRules(baseDay, today)
	if err != nil {
		return err
	}
	if applied < len(im.settings.AssignmentRules) {
		InfoLogger(LogHolder{
			RunID:   im.runID,
			AppName: info.Name,
			Message: "skipping assignment rules designated for a future date",
		})
	}

	// The server already holds at least this many of our rules; nothing
	// new has become due.
	if len(rules) <= len(existing.Assignments) {
		InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, Message: "no new assignment rules to apply at this time"})
		return nil
	}

	if err := im.client.UpdateAssignmentRules(app.UUID, types.AssignmentRules{Assignments: rules}); err != nil {
		return errors.Wrapf(err, "setting assignment rules for [%s] version [%s]", app.ApplicationName, app.ActualFileVersion)
	}

	out.AssignmentsChanged = true
	InfoLogger(LogHolder{
		RunID:      im.runID,
		AppName:    info.Name,
		AppVersion: info.Version,
		Message:    "successfully set assignment rules",
	})

	var newRules []string
	for _, rule := range rules[len(existing.Assignments):] {
		newRules = append(newRules, "["+rule.Priority+": "+rule.Distribution.Name+"]")
	}
	consoleLoc := out.ConsoleURL
	if consoleLoc == "" {
		consoleLoc = im.settings.ConsoleURL + "/AirWatch/#/AirWatch/Apps/Details/Internal/" + strconv.Itoa(appID) + "/Assignment"
	}
	if out.Summary == nil {
		out.Summary = &SummaryResult{
			SummaryText:  "The following new app assignment rules are applied in WorkSpace ONE:",
			ReportFields: []string{"name", "version", "new_assignment_rules", "console_location"},
			Data: map[string]string{
				"name":                 info.Name,
				"version":              info.Version,
				"new_assignment_rules": strings.Join(newRules, " "),
				"console_location":     consoleLoc,
			},
		}
	} else {
		out.Summary.ReportFields = append(out.Summary.ReportFields, "new_assignment_rules")
		out.Summary.Data["new_assignment_rules"] = strings.Join(newRules, " ")
	}
	return nil
}

// buildRules translates the rule inputs into API payloads, resolving smart
// group names and computing effective dates. Building stops at the first
// rule whose effective date lies in the future; applied reports how many
// inputs made it in. A smart group that fails to resolve is an error, not a
// truncation: submitting a shortened collection would silently change what
// the operator configured.
func (im *Importer) buildRules(baseDay, today time.Time) ([]types.AssignmentRule, int, error) {
	inputs := im.settings.AssignmentRules
	var rules []types.AssignmentRule

	for i, input := range inputs {
		dist := types.Distribution{
			Name:                        input.Distribution.Name,
			Description:                 input.Distribution.Description,
			KeepAppUpdatedAutomatically: input.Distribution.KeepAppUpdatedAutomatically,
			// Required alongside keep_app_updated_automatically for apps to
			// actually update.
			AutoUpdateDevicesWithPreviousVersions: input.Distribution.KeepAppUpdatedAutomatically,
		}

		for _, groupName := range input.Distribution.SmartGroupNames {
			sg, err := im.client.FindSmartGroup(groupName)
			if err != nil {
				return nil, 0, errors.Wrapf(err, "resolving smart group [%s] for assignment rule [%s]", groupName, input.Distribution.Name)
			}
			dist.SmartGroups = append(dist.SmartGroups, sg.SmartGroupUUID)
		}

		delayDays := 0
		if input.Distribution.DelayDays != "" {
			n, err := strconv.Atoi(input.Distribution.DelayDays)
			if err != nil {
				ErrorLogger(LogHolder{RunID: im.runID, Message: "invalid distr_delay_days [" + input.Distribution.DelayDays + "], treating as 0"})
			} else {
				delayDays = n
			}
		}

		deployDay := baseDay.AddDate(0, 0, delayDays)
		if deployDay.After(today) {
			return rules, i, nil
		}
		dist.EffectiveDate = deployDay.Format(effectiveDateLayout)

		if i == len(inputs)-1 {
			dist.Description += " " + tagComplete
		} else {
			dist.Description += " " + tagManaged
		}

		rules = append(rules, types.AssignmentRule{
			Priority:     strconv.Itoa(i),
			Distribution: dist,
		})
	}
	return rules, len(inputs), nil
}

// today is the current date truncated to midnight.
func (im *Importer) today() time.Time {
	y, m, d := im.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseEffectiveDate reads just the date half of the ISO-8601 timestamps
// the assignment-rules endpoint returns. The time half sometimes carries
// fractional seconds and never a timezone, so only the date is trusted.
func parseEffectiveDate(s string) (time.Time, error) {
	datePart := strings.SplitN(s, "T", 2)[0]
	day, err := time.Parse(effectiveDateLayout, datePart)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing effective date [%s]", s)
	}
	return day, nil
}
