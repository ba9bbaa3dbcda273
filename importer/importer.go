package importer

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/pkginfo"
	"github.com/ws1importer/ws1importer/settings"
	"github.com/ws1importer/ws1importer/ws1"
)

// Importer runs one import of one package against one UEM tenant. All
// state lives here for the duration of the run; nothing is persisted.
type Importer struct {
	client   *ws1.Client
	settings *settings.Settings
	runID    string
	now      func() time.Time
}

// New creates an Importer for one run.
func New(client *ws1.Client, s *settings.Settings) *Importer {
	return &Importer{
		client:   client,
		settings: s,
		runID:    uuid.New().String(),
		now:      time.Now,
	}
}

// Run performs the import and returns the output variables for the host
// tool. The returned Outputs is valid even when err is non-nil.
func (im *Importer) Run() (*Outputs, error) {
	out := &Outputs{RunID: im.runID}

	info, err := pkginfo.Read(im.settings.PkginfoPath)
	if err != nil {
		return out, &settings.ConfigError{Reason: err.Error()}
	}

	if info.InstallerItemHash != "" {
		sum, err := pkginfo.SHA256File(im.settings.PkgPath)
		if err != nil {
			return out, &settings.ConfigError{Reason: err.Error()}
		}
		if sum != info.InstallerItemHash {
			return out, &settings.ConfigError{
				Reason: "installer item differs from the hash recorded in its pkginfo, please check",
			}
		}
	}

	iconPath := im.settings.IconPath
	if iconPath == "" {
		iconPath = info.FindIcon(im.settings.MunkiRepo)
	}

	InfoLogger(LogHolder{
		RunID:      im.runID,
		AppName:    info.Name,
		AppVersion: info.Version,
		Message:    "beginning the WorkSpace ONE import process",
	})

	ogID, err := im.client.FindOrganizationGroup(im.settings.GroupID)
	if err != nil {
		return out, err
	}
	DebugLogger(LogHolder{RunID: im.runID, Message: "organization group ID: " + strconv.Itoa(ogID)})

	search, err := im.client.SearchApplications(info.Name, ogID)
	if err != nil {
		return out, errors.Wrap(err, "checking for pre-existing app versions")
	}

	// Older versions are handled before the current one so a keep count of
	// N leaves room for the version imported below.
	if err := im.prune(search, info.Name, out); err != nil {
		return out, err
	}

	pres := classifyPresence(search, info.Name, info.Version)
	switch pres.state {
	case presenceIdentical:
		appID := pres.app.ID.Value
		out.AppID = strconv.Itoa(appID)

		if !im.settings.ForceImport {
			if im.settings.UpdateAssignments {
				return out, im.updateAssignments(appID, info, out)
			}
			InfoLogger(LogHolder{
				RunID:      im.runID,
				AppName:    info.Name,
				AppVersion: info.Version,
				AppID:      out.AppID,
				Message:    "version already present on server and neither force import nor update assignments is set, nothing to do",
			})
			return out, nil
		}

		InfoLogger(LogHolder{
			RunID:      im.runID,
			AppName:    info.Name,
			AppVersion: info.Version,
			AppID:      out.AppID,
			Message:    "version already present on server and force import is set, deleting it first",
		})
		if err := im.deleteExisting(appID); err != nil {
			return out, err
		}

	case presenceNeedsUpdate:
		InfoLogger(LogHolder{
			RunID:      im.runID,
			AppName:    info.Name,
			AppVersion: info.Version,
			Message:    "title exists on server without this version, will upload",
		})

	case presenceAbsent:
		InfoLogger(LogHolder{
			RunID:      im.runID,
			AppName:    info.Name,
			AppVersion: info.Version,
			Message:    "version not yet present on server, will attempt upload",
		})
	}

	appID, err := im.upload(info, iconPath, ogID, out)
	if err != nil {
		return out, err
	}

	return out, im.configureAssignments(appID, info, out)
}

// deleteExisting removes a pre-existing app record. Deletion is
// asynchronous on the server side, so the record is checked once and the
// delete reissued if it still lingers.
func (im *Importer) deleteExisting(appID int) error {
	if err := im.client.DeleteInternalApplication(appID); err != nil {
		return errors.Wrap(err, "force import - delete of pre-existing app failed")
	}

	exists, err := im.client.InternalApplicationExists(appID)
	if err != nil {
		return errors.Wrap(err, "force import - verifying delete of pre-existing app failed")
	}
	if exists {
		DebugLogger(LogHolder{RunID: im.runID, AppID: strconv.Itoa(appID), Message: "app not deleted yet, retrying"})
		if err := im.client.DeleteInternalApplication(appID); err != nil {
			return errors.Wrap(err, "force import - delete of pre-existing app failed")
		}
	}

	InfoLogger(LogHolder{RunID: im.runID, AppID: strconv.Itoa(appID), Message: "pre-existing app successfully deleted"})
	return nil
}

// updateAssignments refreshes the assignment collection of an app version
// that is already on the server. Which collection gets refreshed depends on
// whether the simple or the rule-based input was supplied.
func (im *Importer) updateAssignments(appID int, info *pkginfo.PkgInfo, out *Outputs) error {
	switch {
	case im.settings.SmartGroupName != "":
		DebugLogger(LogHolder{RunID: im.runID, Message: "updating simple app assignment"})
		return im.assignSimple(appID, info, out)
	case len(im.settings.AssignmentRules) > 0:
		DebugLogger(LogHolder{RunID: im.runID, Message: "updating rule-based app assignments"})
		return im.applyAssignmentRules(appID, info, out, false)
	default:
		return &settings.ConfigError{
			Reason: "ws1_update_assignments is set but neither ws1_smart_group_name nor ws1_app_assignments is",
		}
	}
}

// configureAssignments sets up assignments right after a record was
// created.
func (im *Importer) configureAssignments(appID int, info *pkginfo.PkgInfo, out *Outputs) error {
	switch {
	case im.settings.SmartGroupName != "":
		return im.assignSimple(appID, info, out)
	case len(im.settings.AssignmentRules) > 0:
		return im.applyAssignmentRules(appID, info, out, true)
	default:
		DebugLogger(LogHolder{RunID: im.runID, Message: "no assignment inputs supplied, leaving app unassigned"})
		return nil
	}
}
