package importer

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/pkginfo"
	"github.com/ws1importer/ws1importer/types"
)

// upload pushes the package, its pkginfo and (best effort) an icon to the
// blob store, then creates the app record referencing them. Returns the new
// application ID.
func (im *Importer) upload(info *pkginfo.PkgInfo, iconPath string, ogID int, out *Outputs) (int, error) {
	InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, AppVersion: info.Version, Message: "uploading pkg"})
	pkgBlobID, err := im.client.UploadBlob(im.settings.PkgPath, ogID)
	if err != nil {
		return 0, errors.Wrap(err, "uploading the pkg")
	}
	DebugLogger(LogHolder{RunID: im.runID, Message: "pkg blob ID: " + strconv.Itoa(pkgBlobID)})

	InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, AppVersion: info.Version, Message: "uploading pkginfo"})
	infoBlobID, err := im.client.UploadBlob(im.settings.PkginfoPath, ogID)
	if err != nil {
		return 0, errors.Wrap(err, "uploading the pkginfo")
	}
	DebugLogger(LogHolder{RunID: im.runID, Message: "pkginfo blob ID: " + strconv.Itoa(infoBlobID)})

	details := types.ApplicationDetails{
		ApplicationBlobID: strconv.Itoa(pkgBlobID),
		PkgInfoBlobID:     strconv.Itoa(infoBlobID),
		Version:           info.Version,
	}

	if iconPath != "" {
		InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, Message: "uploading icon"})
		iconBlobID, err := im.client.UploadBlob(iconPath, ogID)
		if err != nil {
			// An icon is cosmetic, the app record is created without one.
			WarnLogger(LogHolder{RunID: im.runID, AppName: info.Name, Message: "icon upload failed, continuing app creation: " + err.Error()})
		} else {
			details.ApplicationIconID = strconv.Itoa(iconBlobID)
		}
	}

	InfoLogger(LogHolder{RunID: im.runID, AppName: info.Name, AppVersion: info.Version, Message: "creating app record"})
	appID, err := im.client.CreateApplication(ogID, details)
	if err != nil {
		return 0, errors.Wrap(err, "creating the app record")
	}

	out.AppID = strconv.Itoa(appID)
	out.ImportedNew = true
	out.ConsoleURL = fmt.Sprintf("%s/AirWatch/#/AirWatch/Apps/Details/Internal/%d", im.settings.ConsoleURL, appID)
	out.Summary = &SummaryResult{
		SummaryText:  "The following new app was imported in WorkSpace ONE:",
		ReportFields: []string{"name", "version", "console_location"},
		Data: map[string]string{
			"name":             info.Name,
			"version":          info.Version,
			"console_location": out.ConsoleURL,
		},
	}

	InfoLogger(LogHolder{
		RunID:      im.runID,
		AppName:    info.Name,
		AppVersion: info.Version,
		AppID:      out.AppID,
		Message:    "app created, see in console at " + out.ConsoleURL,
	})
	return appID, nil
}
