package types

// PlatformMacOS is the UEM platform code for macOS applications.
const PlatformMacOS = 10

// ApplicationSearchResult is the body of GET /api/mam/apps/search.
type ApplicationSearchResult struct {
	Application []Application `json:"Application"`
}

// Application is one entry of an application search result.
type Application struct {
	ID                  IDValue `json:"Id"`
	UUID                string  `json:"Uuid"`
	ApplicationName     string  `json:"ApplicationName"`
	ActualFileVersion   string  `json:"ActualFileVersion"`
	Platform            int     `json:"Platform"`
	AssignedDeviceCount int     `json:"AssignedDeviceCount"`
	Status              string  `json:"Status"`
}

// IDValue is the nested identifier wrapper the v1 API uses.
type IDValue struct {
	Value int `json:"Value"`
}

// InternalApplication is the body of GET /api/mam/apps/internal/{id}.
type InternalApplication struct {
	UUID              string `json:"uuid"`
	ApplicationName   string `json:"ApplicationName"`
	ActualFileVersion string `json:"ActualFileVersion"`
	Status            string `json:"Status"`
}

// ApplicationDetails is the create payload for
// POST /api/mam/groups/{og}/macos/apps. Blob identifiers are passed as
// strings regardless of how the upload endpoint reported them.
type ApplicationDetails struct {
	PkgInfoBlobID     string `json:"pkgInfoBlobId"`
	ApplicationBlobID string `json:"applicationBlobId"`
	ApplicationIconID string `json:"applicationIconId,omitempty"`
	Version           string `json:"version"`
}

// BlobUploadResult is the body of POST /api/mam/blobs/uploadblob.
type BlobUploadResult struct {
	Value int `json:"Value"`
}

// ErrorResponse is the common error body returned by the MAM endpoints.
type ErrorResponse struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
}
