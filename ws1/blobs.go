package ws1

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/types"
)

// UploadBlob streams a local file to the blob store of an organization
// group and returns the blob ID to reference from an app record. The file
// is streamed as the raw request body; the endpoint takes the filename as a
// query parameter.
func (c *Client) UploadBlob(filePath string, ogID int) (int, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, errors.Wrapf(err, "opening [%s] for upload", filePath)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "sizing [%s] for upload", filePath)
	}

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, errors.Wrap(err, "parsing UEM base URL")
	}
	endpoint.Path = path.Join(endpoint.Path, "/api/mam/blobs/uploadblob")

	params := url.Values{}
	params.Set("filename", filepath.Base(filePath))
	params.Set("organizationGroupId", strconv.Itoa(ogID))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequest("POST", endpoint.String(), f)
	if err != nil {
		return 0, errors.Wrap(err, "creating blob upload request")
	}
	req.ContentLength = stat.Size()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/octet-stream")
	if err := c.auth.Apply(req); err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "uploading blob [%s]", filepath.Base(filePath))
	}
	if resp.StatusCode != http.StatusOK {
		return 0, unexpectedStatus(resp)
	}

	var result types.BlobUploadResult
	if err := decodeBody(resp, &result); err != nil {
		return 0, err
	}
	if result.Value == 0 {
		return 0, errors.Errorf("blob upload of [%s] returned no blob ID", filepath.Base(filePath))
	}
	return result.Value, nil
}
