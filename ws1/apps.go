package ws1

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/types"
)

// SearchApplications returns every application version whose name matches
// within the organization group. A 204 means no versions exist, which is
// not an error.
func (c *Client) SearchApplications(name string, ogID int) (*types.ApplicationSearchResult, error) {
	params := url.Values{}
	params.Set("applicationname", name)
	params.Set("locationgroupid", strconv.Itoa(ogID))

	resp, err := c.doRequest("GET", "/api/mam/apps/search", params, nil)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var result types.ApplicationSearchResult
		if err := decodeBody(resp, &result); err != nil {
			return nil, err
		}
		return &result, nil
	case http.StatusNoContent:
		resp.Body.Close()
		return &types.ApplicationSearchResult{}, nil
	default:
		return nil, unexpectedStatus(resp)
	}
}

// GetInternalApplication fetches the full record of an internal app,
// including the UUID the v2 assignment-rules endpoints key on.
func (c *Client) GetInternalApplication(appID int) (*types.InternalApplication, error) {
	resp, err := c.doRequest("GET", "/api/mam/apps/internal/"+strconv.Itoa(appID), nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var app types.InternalApplication
	if err := decodeBody(resp, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// InternalApplicationExists reports whether an internal app record is still
// present. The API answers 401 for an internal app that has just been
// deleted, so both 401 and 404 count as gone.
func (c *Client) InternalApplicationExists(appID int) (bool, error) {
	resp, err := c.doRequest("GET", "/api/mam/apps/internal/"+strconv.Itoa(appID), nil, nil)
	if err != nil {
		return false, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		resp.Body.Close()
		return true, nil
	case http.StatusUnauthorized, http.StatusNotFound:
		resp.Body.Close()
		return false, nil
	default:
		return false, unexpectedStatus(resp)
	}
}

// DeleteInternalApplication deletes one version of an internal app.
func (c *Client) DeleteInternalApplication(appID int) error {
	resp, err := c.doRequest("DELETE", "/api/mam/apps/internal/"+strconv.Itoa(appID), nil, nil)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusNoContent:
		resp.Body.Close()
		return nil
	default:
		return unexpectedStatus(resp)
	}
}

// CreateApplication creates the app record referencing previously uploaded
// blobs and returns the new application ID, which the API reports as the
// last element of the Location response header.
func (c *Client) CreateApplication(ogID int, details types.ApplicationDetails) (int, error) {
	urlPath := "/api/mam/groups/" + strconv.Itoa(ogID) + "/macos/apps"
	resp, err := c.doRequest("POST", urlPath, nil, details)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusCreated {
		return 0, unexpectedStatus(resp)
	}
	resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return 0, errors.New("app create response is missing the Location header")
	}
	parts := strings.Split(strings.TrimRight(location, "/"), "/")
	appID, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, errors.Wrapf(err, "parsing application ID from Location header [%s]", location)
	}
	return appID, nil
}
