package ws1

import (
	"net/http"
	"strconv"

	"github.com/ws1importer/ws1importer/types"
)

// AddAssignment assigns an app version to smart groups with the given
// deployment parameters (v1 API).
func (c *Client) AddAssignment(appID int, assignment types.AppAssignment) error {
	urlPath := "/api/mam/apps/internal/" + strconv.Itoa(appID) + "/assignments"
	resp, err := c.doRequest("POST", urlPath, nil, assignment)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return unexpectedStatus(resp)
	}
	resp.Body.Close()
	return nil
}

// AssignmentRules fetches the current assignment-rule collection of an app
// (v2 API, keyed by app UUID).
func (c *Client) AssignmentRules(appUUID string) (*types.AssignmentRules, error) {
	resp, err := c.doRequestV2("GET", "/api/mam/apps/"+appUUID+"/assignment-rules", nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(resp)
	}

	var rules types.AssignmentRules
	if err := decodeBody(resp, &rules); err != nil {
		return nil, err
	}
	return &rules, nil
}

// UpdateAssignmentRules replaces the whole assignment-rule collection of an
// app (v2 API). The endpoint acknowledges with a 202.
func (c *Client) UpdateAssignmentRules(appUUID string, rules types.AssignmentRules) error {
	resp, err := c.doRequestV2("PUT", "/api/mam/apps/"+appUUID+"/assignment-rules", nil, rules)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusAccepted {
		return unexpectedStatus(resp)
	}
	resp.Body.Close()
	return nil
}
