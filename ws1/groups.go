package ws1

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/types"
)

// FindOrganizationGroup resolves an organization group ID string (the
// console "Group ID") to the numeric identifier the MAM endpoints want.
func (c *Client) FindOrganizationGroup(groupID string) (int, error) {
	params := url.Values{}
	params.Set("groupid", groupID)

	resp, err := c.doRequestV2("GET", "/api/system/groups/search", params, nil)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, unexpectedStatus(resp)
	}

	var result types.OrganizationGroupSearchResult
	if err := decodeBody(resp, &result); err != nil {
		return 0, err
	}

	for _, og := range result.OrganizationGroups {
		if og.GroupID == groupID {
			return og.ID, nil
		}
	}
	return 0, errors.Errorf("unable to retrieve an ID for the organization group [%s]", groupID)
}

// FindSmartGroup resolves a smart group name to its identifiers. The search
// endpoint matches loosely, so the first result whose name contains the
// requested name wins.
func (c *Client) FindSmartGroup(name string) (*types.SmartGroup, error) {
	params := url.Values{}
	params.Set("name", name)

	resp, err := c.doRequest("GET", "/api/mdm/smartgroups/search", params, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("no smart group found for [%s]", name)
	}

	var result types.SmartGroupSearchResult
	if err := decodeBody(resp, &result); err != nil {
		return nil, err
	}

	for i := range result.SmartGroups {
		sg := &result.SmartGroups[i]
		if strings.Contains(sg.Name, name) {
			return sg, nil
		}
	}
	return nil, errors.Errorf("no smart group found for [%s]", name)
}
