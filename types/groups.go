package types

// OrganizationGroupSearchResult is the body of
// GET /api/system/groups/search (v2).
type OrganizationGroupSearchResult struct {
	OrganizationGroups []OrganizationGroup `json:"OrganizationGroups"`
}

// OrganizationGroup is one organization group entry.
type OrganizationGroup struct {
	ID      int    `json:"Id"`
	GroupID string `json:"GroupId"`
	Name    string `json:"Name"`
}

// SmartGroupSearchResult is the body of GET /api/mdm/smartgroups/search.
type SmartGroupSearchResult struct {
	SmartGroups []SmartGroup `json:"SmartGroups"`
}

// SmartGroup identifies a device smart group. The v1 assignment API wants
// the numeric ID, the v2 assignment-rules API wants the UUID.
type SmartGroup struct {
	Name           string `json:"Name"`
	SmartGroupID   int    `json:"SmartGroupID"`
	SmartGroupUUID string `json:"SmartGroupUuid"`
}
