package types

// AppAssignment is the simple assignment payload for
// POST /api/mam/apps/internal/{id}/assignments (v1).
type AppAssignment struct {
	SmartGroupIDs        []int                `json:"SmartGroupIds"`
	DeploymentParameters DeploymentParameters `json:"DeploymentParameters"`
}

// DeploymentParameters carries the push-deployment options of a simple
// assignment.
type DeploymentParameters struct {
	PushMode                             string `json:"PushMode"`
	AssignmentID                         int    `json:"AssignmentId"`
	MacOsDesiredStateManagement          bool   `json:"MacOsDesiredStateManagement"`
	RemoveOnUnEnroll                     bool   `json:"RemoveOnUnEnroll"`
	AutoUpdateDevicesWithPreviousVersion bool   `json:"AutoUpdateDevicesWithPreviousVersion"`
	VisibleInAppCatalog                  bool   `json:"VisibleInAppCatalog"`
}

// AssignmentRules is the body of GET and PUT
// /api/mam/apps/{uuid}/assignment-rules (v2). A PUT replaces the whole
// collection, there is no per-rule patch.
type AssignmentRules struct {
	Assignments []AssignmentRule `json:"assignments"`
}

// AssignmentRule is one prioritized assignment rule. Rules must be passed
// in order of ascending priority.
type AssignmentRule struct {
	Priority     string       `json:"priority"`
	Distribution Distribution `json:"distribution"`
}

// Distribution describes how one assignment rule deploys the app. An
// effective date in the future hides previous versions of the app from
// newly enrolled devices, so future-dated rules must not be submitted
// before their date.
type Distribution struct {
	Name                                  string   `json:"name"`
	Description                           string   `json:"description"`
	SmartGroups                           []string `json:"smart_groups"`
	EffectiveDate                         string   `json:"effective_date"`
	KeepAppUpdatedAutomatically           bool     `json:"keep_app_updated_automatically"`
	AutoUpdateDevicesWithPreviousVersions bool     `json:"auto_update_devices_with_previous_versions"`
}
