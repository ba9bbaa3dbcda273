package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/ws1importer/ws1importer/log"
	"github.com/ws1importer/ws1importer/utils"
)

// placeholderCredentials is the sample value shipped in recipe templates.
// When an operator leaves it in place it must be treated as unset.
const placeholderCredentials = "B64ENCODED_API_CREDENTIALS_HERE"

// fallbackConsoleURL is substituted when no usable console URL is supplied,
// so the console link in the summary is at least recognizably an example.
const fallbackConsoleURL = "https://my-mobile-admin-console.my-org.org"

const defaultVersionsToKeep = 5

// AuthMode selects exactly one way of authenticating against the UEM API.
type AuthMode int

const (
	// AuthOAuth uses an OAuth2 client-credentials token.
	AuthOAuth AuthMode = iota
	// AuthBasic uses username/password basic auth plus the tenant API key.
	AuthBasic
	// AuthEncoded uses a pre-encoded Authorization header value plus the
	// tenant API key.
	AuthEncoded
	// AuthAPIKeyOnly sends only the aw-tenant-code header.
	AuthAPIKeyOnly
)

func (m AuthMode) String() string {
	switch m {
	case AuthOAuth:
		return "oauth"
	case AuthBasic:
		return "basic"
	case AuthEncoded:
		return "encoded"
	case AuthAPIKeyOnly:
		return "api-key"
	}
	return "unknown"
}

// AuthConfig is the resolved credential set. Only the fields belonging to
// Mode are populated.
type AuthConfig struct {
	Mode AuthMode

	// AuthOAuth
	ClientID     string
	ClientSecret string
	TokenURL     string

	// AuthBasic
	Username string
	Password string

	// AuthEncoded
	Encoded string

	// AuthBasic, AuthEncoded, AuthAPIKeyOnly
	APIKey string
}

// PruneMode controls what happens to old app versions on the server.
type PruneMode int

const (
	// PruneDryRun only reports what would be deleted.
	PruneDryRun PruneMode = iota
	// PruneOff skips pruning entirely.
	PruneOff
	// PruneOn deletes versions beyond the retention count.
	PruneOn
)

func (m PruneMode) String() string {
	switch m {
	case PruneDryRun:
		return "dry_run"
	case PruneOff:
		return "off"
	case PruneOn:
		return "on"
	}
	return "unknown"
}

// PrunePolicy is the resolved retention policy for old app versions.
type PrunePolicy struct {
	Mode PruneMode
	Keep int
}

// AssignmentRuleInput is one entry of the ws1_app_assignments recipe input.
// Smart group names and the delay are inputs only; they are translated
// before anything is sent to the API.
type AssignmentRuleInput struct {
	Distribution DistributionInput `json:"distribution"`
}

// DistributionInput is the distribution half of an assignment rule input.
type DistributionInput struct {
	Name                        string   `json:"name"`
	Description                 string   `json:"description"`
	SmartGroupNames             []string `json:"smart_group_names"`
	DelayDays                   string   `json:"distr_delay_days"`
	KeepAppUpdatedAutomatically bool     `json:"keep_app_updated_automatically"`
}

// Settings is the validated configuration for one importer run.
type Settings struct {
	APIURL      string
	ConsoleURL  string
	GroupID     string
	Auth        AuthConfig
	PkgPath     string
	PkginfoPath string
	IconPath    string
	MunkiRepo   string

	SmartGroupName    string
	PushMode          string
	AssignmentRules   []AssignmentRuleInput
	ForceImport       bool
	UpdateAssignments bool

	Prune PrunePolicy
}

// ConfigError marks a failure in the supplied input variables. These abort
// the run before any network call is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// inputVariables is the raw dictionary handed over by the host tool.
type inputVariables struct {
	APIURL     string `json:"ws1_api_url"`
	ConsoleURL string `json:"ws1_console_url"`
	GroupID    string `json:"ws1_groupid"`

	APIToken           string `json:"ws1_api_token"`
	APIUsername        string `json:"ws1_api_username"`
	APIPassword        string `json:"ws1_api_password"`
	EncodedCredentials string `json:"ws1_b64encoded_api_credentials"`
	OAuthClientID      string `json:"ws1_oauth_client_id"`
	OAuthClientSecret  string `json:"ws1_oauth_client_secret"`
	OAuthTokenURL      string `json:"ws1_oauth_token_url"`

	ForceImport       string `json:"ws1_force_import"`
	UpdateAssignments string `json:"ws1_update_assignments"`

	SmartGroupName  string                `json:"ws1_smart_group_name"`
	PushMode        string                `json:"ws1_push_mode"`
	AssignmentRules []AssignmentRuleInput `json:"ws1_app_assignments"`

	VersionsToKeep        string `json:"ws1_app_versions_to_keep"`
	VersionsToKeepDefault string `json:"ws1_app_versions_to_keep_default"`
	VersionsPrune         string `json:"ws1_app_versions_prune"`

	PkgPath     string `json:"pkg_path"`
	PkginfoPath string `json:"pkginfo_path"`
	IconPath    string `json:"icon_path"`
	MunkiRepo   string `json:"munki_repo"`
}

// Load decodes the input-variable dictionary and resolves it into validated
// settings. It performs no network I/O.
func Load(r io.Reader) (*Settings, error) {
	var in inputVariables
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, configErrorf("decoding input variables: %v", err)
	}
	return resolve(&in)
}

func resolve(in *inputVariables) (*Settings, error) {
	if !utils.IsURL(in.APIURL) {
		return nil, configErrorf("ws1_api_url [%s] is missing or not a valid URL", in.APIURL)
	}
	if in.GroupID == "" {
		return nil, configErrorf("ws1_groupid is required")
	}
	if in.PkgPath == "" {
		return nil, configErrorf("pkg_path is required")
	}
	if in.PkginfoPath == "" {
		return nil, configErrorf("pkginfo_path is required")
	}

	auth, err := resolveAuth(in)
	if err != nil {
		return nil, err
	}

	consoleURL := in.ConsoleURL
	if !utils.IsURL(consoleURL) {
		log.Debugf("ws1_console_url [%s] does not look like a valid URL, using example value", consoleURL)
		consoleURL = fallbackConsoleURL
	}

	smartGroup := in.SmartGroupName
	if smartGroup == "none" {
		smartGroup = ""
	}

	s := &Settings{
		APIURL:            in.APIURL,
		ConsoleURL:        consoleURL,
		GroupID:           in.GroupID,
		Auth:              auth,
		PkgPath:           in.PkgPath,
		PkginfoPath:       in.PkginfoPath,
		IconPath:          in.IconPath,
		MunkiRepo:         in.MunkiRepo,
		SmartGroupName:    smartGroup,
		PushMode:          in.PushMode,
		AssignmentRules:   in.AssignmentRules,
		ForceImport:       utils.Truthy(in.ForceImport),
		UpdateAssignments: utils.Truthy(in.UpdateAssignments),
		Prune:             resolvePrune(in),
	}
	return s, nil
}

// resolveAuth picks exactly one auth mode. A complete OAuth configuration
// takes precedence, then pre-encoded credentials, then username/password,
// then a bare API key. Partially supplied variants are rejected rather than
// silently falling through to a weaker mode.
func resolveAuth(in *inputVariables) (AuthConfig, error) {
	encoded := in.EncodedCredentials
	if encoded == placeholderCredentials {
		log.Debug("ignoring placeholder value supplied for ws1_b64encoded_api_credentials")
		encoded = ""
	}

	oauthSupplied := in.OAuthClientID != "" || in.OAuthClientSecret != "" || in.OAuthTokenURL != ""
	if oauthSupplied {
		if in.OAuthClientID == "" || in.OAuthClientSecret == "" {
			return AuthConfig{}, configErrorf("incomplete OAuth configuration: ws1_oauth_client_id and ws1_oauth_client_secret are both required")
		}
		if !utils.IsURL(in.OAuthTokenURL) {
			return AuthConfig{}, configErrorf("ws1_oauth_token_url [%s] is missing or not a valid URL", in.OAuthTokenURL)
		}
		return AuthConfig{
			Mode:         AuthOAuth,
			ClientID:     in.OAuthClientID,
			ClientSecret: in.OAuthClientSecret,
			TokenURL:     in.OAuthTokenURL,
		}, nil
	}

	if encoded != "" {
		return AuthConfig{
			Mode:    AuthEncoded,
			Encoded: encoded,
			APIKey:  in.APIToken,
		}, nil
	}

	if in.APIUsername != "" || in.APIPassword != "" {
		if in.APIUsername == "" || in.APIPassword == "" {
			return AuthConfig{}, configErrorf("incomplete basic auth configuration: ws1_api_username and ws1_api_password are both required")
		}
		return AuthConfig{
			Mode:     AuthBasic,
			Username: in.APIUsername,
			Password: in.APIPassword,
			APIKey:   in.APIToken,
		}, nil
	}

	if in.APIToken != "" {
		return AuthConfig{
			Mode:   AuthAPIKeyOnly,
			APIKey: in.APIToken,
		}, nil
	}

	return AuthConfig{}, configErrorf("no credentials supplied: set OAuth client credentials, basic auth credentials or an API token")
}

func resolvePrune(in *inputVariables) PrunePolicy {
	keepDefault, ok := utils.FirstInteger(in.VersionsToKeepDefault)
	if !ok || keepDefault < 1 {
		keepDefault = defaultVersionsToKeep
	}

	keep, ok := utils.FirstInteger(in.VersionsToKeep)
	if !ok || keep < 1 {
		keep = keepDefault
	}

	var mode PruneMode
	switch strings.ToLower(strings.TrimSpace(in.VersionsPrune)) {
	case "true", "1", "t":
		mode = PruneOn
	case "false", "0", "f":
		mode = PruneOff
	case "", "dry_run":
		mode = PruneDryRun
	default:
		log.Warnf("unrecognized ws1_app_versions_prune value [%s], falling back to dry_run", in.VersionsPrune)
		mode = PruneDryRun
	}

	return PrunePolicy{Mode: mode, Keep: keep}
}
