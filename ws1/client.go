package ws1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Client is a WorkSpace ONE UEM REST API client. One Client is constructed
// per run and its authenticated session is reused for every call.
type Client struct {
	baseURL    string
	auth       Authenticator
	httpClient *http.Client
}

// NewClient creates a new UEM API client.
func NewClient(baseURL string, auth Authenticator) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       auth,
		httpClient: &http.Client{},
	}
}

// doRequest executes a request against a v1 endpoint. A non-nil body is
// marshaled as JSON.
func (c *Client) doRequest(method, urlPath string, query url.Values, body interface{}) (*http.Response, error) {
	return c.do(method, urlPath, query, body, false)
}

// doRequestV2 is doRequest against the v2 flavor of an endpoint, selected
// through the Accept header.
func (c *Client) doRequestV2(method, urlPath string, query url.Values, body interface{}) (*http.Response, error) {
	return c.do(method, urlPath, query, body, true)
}

func (c *Client) do(method, urlPath string, query url.Values, body interface{}, v2 bool) (*http.Response, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing UEM base URL")
	}
	endpoint.Path = path.Join(endpoint.Path, urlPath)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "marshaling %s %s body", method, urlPath)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, endpoint.String(), bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "creating UEM request")
	}

	accept := "application/json"
	if v2 {
		accept = "application/json;version=2"
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.auth.Apply(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "UEM %s %s", method, urlPath)
	}

	return resp, nil
}

// decodeBody decodes a JSON response body into v and closes it.
func decodeBody(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding %s response", resp.Request.URL.Path)
	}
	return nil
}

// unexpectedStatus drains the response and returns an error carrying the
// status and whatever the server said. The MAM endpoints usually answer
// with an errorCode/message body, which reads better than raw JSON.
func unexpectedStatus(resp *http.Response) error {
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	var apiErr struct {
		ErrorCode int    `json:"errorCode"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("UEM %s %s returned status %d: %d - %s",
			resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, apiErr.ErrorCode, apiErr.Message)
	}
	return fmt.Errorf("UEM %s %s returned unexpected status %d: %s",
		resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, string(respBody))
}
