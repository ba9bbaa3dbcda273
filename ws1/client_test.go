package ws1

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ws1importer/ws1importer/types"
)

func TestSearchApplications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/api/mam/apps/search", r.URL.Path)
		assert.Equal(t, "Foo App", r.URL.Query().Get("applicationname"))
		assert.Equal(t, "640", r.URL.Query().Get("locationgroupid"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "hunter2", pass)
		assert.Equal(t, "tenant-code", r.Header.Get("aw-tenant-code"))

		result := types.ApplicationSearchResult{
			Application: []types.Application{
				{ID: types.IDValue{Value: 42}, ApplicationName: "Foo App", ActualFileVersion: "1.0", Platform: types.PlatformMacOS},
			},
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	client := NewClient(server.URL, &BasicAuthenticator{Username: "admin", Password: "hunter2", APIKey: "tenant-code"})
	result, err := client.SearchApplications("Foo App", 640)
	require.NoError(t, err)
	require.Len(t, result.Application, 1)
	assert.Equal(t, 42, result.Application[0].ID.Value)
}

func TestSearchApplicationsNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	result, err := client.SearchApplications("Foo App", 640)
	require.NoError(t, err)
	assert.Empty(t, result.Application)
}

func TestSearchApplicationsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errorCode":1001,"message":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	_, err := client.SearchApplications("Foo App", 640)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "boom")
}

func TestCreateApplication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/mam/groups/640/macos/apps", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var details types.ApplicationDetails
		require.NoError(t, json.NewDecoder(r.Body).Decode(&details))
		assert.Equal(t, "17", details.ApplicationBlobID)
		assert.Equal(t, "18", details.PkgInfoBlobID)
		assert.Equal(t, "1.0", details.Version)

		w.Header().Set("Location", "https://myorg.awmdm.com/api/mam/apps/internal/4711")
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	appID, err := client.CreateApplication(640, types.ApplicationDetails{
		ApplicationBlobID: "17",
		PkgInfoBlobID:     "18",
		Version:           "1.0",
	})
	require.NoError(t, err)
	assert.Equal(t, 4711, appID)
}

func TestCreateApplicationMissingLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	_, err := client.CreateApplication(640, types.ApplicationDetails{Version: "1.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Location")
}

func TestDeleteInternalApplication(t *testing.T) {
	var method, urlPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		urlPath = r.URL.Path
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	require.NoError(t, client.DeleteInternalApplication(42))
	assert.Equal(t, "DELETE", method)
	assert.Equal(t, "/api/mam/apps/internal/42", urlPath)
}

func TestInternalApplicationExists(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"uuid":"abc"}`))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})

	exists, err := client.InternalApplicationExists(42)
	require.NoError(t, err)
	assert.True(t, exists)

	// The API answers 401 for deleted internal apps.
	status = http.StatusUnauthorized
	exists, err = client.InternalApplicationExists(42)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUploadBlob(t *testing.T) {
	payload := []byte("pretend this is a pkg")
	pkgPath := filepath.Join(t.TempDir(), "Foo-1.0.pkg")
	require.NoError(t, os.WriteFile(pkgPath, payload, 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/mam/blobs/uploadblob", r.URL.Path)
		assert.Equal(t, "Foo-1.0.pkg", r.URL.Query().Get("filename"))
		assert.Equal(t, "640", r.URL.Query().Get("organizationGroupId"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, body)

		json.NewEncoder(w).Encode(types.BlobUploadResult{Value: 1234})
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	blobID, err := client.UploadBlob(pkgPath, 640)
	require.NoError(t, err)
	assert.Equal(t, 1234, blobID)
}

func TestUploadBlobMissingFile(t *testing.T) {
	client := NewClient("https://myorg.awmdm.com", &APIKeyAuthenticator{APIKey: "tenant-code"})
	_, err := client.UploadBlob(filepath.Join(t.TempDir(), "nope.pkg"), 640)
	assert.Error(t, err)
}

func TestFindOrganizationGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/groups/search", r.URL.Path)
		assert.Equal(t, "testgrp", r.URL.Query().Get("groupid"))
		assert.Equal(t, "application/json;version=2", r.Header.Get("Accept"))

		result := types.OrganizationGroupSearchResult{
			OrganizationGroups: []types.OrganizationGroup{
				{ID: 99, GroupID: "othergrp"},
				{ID: 640, GroupID: "testgrp"},
			},
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	ogID, err := client.FindOrganizationGroup("testgrp")
	require.NoError(t, err)
	assert.Equal(t, 640, ogID)
}

func TestFindOrganizationGroupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.OrganizationGroupSearchResult{})
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	_, err := client.FindOrganizationGroup("testgrp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "testgrp")
}

func TestFindSmartGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mdm/smartgroups/search", r.URL.Path)
		assert.Equal(t, "Testers", r.URL.Query().Get("name"))

		result := types.SmartGroupSearchResult{
			SmartGroups: []types.SmartGroup{
				{Name: "All Testers", SmartGroupID: 7, SmartGroupUUID: "sg-uuid-7"},
			},
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	sg, err := client.FindSmartGroup("Testers")
	require.NoError(t, err)
	assert.Equal(t, 7, sg.SmartGroupID)
	assert.Equal(t, "sg-uuid-7", sg.SmartGroupUUID)
}

func TestFindSmartGroupNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(types.SmartGroupSearchResult{
			SmartGroups: []types.SmartGroup{{Name: "Unrelated", SmartGroupID: 9}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	_, err := client.FindSmartGroup("Testers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Testers")
}

func TestAssignmentRulesRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/mam/apps/app-uuid/assignment-rules", r.URL.Path)
		assert.Equal(t, "application/json;version=2", r.Header.Get("Accept"))

		switch r.Method {
		case "GET":
			json.NewEncoder(w).Encode(types.AssignmentRules{
				Assignments: []types.AssignmentRule{
					{Priority: "0", Distribution: types.Distribution{Name: "wave 1", Description: "x #AUTOPKG"}},
				},
			})
		case "PUT":
			var rules types.AssignmentRules
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rules))
			assert.Len(t, rules.Assignments, 2)
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})

	rules, err := client.AssignmentRules("app-uuid")
	require.NoError(t, err)
	require.Len(t, rules.Assignments, 1)
	assert.Equal(t, "wave 1", rules.Assignments[0].Distribution.Name)

	err = client.UpdateAssignmentRules("app-uuid", types.AssignmentRules{
		Assignments: []types.AssignmentRule{
			{Priority: "0", Distribution: types.Distribution{Name: "wave 1"}},
			{Priority: "1", Distribution: types.Distribution{Name: "wave 2"}},
		},
	})
	require.NoError(t, err)
}

func TestAddAssignment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/mam/apps/internal/42/assignments", r.URL.Path)

		var assignment types.AppAssignment
		require.NoError(t, json.NewDecoder(r.Body).Decode(&assignment))
		assert.Equal(t, []int{7}, assignment.SmartGroupIDs)
		assert.Equal(t, "Auto", assignment.DeploymentParameters.PushMode)
		assert.True(t, assignment.DeploymentParameters.MacOsDesiredStateManagement)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	err := client.AddAssignment(42, types.AppAssignment{
		SmartGroupIDs: []int{7},
		DeploymentParameters: types.DeploymentParameters{
			PushMode:                    "Auto",
			AssignmentID:                1,
			MacOsDesiredStateManagement: true,
		},
	})
	require.NoError(t, err)
}

func TestAddAssignmentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorCode":400,"message":"bad assignment"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &APIKeyAuthenticator{APIKey: "tenant-code"})
	err := client.AddAssignment(42, types.AppAssignment{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad assignment")
}
