package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoErrorHandling(t *testing.T) {
	t.Run("server error message is used verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "company not found"})
		}))
		defer server.Close()

		client := New(server.URL, nil)
		_, err := client.ListCompanies(context.Background(), false)
		require.Error(t, err)
		assert.Equal(t, "company not found", err.Error())

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	})

	t.Run("templated fallback when body has no error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := New(server.URL, nil)
		_, err := client.ListCompanies(context.Background(), false)
		require.Error(t, err)
		assert.Equal(t, "failed to load companies: status 502", err.Error())
	})

	t.Run("network failure is wrapped with the action", func(t *testing.T) {
		client := New("http://127.0.0.1:1", nil)
		_, err := client.ListMessages(context.Background())
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "load messages", apiErr.Action)
		assert.NotNil(t, apiErr.Unwrap())
	})
}

func TestListCompanies(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"companies": []map[string]any{
				{"id": 1, "name": "Initech"},
				{"id": 2, "name": "Globex", "research_status": "completed"},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, nil)

	companies, err := client.ListCompanies(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Initech", companies[0].Name)
	assert.Equal(t, "completed", companies[1].ResearchStatus)
	assert.Equal(t, "/api/companies", gotPath)

	_, err = client.ListCompanies(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "/api/companies?include_all=true", gotPath)
}

func TestResearchCompanyForceFlags(t *testing.T) {
	taskID := uuid.New()

	tests := []struct {
		name     string
		opts     ResearchOptions
		expected map[string]bool
	}{
		{
			"explicit flags pass through",
			ResearchOptions{ForceLevels: true, ForceContacts: false},
			map[string]bool{"force_levels": true, "force_contacts": false},
		},
		{
			"omitted flags default to false",
			ResearchOptions{},
			map[string]bool{"force_levels": false, "force_contacts": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody map[string]bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/companies/7/research", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
				_ = json.NewEncoder(w).Encode(map[string]string{"task_id": taskID.String()})
			}))
			defer server.Close()

			client := New(server.URL, nil)
			ref, err := client.ResearchCompany(context.Background(), 7, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, taskID, ref.TaskID)
			assert.Equal(t, tt.expected, gotBody)
		})
	}
}

func TestCreateCompanyValidation(t *testing.T) {
	// The server must never be reached when validation fails.
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": uuid.NewString()})
	}))
	defer server.Close()

	client := New(server.URL, nil)

	t.Run("empty request rejected before network", func(t *testing.T) {
		_, err := client.CreateCompany(context.Background(), NewCompanyRequest{})
		require.Error(t, err)
		var verr *ErrValidation
		assert.ErrorAs(t, err, &verr)
		assert.False(t, called)
	})

	t.Run("malformed URL rejected before network", func(t *testing.T) {
		_, err := client.CreateCompany(context.Background(), NewCompanyRequest{URL: "not a url"})
		require.Error(t, err)
		var verr *ErrValidation
		assert.ErrorAs(t, err, &verr)
		assert.False(t, called)
	})

	t.Run("name alone is accepted", func(t *testing.T) {
		ref, err := client.CreateCompany(context.Background(), NewCompanyRequest{Name: "Initech"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, ref.TaskID)
		assert.True(t, called)
	})
}

func TestScanRequestValidation(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_ = json.NewEncoder(w).Encode(map[string]string{"task_id": uuid.NewString()})
	}))
	defer server.Close()

	client := New(server.URL, nil)

	_, err := client.ScanRecruiterEmails(context.Background(), ScanRequest{MaxMessages: 0})
	require.Error(t, err)
	assert.False(t, called)

	_, err = client.ScanRecruiterEmails(context.Background(), ScanRequest{MaxMessages: 1000})
	require.Error(t, err)
	assert.False(t, called)

	_, err = client.ScanRecruiterEmails(context.Background(), ScanRequest{MaxMessages: 50, DoResearch: true})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestSaveReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/messages/3/reply", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Thanks, not interested.", body["reply_message"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 3, "company_id": 1, "reply_message": body["reply_message"], "reply_status": "generated",
		})
	}))
	defer server.Close()

	client := New(server.URL, nil)
	msg, err := client.SaveReply(context.Background(), 3, "Thanks, not interested.")
	require.NoError(t, err)
	assert.Equal(t, "Thanks, not interested.", msg.ReplyMessage)
	assert.Equal(t, "generated", msg.ReplyStatus)
}

func TestGetTask(t *testing.T) {
	id := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks/"+id.String(), r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     id.String(),
			"status": "completed",
			"result": map[string]any{"created": 2},
		})
	}))
	defer server.Close()

	client := New(server.URL, nil)
	task, err := client.GetTask(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, task.Terminal())
	assert.Equal(t, float64(2), task.Result["created"])
}
