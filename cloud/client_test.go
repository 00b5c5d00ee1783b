package cloud_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshyorko/sbomdesk/cloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureHttps(t *testing.T) {
	cases := []struct {
		endpoint string
		expected string
		fails    bool
	}{
		{"https://scan.example.com/", "https://scan.example.com", false},
		{"  http://localhost:8080  ", "http://localhost:8080", false},
		{"http://127.0.0.1:9000/api/", "http://127.0.0.1:9000/api", false},
		{"http://scan.example.com", "", true},
		{"ftp://localhost", "", true},
		{"localhost:8080", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.endpoint, func(t *testing.T) {
			result, err := cloud.EnsureHttps(tc.endpoint)
			if tc.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestRequestsCarryIdentityHeaders(t *testing.T) {
	must := require.New(t)

	var agent, requestId, custom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		requestId = r.Header.Get(cloud.RequestIdHeader)
		custom = r.Header.Get("Content-Type")
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer server.Close()

	client, err := cloud.NewClient(server.URL)
	must.NoError(err)
	request := client.NewRequest(context.Background(), "/scan")
	request.Headers["Content-Type"] = "application/json"
	request.Body = strings.NewReader(`{}`)
	response := client.Post(request)

	must.NoError(response.Err)
	must.True(response.Succeeded())
	must.Equal(`{"message":"ok"}`, string(response.Body))
	must.True(strings.HasPrefix(agent, "sbomdesk/"))
	must.Equal(response.RequestId, requestId)
	_, err = uuid.Parse(requestId)
	must.NoError(err)
	must.Equal("application/json", custom)
}

func TestTransportFailureStatus(t *testing.T) {
	must := require.New(t)

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client, err := cloud.NewClient(endpoint)
	must.NoError(err)
	response := client.Uncritical().Get(client.NewRequest(context.Background(), "/scans/x"))

	must.Equal(cloud.StatusTransportFailed, response.Status)
	must.Error(response.Err)
	must.False(response.Succeeded())
}

func TestCancelledContextStopsRequest(t *testing.T) {
	must := require.New(t)

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := cloud.NewClient(server.URL)
	must.NoError(err)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	response := client.Get(client.NewRequest(ctx, "/slow"))

	must.Equal(cloud.StatusTransportFailed, response.Status)
	must.ErrorIs(response.Err, context.Canceled)
}

func TestTimeoutApplies(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := cloud.NewClient(server.URL)
	require.NoError(t, err)
	response := client.WithTimeout(50 * time.Millisecond).Uncritical().Get(client.NewRequest(context.Background(), "/slow"))

	assert.Equal(t, cloud.StatusTransportFailed, response.Status)
}

func TestReadFileFromDiskAndHttp(t *testing.T) {
	must := require.New(t)

	location := filepath.Join(t.TempDir(), "records.json")
	must.NoError(os.WriteFile(location, []byte(`[]`), 0o644))
	content, err := cloud.ReadFile(context.Background(), location)
	must.NoError(err)
	must.Equal(`[]`, string(content))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/saved/records.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"scan_id":"1"}]`))
	}))
	defer server.Close()

	content, err = cloud.ReadFile(context.Background(), server.URL+"/saved/records.json")
	must.NoError(err)
	must.Equal(`[{"scan_id":"1"}]`, string(content))

	_, err = cloud.ReadFile(context.Background(), server.URL+"/other.json")
	must.Error(err)
}
