package cloud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/settings"
)

const (
	StatusRequestFailed   = 9001
	StatusTransportFailed = 9002

	RequestIdHeader = "X-Request-Id"
)

type internalClient struct {
	endpoint string
	client   *http.Client
	tracing  bool
	critical bool
}

type Request struct {
	Url     string
	Headers map[string]string
	Body    io.Reader
	Stream  io.Writer
	context context.Context
}

type Response struct {
	Status    int
	Err       error
	Body      []byte
	RequestId string
	Elapsed   common.Duration
}

type Client interface {
	Endpoint() string
	NewRequest(context.Context, string) *Request
	Get(request *Request) *Response
	Post(request *Request) *Response
	NewClient(endpoint string) (Client, error)
	WithTimeout(time.Duration) Client
	WithTracing() Client
	Uncritical() Client
}

func localHost(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// EnsureHttps normalizes the endpoint and insists on https for anything
// that is not a loopback address.
func EnsureHttps(endpoint string) (string, error) {
	nice := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(nice)
	if err != nil {
		return "", err
	}
	if len(parsed.Host) == 0 {
		return "", fmt.Errorf("Endpoint '%s' has no host.", nice)
	}
	if localHost(parsed.Hostname()) && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return nice, nil
	}
	if parsed.Scheme != "https" {
		return "", fmt.Errorf("Endpoint '%s' must start with https:// prefix.", nice)
	}
	return nice, nil
}

func NewUnsafeClient(endpoint string) (Client, error) {
	return &internalClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Transport: settings.Global.ConfiguredHttpTransport()},
		tracing:  false,
		critical: true,
	}, nil
}

func NewClient(endpoint string) (Client, error) {
	https, err := EnsureHttps(endpoint)
	if err != nil {
		return nil, err
	}
	return &internalClient{
		endpoint: https,
		client:   &http.Client{Transport: settings.Global.ConfiguredHttpTransport()},
		tracing:  false,
		critical: true,
	}, nil
}

// ServiceClient connects to the configured scan service.
func ServiceClient() (Client, error) {
	client, err := NewClient(settings.Global.ServiceEndpoint())
	if err != nil {
		return nil, err
	}
	client = client.WithTimeout(settings.Global.RequestTimeout())
	if common.TraceFlag() {
		client = client.WithTracing()
	}
	return client, nil
}

func (it *internalClient) Uncritical() Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   it.client,
		tracing:  it.tracing,
		critical: false,
	}
}

func (it *internalClient) WithTimeout(timeout time.Duration) Client {
	return &internalClient{
		endpoint: it.endpoint,
		client: &http.Client{
			Transport: it.client.Transport,
			Timeout:   timeout,
		},
		tracing:  it.tracing,
		critical: it.critical,
	}
}

func (it *internalClient) WithTracing() Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   it.client,
		tracing:  true,
		critical: it.critical,
	}
}

func (it *internalClient) NewClient(endpoint string) (Client, error) {
	return NewClient(endpoint)
}

func (it *internalClient) Endpoint() string {
	return it.endpoint
}

func (it *internalClient) does(method string, request *Request) *Response {
	stopwatch := common.Stopwatch("stopwatch")
	response := new(Response)
	response.RequestId = uuid.NewString()
	url := it.Endpoint() + request.Url
	common.Trace("Doing %s %s [%s]", method, url, response.RequestId)
	defer func() {
		response.Elapsed = stopwatch.Elapsed()
		common.Trace("%s %s took %s", method, url, response.Elapsed)
	}()
	ctx := request.context
	if ctx == nil {
		ctx = context.Background()
	}
	httpRequest, err := http.NewRequestWithContext(ctx, method, url, request.Body)
	if err != nil {
		response.Status = StatusRequestFailed
		response.Err = err
		return response
	}
	httpRequest.Header.Add("User-Agent", common.UserAgent())
	httpRequest.Header.Add(RequestIdHeader, response.RequestId)
	for name, value := range request.Headers {
		httpRequest.Header.Add(name, value)
	}
	httpResponse, err := it.client.Do(httpRequest)
	if err != nil {
		if it.critical && ctx.Err() == nil {
			common.Error("http.Do", err)
		} else {
			common.Uncritical("http.Do", err)
		}
		response.Status = StatusTransportFailed
		response.Err = err
		return response
	}
	defer httpResponse.Body.Close()
	if it.tracing {
		common.Trace("Response %d headers:", httpResponse.StatusCode)
		keys := make([]string, 0, len(httpResponse.Header))
		for key := range httpResponse.Header {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			common.Trace("> %s: %q", key, httpResponse.Header[key])
		}
	}
	response.Status = httpResponse.StatusCode
	if request.Stream != nil {
		_, response.Err = io.Copy(request.Stream, httpResponse.Body)
	} else {
		response.Body, response.Err = io.ReadAll(httpResponse.Body)
	}
	if common.DebugFlag() {
		body := "ignore"
		if response.Status > 399 {
			body = string(response.Body)
		}
		common.Debug("%v %v %v => %v (%v)", <-common.Identities, method, url, response.Status, body)
	}
	return response
}

func (it *internalClient) NewRequest(ctx context.Context, url string) *Request {
	return &Request{
		Url:     url,
		Headers: make(map[string]string),
		context: ctx,
	}
}

func (it *internalClient) Get(request *Request) *Response {
	return it.does(http.MethodGet, request)
}

func (it *internalClient) Post(request *Request) *Response {
	return it.does(http.MethodPost, request)
}

func (it *Response) Succeeded() bool {
	return it.Err == nil && it.Status >= 200 && it.Status < 300
}
