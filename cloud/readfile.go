package cloud

import (
	"context"
	"fmt"
	"net/url"
	"os"
)

// ReadFile returns the content of a local file or of an http(s) resource.
// It is used to load saved scan records without a running scan service.
func ReadFile(ctx context.Context, resource string) ([]byte, error) {
	if info, err := os.Stat(resource); err == nil && !info.IsDir() {
		return os.ReadFile(resource)
	}
	link, err := url.ParseRequestURI(resource)
	if err != nil || link.Scheme == "file" || link.Scheme == "" {
		if err == nil {
			resource = link.Path
		}
		return os.ReadFile(resource)
	}
	client, err := NewUnsafeClient(fmt.Sprintf("%s://%s", link.Scheme, link.Host))
	if err != nil {
		return nil, err
	}
	request := client.NewRequest(ctx, link.RequestURI())
	request.Headers["Accept"] = "application/json"
	response := client.Get(request)
	if response.Err != nil {
		return nil, response.Err
	}
	if !response.Succeeded() {
		return nil, fmt.Errorf("Reading %q failed, status: %d", resource, response.Status)
	}
	return response.Body, nil
}
