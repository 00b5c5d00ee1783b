package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joshyorko/sbomdesk/cloud"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/sbom"
)

var (
	ErrUnreachable      = errors.New("Failed to connect to the server.")
	ErrUnexpectedStatus = errors.New("Unexpected response from the server.")
	ErrNoResults        = errors.New("No scan results available")
	ErrInvalidDirectory = errors.New("Please select a directory to scan.")
	ErrInvalidRequest   = errors.New("Invalid scan request.")

	requestChecker = validator.New()
)

type ScanRequest struct {
	Directory   string `json:"directory" validate:"required,dir"`
	ProjectName string `json:"projectName,omitempty" validate:"omitempty,max=200,printascii"`
}

// ScanOutcome is what the service answered to a scan trigger. Project is the
// identifier to retrieve records with.
type ScanOutcome struct {
	Message string
	Project string
}

// ServiceError carries the server side error body of a non-success response.
type ServiceError struct {
	Status    int    `json:"-"`
	RequestId string `json:"-"`
	Message   string `json:"error"`
	Details   string `json:"details,omitempty"`
}

func (it *ServiceError) Error() string {
	detail := it.Message
	if len(it.Details) > 0 {
		detail = fmt.Sprintf("%s: %s", detail, it.Details)
	}
	if len(detail) == 0 {
		return fmt.Sprintf("%v (status %d)", ErrUnexpectedStatus, it.Status)
	}
	return fmt.Sprintf("%v (status %d: %s)", ErrUnexpectedStatus, it.Status, detail)
}

func (it *ServiceError) Unwrap() error {
	return ErrUnexpectedStatus
}

func (it ScanRequest) Validate() error {
	err := requestChecker.Struct(it)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return fmt.Errorf("%w %v", ErrInvalidRequest, err)
	}
	for _, failure := range failures {
		if failure.Field() == "Directory" {
			if len(it.Directory) == 0 {
				return ErrInvalidDirectory
			}
			return fmt.Errorf("%w %q is not a directory.", ErrInvalidDirectory, it.Directory)
		}
	}
	return fmt.Errorf("%w %s fails %q check.", ErrInvalidRequest, failures[0].Field(), failures[0].Tag())
}

func responseError(response *cloud.Response) error {
	if response.Status == cloud.StatusRequestFailed || response.Status == cloud.StatusTransportFailed {
		return fmt.Errorf("%w (%w)", ErrUnreachable, response.Err)
	}
	if response.Succeeded() {
		return nil
	}
	failure := &ServiceError{}
	if json.Unmarshal(response.Body, failure) != nil {
		failure.Message = strings.TrimSpace(string(response.Body))
	}
	failure.Status = response.Status
	failure.RequestId = response.RequestId
	if response.Err != nil && len(failure.Message) == 0 {
		failure.Message = response.Err.Error()
	}
	return failure
}

// TriggerScan asks the service to scan a local directory. The directory is
// checked before anything goes over the wire.
func TriggerScan(ctx context.Context, client cloud.Client, request ScanRequest) (outcome *ScanOutcome, err error) {
	request.ProjectName = strings.TrimSpace(request.ProjectName)
	if err = request.Validate(); err != nil {
		return nil, err
	}
	absolute, err := filepath.Abs(request.Directory)
	if err != nil {
		return nil, fmt.Errorf("%w %v", ErrInvalidDirectory, err)
	}
	request.Directory = absolute

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	common.Debug("Triggering scan of %q as %q at %s.", request.Directory, request.ProjectName, client.Endpoint())
	post := client.NewRequest(ctx, "/scan")
	post.Headers["Content-Type"] = "application/json"
	post.Headers["Accept"] = "application/json"
	post.Body = bytes.NewReader(body)
	response := client.Post(post)
	if err = responseError(response); err != nil {
		return nil, err
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err = json.Unmarshal(response.Body, &reply); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrUnexpectedStatus, err)
	}
	outcome = &ScanOutcome{
		Message: reply.Message,
		Project: request.ProjectName,
	}
	if len(outcome.Project) == 0 {
		outcome.Project = strings.TrimSpace(reply.Message)
	}
	if len(outcome.Project) == 0 {
		return nil, fmt.Errorf("%w (scan response has no project identifier)", ErrUnexpectedStatus)
	}
	common.Debug("Scan of %q answered %q in %s.", request.Directory, reply.Message, response.Elapsed)
	return outcome, nil
}

// RetrieveScans returns every stored scan record of the project, in the order
// the service sent them.
func RetrieveScans(ctx context.Context, client cloud.Client, project string) ([]sbom.Record, error) {
	get := client.NewRequest(ctx, "/scans/"+url.PathEscape(project))
	get.Headers["Accept"] = "application/json"
	response := client.Get(get)
	if err := responseError(response); err != nil {
		return nil, err
	}
	return ParseRecords(response.Body)
}

// ParseRecords decodes a JSON array of scan records; null means none.
func ParseRecords(body []byte) ([]sbom.Record, error) {
	records := []sbom.Record{}
	if len(bytes.TrimSpace(body)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrUnexpectedStatus, err)
	}
	if records == nil {
		records = []sbom.Record{}
	}
	return records, nil
}

// RetrieveLatest returns the most recent record of the project, or
// ErrNoResults when the service has none.
func RetrieveLatest(ctx context.Context, client cloud.Client, project string) (*sbom.Record, error) {
	records, err := RetrieveScans(ctx, client, project)
	if err != nil {
		return nil, err
	}
	return Latest(records)
}

func Latest(records []sbom.Record) (*sbom.Record, error) {
	latest, ok := sbom.LatestRecord(records)
	if !ok {
		return nil, ErrNoResults
	}
	return latest, nil
}
