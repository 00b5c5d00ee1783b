package operations

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/joshyorko/sbomdesk/cloud"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/joshyorko/sbomdesk/settings"
)

// Service pairs a scan service client with a short lived cache of
// retrieved records, keyed by project. Cached slices are shared and must be
// treated as read only.
type Service struct {
	client cloud.Client
	cache  *expirable.LRU[string, []sbom.Record]
}

func NewService(client cloud.Client, size int, ttl time.Duration) *Service {
	service := &Service{client: client}
	if size > 0 && !common.NoCache {
		service.cache = expirable.NewLRU[string, []sbom.Record](size, nil, ttl)
	}
	return service
}

// ConfiguredService builds a Service from the effective settings.
func ConfiguredService() (*Service, error) {
	client, err := cloud.ServiceClient()
	if err != nil {
		return nil, err
	}
	return NewService(client, settings.Global.CacheSize(), settings.Global.CacheTTL()), nil
}

func (it *Service) Endpoint() string {
	return it.client.Endpoint()
}

func (it *Service) Scan(ctx context.Context, request ScanRequest) (*ScanOutcome, error) {
	outcome, err := TriggerScan(ctx, it.client, request)
	if err != nil {
		return nil, err
	}
	it.Forget(outcome.Project)
	return outcome, nil
}

func (it *Service) Records(ctx context.Context, project string) ([]sbom.Record, error) {
	if it.cache != nil {
		if records, ok := it.cache.Get(project); ok {
			common.Trace("Records of %q served from cache.", project)
			return records, nil
		}
	}
	records, err := RetrieveScans(ctx, it.client, project)
	if err != nil {
		return nil, err
	}
	if it.cache != nil {
		it.cache.Add(project, records)
	}
	return records, nil
}

func (it *Service) Latest(ctx context.Context, project string) (*sbom.Record, error) {
	records, err := it.Records(ctx, project)
	if err != nil {
		return nil, err
	}
	return Latest(records)
}

func (it *Service) Forget(project string) {
	if it.cache != nil {
		it.cache.Remove(project)
	}
}
