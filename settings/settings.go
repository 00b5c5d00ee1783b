package settings

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshyorko/sbomdesk/common"
)

const (
	ENDPOINT_VARIABLE   = `SBOMDESK_ENDPOINT`
	TIMEOUT_VARIABLE    = `SBOMDESK_TIMEOUT`
	CACHE_SIZE_VARIABLE = `SBOMDESK_CACHE_SIZE`
	CACHE_TTL_VARIABLE  = `SBOMDESK_CACHE_TTL`
	DotenvFile          = ".env"
)

var (
	Global        gateway
	chain         SettingsLayers
	cached        *Settings
	cachedMu      sync.Mutex
	configFile    string
	overrides     Overrides
	httpTransport *http.Transport
)

// Overrides are the command line flag values; empty fields are ignored.
type Overrides struct {
	Endpoint string
	Timeout  string
}

type SettingsLayers [4]*Settings

func (it SettingsLayers) Effective() *Settings {
	var result *Settings
	for _, layer := range it {
		if layer == nil {
			continue
		}
		result = layer.Inherit(result)
	}
	return result
}

type gateway bool

func SettingsFileLocation() string {
	if len(configFile) > 0 {
		return common.ExpandPath(configFile)
	}
	return filepath.Join(common.Product.Home(), common.Product.SettingsYamlFile())
}

func UseConfigFile(location string) {
	cachedMu.Lock()
	defer cachedMu.Unlock()
	configFile = location
	cached = nil
	httpTransport = nil
}

func Override(flags Overrides) {
	cachedMu.Lock()
	defer cachedMu.Unlock()
	overrides = flags
	cached = nil
	httpTransport = nil
}

func fileLayer() (*Settings, error) {
	location := SettingsFileLocation()
	raw, err := os.ReadFile(location)
	if os.IsNotExist(err) && len(configFile) == 0 {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Reading settings %q failed: %w", location, err)
	}
	layer, err := FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("Parsing settings %q failed: %w", location, err)
	}
	common.Trace("Loaded settings layer from %q.", location)
	return layer, nil
}

func environmentLayer() (*Settings, error) {
	err := godotenv.Load(DotenvFile)
	if err != nil && !os.IsNotExist(err) {
		common.Uncritical("dotenv", err)
	}
	layer := &Settings{
		Endpoints: &Endpoints{Service: os.Getenv(ENDPOINT_VARIABLE)},
		Network:   &Network{Timeout: os.Getenv(TIMEOUT_VARIABLE)},
		Cache:     &Cache{TTL: os.Getenv(CACHE_TTL_VARIABLE)},
	}
	if size := os.Getenv(CACHE_SIZE_VARIABLE); len(size) > 0 {
		layer.Cache.Size, err = strconv.Atoi(size)
		if err != nil {
			return nil, fmt.Errorf("%s=%q is not a number: %w", CACHE_SIZE_VARIABLE, size, err)
		}
	}
	return layer, nil
}

func flagLayer() *Settings {
	return &Settings{
		Endpoints: &Endpoints{Service: overrides.Endpoint},
		Network:   &Network{Timeout: overrides.Timeout},
	}
}

// SummonSettings resolves and validates the effective settings once, and
// returns the cached result on later calls.
func SummonSettings() (*Settings, error) {
	cachedMu.Lock()
	defer cachedMu.Unlock()

	if cached != nil {
		return cached, nil
	}
	file, err := fileLayer()
	if err != nil {
		return nil, err
	}
	environment, err := environmentLayer()
	if err != nil {
		return nil, err
	}
	chain = SettingsLayers{defaults(), file, environment, flagLayer()}
	result := chain.Effective()
	err = result.CriticalEnvironmentSettingsCheck()
	if err != nil {
		return nil, err
	}
	cached = result
	httpTransport = nil
	return cached, nil
}

// Layers returns the layers behind the last resolution: defaults, settings
// file, environment and flags. Missing layers are nil.
func Layers() SettingsLayers {
	cachedMu.Lock()
	defer cachedMu.Unlock()
	return chain
}

func effective() *Settings {
	config, err := SummonSettings()
	if err != nil {
		common.Uncritical("settings", err)
		return defaults()
	}
	return config
}

func (it gateway) ServiceEndpoint() string {
	return effective().Endpoints.Service
}

func (it gateway) RequestTimeout() time.Duration {
	return effective().timeout()
}

func (it gateway) CacheSize() int {
	return effective().Cache.Size
}

func (it gateway) CacheTTL() time.Duration {
	return effective().cacheTTL()
}

func (it gateway) HttpsProxy() string {
	return effective().Network.HttpsProxy
}

func (it gateway) HttpProxy() string {
	return effective().Network.HttpProxy
}

func (it gateway) NoProxy() string {
	return effective().Network.NoProxy
}

func (it gateway) ConfiguredHttpTransport() *http.Transport {
	cachedMu.Lock()
	ready := httpTransport
	cachedMu.Unlock()
	if ready != nil {
		return ready
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	httpsProxy, httpProxy := it.HttpsProxy(), it.HttpProxy()
	bypass := strings.Split(it.NoProxy(), ",")
	if len(httpsProxy) > 0 || len(httpProxy) > 0 {
		transport.Proxy = func(request *http.Request) (*url.URL, error) {
			if bypassed(request.URL.Hostname(), bypass) {
				return nil, nil
			}
			proxy := httpProxy
			if request.URL.Scheme == "https" && len(httpsProxy) > 0 {
				proxy = httpsProxy
			}
			if len(proxy) == 0 {
				return nil, nil
			}
			return url.Parse(proxy)
		}
	}
	cachedMu.Lock()
	httpTransport = transport
	cachedMu.Unlock()
	return transport
}

func bypassed(host string, suffixes []string) bool {
	for _, suffix := range suffixes {
		suffix = strings.TrimSpace(suffix)
		if len(suffix) == 0 {
			continue
		}
		if suffix == "*" || host == suffix || strings.HasSuffix(host, "."+strings.TrimPrefix(suffix, ".")) {
			return true
		}
	}
	return false
}
