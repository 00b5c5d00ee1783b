package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	defaultEndpoint = "http://localhost:8080"
	defaultTimeout  = "30s"
	defaultCacheTTL = "5m"
	defaultCacheMax = 32
)

var (
	checker = newChecker()
)

type Settings struct {
	Endpoints *Endpoints `yaml:"endpoints" validate:"required"`
	Network   *Network   `yaml:"network" validate:"required"`
	Cache     *Cache     `yaml:"cache" validate:"required"`
	Meta      *Meta      `yaml:"meta,omitempty"`
}

type Endpoints struct {
	Service string `yaml:"service" validate:"required,url"`
}

type Network struct {
	Timeout    string `yaml:"timeout" validate:"required,duration"`
	HttpsProxy string `yaml:"https-proxy,omitempty" validate:"omitempty,url"`
	HttpProxy  string `yaml:"http-proxy,omitempty" validate:"omitempty,url"`
	NoProxy    string `yaml:"no-proxy,omitempty"`
}

type Cache struct {
	Size int    `yaml:"size" validate:"gte=0,lte=1024"`
	TTL  string `yaml:"ttl" validate:"required,duration"`
}

type Meta struct {
	Name   string `yaml:"name,omitempty"`
	Source string `yaml:"source,omitempty"`
}

func newChecker() *validator.Validate {
	result := validator.New()
	result.RegisterValidation("duration", func(field validator.FieldLevel) bool {
		parsed, err := time.ParseDuration(field.Field().String())
		return err == nil && parsed > 0
	})
	return result
}

func defaults() *Settings {
	return &Settings{
		Endpoints: &Endpoints{Service: defaultEndpoint},
		Network:   &Network{Timeout: defaultTimeout},
		Cache:     &Cache{Size: defaultCacheMax, TTL: defaultCacheTTL},
		Meta:      &Meta{Name: "default", Source: "builtin"},
	}
}

func FromBytes(raw []byte) (*Settings, error) {
	var settings Settings
	err := yaml.Unmarshal(raw, &settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (it *Settings) AsYaml() ([]byte, error) {
	return yaml.Marshal(it)
}

// Inherit fills everything this layer left unset from the given base layer.
func (it *Settings) Inherit(base *Settings) *Settings {
	result := &Settings{
		Endpoints: &Endpoints{},
		Network:   &Network{},
		Cache:     &Cache{},
		Meta:      &Meta{},
	}
	for _, layer := range []*Settings{base, it} {
		if layer == nil {
			continue
		}
		if layer.Endpoints != nil && len(layer.Endpoints.Service) > 0 {
			result.Endpoints.Service = layer.Endpoints.Service
		}
		if layer.Network != nil {
			pick(&result.Network.Timeout, layer.Network.Timeout)
			pick(&result.Network.HttpsProxy, layer.Network.HttpsProxy)
			pick(&result.Network.HttpProxy, layer.Network.HttpProxy)
			pick(&result.Network.NoProxy, layer.Network.NoProxy)
		}
		if layer.Cache != nil {
			if layer.Cache.Size != 0 {
				result.Cache.Size = layer.Cache.Size
			}
			pick(&result.Cache.TTL, layer.Cache.TTL)
		}
		if layer.Meta != nil {
			pick(&result.Meta.Name, layer.Meta.Name)
			pick(&result.Meta.Source, layer.Meta.Source)
		}
	}
	return result
}

func pick(target *string, value string) {
	if len(value) > 0 {
		*target = value
	}
}

func (it *Settings) CriticalEnvironmentSettingsCheck() error {
	err := checker.Struct(it)
	if err == nil {
		return nil
	}
	failures, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(failures))
	for _, failure := range failures {
		messages = append(messages, fmt.Sprintf("%s fails %q check (value: %v)", strings.ToLower(failure.Namespace()), failure.Tag(), failure.Value()))
	}
	return fmt.Errorf("Invalid settings: %s", strings.Join(messages, "; "))
}

func (it *Settings) timeout() time.Duration {
	parsed, err := time.ParseDuration(it.Network.Timeout)
	if err != nil {
		parsed, _ = time.ParseDuration(defaultTimeout)
	}
	return parsed
}

func (it *Settings) cacheTTL() time.Duration {
	parsed, err := time.ParseDuration(it.Cache.TTL)
	if err != nil {
		parsed, _ = time.ParseDuration(defaultCacheTTL)
	}
	return parsed
}
