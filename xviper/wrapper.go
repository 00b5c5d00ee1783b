package xviper

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/spf13/viper"
)

type config struct {
	sync.Mutex
	viper    *viper.Viper
	filename string
	loaded   bool
}

var (
	state = &config{}
)

func defaultLocation() string {
	return filepath.Join(common.Product.Home(), common.Product.StateYamlFile())
}

// SetConfigFile points the state to another file; the next access reloads.
func SetConfigFile(filename string) {
	state.Lock()
	defer state.Unlock()

	state.filename = filename
	state.loaded = false
	state.viper = nil
}

func ConfigFileUsed() string {
	state.Lock()
	defer state.Unlock()

	return state.location()
}

func (it *config) location() string {
	if len(it.filename) > 0 {
		return it.filename
	}
	return defaultLocation()
}

func (it *config) reload() {
	if it.loaded && it.viper != nil {
		return
	}
	it.viper = viper.New()
	it.viper.SetConfigFile(it.location())
	it.viper.SetConfigType("yaml")
	err := it.viper.ReadInConfig()
	if err != nil && !os.IsNotExist(err) {
		common.Uncritical("xviper.ReadInConfig", err)
	}
	it.loaded = true
}

func (it *config) save() {
	where := it.location()
	err := os.MkdirAll(filepath.Dir(where), 0o750)
	if err != nil {
		common.Uncritical("xviper.MkdirAll", err)
		return
	}
	err = it.viper.WriteConfigAs(where)
	if err != nil {
		common.Uncritical("xviper.WriteConfigAs", err)
	}
}

func Set(key string, value interface{}) {
	state.Lock()
	defer state.Unlock()

	state.reload()
	state.viper.Set(key, value)
	state.save()
}

func Get(key string) interface{} {
	state.Lock()
	defer state.Unlock()

	state.reload()
	return state.viper.Get(key)
}

func GetString(key string) string {
	state.Lock()
	defer state.Unlock()

	state.reload()
	return state.viper.GetString(key)
}

func GetStringSlice(key string) []string {
	state.Lock()
	defer state.Unlock()

	state.reload()
	return state.viper.GetStringSlice(key)
}

func IsSet(key string) bool {
	state.Lock()
	defer state.Unlock()

	state.reload()
	return state.viper.IsSet(key)
}
