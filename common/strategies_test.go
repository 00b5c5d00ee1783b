package common_test

import (
	"path/filepath"
	"testing"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/stretchr/testify/require"
)

func TestDeskStrategyDefaults(t *testing.T) {
	must := require.New(t)

	t.Setenv(common.SBOMDESK_HOME_VARIABLE, "")
	t.Setenv(common.SBOMDESK_PRODUCT_NAME, "")
	home := t.TempDir()
	t.Setenv("HOME", home)

	strategy := common.DeskMode()

	must.Equal("sbomdesk", strategy.Name())
	must.Equal(common.SBOMDESK_HOME_VARIABLE, strategy.HomeVariable())
	must.Equal("settings.yaml", strategy.SettingsYamlFile())
	must.True(filepath.IsAbs(strategy.Home()))
	must.Equal(filepath.Join(home, ".sbomdesk"), filepath.Clean(strategy.Home()))
}

func TestDeskStrategyProductNameOverride(t *testing.T) {
	t.Setenv(common.SBOMDESK_PRODUCT_NAME, "Custom Name")

	require.Equal(t, "Custom Name", common.DeskMode().Name())
}

func TestDeskStrategyHomePriority(t *testing.T) {
	must := require.New(t)

	overrideDir := t.TempDir()
	envDir := t.TempDir()

	product := common.DeskMode()
	product.ForceHome(overrideDir)
	must.Equal(overrideDir, product.Home())

	t.Setenv(common.SBOMDESK_HOME_VARIABLE, envDir)
	must.Equal(envDir, common.DeskMode().Home())
	must.Equal(overrideDir, product.Home())
}

func TestCanUseStopwatch(t *testing.T) {
	must := require.New(t)

	sut := common.Stopwatch("hello %s", "world")
	must.NotNil(sut)
	limit := common.Duration(10_000_000_000)
	must.True(sut.Elapsed() < limit)
}

func TestUserAgentMentionsVersion(t *testing.T) {
	require.Contains(t, common.UserAgent(), common.Version)
}
