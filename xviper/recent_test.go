package xviper_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/joshyorko/sbomdesk/xviper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempState(t *testing.T) string {
	location := filepath.Join(t.TempDir(), "state", "sbomdesk.yaml")
	xviper.SetConfigFile(location)
	t.Cleanup(func() { xviper.SetConfigFile("") })
	return location
}

func TestMoveToFront(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, xviper.MoveToFront([]string{"a", "b", "c"}, "b", 5))
	assert.Equal(t, []string{"x"}, xviper.MoveToFront(nil, "x", 5))
	assert.Equal(t, []string{"d", "a"}, xviper.MoveToFront([]string{"a", "b", "c"}, "d", 2))
}

func TestRecentIsPersisted(t *testing.T) {
	must := require.New(t)
	location := useTempState(t)

	must.Empty(xviper.Recent())
	xviper.AddRecent("webshop")
	xviper.AddRecent("billing")
	xviper.AddRecent("webshop")
	xviper.AddRecent("   ")

	must.Equal([]string{"webshop", "billing"}, xviper.Recent())
	must.Equal(location, xviper.ConfigFileUsed())

	xviper.SetConfigFile(location)
	must.Equal([]string{"webshop", "billing"}, xviper.Recent())

	xviper.ClearRecent()
	must.Empty(xviper.Recent())
}

func TestRecentIsCapped(t *testing.T) {
	useTempState(t)

	for index := 0; index < xviper.MaxRecent+5; index++ {
		xviper.AddRecent(fmt.Sprintf("project-%02d", index))
	}

	recent := xviper.Recent()
	require.Len(t, recent, xviper.MaxRecent)
	assert.Equal(t, fmt.Sprintf("project-%02d", xviper.MaxRecent+4), recent[0])
}

func TestRememberScan(t *testing.T) {
	useTempState(t)

	xviper.RememberScan("/work/shop", "shop")

	assert.Equal(t, "/work/shop", xviper.LastDirectory())
	assert.Equal(t, "shop", xviper.LastProject())
	assert.True(t, xviper.IsSet("recent.project"))
}
