package common

import "os"

const (
	SBOMDESK_HOME_VARIABLE = `SBOMDESK_HOME`
	SBOMDESK_PRODUCT_NAME  = `SBOMDESK_PRODUCT_NAME`
	SBOMDESK_NAME          = `sbomdesk`
)

type (
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		SettingsYamlFile() string
		StateYamlFile() string
	}

	deskStrategy struct {
		forcedHome string
	}
)

func DeskMode() ProductStrategy {
	return &deskStrategy{}
}

func (it *deskStrategy) Name() string {
	if value := os.Getenv(SBOMDESK_PRODUCT_NAME); len(value) > 0 {
		return value
	}
	return SBOMDESK_NAME
}

func (it *deskStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *deskStrategy) HomeVariable() string {
	return SBOMDESK_HOME_VARIABLE
}

func (it *deskStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(SBOMDESK_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	return ExpandPath(defaultDeskLocation)
}

func (it *deskStrategy) SettingsYamlFile() string {
	return "settings.yaml"
}

func (it *deskStrategy) StateYamlFile() string {
	return "sbomdesk.yaml"
}
