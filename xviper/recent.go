package xviper

import "strings"

const (
	recentScansKey   = `recent.scans`
	lastDirectoryKey = `recent.directory`
	lastProjectKey   = `recent.project`

	MaxRecent = 20
)

// MoveToFront puts entry first, drops its older copies and caps the list.
func MoveToFront(list []string, entry string, limit int) []string {
	result := make([]string, 0, len(list)+1)
	result = append(result, entry)
	for _, existing := range list {
		if existing != entry {
			result = append(result, existing)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// Recent returns recently scanned or opened projects, newest first.
func Recent() []string {
	return GetStringSlice(recentScansKey)
}

func AddRecent(project string) []string {
	project = strings.TrimSpace(project)
	if len(project) == 0 {
		return Recent()
	}
	updated := MoveToFront(Recent(), project, MaxRecent)
	Set(recentScansKey, updated)
	return updated
}

func ClearRecent() {
	Set(recentScansKey, []string{})
}

func LastDirectory() string {
	return GetString(lastDirectoryKey)
}

func LastProject() string {
	return GetString(lastProjectKey)
}

// RememberScan records the inputs of a triggered scan.
func RememberScan(directory, project string) {
	Set(lastDirectoryKey, directory)
	Set(lastProjectKey, project)
}
