package operations

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/fail"
	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/joshyorko/sbomdesk/wizard"
)

const (
	StdoutTarget = "-"
)

var (
	ErrExportCancelled = errors.New("Export cancelled.")

	exportSink io.Writer = os.Stdout
)

// ExportTarget resolves where an export of the record goes.
func ExportTarget(record *sbom.Record, path string) string {
	if len(path) > 0 {
		return path
	}
	return record.ExportName()
}

// ExportSBOM writes the sbom document of the record exactly as received, as
// JSON indented with two spaces. An existing file is only replaced after
// confirmation, or when force is set.
func ExportSBOM(record *sbom.Record, path string, force bool) (string, error) {
	if record == nil {
		return "", ErrNoResults
	}
	return exportJSON(record.SBOM, ExportTarget(record, path), force)
}

// ExportTree writes the dependency forest of the record as nested JSON.
func ExportTree(record *sbom.Record, path string, force bool) (string, error) {
	if record == nil {
		return "", ErrNoResults
	}
	forest := sbom.BuildForest(record.SBOM.Dependencies)
	return exportJSON(sbom.Materialize(forest), ExportTarget(record, path), force)
}

func exportJSON(payload interface{}, target string, force bool) (location string, err error) {
	defer fail.Around(&err)

	blob, err := json.MarshalIndent(payload, "", "  ")
	fail.On(err != nil, "Could not encode export: %v", err)
	blob = append(blob, '\n')

	if target == StdoutTarget {
		_, err = exportSink.Write(blob)
		fail.Fast(err)
		return target, nil
	}

	info, err := os.Stat(target)
	if err == nil {
		fail.On(info.IsDir(), "Export target %q is a directory.", target)
		confirmed, err := wizard.Confirm(fmt.Sprintf("File %q exists. Overwrite", target), force)
		fail.Fast(err)
		if !confirmed {
			return "", ErrExportCancelled
		}
	}

	fail.Fast(os.WriteFile(target, blob, 0o644))
	common.Debug("Exported %d bytes to %q.", len(blob), target)
	return target, nil
}
