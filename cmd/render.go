package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/joshyorko/sbomdesk/cloud"
	"github.com/joshyorko/sbomdesk/common"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/pretty"
	"github.com/joshyorko/sbomdesk/sbom"
)

const (
	noComponents   = "No components data available"
	noDependencies = "No dependencies data available"
	noTree         = "No dependencies tree available"
)

func treeStyle() sbom.TreeStyle {
	if pretty.Iconic {
		return sbom.UnicodeTree
	}
	return sbom.AsciiTree
}

// formatRecord renders one record as header, tables and tree. With treeOnly
// only the tree is rendered.
func formatRecord(record *sbom.Record, treeOnly bool, width int, style sbom.TreeStyle) string {
	var b strings.Builder
	if !treeOnly {
		fmt.Fprintf(&b, "Project:     %s\n", record.DisplayName())
		fmt.Fprintf(&b, "Scan ID:     %s\n", record.DisplayScanID())
		fmt.Fprintf(&b, "Scanned:     %s\n", record.Timestamp.Local())
		fmt.Fprintf(&b, "Fingerprint: %s\n\n", sbom.Fingerprint(record.SBOM))

		b.WriteString("Components\n")
		if len(record.SBOM.Components) == 0 {
			b.WriteString(noComponents + "\n")
		} else {
			rows := make([][]string, 0, len(record.SBOM.Components))
			for _, component := range record.SBOM.Components {
				rows = append(rows, component.Cells())
			}
			b.WriteString(pretty.TableWidth(width, []string{"Name", "Version", "Type"}, rows) + "\n")
		}

		b.WriteString("\nDependencies\n")
		if len(record.SBOM.Dependencies) == 0 {
			b.WriteString(noDependencies + "\n")
		} else {
			rows := make([][]string, 0, len(record.SBOM.Dependencies))
			for _, edge := range record.SBOM.Dependencies {
				rows = append(rows, edge.Cells())
			}
			b.WriteString(pretty.TableWidth(width, []string{"Reference", "Depends On"}, rows) + "\n")
		}
		b.WriteString("\nDependency tree\n")
	}

	roots := sbom.BuildForest(record.SBOM.Dependencies)
	if len(roots) == 0 {
		b.WriteString(noTree + "\n")
	} else {
		b.WriteString(sbom.TreeText(roots, style))
	}
	return b.String()
}

// selectRecords picks the latest record, or all of them in received order.
func selectRecords(records []sbom.Record, all bool) ([]*sbom.Record, error) {
	if all {
		if len(records) == 0 {
			return nil, operations.ErrNoResults
		}
		selected := make([]*sbom.Record, 0, len(records))
		for at := range records {
			selected = append(selected, &records[at])
		}
		return selected, nil
	}
	latest, err := operations.Latest(records)
	if err != nil {
		return nil, err
	}
	return []*sbom.Record{latest}, nil
}

// duplicateNotes names each repeated dependency ref once, with the
// passthrough attributes of the edge that won.
func duplicateNotes(record *sbom.Record) []string {
	forest := record.SBOM.Forest()
	seen := make(map[string]bool)
	notes := []string{}
	for _, ref := range forest.Duplicates() {
		if seen[ref] {
			continue
		}
		seen[ref] = true
		kept := []string{}
		if node, ok := forest.Lookup(ref); ok {
			for key := range node.Extra {
				kept = append(kept, key)
			}
		}
		sort.Strings(kept)
		label := sbom.NotAvailable
		if len(kept) > 0 {
			label = strings.Join(kept, ", ")
		}
		notes = append(notes, fmt.Sprintf("%q, the last entry wins (extra attributes: %s)", ref, label))
	}
	return notes
}

// showRecords prints the chosen records to stdout, as JSON or as text.
func showRecords(records []sbom.Record, all, treeOnly bool) {
	selected, err := selectRecords(records, all)
	pretty.Guard(err == nil, 4, "%v", err)

	if jsonFlag {
		var payload interface{} = selected[0]
		if all {
			payload = selected
		}
		if treeOnly {
			trees := make([][]*sbom.TreeView, 0, len(selected))
			for _, record := range selected {
				trees = append(trees, sbom.Materialize(sbom.BuildForest(record.SBOM.Dependencies)))
			}
			payload = trees[0]
			if all {
				payload = trees
			}
		}
		nice, err := json.MarshalIndent(payload, "", "  ")
		pretty.Guard(err == nil, 5, "%v", err)
		common.Stdout("%s\n", nice)
		return
	}

	width := pretty.TerminalWidth()
	for at, record := range selected {
		if at > 0 {
			common.Stdout("\n%s\n\n", strings.Repeat("-", width))
		}
		for _, note := range duplicateNotes(record) {
			common.Debug("Scan %s repeats dependency ref %s.", record.DisplayScanID(), note)
		}
		common.Stdout("%s", formatRecord(record, treeOnly, width, treeStyle()))
	}
}

// loadRecords reads records from a saved file or URL when from is set, and
// from the scan service otherwise.
func loadRecords(ctx context.Context, service *operations.Service, project, from string) ([]sbom.Record, error) {
	if len(from) > 0 {
		blob, err := cloud.ReadFile(ctx, from)
		if err != nil {
			return nil, err
		}
		return operations.ParseRecords(blob)
	}
	return service.Records(ctx, project)
}
