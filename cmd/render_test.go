package cmd

import (
	"encoding/json"
	"testing"

	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoRecord(scan, stamp string) sbom.Record {
	return sbom.Record{
		ProjectName: "demo",
		ScanID:      scan,
		Timestamp:   sbom.ParseTimestamp(stamp),
		SBOM: sbom.Document{
			Components: []sbom.Component{{Name: "left-pad", Version: "1.3.0"}},
			Dependencies: []sbom.DependencyEdge{
				{Ref: "app", DependsOn: []string{"left-pad"}},
				{Ref: "left-pad"},
			},
		},
	}
}

func TestFormatRecordShowsEverySection(t *testing.T) {
	must := require.New(t)
	record := demoRecord("s1", "2024-05-01T10:00:00Z")

	text := formatRecord(&record, false, 80, sbom.AsciiTree)

	must.Contains(text, "Project:     demo")
	must.Contains(text, "Scan ID:     s1")
	must.Contains(text, "left-pad")
	must.Contains(text, "N/A")
	must.Contains(text, "app\n`-- left-pad\n")
}

func TestFormatRecordEmptyStates(t *testing.T) {
	record := sbom.Record{}

	text := formatRecord(&record, false, 80, sbom.AsciiTree)

	assert.Contains(t, text, "Project:     N/A")
	assert.Contains(t, text, noComponents)
	assert.Contains(t, text, noDependencies)
	assert.Contains(t, text, noTree)
}

func TestFormatRecordTreeOnly(t *testing.T) {
	record := demoRecord("s1", "2024-05-01T10:00:00Z")

	text := formatRecord(&record, true, 80, sbom.UnicodeTree)

	assert.Equal(t, "app\n└── left-pad\n", text)
}

func TestFormatRecordTreeShowsSharedOnce(t *testing.T) {
	record := sbom.Record{SBOM: sbom.Document{Dependencies: []sbom.DependencyEdge{
		{Ref: "web", DependsOn: []string{"express"}},
		{Ref: "api", DependsOn: []string{"express"}},
		{Ref: "express", DependsOn: []string{"qs"}},
		{Ref: "qs"},
	}}}

	text := formatRecord(&record, true, 80, sbom.AsciiTree)

	assert.Equal(t, "web\n`-- express\n    `-- qs\napi\n`-- express (shown above)\n", text)
}

func TestDuplicateNotesNameTheSurvivingEdge(t *testing.T) {
	must := require.New(t)

	var record sbom.Record
	must.NoError(json.Unmarshal([]byte(`{"sbom": {"dependencies": [
	  {"ref": "qs", "scope": "optional"},
	  {"ref": "qs", "scope": "required", "hashes": []},
	  {"ref": "qs"},
	  {"ref": "express", "dependsOn": ["qs"]}
	]}}`), &record))

	notes := duplicateNotes(&record)
	must.Equal([]string{`"qs", the last entry wins (extra attributes: N/A)`}, notes)

	record.SBOM.Dependencies = record.SBOM.Dependencies[:2]
	must.Equal([]string{`"qs", the last entry wins (extra attributes: hashes, scope)`}, duplicateNotes(&record))
	must.Empty(duplicateNotes(&sbom.Record{}))
}

func TestSelectRecords(t *testing.T) {
	must := require.New(t)
	records := []sbom.Record{
		demoRecord("old", "2023-01-01T00:00:00Z"),
		demoRecord("new", "2024-01-01T00:00:00Z"),
	}

	latest, err := selectRecords(records, false)
	must.NoError(err)
	must.Len(latest, 1)
	must.Equal("new", latest[0].ScanID)

	all, err := selectRecords(records, true)
	must.NoError(err)
	must.Len(all, 2)
	must.Equal("old", all[0].ScanID)

	_, err = selectRecords(nil, false)
	must.ErrorIs(err, operations.ErrNoResults)
	_, err = selectRecords([]sbom.Record{}, true)
	must.ErrorIs(err, operations.ErrNoResults)
}
