package sbom_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsBody = `[
  {
    "_id": "65f0",
    "project_name": "webshop",
    "scan_id": "20250101T100000",
    "timestamp": "2025-01-01T10:00:00Z",
    "sbom": {"bomFormat": "CycloneDX", "components": [], "dependencies": []}
  },
  {
    "project_name": "webshop",
    "scan_id": "20250301T093000",
    "timestamp": "2025-03-01T09:30:00.250Z",
    "sbom": {
      "bomFormat": "CycloneDX",
      "specVersion": "1.5",
      "components": [
        {"name": "express", "version": "4.19.2", "type": "library", "purl": "pkg:npm/express@4.19.2"},
        {"name": "left-pad"}
      ],
      "dependencies": [
        {"ref": "pkg:npm/webshop@1.0.0", "dependsOn": ["pkg:npm/express@4.19.2"]},
        {"ref": "pkg:npm/express@4.19.2", "dependsOn": []}
      ]
    }
  },
  {
    "project_name": "webshop",
    "scan_id": "20250201T080000",
    "timestamp": "2025-02-01T08:00:00Z",
    "sbom": null
  }
]`

func TestDecodeRecords(t *testing.T) {
	must := require.New(t)

	var records []sbom.Record
	must.NoError(json.Unmarshal([]byte(recordsBody), &records))
	must.Len(records, 3)

	second := records[1]
	must.Equal("20250301T093000", second.ScanID)
	must.Equal(time.Date(2025, 3, 1, 9, 30, 0, 250_000_000, time.UTC), second.Timestamp.Time.UTC())
	must.Len(second.SBOM.Components, 2)
	must.Equal([]string{"left-pad", sbom.NotAvailable, sbom.NotAvailable}, second.SBOM.Components[1].Cells())
	must.JSONEq(`"pkg:npm/express@4.19.2"`, string(second.SBOM.Components[0].Extra["purl"]))
	must.Equal([]string{}, second.SBOM.Dependencies[1].DependsOn)
	must.True(records[2].SBOM.IsEmpty())
}

func TestLatestRecord(t *testing.T) {
	must := require.New(t)

	var records []sbom.Record
	must.NoError(json.Unmarshal([]byte(recordsBody), &records))

	latest, ok := sbom.LatestRecord(records)
	must.True(ok)
	must.Equal("20250301T093000", latest.ScanID)

	_, ok = sbom.LatestRecord(nil)
	must.False(ok)
}

func TestLatestRecordTieKeepsFirst(t *testing.T) {
	when := sbom.ParseTimestamp("2025-01-01T00:00:00Z")
	records := []sbom.Record{
		{ScanID: "one", Timestamp: when},
		{ScanID: "two", Timestamp: when},
		{ScanID: "broken", Timestamp: sbom.ParseTimestamp("yesterday")},
	}

	latest, ok := sbom.LatestRecord(records)
	require.True(t, ok)
	assert.Equal(t, "one", latest.ScanID)
}

func TestDocumentRoundTripKeepsPassthrough(t *testing.T) {
	must := require.New(t)

	original := `{
	  "bomFormat": "CycloneDX",
	  "metadata": {"tools": [{"name": "cyclonedx-npm"}]},
	  "components": [{"name": "a", "version": "1", "type": "library", "licenses": [{"id": "MIT"}]}],
	  "dependencies": [{"ref": "a", "dependsOn": [], "scope": "runtime"}, {"dependsOn": ["a"]}]
	}`

	emptyValues := `{
	  "components": [{"name": "", "version": "1", "type": null}],
	  "dependencies": [{"ref": "A", "dependsOn": null}, {"ref": "", "dependsOn": []}, {"dependsOn": ["A"]}]
	}`
	nullSections := `{"bomFormat": "CycloneDX", "components": null, "dependencies": []}`

	for _, text := range []string{original, emptyValues, nullSections} {
		var document sbom.Document
		must.NoError(json.Unmarshal([]byte(text), &document))
		blob, err := json.Marshal(document)
		must.NoError(err)
		must.JSONEq(text, string(blob))
	}
}

func TestEditedValuesWinOverReceivedOnes(t *testing.T) {
	must := require.New(t)

	var component sbom.Component
	must.NoError(json.Unmarshal([]byte(`{"name": "", "version": null}`), &component))
	component.Name = "left-pad"

	blob, err := json.Marshal(component)
	must.NoError(err)
	must.JSONEq(`{"name": "left-pad", "version": null}`, string(blob))
}

func TestMalformedSectionsStayPassthrough(t *testing.T) {
	must := require.New(t)

	var document sbom.Document
	must.NoError(json.Unmarshal([]byte(`{"components": "oops", "dependencies": [{"ref": "a"}]}`), &document))

	must.Nil(document.Components)
	must.Len(document.Dependencies, 1)
	blob, err := json.Marshal(document)
	must.NoError(err)
	must.JSONEq(`{"components": "oops", "dependencies": [{"ref": "a"}]}`, string(blob))
}

func TestTimestampDisplay(t *testing.T) {
	assert.Equal(t, "yesterday", sbom.ParseTimestamp("yesterday").Local())
	assert.Equal(t, sbom.NotAvailable, sbom.Timestamp{}.Local())
	assert.False(t, sbom.ParseTimestamp("2025-02-01T08:00:00+02:00").IsZero())
}

func TestRecordNames(t *testing.T) {
	named := sbom.Record{ProjectName: "webshop"}
	anonymous := sbom.Record{}

	assert.Equal(t, "webshop.json", named.ExportName())
	assert.Equal(t, "sbom.json", anonymous.ExportName())
	assert.Equal(t, sbom.NotAvailable, anonymous.DisplayScanID())
}

func TestFingerprintIgnoresKeyOrder(t *testing.T) {
	must := require.New(t)

	var left, right sbom.Document
	must.NoError(json.Unmarshal([]byte(`{"bomFormat": "CycloneDX", "components": [{"name": "a", "version": "1"}]}`), &left))
	must.NoError(json.Unmarshal([]byte(`{"components": [{"version": "1", "name": "a"}], "bomFormat": "CycloneDX"}`), &right))

	must.Len(sbom.Fingerprint(left), 16)
	must.Equal(sbom.Fingerprint(left), sbom.Fingerprint(right))

	right.Components[0].Version = "2"
	must.NotEqual(sbom.Fingerprint(left), sbom.Fingerprint(right))
}
