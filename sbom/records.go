package sbom

// LatestRecord picks the record with the most recent timestamp. On equal
// timestamps the earlier record in the list wins. Records whose timestamp
// did not parse count as the oldest.
func LatestRecord(records []Record) (*Record, bool) {
	if len(records) == 0 {
		return nil, false
	}
	best := 0
	for at := 1; at < len(records); at++ {
		if records[at].Timestamp.Time.After(records[best].Timestamp.Time) {
			best = at
		}
	}
	return &records[best], true
}

// DisplayName is the project name, or N/A.
func (it *Record) DisplayName() string {
	return orNotAvailable(it.ProjectName)
}

// DisplayScanID is the scan id, or N/A.
func (it *Record) DisplayScanID() string {
	return orNotAvailable(it.ScanID)
}

// ExportName is the default file name for exporting this record's SBOM.
func (it *Record) ExportName() string {
	if len(it.ProjectName) > 0 {
		return it.ProjectName + ".json"
	}
	return "sbom.json"
}
