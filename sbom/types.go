package sbom

import (
	"encoding/json"
	"strings"
	"time"
)

// NotAvailable is what renderers show for missing values. The builder and
// the decoders never substitute it.
const NotAvailable = "N/A"

// Component is one entry of the SBOM "components" array.
type Component struct {
	Name    string
	Version string
	Type    string
	Extra   map[string]json.RawMessage

	received fields
}

// DependencyEdge is one entry of the SBOM "dependencies" array: a component
// reference and the references it depends on.
type DependencyEdge struct {
	Ref       string
	DependsOn []string
	Extra     map[string]json.RawMessage

	received fields
}

// Document is the "sbom" field of a scan record.
type Document struct {
	Components   []Component
	Dependencies []DependencyEdge
	Extra        map[string]json.RawMessage

	received fields
}

// Record is one stored scan as returned by GET /scans/{project}.
type Record struct {
	ProjectName string    `json:"project_name"`
	ScanID      string    `json:"scan_id"`
	Timestamp   Timestamp `json:"timestamp"`
	SBOM        Document  `json:"sbom"`
}

// Timestamp keeps the text it was decoded from, so records with odd
// timestamps still display and export as received.
type Timestamp struct {
	Time time.Time
	Raw  string
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(text string) Timestamp {
	result := Timestamp{Raw: text}
	trimmed := strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		if when, err := time.Parse(layout, trimmed); err == nil {
			result.Time = when
			break
		}
	}
	return result
}

func (it *Timestamp) UnmarshalJSON(blob []byte) error {
	var text string
	if err := json.Unmarshal(blob, &text); err != nil {
		*it = Timestamp{Raw: string(blob)}
		return nil
	}
	*it = ParseTimestamp(text)
	return nil
}

func (it Timestamp) MarshalJSON() ([]byte, error) {
	if len(it.Raw) > 0 {
		return json.Marshal(it.Raw)
	}
	if it.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(it.Time.Format(time.RFC3339Nano))
}

func (it Timestamp) IsZero() bool {
	return it.Time.IsZero()
}

// Local renders the timestamp in the local zone, falling back to the raw text.
func (it Timestamp) Local() string {
	if !it.Time.IsZero() {
		return it.Time.Local().Format("2006-01-02 15:04:05")
	}
	if len(it.Raw) > 0 {
		return it.Raw
	}
	return NotAvailable
}

func (it *Component) UnmarshalJSON(blob []byte) error {
	extra, err := splitFields(blob)
	if err != nil {
		return err
	}
	*it = Component{received: make(fields, 3)}
	extra.take("name", &it.Name, it.received)
	extra.take("version", &it.Version, it.received)
	extra.take("type", &it.Type, it.received)
	it.Extra = extra.clone()
	return nil
}

func (it Component) MarshalJSON() ([]byte, error) {
	known := make(map[string]interface{}, 3)
	it.received.put(known, "name", it.Name, len(it.Name) > 0)
	it.received.put(known, "version", it.Version, len(it.Version) > 0)
	it.received.put(known, "type", it.Type, len(it.Type) > 0)
	return fields(it.Extra).encode(known)
}

// Cells is the table row for the component: name, version and type.
func (it Component) Cells() []string {
	return []string{orNotAvailable(it.Name), orNotAvailable(it.Version), orNotAvailable(it.Type)}
}

func (it *DependencyEdge) UnmarshalJSON(blob []byte) error {
	extra, err := splitFields(blob)
	if err != nil {
		return err
	}
	*it = DependencyEdge{received: make(fields, 2)}
	extra.take("ref", &it.Ref, it.received)
	extra.take("dependsOn", &it.DependsOn, it.received)
	it.Extra = extra.clone()
	return nil
}

func (it DependencyEdge) MarshalJSON() ([]byte, error) {
	known := make(map[string]interface{}, 2)
	it.received.put(known, "ref", it.Ref, len(it.Ref) > 0)
	it.received.put(known, "dependsOn", it.DependsOn, it.DependsOn != nil)
	return fields(it.Extra).encode(known)
}

// HasRef tells an edge with an empty ref apart from one without a ref.
func (it DependencyEdge) HasRef() bool {
	return len(it.Ref) > 0 || it.received.has("ref")
}

// Label is the reference as rendered; an absent reference shows as N/A.
func (it DependencyEdge) Label() string {
	return orNotAvailable(it.Ref)
}

// Cells is the table row for the edge: reference and its dependencies.
func (it DependencyEdge) Cells() []string {
	return []string{it.Label(), orNotAvailable(strings.Join(it.DependsOn, ", "))}
}

func (it *Document) UnmarshalJSON(blob []byte) error {
	extra, err := splitFields(blob)
	if err != nil {
		return err
	}
	*it = Document{received: make(fields, 2)}
	extra.take("components", &it.Components, it.received)
	extra.take("dependencies", &it.Dependencies, it.received)
	it.Extra = extra.clone()
	return nil
}

func (it Document) MarshalJSON() ([]byte, error) {
	known := make(map[string]interface{}, 2)
	it.received.put(known, "components", it.Components, it.Components != nil)
	it.received.put(known, "dependencies", it.Dependencies, it.Dependencies != nil)
	return fields(it.Extra).encode(known)
}

// IsEmpty reports a document with neither components nor dependencies.
func (it Document) IsEmpty() bool {
	return len(it.Components) == 0 && len(it.Dependencies) == 0
}

// Forest builds the dependency forest of the document.
func (it Document) Forest() *Forest {
	return NewForest(it.Dependencies)
}

func orNotAvailable(value string) string {
	if len(value) == 0 {
		return NotAvailable
	}
	return value
}
