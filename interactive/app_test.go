package interactive

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu        sync.Mutex
	records   map[string][]sbom.Record
	scanErr   error
	scanned   []operations.ScanRequest
	forgotten []string
}

func (it *fakeBackend) Endpoint() string {
	return "http://localhost:8080"
}

func (it *fakeBackend) Scan(ctx context.Context, request operations.ScanRequest) (*operations.ScanOutcome, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.scanned = append(it.scanned, request)
	if it.scanErr != nil {
		return nil, it.scanErr
	}
	return &operations.ScanOutcome{Message: "Scan completed successfully.", Project: request.ProjectName}, nil
}

func (it *fakeBackend) Records(ctx context.Context, project string) ([]sbom.Record, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.records[project], nil
}

func (it *fakeBackend) Forget(project string) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.forgotten = append(it.forgotten, project)
}

type fakeRecents struct {
	list      []string
	directory string
	project   string
}

func (it *fakeRecents) Recent() []string {
	return it.list
}

func (it *fakeRecents) AddRecent(project string) []string {
	updated := []string{project}
	for _, existing := range it.list {
		if existing != project {
			updated = append(updated, existing)
		}
	}
	it.list = updated
	return it.list
}

func (it *fakeRecents) RememberScan(directory, project string) {
	it.directory, it.project = directory, project
}

func (it *fakeRecents) LastDirectory() string {
	return it.directory
}

func sampleRecord(project, scan string) sbom.Record {
	return sbom.Record{
		ProjectName: project,
		ScanID:      scan,
		Timestamp:   sbom.ParseTimestamp("2024-05-01T10:00:00Z"),
		SBOM: sbom.Document{
			Components:   []sbom.Component{{Name: "left-pad", Version: "1.3.0", Type: "library"}},
			Dependencies: edges([]string{"app", "left-pad"}, []string{"left-pad"}),
		},
	}
}

func newTestApp(backend *fakeBackend) (*App, *fakeRecents) {
	recents := &fakeRecents{list: []string{"older"}}
	app := NewApp(Options{Backend: backend, Recents: recents})
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, recents
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestStaleResultIsDropped(t *testing.T) {
	must := require.New(t)
	app, recents := newTestApp(&fakeBackend{})

	app.Update(openRequestMsg{project: "first"})
	app.Update(openRequestMsg{project: "second"})
	must.True(app.busy)

	app.Update(recordsLoadedMsg{ticket: 1, project: "first", records: []sbom.Record{sampleRecord("first", "s1")}})
	must.Nil(app.results.Record())
	must.True(app.busy)
	must.Equal([]string{"older"}, recents.list)

	app.Update(recordsLoadedMsg{ticket: 2, project: "second", records: []sbom.Record{sampleRecord("second", "s2")}})
	must.NotNil(app.results.Record())
	must.Equal("s2", app.results.Record().ScanID)
	must.False(app.busy)
	must.Equal([]string{"second", "older"}, recents.list)
	must.Equal(ViewResults, app.activeView)
}

func TestScanThenRetrieve(t *testing.T) {
	must := require.New(t)
	backend := &fakeBackend{records: map[string][]sbom.Record{"demo": {sampleRecord("demo", "s1")}}}
	app, recents := newTestApp(backend)

	_, cmd := app.Update(scanRequestMsg{request: operations.ScanRequest{Directory: "/src", ProjectName: "demo"}})
	must.NotNil(cmd)
	must.Equal("/src", recents.directory)

	ctx, ticket := context.Background(), operations.Ticket(1)
	msg := scanCommand(ctx, backend, ticket, operations.ScanRequest{Directory: "/src", ProjectName: "demo"})()
	loaded, ok := msg.(recordsLoadedMsg)
	must.True(ok)
	must.True(loaded.scanned)
	must.Equal("demo", loaded.project)
	must.Len(loaded.records, 1)

	app.Update(loaded)
	must.Equal("demo", app.results.Record().ProjectName)
	must.Contains(app.results.View(), "left-pad")
}

func TestFailedScanShowsError(t *testing.T) {
	backend := &fakeBackend{scanErr: operations.ErrUnreachable}
	msg := scanCommand(context.Background(), backend, 7, operations.ScanRequest{Directory: "/src"})().(recordsLoadedMsg)

	assert.ErrorIs(t, msg.err, operations.ErrUnreachable)
	assert.Empty(t, msg.records)

	app, recents := newTestApp(backend)
	app.results.Show("demo", []sbom.Record{sampleRecord("demo", "s1")})
	app.results.Fail("demo", msg.err)
	assert.Nil(t, app.results.Record())
	assert.Contains(t, app.results.View(), "Failed to connect to the server.")
	assert.Equal(t, []string{"older"}, recents.list)
}

func TestEmptyStates(t *testing.T) {
	must := require.New(t)
	view := NewResultsView(NewStyles())
	must.Contains(view.View(), "No scan results available")

	view.Show("demo", nil)
	must.Nil(view.Record())
	must.Contains(view.View(), "No scan results available")

	view.Show("demo", []sbom.Record{{ProjectName: "demo"}})
	must.Contains(view.View(), "No components data available")
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	must.Contains(view.View(), "No dependencies data available")
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	must.Contains(view.View(), "No dependencies tree available")
}

func TestResultsHeaderAndTree(t *testing.T) {
	must := require.New(t)
	view := NewResultsView(NewStyles())
	record := sampleRecord("demo", "scan-42")
	older := sampleRecord("demo", "scan-1")
	older.Timestamp = sbom.ParseTimestamp("2020-01-01T00:00:00Z")

	view.Show("demo", []sbom.Record{older, record})
	screen := view.View()
	must.Contains(screen, "scan-42")
	must.Contains(screen, sbom.Fingerprint(record.SBOM))
	must.Contains(screen, "2, showing latest")

	view.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	must.Contains(view.View(), "[+] app")
	view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	must.Contains(view.View(), "[-] app")
	must.Contains(view.View(), "left-pad")
}

func TestExportPromptAndOverwrite(t *testing.T) {
	must := require.New(t)
	app, _ := newTestApp(&fakeBackend{})
	app.results.Show("demo", []sbom.Record{sampleRecord("demo", "s1")})
	app.switchView(ViewResults)

	app.Update(runes("e"))
	must.True(app.results.Capturing())
	must.Equal("demo.json", app.results.prompt.Value())

	target := filepath.Join(t.TempDir(), "demo.json")
	must.NoError(os.WriteFile(target, []byte("old"), 0o644))

	app.Update(exportRequestMsg{path: target})
	must.Equal(target, app.overwrite)
	must.Contains(app.View(), "exists. Overwrite?")

	_, cmd := app.Update(runes("y"))
	must.Empty(app.overwrite)
	must.NotNil(cmd)
	exported, ok := cmd().(exportedMsg)
	must.True(ok)
	must.NoError(exported.err)
	must.Equal(target, exported.location)

	blob, err := os.ReadFile(target)
	must.NoError(err)
	must.Contains(string(blob), "\n  \"components\": [")
}

func TestEnterDeclinesOverwrite(t *testing.T) {
	must := require.New(t)
	app, _ := newTestApp(&fakeBackend{})
	app.results.Show("demo", []sbom.Record{sampleRecord("demo", "s1")})

	target := filepath.Join(t.TempDir(), "demo.json")
	must.NoError(os.WriteFile(target, []byte("old"), 0o644))

	app.Update(exportRequestMsg{path: target})
	must.Equal(target, app.overwrite)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	must.Empty(app.overwrite)
	must.NotNil(cmd)
	toast, ok := cmd().(ToastMsg)
	must.True(ok)
	must.Equal(ToastInfo, toast.Type)
	must.Equal(operations.ErrExportCancelled.Error(), toast.Message)

	blob, err := os.ReadFile(target)
	must.NoError(err)
	must.Equal("old", string(blob))
}

func TestExportNeedsRecordAndFile(t *testing.T) {
	app, _ := newTestApp(&fakeBackend{})

	_, cmd := app.Update(exportRequestMsg{path: "x.json"})
	toast := cmd().(ToastMsg)
	assert.Equal(t, ToastError, toast.Type)
	assert.Equal(t, operations.ErrNoResults.Error(), toast.Message)

	app.results.Show("demo", []sbom.Record{sampleRecord("demo", "s1")})
	_, cmd = app.Update(exportRequestMsg{path: operations.StdoutTarget})
	toast = cmd().(ToastMsg)
	assert.Equal(t, errStdoutExport.Error(), toast.Message)
}

func TestTypingIsNotEatenByGlobalKeys(t *testing.T) {
	app, _ := newTestApp(&fakeBackend{})
	must := require.New(t)
	must.True(app.capturing())

	app.Update(runes("q"))
	app.Update(runes("2"))
	must.False(app.quitting)
	must.Equal(ViewScan, app.activeView)
	must.Equal("q2", app.scan.directory.Value())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	must.False(app.capturing())
	app.Update(runes("2"))
	must.Equal(ViewResults, app.activeView)
}

func TestRefreshForgetsCache(t *testing.T) {
	backend := &fakeBackend{}
	app, _ := newTestApp(backend)

	app.Update(openRequestMsg{project: "demo", fresh: true})

	assert.Equal(t, []string{"demo"}, backend.forgotten)
}
