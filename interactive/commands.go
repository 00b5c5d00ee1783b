package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/shlex"
	"github.com/joshyorko/sbomdesk/operations"
	"github.com/joshyorko/sbomdesk/sbom"
	"github.com/joshyorko/sbomdesk/xviper"
)

// Backend is the scan service as the UI sees it; operations.Service is one.
type Backend interface {
	Endpoint() string
	Scan(ctx context.Context, request operations.ScanRequest) (*operations.ScanOutcome, error)
	Records(ctx context.Context, project string) ([]sbom.Record, error)
	Forget(project string)
}

// Recents stores the recently used projects.
type Recents interface {
	Recent() []string
	AddRecent(project string) []string
	RememberScan(directory, project string)
	LastDirectory() string
}

type viperRecents struct{}

func (viperRecents) Recent() []string {
	return xviper.Recent()
}

func (viperRecents) AddRecent(project string) []string {
	return xviper.AddRecent(project)
}

func (viperRecents) RememberScan(directory, project string) {
	xviper.RememberScan(directory, project)
}

func (viperRecents) LastDirectory() string {
	return xviper.LastDirectory()
}

// scanRequestMsg asks the app to trigger a scan and then load its records.
type scanRequestMsg struct {
	request operations.ScanRequest
}

// openRequestMsg asks the app to load the records of a project.
type openRequestMsg struct {
	project string
	fresh   bool
}

// exportRequestMsg asks the app to write the shown record to path.
type exportRequestMsg struct {
	path  string
	force bool
}

// recordsLoadedMsg is the answer of an async scan or open.
type recordsLoadedMsg struct {
	ticket  operations.Ticket
	project string
	message string
	scanned bool
	records []sbom.Record
	err     error
}

type exportedMsg struct {
	location string
	err      error
}

// switchViewMsg asks the app to show another view.
type switchViewMsg struct {
	to ViewType
}

func requestScan(request operations.ScanRequest) tea.Cmd {
	return func() tea.Msg { return scanRequestMsg{request: request} }
}

func requestOpen(project string) tea.Cmd {
	return func() tea.Msg { return openRequestMsg{project: project} }
}

func requestExport(path string, force bool) tea.Cmd {
	return func() tea.Msg { return exportRequestMsg{path: path, force: force} }
}

func switchTo(view ViewType) tea.Cmd {
	return func() tea.Msg { return switchViewMsg{to: view} }
}

func scanCommand(ctx context.Context, backend Backend, ticket operations.Ticket, request operations.ScanRequest) tea.Cmd {
	return func() tea.Msg {
		outcome, err := backend.Scan(ctx, request)
		if err != nil {
			return recordsLoadedMsg{ticket: ticket, project: request.ProjectName, scanned: true, err: err}
		}
		records, err := backend.Records(ctx, outcome.Project)
		return recordsLoadedMsg{
			ticket:  ticket,
			project: outcome.Project,
			message: outcome.Message,
			scanned: true,
			records: records,
			err:     err,
		}
	}
}

func openCommand(ctx context.Context, backend Backend, ticket operations.Ticket, project string) tea.Cmd {
	return func() tea.Msg {
		records, err := backend.Records(ctx, project)
		return recordsLoadedMsg{ticket: ticket, project: project, records: records, err: err}
	}
}

func exportCommand(record *sbom.Record, path string, force bool) tea.Cmd {
	return func() tea.Msg {
		location, err := operations.ExportSBOM(record, path, force)
		return exportedMsg{location: location, err: err}
	}
}

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

// parseCommandLine turns a command bar line into a tea.Cmd.
func parseCommandLine(line string) (tea.Cmd, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}
	verb, args := strings.ToLower(words[0]), words[1:]
	switch verb {
	case "scan", "s":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("%w: scan <directory> [project]", errUsage)
		}
		request := operations.ScanRequest{Directory: args[0]}
		if len(args) == 2 {
			request.ProjectName = args[1]
		}
		return requestScan(request), nil
	case "open", "o":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: open <project>", errUsage)
		}
		return requestOpen(args[0]), nil
	case "export", "e", "w":
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: export [path]", errUsage)
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return requestExport(path, verb == "w"), nil
	case "recent", "r":
		return switchTo(ViewScan), nil
	case "logs":
		return switchTo(ViewLogs), nil
	case "quit", "q":
		return tea.Quit, nil
	}
	return nil, fmt.Errorf("%w %q", errUnknownCommand, verb)
}
