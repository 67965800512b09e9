package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// transcriptEntry is one rendered line pair of the conversation.
type transcriptEntry struct {
	userInput string
	response  string
	tier      domain.Tier
}

// resolutionReceived carries a finished resolve call back to Update.
type resolutionReceived struct {
	userInput  string
	resolution domain.Resolution
	err        error
}

// App is the chat TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *Styles

	input      textinput.Model
	transcript viewport.Model
	spin       spinner.Model

	// entries is the conversation transcript, oldest first.
	entries []transcriptEntry

	// waiting is true while a resolve call is in flight.
	waiting bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := DefaultStyles()

	input := textinput.New()
	input.Placeholder = "Ask me anything..."
	input.Prompt = s.Prompt.Render("> ")
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		input:      input,
		transcript: viewport.New(80, 20),
		spin:       spin,
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("factotum - chat"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			return a, a.submit()
		}

	case resolutionReceived:
		a.waiting = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.entries = append(a.entries, transcriptEntry{
			userInput: msg.userInput,
			response:  msg.resolution.Text,
			tier:      msg.resolution.Tier,
		})
		a.transcript.SetContent(a.renderTranscript())
		a.transcript.GotoBottom()
		return a, nil

	case spinner.TickMsg:
		if a.waiting {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.transcript, cmd = a.transcript.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// submit sends the current input through the resolver. The exchange is
// recorded once the response arrives; a recording failure is logged
// but does not disturb the chat.
func (a *App) submit() tea.Cmd {
	query := strings.TrimSpace(a.input.Value())
	if query == "" || a.waiting {
		return nil
	}

	a.input.Reset()
	a.waiting = true

	resolve := func() tea.Msg {
		res, err := a.ports.Resolver.Resolve(a.ctx, query)
		if err != nil {
			return resolutionReceived{userInput: query, err: err}
		}
		if _, err := a.ports.Knowledge.RecordExchange(a.ctx, query, res.Text, 0); err != nil {
			logger.Warn("Recording exchange failed: %v", err)
		}
		return resolutionReceived{userInput: query, resolution: res}
	}

	return tea.Batch(resolve, a.spin.Tick)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Factotum"))
	b.WriteString("\n\n")
	b.WriteString(a.transcript.View())
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spin.View())
		b.WriteString(a.styles.Muted.Render(" thinking..."))
		b.WriteString("\n")
	}
	if a.err != nil {
		b.WriteString(a.styles.Error.Render("error: " + a.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render("[enter] send  [esc] quit"))
	return b.String()
}

// renderTranscript renders the conversation entries.
func (a *App) renderTranscript() string {
	var b strings.Builder
	for i := range a.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(a.styles.User.Render("You: "))
		b.WriteString(a.entries[i].userInput)
		b.WriteString("\n")
		b.WriteString(a.styles.Assistant.Render("Factotum: " + a.entries[i].response))
		b.WriteString("\n")
		b.WriteString(a.styles.Muted.Render("(" + string(a.entries[i].tier) + " tier)"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Entries returns the transcript entries (for testing).
func (a *App) Entries() []transcriptEntry {
	return a.entries
}

// Waiting returns whether a resolve call is in flight.
func (a *App) Waiting() bool {
	return a.waiting
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.Width = width - 4
	a.transcript.Width = width
	transcriptHeight := height - 6
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}
	a.transcript.Height = transcriptHeight
}
