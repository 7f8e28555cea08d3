package main

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/purrlang/purr/purr"
)

// consoleTheme holds the lipgloss styles the console renders with.
type consoleTheme struct {
	title  lipgloss.Style
	rule   lipgloss.Style
	prompt lipgloss.Style
	echo   lipgloss.Style
	output lipgloss.Style
	fail   lipgloss.Style
	status lipgloss.Style
}

func newConsoleTheme() consoleTheme {
	fur := lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#C4B5FD"}
	nose := lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F9A8D4"}
	whisker := lipgloss.AdaptiveColor{Light: "#57534E", Dark: "#A8A29E"}
	return consoleTheme{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(fur).Padding(0, 1),
		rule:   lipgloss.NewStyle().Foreground(whisker),
		prompt: lipgloss.NewStyle().Foreground(fur),
		echo:   lipgloss.NewStyle().Foreground(whisker).Italic(true),
		output: lipgloss.NewStyle(),
		fail:   lipgloss.NewStyle().Foreground(nose).Bold(true),
		status: lipgloss.NewStyle().Foreground(whisker),
	}
}

// consoleKeys implements help.KeyMap so the footer is rendered by bubbles.
type consoleKeys struct {
	history key.Binding
	forward key.Binding
	scroll  key.Binding
	submit  key.Binding
	clear   key.Binding
	help    key.Binding
	quit    key.Binding
}

func newConsoleKeys() consoleKeys {
	return consoleKeys{
		history: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "recall input")),
		forward: key.NewBinding(key.WithKeys("down")),
		scroll:  key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send line")),
		clear:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "more keys")),
		quit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k consoleKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.help, k.quit}
}

func (k consoleKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.history, k.scroll},
		{k.clear, k.help, k.quit},
	}
}

// Messages sent from the running program into the console.
type (
	outputMsg   struct{ line string }
	promptMsg   struct{}
	finishedMsg struct{ err error }
)

type transcriptEntry struct {
	text    string
	isInput bool
	isErr   bool
}

type consoleModel struct {
	theme     consoleTheme
	keys      consoleKeys
	textInput textinput.Model
	view      viewport.Model
	help      help.Model
	submit    chan<- string

	transcript []transcriptEntry
	inputs     []string
	recall     int // index into inputs while browsing, len(inputs) otherwise
	width      int
	height     int

	waiting  bool
	finished bool
	quitting bool
}

const (
	idlePlaceholder   = "waiting for the program..."
	promptPlaceholder = "type a line..."
)

func newConsoleModel(submit chan<- string) consoleModel {
	theme := newConsoleTheme()
	ti := textinput.New()
	ti.Prompt = "purr> "
	ti.PromptStyle = theme.prompt
	ti.Placeholder = idlePlaceholder
	ti.CharLimit = 500

	h := help.New()
	h.Styles.ShortKey = theme.prompt
	h.Styles.FullKey = theme.prompt
	h.Styles.ShortDesc = theme.status
	h.Styles.FullDesc = theme.status

	return consoleModel{
		theme:     theme,
		keys:      newConsoleKeys(),
		textInput: ti,
		view:      viewport.New(0, 0),
		help:      h,
		submit:    submit,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

// chromeHeight is the number of rows around the transcript: title, rule,
// input line and the help footer.
func (m consoleModel) chromeHeight() int {
	helpRows := 1
	if m.help.ShowAll {
		for _, column := range m.keys.FullHelp() {
			helpRows = max(helpRows, len(column))
		}
	}
	return 3 + helpRows
}

func (m *consoleModel) layout() {
	m.view.Width = m.width
	m.view.Height = max(m.height-m.chromeHeight(), 1)
	m.textInput.Width = max(m.width-len(m.textInput.Prompt)-1, 10)
	m.help.Width = m.width
}

func (m *consoleModel) record(entry transcriptEntry) {
	m.transcript = append(m.transcript, entry)
	m.render()
}

func (m *consoleModel) render() {
	lines := make([]string, len(m.transcript))
	for i, entry := range m.transcript {
		switch {
		case entry.isInput:
			lines[i] = m.theme.echo.Render("› " + entry.text)
		case entry.isErr:
			lines[i] = m.theme.fail.Render("✗ " + entry.text)
		default:
			lines[i] = m.theme.output.Render(entry.text)
		}
	}
	m.view.SetContent(strings.Join(lines, "\n"))
	m.view.GotoBottom()
}

func (m *consoleModel) browse(step int) {
	if len(m.inputs) == 0 {
		return
	}
	m.recall = min(max(m.recall+step, 0), len(m.inputs))
	if m.recall == len(m.inputs) {
		m.textInput.SetValue("")
	} else {
		m.textInput.SetValue(m.inputs[m.recall])
	}
	m.textInput.CursorEnd()
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.render()
		return m, nil

	case outputMsg:
		m.record(transcriptEntry{text: msg.line})
		return m, nil

	case promptMsg:
		m.waiting = true
		m.textInput.Placeholder = promptPlaceholder
		return m, m.textInput.Focus()

	case finishedMsg:
		m.finished, m.waiting = true, false
		m.textInput.Blur()
		if msg.err != nil {
			m.record(transcriptEntry{text: msg.err.Error(), isErr: true})
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.clear):
			m.transcript = nil
			m.render()
			return m, nil
		case key.Matches(msg, m.keys.help):
			m.help.ShowAll = !m.help.ShowAll
			m.layout()
			return m, nil
		case key.Matches(msg, m.keys.scroll):
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.history):
			m.browse(-1)
			return m, nil
		case key.Matches(msg, m.keys.forward):
			m.browse(1)
			return m, nil
		case key.Matches(msg, m.keys.submit):
			return m.send()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// send hands the input line to a pending read. Once the program has
// finished, enter closes the console instead.
func (m consoleModel) send() (tea.Model, tea.Cmd) {
	if m.finished {
		m.quitting = true
		return m, tea.Quit
	}
	if !m.waiting {
		return m, nil
	}
	line := m.textInput.Value()
	if strings.TrimSpace(line) != "" {
		m.inputs = append(m.inputs, line)
	}
	m.recall = len(m.inputs)
	m.record(transcriptEntry{text: line, isInput: true})
	m.textInput.SetValue("")
	m.textInput.Placeholder = idlePlaceholder
	m.waiting = false
	m.submit <- line
	return m, nil
}

func (m consoleModel) View() string {
	if m.quitting {
		return ""
	}
	title := m.theme.title.Render("purr " + version)
	rule := m.theme.rule.Render(strings.Repeat("─", max(m.view.Width, 10)))

	input := m.textInput.View()
	if m.finished {
		input = m.theme.status.Render("program finished, press enter to exit")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.view.View(),
		rule,
		input,
		m.help.View(m.keys),
	)
}

// consoleHost feeds program output into a running console and blocks reads
// until the user submits a line.
type consoleHost struct {
	program *tea.Program
	input   chan string
	closed  chan struct{}
}

func (h *consoleHost) EmitLine(line string) error {
	h.program.Send(outputMsg{line: line})
	return nil
}

func (h *consoleHost) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-h.closed:
		return "", io.EOF
	default:
	}
	h.program.Send(promptMsg{})
	select {
	case line := <-h.input:
		return line, nil
	case <-h.closed:
		return "", io.EOF
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// runConsole runs program against a console host. Quitting the console
// cancels the program's context and ends any pending read.
func runConsole(ctx context.Context, program func(context.Context, purr.Host) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan string, 1)
	host := &consoleHost{input: input, closed: make(chan struct{})}
	host.program = tea.NewProgram(newConsoleModel(input), tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		err := program(ctx, host)
		host.program.Send(finishedMsg{err: err})
		done <- err
	}()

	_, runErr := host.program.Run()
	close(host.closed)
	cancel()
	err := <-done
	if runErr != nil && err == nil {
		return runErr
	}
	return err
}
