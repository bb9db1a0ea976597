// Package teainput is a bubbletea model for masked single-line input.
package teainput

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-textmask/pkg/field"
	"github.com/goliatone/go-textmask/pkg/session"
)

// Styles holds the lipgloss styles used by View.
type Styles struct {
	Label    lipgloss.Style
	Prompt   lipgloss.Style
	Hint     lipgloss.Style
	Complete lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Label:    lipgloss.NewStyle().Bold(true),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Complete: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Option configures a Model.
type Option func(*Model)

// WithLabel sets the line drawn above the input.
func WithLabel(label string) Option {
	return func(m *Model) {
		m.label = label
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(m *Model) {
		m.styles = styles
	}
}

// WithInitialValue seeds the input before binding.
func WithInitialValue(value string) Option {
	return func(m *Model) {
		m.initial = value
	}
}

// WithBinderOptions forwards options to the field binder.
func WithBinderOptions(opts ...field.Option) Option {
	return func(m *Model) {
		m.binderOpts = append(m.binderOpts, opts...)
	}
}

// inputField exposes a textinput.Model as a field.Field.
type inputField struct {
	input *textinput.Model
}

func (f inputField) Value() string         { return f.input.Value() }
func (f inputField) Caret() int            { return f.input.Position() }
func (f inputField) Focused() bool         { return f.input.Focused() }
func (f inputField) SetValue(value string) { f.input.SetValue(value) }
func (f inputField) SetCaret(position int) { f.input.SetCursor(position) }

// Model wraps textinput.Model and conforms its value after every edit.
// Copies share the same input and binder.
type Model struct {
	input      *textinput.Model
	binder     *field.Binder
	styles     Styles
	label      string
	initial    string
	binderOpts []field.Option

	last      session.Result
	err       error
	submitted bool
	aborted   bool
}

// New builds a focused masked input driven by controller.
func New(controller *session.Controller, opts ...Option) (Model, error) {
	input := textinput.New()
	m := Model{
		input:  &input,
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.input.Prompt = "> "
	m.input.PromptStyle = m.styles.Prompt
	m.input.SetValue(m.initial)
	m.input.Focus()

	binder, err := field.Bind(inputField{input: m.input}, controller, m.binderOpts...)
	if err != nil {
		return Model{}, err
	}
	m.binder = binder
	placeholder := binder.State().PreviousPlaceholder
	m.input.Placeholder = placeholder
	m.last = session.Result{Value: m.input.Value(), CaretPosition: m.input.Position(), Placeholder: placeholder}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.submitted = true
			return m, tea.Quit
		}
	}

	value, position := m.input.Value(), m.input.Position()
	var cmd tea.Cmd
	*m.input, cmd = m.input.Update(msg)
	if m.input.Value() == value && m.input.Position() == position {
		return m, cmd
	}

	res, err := m.binder.Update()
	if err != nil {
		m.err = err
		return m, cmd
	}
	m.err = nil
	m.last = res
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	out := ""
	if m.label != "" {
		out += m.styles.Label.Render(m.label) + "\n"
	}
	out += m.input.View()
	switch {
	case m.err != nil:
		out += "\n" + m.styles.Error.Render(m.err.Error())
	case m.Complete():
		out += "\n" + m.styles.Complete.Render("complete")
	case m.last.Placeholder != "":
		out += "\n" + m.styles.Hint.Render(m.last.Placeholder)
	}
	return out
}

// Value returns the displayed value.
func (m Model) Value() string { return m.input.Value() }

// Caret returns the caret position.
func (m Model) Caret() int { return m.input.Position() }

// Last returns the latest conforming update.
func (m Model) Last() session.Result { return m.last }

// Err returns the error of the latest update, if any.
func (m Model) Err() error { return m.err }

// Submitted reports whether enter was pressed.
func (m Model) Submitted() bool { return m.submitted }

// Aborted reports whether the user cancelled.
func (m Model) Aborted() bool { return m.aborted }

// Complete reports whether every slot is filled.
func (m Model) Complete() bool {
	return m.last.Placeholder != "" &&
		field.Complete(m.input.Value(), m.last.Placeholder, m.placeholderChar())
}

func (m Model) placeholderChar() rune {
	return m.binder.Controller().Config().PlaceholderChar
}
