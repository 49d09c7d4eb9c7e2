// Package tui provides the interactive derivation form: master
// password, key, and length inputs with on-enter derivation and
// clipboard copy. The derived password is only ever rendered to the
// terminal, never logged.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

// field indexes into Model.inputs.
type field int

const (
	fieldPassword field = iota
	fieldKey
	fieldLength

	fieldCount
)

// Model is the bubbletea model for the derivation form.
type Model struct {
	inputs [fieldCount]textinput.Model
	focus  field

	result string
	errMsg string
	status string

	theme *Theme
}

// New creates the form model. defaultLength pre-fills the length input.
func New(defaultLength int) Model {
	theme := DefaultTheme()

	password := textinput.New()
	password.Placeholder = "master password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256
	password.Width = 40
	password.Focus()

	key := textinput.New()
	key.Placeholder = "github.com"
	key.CharLimit = 256
	key.Width = 40

	length := textinput.New()
	length.Placeholder = strconv.Itoa(defaultLength)
	length.SetValue(strconv.Itoa(defaultLength))
	length.CharLimit = 2
	length.Width = 4

	return Model{
		inputs: [fieldCount]textinput.Model{password, key, length},
		focus:  fieldPassword,
		theme:  theme,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down":
			return m.setFocus((m.focus + 1) % fieldCount), nil

		case "shift+tab", "up":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil

		case "enter":
			m.derive()
			return m, nil

		case "ctrl+y":
			if m.result != "" {
				if err := clipboard.WriteAll(m.result); err != nil {
					m.errMsg = fmt.Sprintf("clipboard: %v", err)
				} else {
					m.status = "copied to clipboard"
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves input focus to the given field.
func (m Model) setFocus(f field) Model {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

// derive runs the derivation with the current form values, updating
// result or errMsg.
func (m *Model) derive() {
	m.result = ""
	m.errMsg = ""
	m.status = ""

	lengthValue := m.inputs[fieldLength].Value()
	length, err := strconv.Atoi(lengthValue)
	if err != nil {
		m.errMsg = fmt.Sprintf("length must be a number, got: %q", lengthValue)
		return
	}

	password := m.inputs[fieldPassword].Value()
	if password == "" {
		m.errMsg = "master password must not be empty"
		return
	}

	result, err := fpcode.Code(password, m.inputs[fieldKey].Value(), length)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.result = result
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.theme.TitleStyle.Render("flowerpass") + "\n"

	labels := [fieldCount]string{"Master password", "Key", "Length"}
	for i := field(0); i < fieldCount; i++ {
		label := m.theme.LabelStyle
		if i == m.focus {
			label = m.theme.FocusedLabel
		}
		s += fmt.Sprintf("%s\n%s\n", label.Render(labels[i]), m.inputs[i].View())
	}

	if m.errMsg != "" {
		s += m.theme.ErrorStyle.Render("✗ "+m.errMsg) + "\n"
	}
	if m.result != "" {
		s += m.theme.ResultStyle.Render(m.result) + "\n"
	}
	if m.status != "" {
		s += m.theme.StatusStyle.Render(m.status) + "\n"
	}

	s += m.theme.HelpStyle.Render("enter derive · ctrl+y copy · tab next · esc quit") + "\n"
	return s
}

// Run starts the interactive form and blocks until the user quits.
func Run(ctx context.Context, defaultLength int) error {
	p := tea.NewProgram(New(defaultLength), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive mode failed: %w", err)
	}
	return nil
}
