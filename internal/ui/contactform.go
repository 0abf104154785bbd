package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/five82/capture/internal/contact"
	"github.com/five82/capture/internal/state"
)

type formField int

const (
	fieldName formField = iota
	fieldEmail
	fieldService
	fieldMessage
	fieldCount
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

const (
	draftSavedMessage = "Draft saved locally."
	requiredMessage   = "Please complete the required fields."
	sendingMessage    = "Sending..."
	serviceNone       = "Select a service"
)

type contactForm struct {
	name       textinput.Model
	email      textinput.Model
	message    textarea.Model
	services   []string // index 0 is "no service"
	serviceIdx int
	focus      formField
	submitting bool
	status     string
	statusKind statusKind
}

func newContactForm(services []string) contactForm {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 200

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200

	msg := textarea.New()
	msg.Placeholder = "Tell us about your shoot"
	msg.ShowLineNumbers = false
	msg.CharLimit = 5000
	msg.SetHeight(5)
	// Enter submits; newlines need alt+enter or ctrl+j.
	msg.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return contactForm{
		name:     name,
		email:    email,
		message:  msg,
		services: append([]string{""}, services...),
	}
}

func (f *contactForm) payload() contact.Payload {
	return contact.Payload{
		Name:    f.name.Value(),
		Email:   f.email.Value(),
		Service: f.services[f.serviceIdx],
		Message: f.message.Value(),
	}
}

func (f *contactForm) fill(p contact.Payload) {
	f.name.SetValue(p.Name)
	f.email.SetValue(p.Email)
	f.message.SetValue(p.Message)
	f.serviceIdx = 0
	for i, s := range f.services {
		if s != "" && s == p.Service {
			f.serviceIdx = i
		}
	}
}

func (f *contactForm) reset() {
	f.name.Reset()
	f.email.Reset()
	f.message.Reset()
	f.serviceIdx = 0
	f.blur()
	f.focus = fieldName
}

func (f *contactForm) blur() {
	f.name.Blur()
	f.email.Blur()
	f.message.Blur()
}

func (f *contactForm) focusCurrent() tea.Cmd {
	f.blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	case fieldMessage:
		return f.message.Focus()
	}
	return nil
}

func (f *contactForm) move(delta int) tea.Cmd {
	n := int(fieldCount)
	f.focus = formField(((int(f.focus)+delta)%n + n) % n)
	return f.focusCurrent()
}

func (f *contactForm) cycleService(delta int) {
	n := len(f.services)
	f.serviceIdx = ((f.serviceIdx+delta)%n + n) % n
}

func (f *contactForm) setStatus(kind statusKind, msg string) {
	f.statusKind = kind
	f.status = msg
}

func (f *contactForm) setWidth(w int) {
	f.name.Width = w
	f.email.Width = w
	f.message.SetWidth(w)
}

type draftLoadedMsg struct {
	payload contact.Payload
	ok      bool
	err     error
}

type draftSavedMsg struct {
	err error
}

type contactSubmittedMsg struct {
	result contact.Result
	err    error
}

func loadDraftCmd(ctx context.Context, svc ContactService) tea.Cmd {
	return func() tea.Msg {
		p, ok, err := svc.LoadDraft(ctx)
		return draftLoadedMsg{payload: p, ok: ok, err: err}
	}
}

func saveDraftCmd(ctx context.Context, svc ContactService, p contact.Payload) tea.Cmd {
	return func() tea.Msg {
		return draftSavedMsg{err: svc.SaveDraft(ctx, p)}
	}
}

func submitCmd(ctx context.Context, svc ContactService, p contact.Payload, store *state.Store, onQueued func()) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Submit(ctx, p)
		if err == nil && res.Queued {
			if n, cerr := svc.PendingCount(ctx); cerr == nil && store != nil {
				store.SetPending(n)
			}
			if onQueued != nil {
				onQueued()
			}
		}
		return contactSubmittedMsg{result: res, err: err}
	}
}

func (m Model) handleContactKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.form
	switch {
	case key.Matches(msg, m.keys.SaveDraft):
		if m.contact == nil {
			return m, nil
		}
		return m, saveDraftCmd(m.ctx, m.contact, f.payload())

	case key.Matches(msg, m.keys.NextField):
		return m, f.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, f.move(-1)

	case key.Matches(msg, m.keys.Submit):
		if f.focus != fieldMessage {
			return m, f.move(1)
		}
		return m.submitForm()
	}

	if f.focus != fieldMessage {
		switch msg.String() {
		case "up":
			return m, f.move(-1)
		case "down":
			return m, f.move(1)
		}
	}
	if f.focus == fieldService {
		switch msg.String() {
		case "left", "h":
			f.cycleService(-1)
		case "right", "l", " ":
			f.cycleService(1)
		}
		return m, nil
	}
	return m.updateFormInput(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := &m.form
	if f.submitting || m.contact == nil {
		return m, nil
	}
	p := f.payload()
	if err := contact.Validate(p); err != nil {
		f.setStatus(statusError, requiredMessage+" "+validationDetail(err))
		return m, nil
	}
	f.submitting = true
	f.setStatus(statusInfo, sendingMessage)
	return m, submitCmd(m.ctx, m.contact, p, m.store, m.onQueued)
}

// updateFormInput forwards a message to the focused input.
func (m Model) updateFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.form.focus {
	case fieldName:
		m.form.name, cmd = m.form.name.Update(msg)
	case fieldEmail:
		m.form.email, cmd = m.form.email.Update(msg)
	case fieldMessage:
		m.form.message, cmd = m.form.message.Update(msg)
	}
	return m, cmd
}

func (m Model) handleFormResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.form
	switch msg := msg.(type) {
	case draftLoadedMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).Warn("load draft failed")
			return m, nil
		}
		if msg.ok {
			f.fill(msg.payload)
		}

	case draftSavedMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).Warn("save draft failed")
			f.setStatus(statusError, "Could not save draft.")
			return m, nil
		}
		f.setStatus(statusSuccess, draftSavedMessage)

	case contactSubmittedMsg:
		f.submitting = false
		switch {
		case errors.Is(msg.err, contact.ErrInvalidPayload):
			f.setStatus(statusError, requiredMessage+" "+validationDetail(msg.err))
		case msg.err != nil:
			logrus.WithError(msg.err).Error("submit contact failed")
			f.setStatus(statusError, "Could not send or save your message.")
		case msg.result.Queued:
			f.setStatus(statusWarning, msg.result.Message)
		default:
			f.setStatus(statusSuccess, msg.result.Message)
			f.reset()
			if m.page == PageContact {
				return m, f.focusCurrent()
			}
		}
	}
	return m, nil
}

func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), contact.ErrInvalidPayload.Error()+": ")
}

func (m *Model) resizeForm() {
	m.form.setWidth(min(60, max(20, m.width-20)))
}

func (m Model) renderContact() string {
	styles := m.theme.Styles()
	f := m.form

	label := func(field formField, text string) string {
		if f.focus == field {
			return styles.AccentText.Bold(true).Render("› " + text)
		}
		return styles.MutedText.Render("  " + text)
	}

	service := f.services[f.serviceIdx]
	if service == "" {
		service = serviceNone
	}
	serviceView := styles.Text.Render("‹ " + service + " ›")
	if f.focus != fieldService {
		serviceView = styles.MutedText.Render(service)
	}

	rows := []string{
		styles.Text.Bold(true).Render("Get in touch"),
		"",
		label(fieldName, "Name *"),
		"  " + f.name.View(),
		label(fieldEmail, "Email *"),
		"  " + f.email.View(),
		label(fieldService, "Service"),
		"  " + serviceView,
		label(fieldMessage, "Message *"),
		lipgloss.NewStyle().PaddingLeft(2).Render(f.message.View()),
		"",
	}

	if f.status != "" {
		var st lipgloss.Style
		switch f.statusKind {
		case statusSuccess:
			st = styles.SuccessText
		case statusWarning:
			st = styles.WarningText
		case statusError:
			st = styles.DangerText
		default:
			st = styles.InfoText
		}
		rows = append(rows, st.Render(f.status))
	}
	rows = append(rows, styles.FaintText.Render("enter next/send · ctrl+s save draft · alt+enter newline"))
	return strings.Join(rows, "\n")
}
