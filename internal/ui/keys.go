package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Home        key.Binding

	// Home
	HeroPrev         key.Binding
	HeroNext         key.Binding
	TestimonialPrev  key.Binding
	TestimonialNext  key.Binding
	TestimonialJump  key.Binding
	FocusTestimonial key.Binding

	// Portfolio
	CycleFilter key.Binding
	Up          key.Binding
	Down        key.Binding
	View        key.Binding
	Analyze     key.Binding

	// Contact
	SaveDraft key.Binding
	Submit    key.Binding
	PrevField key.Binding
	NextField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Light/dark theme"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous page"),
		),
		Home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Home / close"),
		),

		HeroPrev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "Previous slide"),
		),
		HeroNext: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "Next slide"),
		),
		TestimonialPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous testimonial"),
		),
		TestimonialNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next testimonial"),
		),
		TestimonialJump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Jump to testimonial"),
		),
		FocusTestimonial: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Hold testimonials"),
		),

		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		View: key.NewBinding(
			key.WithKeys("v", "enter"),
			key.WithHelp("v", "View photo"),
		),
		Analyze: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Analyze photo"),
		),

		SaveDraft: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save draft"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Next field / send"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "Previous field"),
		),
		NextField: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Next field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Home, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.Home},
		{k.HeroPrev, k.HeroNext, k.TestimonialPrev, k.TestimonialNext, k.TestimonialJump, k.FocusTestimonial},
		{k.CycleFilter, k.Up, k.Down, k.View, k.Analyze},
		{k.SaveDraft, k.Submit, k.PrevField, k.NextField},
		{k.ToggleTheme, k.Help, k.Quit},
	}
}
