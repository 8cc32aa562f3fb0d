package tui

import "github.com/charmbracelet/bubbles/key"

// listKeyMap defines the bindings on the contact list.
type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Call   key.Binding
	Add    key.Binding
	Delete key.Binding
	Style  key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the short help view (single line).
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Call, k.Add, k.Delete, k.Style, k.Quit}
}

// FullHelp returns bindings for the full help view (multiple columns).
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Call, k.Add, k.Delete},
		{k.Style, k.Quit},
	}
}

var listKeys = listKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k", "navigate"),
	),
	Call: key.NewBinding(
		key.WithKeys("enter", "c"),
		key.WithHelp("enter", "call"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Style: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "phone style"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// callKeyMap defines the bindings on the call screen. Which ones are enabled
// depends on the call state and the answer affordance.
type callKeyMap struct {
	Answer     key.Binding
	Reject     key.Binding
	SlideRight key.Binding
	SlideLeft  key.Binding
	SlideEnd   key.Binding
	SlideHome  key.Binding
	End        key.Binding
	Quit       key.Binding
}

func (k callKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Reject, k.SlideRight, k.SlideLeft, k.End, k.Quit}
}

func (k callKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Answer, k.Reject},
		{k.SlideRight, k.SlideLeft, k.SlideEnd, k.SlideHome},
		{k.End, k.Quit},
	}
}

var callKeys = callKeyMap{
	Answer: key.NewBinding(
		key.WithKeys("a", "enter"),
		key.WithHelp("a", "answer"),
	),
	Reject: key.NewBinding(
		key.WithKeys("r", "esc"),
		key.WithHelp("r", "reject"),
	),
	SlideRight: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("→/l", "slide"),
	),
	SlideLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←/h", "slide back"),
	),
	SlideEnd: key.NewBinding(
		key.WithKeys("L", "end"),
		key.WithHelp("L", "slide all the way"),
	),
	SlideHome: key.NewBinding(
		key.WithKeys("H", "home"),
		key.WithHelp("H", "slide all the way back"),
	),
	End: key.NewBinding(
		key.WithKeys("e", "enter", "esc"),
		key.WithHelp("e", "end call"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "quit"),
	),
}

// forCall returns callKeys with only the bindings that apply enabled.
func (k callKeyMap) forCall(ringing, slider bool) callKeyMap {
	k.Answer.SetEnabled(ringing && !slider)
	k.Reject.SetEnabled(ringing && !slider)
	k.SlideRight.SetEnabled(ringing && slider)
	k.SlideLeft.SetEnabled(ringing && slider)
	k.SlideEnd.SetEnabled(ringing && slider)
	k.SlideHome.SetEnabled(ringing && slider)
	k.End.SetEnabled(!ringing)
	return k
}
