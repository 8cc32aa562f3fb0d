package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/callsim/internal/call"
)

// updateCall handles keys on the call screen
func (m Model) updateCall(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.snapshot
	keys := callKeys.forCall(snap.State == call.StateRinging, snap.Profile.Affordance == call.AffordanceSlider)

	switch {
	case key.Matches(msg, keys.Answer):
		m.session.Answer()
	case key.Matches(msg, keys.Reject):
		m.session.Reject()
	case key.Matches(msg, keys.SlideRight):
		m.session.Slide(snap.Slider + slideStep)
	case key.Matches(msg, keys.SlideLeft):
		m.session.Slide(snap.Slider - slideStep)
	case key.Matches(msg, keys.SlideEnd):
		m.session.Slide(call.SliderMax)
	case key.Matches(msg, keys.SlideHome):
		m.session.Slide(call.SliderMin)
	case key.Matches(msg, keys.End):
		m.session.End()
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// renderCall renders the phone screen for a ringing or active call
func (m Model) renderCall() string {
	snap := m.snapshot
	if snap.Contact == nil {
		return m.center("")
	}
	th := themeFor(snap.Style)
	c := *snap.Contact

	var lines []string
	lines = append(lines, th.label.Render(strings.ToUpper(string(snap.Style))))
	lines = append(lines, "")
	lines = append(lines, th.avatar.Render(c.Initial()))
	lines = append(lines, "")
	lines = append(lines, nameStyle.Render(c.Name))
	lines = append(lines, numberStyle.Render(c.Number))
	lines = append(lines, "")

	switch snap.State {
	case call.StateRinging:
		dots := strings.Repeat(".", snap.RingSeconds%4)
		lines = append(lines, statusStyle.Render("Incoming call"+dots))
		lines = append(lines, "")
		if snap.Profile.Affordance == call.AffordanceSlider {
			track := m.track
			track.FullColor = string(th.accent)
			lines = append(lines, track.ViewAs(float64(snap.Slider)/float64(call.SliderMax)))
			lines = append(lines, numberStyle.Render("slide to answer →   ← slide back to decline"))
		} else {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
				answerButton.Render("a  Answer"),
				"    ",
				rejectButton.Render("r  Reject"),
			))
		}

	case call.StateActive:
		lines = append(lines, th.label.Render("On call"))
		lines = append(lines, nameStyle.Render(call.FormatElapsed(snap.Elapsed)))
		lines = append(lines, "")
		lines = append(lines, rejectButton.Render("e  End call"))
	}

	screen := th.frame.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	keys := callKeys.forCall(snap.State == call.StateRinging, snap.Profile.Affordance == call.AffordanceSlider)

	return m.center(lipgloss.JoinVertical(lipgloss.Center, screen, "", m.help.View(keys)))
}
