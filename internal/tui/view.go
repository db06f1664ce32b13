package tui

import "strings"

// View implements tea.Model
func (m Model) View() string {
	if m.user != nil {
		name := m.user.Field("username")
		if name == "" {
			name = m.screen.Username()
		}
		return "Joined as " + name + "\n"
	}

	lines := []string{
		titleStyle.Render("Join chat"),
		"",
	}

	if msg, shown := m.banner.DisplayedError(); shown {
		lines = append(lines, errorStyle.Render("! "+msg), "")
	}

	lines = append(lines, m.input.View())

	switch {
	case m.screen.IsLoading():
		lines = append(lines, "", m.spinner.View()+" Joining...")
	case m.hint != "":
		lines = append(lines, "", hintStyle.Render(m.hint))
	}

	lines = append(lines, "", helpStyle.Render("enter: join  esc: quit"))

	return strings.Join(lines, "\n") + "\n"
}
