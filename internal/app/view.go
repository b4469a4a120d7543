// internal/app/view.go
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/subrepeat/internal/playback"
	"github.com/llehouerou/subrepeat/internal/ui"
	"github.com/llehouerou/subrepeat/internal/ui/headerbar"
	"github.com/llehouerou/subrepeat/internal/ui/playerbar"
	"github.com/llehouerou/subrepeat/internal/ui/render"
	"github.com/llehouerou/subrepeat/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(headerbar.Info{
		Media:    m.opts.Media,
		Subtitle: m.opts.Subtitle,
		Backend:  m.opts.Backend,
		Repeat:   m.status.RepeatTarget,
		Shift:    m.status.Shift,
	}, m.width)
	separator := styles.S().Faint.Render(strings.Repeat("─", m.width))

	bar := playerbar.Render(playerbar.NewState(m.status, m.svc.Player()), m.width)
	footer := m.renderFooter()

	used := ui.HeaderHeight + playerbar.Height + lipgloss.Height(footer)
	panel := m.panel
	panel.SetSize(m.width, max(m.height-used, ui.MinPanelHeight))

	return strings.Join([]string{
		header,
		separator,
		panel.View(),
		bar,
		footer,
	}, "\n")
}

func (m Model) renderFooter() string {
	status := m.renderNotice()
	if m.prompt != nil {
		status = m.prompt.input.View()
	}
	return render.TruncateStyled(status, m.width) + "\n" + m.help.View(m.helpMap)
}

func (m Model) renderNotice() string {
	if m.notice == nil {
		return ""
	}
	s := styles.S()
	text := render.Truncate(m.notice.Message(), m.width)
	switch m.notice.Level {
	case playback.LevelError:
		return s.Failure.Render(text)
	case playback.LevelWarning:
		return s.Caution.Render(text)
	default:
		return s.Dim.Render(text)
	}
}
