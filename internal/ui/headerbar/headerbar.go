// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/subrepeat/internal/ui/render"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Info is what the header shows.
type Info struct {
	Media    string // video path
	Subtitle string // subtitle path, empty when none
	Backend  string
	Repeat   int
	Shift    time.Duration
}

// Styles
var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render returns the header bar string for the given width.
func Render(info Info, width int) string {
	if width < 20 {
		return ""
	}

	parts := []string{
		valueStyle.Bold(true).Render(filepath.Base(info.Media)),
	}
	if info.Subtitle != "" {
		parts = append(parts, valueStyle.Render(filepath.Base(info.Subtitle)))
	}
	parts = append(parts,
		field("player", info.Backend),
		field("repeat", fmt.Sprintf("×%d", max(info.Repeat, 1))),
		field("delay", FormatShift(info.Shift)),
	)

	content := strings.Join(parts, separatorStyle.Render(" │ "))
	content = render.TruncateStyled(content, width)
	return render.Center(content, width)
}

func field(key, value string) string {
	return keyStyle.Render(key) + " " + valueStyle.Render(value)
}

// FormatShift renders a subtitle delay with its sign, e.g. "+0.5s".
func FormatShift(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%.1fs", sign, d.Seconds())
}
