package playerbar

import "fmt"

// RenderVolume renders the volume indicator, e.g. "vol  80%".
func RenderVolume(volume int) string {
	return timeStyle().Render(fmt.Sprintf("vol %3d%%", volume))
}
