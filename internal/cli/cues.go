package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/llehouerou/subrepeat/internal/cue"
	"github.com/llehouerou/subrepeat/internal/errmsg"
	"github.com/llehouerou/subrepeat/internal/subtitle"
)

// cueTextWidth caps the text column when printing to a terminal.
const cueTextWidth = 60

func newCuesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cues <subtitle>",
		Short: "Print the cues of a subtitle file as they will be played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.resolve(cmd)
			if err != nil {
				return err
			}
			for _, w := range s.warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w.Message())
			}

			idx, err := subtitle.LoadIndex(args[0], subtitle.IndexOptions{
				MergeSymbol: s.cfg.MergeSymbol,
				Shift:       s.shift,
			})
			if err != nil {
				return errmsg.Wrap(errmsg.OpLoadSubtitle, filepath.Base(args[0]), err)
			}

			width := 0
			if f, ok := cmd.OutOrStdout().(*os.File); ok && isTerminal(f) {
				width = cueTextWidth
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCues(idx, s.repeat, width))
			return nil
		},
	}
}

// renderCues lays out idx as a table followed by a summary line. A positive
// textWidth wraps the text column.
func renderCues(idx *cue.Index, repeat, textWidth int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Length", "Text"})

	var spoken time.Duration
	for i, c := range idx.Cues() {
		spoken += c.Duration()
		tw.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			formatTimestamp(c.Start),
			formatTimestamp(c.End),
			fmt.Sprintf("%.1fs", c.Duration().Seconds()),
			oneLine(c.Text),
		})
	}

	textCol := table.ColumnConfig{Number: 5, AlignHeader: text.AlignLeft}
	if textWidth > 0 {
		textCol.WidthMax = textWidth
		textCol.WidthMaxEnforcer = text.WrapSoft
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		textCol,
	})

	return tw.Render() + "\n" + cueSummary(idx, spoken, repeat)
}

func cueSummary(idx *cue.Index, spoken time.Duration, repeat int) string {
	n := idx.Len()
	noun := "cues"
	if n == 1 {
		noun = "cue"
	}
	parts := []string{
		fmt.Sprintf("%s %s", humanize.Comma(int64(n)), noun),
		formatClock(spoken) + " of dialogue",
	}
	if repeat > 1 {
		parts = append(parts, fmt.Sprintf("%s with ×%d repeats", formatClock(spoken*time.Duration(repeat)), repeat))
	}
	if off := idx.Offset(); off != 0 {
		parts = append(parts, fmt.Sprintf("delay %+.1fs", off.Seconds()))
	}
	return strings.Join(parts, " · ")
}

func oneLine(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " / ")
}

// formatClock renders d as h:mm:ss.
func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}
