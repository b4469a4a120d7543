// Package cli wires the subrepeat command line to the playback session.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the root command until the session ends or ctx is cancelled.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&commandContext{})
}

func newRootCommandWith(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "subrepeat [video] [subtitle]",
		Short: "Play a video and repeat every subtitle line",
		Long: "subrepeat drives mpv or VLC so each subtitle line is played several times\n" +
			"before moving on. Without a subtitle argument it looks for a file next to\n" +
			"the video, then for an embedded subtitle stream.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runSession(cmd, ctx, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	pf.BoolVarP(&ctx.verbose, "verbose", "v", false, "Log at debug level")
	pf.StringVarP(&ctx.repeatFlag, "repeat", "n", "", "Times each subtitle line is played")
	pf.StringVarP(&ctx.delayFlag, "delay", "d", "", "Subtitle delay in seconds, e.g. -1.5")
	pf.StringVar(&ctx.mergeFlag, "merge", "", "Join lines split with this symbol, empty to disable")

	f := rootCmd.Flags()
	f.StringVarP(&ctx.backendFlag, "backend", "b", "", "Player backend: mpv or vlc")
	f.BoolVar(&ctx.noTUI, "no-tui", false, "Run without the terminal interface")
	f.BoolVar(&ctx.noWatch, "no-watch", false, "Do not reload the subtitle file when it changes")
	f.StringVar(&ctx.logFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(newCuesCommand(ctx))

	return rootCmd
}
