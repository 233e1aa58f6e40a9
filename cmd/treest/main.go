// Command treest renders an arbitrary hierarchical data source (a
// filesystem directory, a JSON/YAML/TOML/XML document, a SQLite
// database, or a process tree) as a foldable, navigable terminal tree.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/brianmcjilton/treest/internal/app"
)

// fatalStyle renders the one-line error treest prints to stderr after the
// interactive session has already ended (or never started). This is the
// one place in the program that can let a styling library pick its own
// rendering: unlike the tree session's SGR codes, which are a pinned wire
// protocol the renderer and its tests depend on byte-for-byte, this text
// never reaches the alternate screen or gets parsed back by anything.
var fatalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		clean      bool
		configPath string
		pretty     bool
		noPretty   bool
		mouse      bool
		noMouse    bool
		altScreen  bool
		noAlts     bool
	)

	cmd := &cobra.Command{
		Use:           "treest [provider] [arg]",
		Short:         "Browse a hierarchical data source as a foldable terminal tree",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{
				Clean:      clean,
				ConfigPath: configPath,
			}
			if len(args) > 0 {
				opts.Provider = args[0]
			}
			if len(args) > 1 {
				opts.Arg = args[1]
			}
			if pretty {
				t := true
				opts.Pretty = &t
			}
			if noPretty {
				f := false
				opts.Pretty = &f
			}
			if mouse {
				t := true
				opts.Mouse = &t
			}
			if noMouse {
				f := false
				opts.Mouse = &f
			}
			if altScreen {
				t := true
				opts.AltScreen = &t
			}
			if noAlts {
				f := false
				opts.AltScreen = &f
			}

			if err := app.Run(opts); err != nil {
				fmt.Fprintln(os.Stderr, fatalStyle.Render("treest: "+err.Error()))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "do not read the user config file")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "use an explicit config file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "use unicode box-drawing glyphs")
	cmd.Flags().BoolVar(&noPretty, "no-pretty", false, "use ASCII branch glyphs")
	cmd.Flags().BoolVar(&mouse, "mouse", false, "enable mouse reporting")
	cmd.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse reporting")
	cmd.Flags().BoolVar(&altScreen, "altscreen", false, "use the terminal's alternate screen")
	cmd.Flags().BoolVar(&noAlts, "no-altscreen", false, "draw directly in the current screen")

	return cmd
}
