// Package app is the host driver loop: it owns the terminal, the
// provider-backed Navigate instance, and the request/response pump.
// Every suspension point (Continue / Prompt / ExecStatus / ExecOutput)
// is handled here; internal/navigate itself never touches the terminal
// or a subprocess directly.
package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/brianmcjilton/treest/internal/config"
	"github.com/brianmcjilton/treest/internal/navigate"
	"github.com/brianmcjilton/treest/internal/prompt"
	"github.com/brianmcjilton/treest/internal/providers/dispatch"
	"github.com/brianmcjilton/treest/internal/render"
	"github.com/brianmcjilton/treest/internal/termctl"
)

// Options seeds the initial Options a Navigate starts with, overlaying
// config-file values with any command-line flags the caller explicitly
// set; see cmd/treest for how flags map onto this.
type Options struct {
	Provider   string
	Arg        string
	Mouse      *bool
	AltScreen  *bool
	Pretty     *bool
	OnlyChild  *bool
	ConfigPath string
	Clean      bool
}

// Run resolves the provider, loads configuration, acquires the
// terminal, and drives the Navigate session until it quits. It returns
// only initialization errors: everything else is surfaced through the
// running session's own message line.
func Run(opts Options) error {
	cfg := config.Default()
	if !opts.Clean {
		path, err := config.Ensure(opts.ConfigPath)
		if err == nil {
			cfg, _ = config.Load(path)
		}
	}

	providerName := opts.Provider
	if providerName == "" {
		providerName = cfg.Provider
	}
	if providerName == "" {
		providerName = "fs"
	}
	arg := opts.Arg
	if arg == "" && providerName == "fs" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("treest: %w", err)
		}
		arg = wd
	}

	provider, err := dispatch.Select(providerName, arg)
	if err != nil {
		return fmt.Errorf("treest: %w", err)
	}

	nav := navigate.New[dispatch.DynFragment](provider)
	nav.SetOptions(resolveOptions(cfg, opts))

	restore, err := termctl.Raw()
	if err != nil {
		return fmt.Errorf("treest: %w", err)
	}
	defer restore.Restore()

	term := os.Stdout
	screen := screenState{
		altScreen: nav.Options().AltScreen,
		mouse:     nav.Options().Mouse,
	}
	screen.enter(term)
	defer screen.leave(term)

	in := bufio.NewReader(os.Stdin)
	return drive(nav, in, term, &screen, restore)
}

func resolveOptions(cfg config.Config, opts Options) navigate.Options {
	o := navigate.Options{
		Mouse:     cfg.Mouse,
		AltScreen: cfg.AltScreen,
		Pretty:    cfg.Pretty,
		OnlyChild: cfg.OnlyChild,
	}
	if opts.Mouse != nil {
		o.Mouse = *opts.Mouse
	}
	if opts.AltScreen != nil {
		o.AltScreen = *opts.AltScreen
	}
	if opts.Pretty != nil {
		o.Pretty = *opts.Pretty
	}
	if opts.OnlyChild != nil {
		o.OnlyChild = *opts.OnlyChild
	}
	return o
}

// screenState tracks the escape-sequence toggled terminal modes
// (alternate screen, mouse reporting), so Effects from :set can flip
// them mid-session and exit cleanup always leaves them off.
type screenState struct {
	altScreen bool
	mouse     bool
}

func (s *screenState) enter(w io.Writer) {
	if s.altScreen {
		fmt.Fprint(w, "\x1b[?1049h")
	}
	if s.mouse {
		fmt.Fprint(w, "\x1b[?1000h")
	}
}

func (s *screenState) leave(w io.Writer) {
	if s.mouse {
		fmt.Fprint(w, "\x1b[?1000l")
	}
	if s.altScreen {
		fmt.Fprint(w, "\x1b[?1049l")
	}
}

func (s *screenState) apply(w io.Writer, effects []navigate.Effect) {
	for _, e := range effects {
		switch e {
		case navigate.EnableMouse:
			s.mouse = true
			fmt.Fprint(w, "\x1b[?1000h")
		case navigate.DisableMouse:
			s.mouse = false
			fmt.Fprint(w, "\x1b[?1000l")
		case navigate.EnableAltScreen:
			s.altScreen = true
			fmt.Fprint(w, "\x1b[?1049h")
		case navigate.DisableAltScreen:
			s.altScreen = false
			fmt.Fprint(w, "\x1b[?1049l")
		}
	}
}

// drive runs the render/step pump until nav quits or stdin is
// exhausted.
func drive(nav *navigate.Navigate[dispatch.DynFragment], in *bufio.Reader, out *os.File, screen *screenState, restore termctl.Restore) error {
	for {
		if err := render.Render(out, nav); err != nil {
			return err
		}

		switch nav.State().Kind {
		case navigate.KindContinue:
			b, err := in.ReadByte()
			if err != nil {
				return nil
			}
			nav.SetState(nav.State().RespondContinue(b))

		case navigate.KindPrompt:
			resp := runPrompt(nav, in, out)
			nav.SetState(nav.State().RespondPrompt(resp))

		case navigate.KindExecStatus:
			req := nav.State().ExecStatusRequest()
			nav.SetState(nav.State().RespondExecStatus(runStatus(req, screen, out, restore)))

		case navigate.KindExecOutput:
			req := nav.State().ExecOutputRequest()
			nav.SetState(nav.State().RespondExecOutput(runOutput(req, screen, out, restore)))
		}

		if !nav.Step() {
			return nil
		}
		screen.apply(out, nav.DrainEffects())
	}
}

// promptCompleter is the `:` and sub-tree-type prompt's candidate set:
// built-in command names for argument 0, PATH executables past that: a
// reasonable default for a command line whose later arguments are most
// often a path or a program name substituted via "%".
var promptCompleter = prompt.Nth{
	prompt.StaticWords{"q", "quit", "se", "set", "ec", "echo"},
	prompt.PathLookup{},
}

var subTreeCompleter = prompt.StaticWords{"fs", "json", "yaml", "toml", "xml", "sqlite", "proc"}

func runPrompt(nav *navigate.Navigate[dispatch.DynFragment], in *bufio.Reader, out io.Writer) navigate.PromptResponse {
	label := nav.State().PromptRequest()
	completer := promptCompleter
	var c prompt.Completer = completer
	if label != ":" {
		c = subTreeCompleter
	}

	ed := prompt.NewEditor(label, out, c)
	for !ed.Done() {
		b, err := in.ReadByte()
		if err != nil {
			return navigate.PromptResponse{Aborted: true}
		}
		ed.Feed(b)
	}
	outcome := ed.Outcome()
	fmt.Fprint(out, "\r\n")
	if !outcome.Completed {
		return navigate.PromptResponse{Aborted: true}
	}
	args, _ := prompt.Split([]rune(outcome.Line), len(outcome.Line))
	return navigate.PromptResponse{Line: outcome.Line, Args: args}
}

// withCookedScreen restores cooked mode and leaves the alternate
// screen/mouse reporting for the duration of fn, then re-acquires both
// on return, so a child process gets a normal terminal.
func withCookedScreen(screen *screenState, out io.Writer, doRestore bool, restore termctl.Restore, fn func()) {
	if !doRestore {
		fn()
		return
	}
	screen.leave(out)
	restore.Restore()
	fn()
	termctl.Raw()
	screen.enter(out)
}

func runStatus(req navigate.ExecRequest, screen *screenState, out io.Writer, restore termctl.Restore) navigate.ExecStatusResult {
	var result navigate.ExecStatusResult
	withCookedScreen(screen, out, req.Restore, restore, func() {
		cmd := exec.Command(req.Path, req.Args...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
		err := cmd.Run()
		result = statusResult(err)
	})
	return result
}

func runOutput(req navigate.ExecRequest, screen *screenState, out io.Writer, restore termctl.Restore) navigate.ExecOutputResult {
	var result navigate.ExecOutputResult
	withCookedScreen(screen, out, req.Restore, restore, func() {
		cmd := exec.Command(req.Path, req.Args...)
		stdout, err1 := cmd.Output()
		if err1 != nil {
			if exitErr, ok := err1.(*exec.ExitError); ok {
				result = navigate.ExecOutputResult{Stdout: stdout, Stderr: exitErr.Stderr}
				return
			}
			result = navigate.ExecOutputResult{Err: err1}
			return
		}
		result = navigate.ExecOutputResult{Stdout: stdout}
	})
	return result
}

func statusResult(err error) navigate.ExecStatusResult {
	if err == nil {
		return navigate.ExecStatusResult{Success: true, Code: 0}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return navigate.ExecStatusResult{Success: exitErr.ExitCode() == 0, Code: exitErr.ExitCode()}
	}
	return navigate.ExecStatusResult{Err: err}
}
