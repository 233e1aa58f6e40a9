// Package navigate implements the suspension-based driver state machine:
// a cursor over a treecore.Tree, a key-sequence dispatcher, and a command
// prompt, all stepped one host-I/O round at a time.
package navigate

import (
	"fmt"
	"strings"

	"github.com/brianmcjilton/treest/internal/keymap"
	"github.com/brianmcjilton/treest/internal/treecore"
)

// Navigate is the whole navigable-tree session: cursor, suspension
// state, pending key buffer, status message, viewport, and options.
type Navigate[F any] struct {
	tree    *treecore.Tree[F]
	cursor  treecore.NodeHandle
	state   State
	pending []byte
	message string
	hasMsg  bool
	view    View
	options Options
	keys    keymap.Map
	quit    bool
	effects []Effect
}

// DrainEffects returns and clears any Effects (mouse/alt-screen mode
// changes) accumulated since the last call, for the host to apply.
func (n *Navigate[F]) DrainEffects() []Effect {
	e := n.effects
	n.effects = nil
	return e
}

// New builds a Navigate over provider, unfolding the root once at
// construction.
func New[F any](provider treecore.Full[F]) *Navigate[F] {
	tree := treecore.New(provider)
	n := &Navigate[F]{
		tree:    tree,
		cursor:  tree.Root(),
		state:   NewContinueState(),
		options: DefaultOptions(),
	}
	if err := n.tree.UnfoldAt(n.cursor); err != nil {
		n.setProviderError(err)
	}
	n.bindDefaults()
	return n
}

// setProviderError surfaces a failed Provider.Provide call as a status
// message, with the same red-SGR styling runCommand uses for command
// errors.
func (n *Navigate[F]) setProviderError(err error) {
	n.setMessage("\x1b[31m" + err.Error() + "\x1b[m")
}

// Tree, Cursor, Message, Pending, Options and View give the renderer
// and host read access without exposing mutation of internal fields
// directly.
func (n *Navigate[F]) Tree() *treecore.Tree[F]       { return n.tree }
func (n *Navigate[F]) Cursor() treecore.NodeHandle   { return n.cursor }
func (n *Navigate[F]) State() State                  { return n.state }
func (n *Navigate[F]) Pending() []byte               { return n.pending }
func (n *Navigate[F]) Options() Options              { return n.options }
func (n *Navigate[F]) View() *View                   { return &n.view }
func (n *Navigate[F]) Keymap() *keymap.Map           { return &n.keys }
func (n *Navigate[F]) Message() (string, bool)       { return n.message, n.hasMsg }
func (n *Navigate[F]) setMessage(s string)            { n.message, n.hasMsg = s, true }
func (n *Navigate[F]) clearMessage()                  { n.message, n.hasMsg = "", false }

// SetState lets the host install a state directly, used only to seed
// a RespondXxx result back after performing the requested I/O.
func (n *Navigate[F]) SetState(s State) { n.state = s }

// SetOptions overrides the Options a Navigate was constructed with,
// used by the host to seed config-file/flag defaults before the first
// render, since New always starts from DefaultOptions.
func (n *Navigate[F]) SetOptions(o Options) { n.options = o }

// Step advances the state machine one round: it
// consumes whatever response the host filled into n.state, applies its
// effect, and returns true to keep running or false to exit. At the end
// of every non-early-return path it clears pending and returns to
// Continue.
func (n *Navigate[F]) Step() bool {
	if n.quit {
		return false
	}
	switch n.state.Kind {
	case KindContinue:
		return n.stepContinue()
	case KindPrompt:
		return n.stepPrompt()
	case KindExecStatus:
		result := n.state.statusRR
		if result.IsResponse() {
			r := result.Unwrap()
			if r.Err != nil {
				n.setMessage(fmt.Sprintf("exec error: %v", r.Err))
			} else {
				n.setMessage(fmt.Sprintf("exit status: success=%v code=%d", r.Success, r.Code))
			}
		}
	case KindExecOutput:
		result := n.state.outputRR
		if result.IsResponse() {
			r := result.Unwrap()
			if r.Err != nil {
				n.setMessage(r.Err.Error())
			} else if len(r.Stderr) > 0 {
				n.setMessage(strings.ReplaceAll(string(r.Stderr), "\n", "  "))
			} else {
				n.setMessage(strings.ReplaceAll(string(r.Stdout), "\n", "  "))
			}
		}
	}

	n.pending = n.pending[:0]
	n.state = NewContinueState()
	return true
}

func (n *Navigate[F]) stepContinue() bool {
	if !n.state.continueRR.IsResponse() {
		return true
	}
	b := n.state.continueRR.Unwrap()
	n.pending = append(n.pending, b)

	if cont := n.tryMouse(); cont != nil {
		return *cont
	}

	action, res := n.keys.Try(n.pending)
	switch res {
	case keymap.Pending:
		// keep buffering: pending is kept, a fresh Continue request is issued
		n.state = NewContinueState()
		return true
	case keymap.Matched:
		action.Apply(nil)
		if n.quit {
			return false
		}
		if n.state.Kind != KindContinue {
			// the action suspended us into Prompt/Exec*; leave state alone
			n.pending = n.pending[:0]
			return true
		}
	case keymap.NoMatch:
		// fall through: unrecognized sequence is silently dropped
	}

	n.pending = n.pending[:0]
	n.state = NewContinueState()
	return true
}

// tryMouse recognizes the fixed 6-byte X10 mouse report
// ESC [ M button col row. It returns nil if pending isn't (a prefix of)
// a mouse report, or a pointer to the continue-bool Step should return
// once one is fully consumed or rejected.
func (n *Navigate[F]) tryMouse() *bool {
	yes := true
	prefix := []byte{0x1b, '[', 'M'}
	for i, b := range n.pending {
		if i >= len(prefix) {
			break
		}
		if b != prefix[i] {
			return nil
		}
	}
	if len(n.pending) < 6 {
		// valid prefix so far, keep buffering
		n.state = NewContinueState()
		return &yes
	}

	button, col, row := n.pending[3], n.pending[4], n.pending[5]
	rowIdx := int(row - '!')
	switch button {
	case 32: // left press
		if rowIdx >= 0 && rowIdx < len(n.view.LineMapping) {
			n.cursor = n.view.LineMapping[rowIdx]
		}
	case 34: // right press
		if rowIdx >= 0 && rowIdx < len(n.view.LineMapping) {
			n.cursor = n.view.LineMapping[rowIdx]
			n.ToggleFold()
		}
	case 35: // release
	case 96: // wheel up
		n.view.Up(Mouse)
	case 97: // wheel down
		n.view.Down(Mouse)
	}
	_ = col

	n.pending = n.pending[:0]
	n.state = NewContinueState()
	return &yes
}

func (n *Navigate[F]) stepPrompt() bool {
	if !n.state.promptRR.IsResponse() {
		return true
	}
	resp := n.state.promptRR.Unwrap()
	label := n.state.promptRR.Request()

	if resp.Aborted {
		n.clearMessage()
		n.pending = n.pending[:0]
		n.state = NewContinueState()
		return true
	}

	switch label {
	case ":":
		n.runCommand(resp.Args)
		if n.quit {
			return false
		}
	case "sub-tree type: ":
		provName := ""
		if len(resp.Args) > 0 {
			provName = resp.Args[0]
		}
		path := n.tree.FragmentPathString(n.cursor)
		n.state = NewExecStatusState(ExecRequest{Restore: true, Path: "treest", Args: []string{provName, path}})
		n.pending = n.pending[:0]
		return true
	}

	n.pending = n.pending[:0]
	n.state = NewContinueState()
	return true
}

// runCommand interprets a `:`-prompt invocation: substitution, then
// quit/set/echo, then the provider command fallthrough.
func (n *Navigate[F]) runCommand(args []string) {
	if len(args) == 0 {
		return
	}
	path := n.tree.FragmentPathString(n.cursor)
	args = substituteArgs(args, path)

	switch args[0] {
	case "q", "quit":
		n.quit = true

	case "se", "set":
		var parts []string
		for _, o := range args[1:] {
			msg, has, effect := n.options.Update(o)
			if effect != NoEffect {
				n.effects = append(n.effects, effect)
			}
			if has {
				parts = append(parts, msg)
			}
		}
		if len(parts) == 0 {
			n.clearMessage()
		} else {
			n.setMessage(strings.Join(parts, "  "))
		}

	case "ec", "echo":
		n.setMessage(strings.Join(args[1:], " "))

	default:
		if ext, ok := any(n.tree.Provider()).(treecore.Ext[F]); ok {
			info, err := ext.ProviderCommand(args)
			if err != nil {
				n.setMessage("\x1b[31m" + err.Error() + "\x1b[m")
			} else if info != "" {
				n.setMessage(info)
			} else {
				n.clearMessage()
			}
		}
	}
}

// substituteArgs replaces the first unescaped '%' in each argument with
// path; "%%" collapses to a literal "%" instead.
func substituteArgs(args []string, path string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = substituteOne(arg, path)
	}
	return out
}

func substituteOne(arg, path string) string {
	if !strings.Contains(arg, "%") {
		return arg
	}
	var sb strings.Builder
	substituted := false
	for i := 0; i < len(arg); i++ {
		if arg[i] != '%' {
			sb.WriteByte(arg[i])
			continue
		}
		if i+1 < len(arg) && arg[i+1] == '%' {
			sb.WriteByte('%')
			i++
			continue
		}
		if !substituted {
			sb.WriteString(path)
			substituted = true
		} else {
			sb.WriteByte('%')
		}
	}
	return sb.String()
}
