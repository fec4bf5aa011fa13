// Package cli provides a plain-terminal battle runner: text commands are
// mapped to engine input, and the engine's timed cadence is fast-forwarded
// between prompts so the battle reads as a transcript.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/types"
)

// step is the synthetic tick fed to the engine while fast-forwarding. It
// exceeds any configured cadence so each call drains one queue entry.
const step = 10.0

// CLI drives one battle over a line-based terminal.
type CLI struct {
	Battle *engine.Battle
	In     io.Reader
	Out    io.Writer
	Auto   bool // self-play: confirm every prompt without asking

	printed int // log lines already echoed
}

// New creates a CLI wired to the given battle.
func New(b *engine.Battle) *CLI {
	return &CLI{Battle: b, In: os.Stdin, Out: os.Stdout}
}

// Run plays the battle to conclusion. Returns the outcome.
func (c *CLI) Run() types.Outcome {
	scanner := bufio.NewScanner(c.In)

	for c.Battle.Active() {
		c.drain()
		if !c.Battle.Active() {
			break
		}

		if c.Auto {
			c.autoStep()
			continue
		}

		c.printStatus()
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			// Input exhausted (script mode): finish the battle by itself.
			c.Auto = true
			continue
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.handleInput(input) {
			break
		}
	}

	c.drain()
	out := c.Battle.Outcome()
	if out == nil {
		return types.Outcome{}
	}
	return *out
}

// drain fast-forwards the engine until it needs input or the battle ends,
// echoing new log lines as they appear.
func (c *CLI) drain() {
	for c.Battle.Active() && !c.needsInput() {
		c.Battle.Update(step)
		c.flushLog()
	}
	c.flushLog()
}

func (c *CLI) needsInput() bool {
	if c.Battle.AwaitingChoice() != nil {
		return true
	}
	switch c.Battle.Phase() {
	case engine.PhaseSelectAction, engine.PhaseSelectTarget:
		return true
	}
	return false
}

func (c *CLI) flushLog() {
	log := c.Battle.Snapshot().Log
	for ; c.printed < len(log); c.printed++ {
		fmt.Fprintln(c.Out, log[c.printed].Text)
	}
}

// handleInput dispatches one command line. Returns true to quit.
func (c *CLI) handleInput(input string) bool {
	if p := c.Battle.AwaitingChoice(); p != nil {
		return c.handlePrompt(p, input)
	}

	switch strings.ToLower(input) {
	case "/quit", "/exit":
		return true
	case "/state":
		c.printState()
	case "next", "n":
		c.Battle.Handle(types.CmdNext)
	case "prev", "p":
		c.Battle.Handle(types.CmdPrev)
	case "confirm", "c", "ok":
		c.Battle.Handle(types.CmdConfirm)
	case "cancel", "x":
		c.Battle.Handle(types.CmdCancel)
	case "swap":
		if !c.Battle.RequestSwap() {
			fmt.Fprintln(c.Out, "[No reserves available to swap in.]")
		}
	case "auto":
		c.Auto = true
	case "/help", "help", "?":
		c.printHelp()
	default:
		fmt.Fprintf(c.Out, "[Unknown command: %s. Type help for commands.]\n", input)
	}
	return false
}

func (c *CLI) handlePrompt(p *engine.PromptContext, input string) bool {
	switch strings.ToLower(input) {
	case "/quit", "/exit":
		return true
	case "cancel", "x":
		if p.Forced {
			fmt.Fprintln(c.Out, "[Someone must take the field.]")
			return false
		}
		c.Battle.SubmitChoice(-1)
		return false
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(p.Choices) {
		fmt.Fprintf(c.Out, "[Pick a reserve by number (1-%d).]\n", len(p.Choices))
		return false
	}
	c.Battle.SubmitChoice(p.Choices[idx-1].RosterIndex)
	return false
}

// autoStep plays one decision without asking: first affordable ability,
// current target, first reserve.
func (c *CLI) autoStep() {
	if p := c.Battle.AwaitingChoice(); p != nil {
		c.Battle.SubmitChoice(p.Choices[0].RosterIndex)
		return
	}

	switch c.Battle.Phase() {
	case engine.PhaseSelectAction:
		snap := c.Battle.Snapshot()
		if len(snap.Abilities) > 0 && !snap.Abilities[snap.AbilityCursor].Affordable {
			c.Battle.Handle(types.CmdNext)
			return
		}
		c.Battle.Handle(types.CmdConfirm)
	case engine.PhaseSelectTarget:
		c.Battle.Handle(types.CmdConfirm)
	}
}

// printStatus shows the current decision point.
func (c *CLI) printStatus() {
	if p := c.Battle.AwaitingChoice(); p != nil {
		fmt.Fprintln(c.Out, "Choose a reserve to take the field:")
		for i, ch := range p.Choices {
			fmt.Fprintf(c.Out, "  %d. %s (%d/%d HP)\n", i+1, ch.Name, ch.HP, ch.MaxHP)
		}
		return
	}

	snap := c.Battle.Snapshot()
	switch snap.Phase {
	case engine.PhaseSelectAction:
		var names []string
		for i, ab := range snap.Abilities {
			name := ab.Name
			if !ab.Affordable {
				name += "(!)"
			}
			if i == snap.AbilityCursor {
				name = "[" + name + "]"
			}
			names = append(names, name)
		}
		fmt.Fprintf(c.Out, "Pick an action: %s\n", strings.Join(names, " "))
	case engine.PhaseSelectTarget:
		var names []string
		for i, n := range snap.TargetNames {
			if i == snap.TargetCursor {
				n = "[" + n + "]"
			}
			names = append(names, n)
		}
		fmt.Fprintf(c.Out, "Pick a target: %s\n", strings.Join(names, " "))
	}
}

func (c *CLI) printState() {
	snap := c.Battle.Snapshot()
	fmt.Fprintf(c.Out, "[Phase: %s]\n", snap.Phase)
	printSide := func(label string, slots []*engine.CombatantView) {
		fmt.Fprintf(c.Out, "[%s]\n", label)
		for i, v := range slots {
			if v == nil {
				fmt.Fprintf(c.Out, "  %d. (empty)\n", i+1)
				continue
			}
			fmt.Fprintf(c.Out, "  %d. %s HP %d/%d ST %d/%d IN %d/%d %s\n",
				i+1, v.Name, v.HP, v.MaxHP, v.Stamina, v.MaxStamina,
				v.Insight, v.MaxInsight, strings.Join(v.Statuses, ","))
		}
	}
	printSide("Party", snap.PartySlots)
	printSide("Enemies", snap.EnemySlots)
}

func (c *CLI) printHelp() {
	help := []string{
		"Commands:",
		"  next (n) / prev (p)  move the cursor",
		"  confirm (c)          pick the highlighted ability or target",
		"  cancel (x)           step back one selection",
		"  swap                 send in a reserve (costs this member's turn)",
		"  auto                 let the battle play itself out",
		"  /state               show both sides' resources",
		"  /quit                abandon the battle",
	}
	for _, line := range help {
		fmt.Fprintln(c.Out, line)
	}
}
