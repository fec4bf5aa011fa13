package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nathoo/battlecore/cli"
	"github.com/nathoo/battlecore/content"
	"github.com/nathoo/battlecore/engine"
	"github.com/nathoo/battlecore/loader"
	"github.com/nathoo/battlecore/tui"
	"github.com/nathoo/battlecore/types"
)

var runCmd = &cobra.Command{
	Use:   "run <content_dir> <encounter_id>",
	Short: "Run a battle interactively",
	Long: `Loads Lua content from the given directory and starts the named
encounter against the party. Uses the terminal UI unless --plain is set
or stdout is not a terminal.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		partyFlag, _ := cmd.Flags().GetString("party")

		battle, _, err := buildBattle(args[0], args[1], partyFlag)
		if err != nil {
			return err
		}

		if plain || !isTerminal() {
			c := cli.New(battle)
			out := c.Run()
			printOutcome(out)
			return nil
		}

		if err := tui.Run(battle); err != nil {
			return err
		}
		if o := battle.Outcome(); o != nil {
			printOutcome(*o)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Use the plain line-oriented interface")
	runCmd.Flags().String("party", "", "Comma-separated member ids (default: all members)")
}

// buildBattle loads content, spawns the rosters and assembles a battle.
func buildBattle(dir, encounterID, partyFlag string) (*engine.Battle, *content.Bag, error) {
	lib, err := loader.Load(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}

	deps, bag := content.BuildDeps(lib)

	partyIDs := splitIDs(partyFlag)
	if len(partyIDs) == 0 {
		for id := range lib.Members {
			partyIDs = append(partyIDs, id)
		}
		sort.Strings(partyIDs)
	}
	if len(partyIDs) == 0 {
		return nil, nil, fmt.Errorf("content defines no party members")
	}

	var party []*types.Entity
	for _, id := range partyIDs {
		e, err := lib.SpawnMember(id)
		if err != nil {
			return nil, nil, err
		}
		party = append(party, e)
	}

	enemies, err := lib.SpawnEncounter(encounterID)
	if err != nil {
		return nil, nil, err
	}

	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := engine.Config{
		Slots:   viper.GetInt("slots"),
		Cadence: viper.GetFloat64("cadence"),
		Seed:    seed,
	}
	return engine.New(party, enemies, deps, cfg), bag, nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printOutcome(o types.Outcome) {
	switch {
	case o.Fled:
		fmt.Println("The party escaped.")
	case o.Victory:
		fmt.Println("The party was victorious.")
	default:
		fmt.Println("The party was defeated.")
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
