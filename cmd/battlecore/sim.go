package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nathoo/battlecore/cli"
)

var simCmd = &cobra.Command{
	Use:   "sim <content_dir> <encounter_id>",
	Short: "Run battles headless and report outcomes",
	Long: `Simulates the named encounter with an automatic party policy and no
interaction. Useful for balancing content: run it many times with
--runs and compare win rates.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, _ := cmd.Flags().GetInt("runs")
		verbose, _ := cmd.Flags().GetBool("verbose")
		partyFlag, _ := cmd.Flags().GetString("party")

		var wins, defeats, flights int
		for i := 0; i < runs; i++ {
			battle, _, err := buildBattle(args[0], args[1], partyFlag)
			if err != nil {
				return err
			}

			c := cli.New(battle)
			c.Auto = true
			if !verbose {
				c.Out = io.Discard
			}
			out := c.Run()

			switch {
			case out.Fled:
				flights++
			case out.Victory:
				wins++
			default:
				defeats++
			}
		}

		fmt.Fprintf(os.Stdout, "runs=%d wins=%d defeats=%d fled=%d\n",
			runs, wins, defeats, flights)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simCmd)

	simCmd.Flags().Int("runs", 1, "Number of battles to simulate")
	simCmd.Flags().Bool("verbose", false, "Print the battle log of every run")
	simCmd.Flags().String("party", "", "Comma-separated member ids (default: all members)")
}
