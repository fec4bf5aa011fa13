package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nathoo/battlecore/loader"
)

var checkCmd = &cobra.Command{
	Use:   "check <content_dir>",
	Short: "Validate Lua content without running a battle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loader.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d abilities, %d statuses, %d enemies, %d members, %d encounters\n",
			len(lib.Abilities), len(lib.Statuses), len(lib.Enemies),
			len(lib.Members), len(lib.Encounters))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
