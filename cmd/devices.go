package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pitchperfect/internal/midiin"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI input ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := midiin.ListInputs()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No MIDI inputs found")
			return nil
		}
		usable := make(map[string]bool)
		for _, n := range midiin.Filter(names, midiin.DefaultExcluded) {
			usable[n] = true
		}
		for _, n := range names {
			mark := " "
			if !usable[n] {
				mark = "x"
			}
			fmt.Printf("[%s] %s\n", mark, n)
		}
		fmt.Println("\nPorts marked x are never connected automatically.")
		return nil
	},
}
