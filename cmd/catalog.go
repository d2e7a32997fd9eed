package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List units, lessons and drills",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("cards")

		fmt.Printf("Catalog %s\n", cat.Version())
		fmt.Println(strings.Repeat("─", 72))
		for _, u := range cat.Units() {
			fmt.Printf("Unit %d  %s\n", u.ID, u.Name)
			for _, id := range u.Lessons {
				l, err := cat.Lesson(id)
				if err != nil {
					return err
				}
				fmt.Printf("  lesson %-3d %-12s %3d cards  %s\n", l.ID, l.Name, l.Size(), l.Info)
				if verbose {
					for _, c := range l.Cards {
						fmt.Printf("      %s\n", c)
					}
				}
			}
			for _, id := range u.Drills {
				d, err := cat.Drill(id)
				if err != nil {
					return err
				}
				limit := "untimed"
				if d.TimeLimit > 0 {
					limit = d.TimeLimit.String()
				}
				fmt.Printf("  drill  %-3d %-12s %3d cards  %s\n", d.ID, d.Name, d.Size(), limit)
			}
		}
		fmt.Printf("\n%d units, %d lessons, %d drills\n", len(cat.Units()), len(cat.Lessons()), len(cat.Drills()))
		return nil
	},
}

func init() {
	catalogCmd.Flags().Bool("cards", false, "Also list every flashcard of each lesson")
}
