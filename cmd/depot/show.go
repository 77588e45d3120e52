// Show command: display one item with its values, notes and loan history.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <item>",
	Short: "Show an item's values, notes and loans",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	it := findItem(m, args[0])
	if it == nil {
		return fmt.Errorf("unknown item %q", args[0])
	}

	if flagJSON {
		values := make(map[string]string)
		for special, pv := range it.Values {
			values[special] = pv.String()
		}
		notes := make(map[string]string)
		for ts, text := range it.Notes {
			notes[time.Unix(ts, 0).UTC().Format(time.RFC3339)] = text
		}
		return printJSON(map[string]any{
			"label":    itemLabel(it),
			"category": it.Category.Name,
			"active":   m.ItemActive(it),
			"values":   values,
			"notes":    notes,
			"loaned":   m.IsLoaned(it),
		})
	}

	fmt.Printf("%s (%s)\n", itemLabel(it), it.Category.Name)
	if !m.ItemActive(it) {
		fmt.Println("  retired")
	}
	for _, def := range it.Category.PropertiesOrder {
		pv, ok := it.Lookup(def.SpecialName)
		if !ok || pv.IsEmpty() {
			continue
		}
		fmt.Printf("  %s: %s\n", def.Name, pv.String())
	}
	for _, ts := range it.NoteTimestamps() {
		fmt.Printf("  note %s: %s\n", time.Unix(ts, 0).UTC().Format("2006/01/02"), it.Notes[ts])
	}

	printLoans := func(header string, loans []*types.Loan) {
		if len(loans) == 0 {
			return
		}
		fmt.Println(header)
		for _, loan := range loans {
			line := fmt.Sprintf("  %s %s, lent %s", loan.Person.Name, loan.Person.Surname, loan.Date.Format(types.DateLayout))
			if loan.Finished {
				line += ", returned " + loan.Returned.Format()
			}
			if loan.Note != "" {
				line += " (" + loan.Note + ")"
			}
			fmt.Println(line)
		}
	}
	printLoans("open loans:", m.OpenLoans(it))
	printLoans("closed loans:", m.ClosedLoans(it))
	return nil
}
