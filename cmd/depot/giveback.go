// Return command: close the open loans of an item.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/types"
)

var flagReturnDate string

var returnCmd = &cobra.Command{
	Use:   "return <item>",
	Short: "Record the return of a loaned item",
	Args:  cobra.ExactArgs(1),
	RunE:  runReturn,
}

func init() {
	returnCmd.Flags().StringVar(&flagReturnDate, "date", "", "return date as YYYY/MM/DD (default: today)")
}

func runReturn(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	it := findItem(m, args[0])
	if it == nil {
		return fmt.Errorf("unknown item %q", args[0])
	}
	if !m.IsLoaned(it) {
		return fmt.Errorf("item %s is not on loan", itemLabel(it))
	}

	date := time.Now()
	if flagReturnDate != "" {
		parsed := types.ParseDate(flagReturnDate)
		if parsed.IsZero() {
			return fmt.Errorf("invalid date %q (expected YYYY/MM/DD)", flagReturnDate)
		}
		date, _ = parsed.Time()
	}

	m.GiveBackItem(it, date)

	if err := saveManager(m); err != nil {
		return err
	}
	fmt.Printf("Returned %s\n", itemLabel(it))
	return nil
}
