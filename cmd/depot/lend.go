// Lend command: open a loan of an item to a person.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/types"
)

var (
	flagLendDate     string
	flagLendBirthday string
	flagLendPlace    string
	flagLendNote     string
)

var lendCmd = &cobra.Command{
	Use:   "lend <item> <name> <surname>",
	Short: "Lend an item to a person",
	Long: `Lend opens a loan of an item to a person. A person already known under the
same name, surname, birthday and place is reused; otherwise a new person is
recorded.

Example:
  depot lend "FR 101" Ada Martin --date 2021/10/19 --note "weekend outing"`,
	Args: cobra.ExactArgs(3),
	RunE: runLend,
}

func init() {
	lendCmd.Flags().StringVar(&flagLendDate, "date", "", "loan date as YYYY/MM/DD (default: today)")
	lendCmd.Flags().StringVar(&flagLendBirthday, "birthday", "", "person's birthday as YYYY/MM/DD")
	lendCmd.Flags().StringVar(&flagLendPlace, "place", "", "person's place")
	lendCmd.Flags().StringVar(&flagLendNote, "note", "", "note attached to the loan")
}

func runLend(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	it := findItem(m, args[0])
	if it == nil {
		return fmt.Errorf("unknown item %q", args[0])
	}
	if m.IsLoaned(it) {
		return fmt.Errorf("item %s is already on loan", itemLabel(it))
	}

	date := time.Now()
	if flagLendDate != "" {
		parsed := types.ParseDate(flagLendDate)
		if parsed.IsZero() {
			return fmt.Errorf("invalid date %q (expected YYYY/MM/DD)", flagLendDate)
		}
		date, _ = parsed.Time()
	}

	name, surname := args[1], args[2]
	birthday := types.ParseDate(flagLendBirthday)
	person := m.FindPerson(name, surname, birthday, flagLendPlace)
	if person == nil {
		person = types.NewPerson(name, surname, birthday, flagLendPlace, "")
	}

	loan, err := m.CreateLoan(it, date, person, flagLendNote)
	if err != nil {
		return fmt.Errorf("create loan: %w", err)
	}

	if err := saveManager(m); err != nil {
		return err
	}
	fmt.Printf("Lent %s to %s %s on %s\n", itemLabel(it), person.Name, person.Surname, loan.Date.Format(types.DateLayout))
	return nil
}
