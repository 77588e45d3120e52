// Items command: list items and add new ones.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/types"
)

var (
	flagItemsCategory string
	flagItemsRetired  bool
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List items",
	Args:  cobra.NoArgs,
	RunE:  runItemsList,
}

var itemsAddCmd = &cobra.Command{
	Use:   "add <category> [property=value...]",
	Short: "Add an item to a category",
	Long: `Add creates an item of the given category. Values are specified as
property=value pairs; all mandatory properties of the category must be set.

Example:
  depot items add FR ID="FR 101" length=45`,
	Args: cobra.MinimumNArgs(1),
	RunE: runItemsAdd,
}

func init() {
	itemsCmd.Flags().StringVar(&flagItemsCategory, "category", "", "only items of this category")
	itemsCmd.Flags().BoolVar(&flagItemsRetired, "retired", false, "list retired items instead of active ones")

	itemsCmd.AddCommand(itemsAddCmd)
}

func runItemsList(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	items := m.ActiveItems()
	if flagItemsRetired {
		items = m.RetiredItems()
	}
	if flagItemsCategory != "" {
		cat := m.Category(flagItemsCategory)
		if cat == nil {
			return fmt.Errorf("unknown category %q", flagItemsCategory)
		}
		filtered := items[:0:0]
		for _, it := range items {
			if it.Category == cat {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	if flagJSON {
		type itemOut struct {
			Label    string `json:"label"`
			Category string `json:"category"`
			Loaned   bool   `json:"loaned"`
		}
		var out []itemOut
		for _, it := range items {
			out = append(out, itemOut{Label: itemLabel(it), Category: it.Category.Name, Loaned: m.IsLoaned(it)})
		}
		return printJSON(out)
	}

	for _, it := range items {
		status := ""
		if m.IsLoaned(it) {
			status = "\tloaned"
		}
		fmt.Printf("%s\t%s%s\n", itemLabel(it), it.Category.Name, status)
	}
	return nil
}

func runItemsAdd(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	cat := m.Category(args[0])
	if cat == nil {
		return fmt.Errorf("unknown category %q", args[0])
	}

	values := make(map[string]any)
	for _, arg := range args[1:] {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid value %q (expected property=value)", arg)
		}
		values[parts[0]] = parts[1]
	}

	it, err := m.CreateItem(cat, values)
	if err != nil {
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("missing mandatory properties: %s", strings.Join(verr.Missing, ", "))
		}
		return fmt.Errorf("create item: %w", err)
	}

	if err := saveManager(m); err != nil {
		return err
	}
	fmt.Printf("Added item %s to %s\n", itemLabel(it), cat.Name)
	return nil
}
