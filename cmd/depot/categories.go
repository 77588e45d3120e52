// Categories command: list categories and add new ones.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List item categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoriesList,
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <code> <description> [property...]",
	Short: "Add a category with its ordered property schema",
	Long: `Add registers a new category. Properties are referenced by name and must
already be defined; unknown names are ignored.

Example:
  depot categories add FR "Manual wheelchairs" ID length state`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCategoriesAdd,
}

func init() {
	categoriesCmd.AddCommand(categoriesAddCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	if flagJSON {
		type categoryOut struct {
			Code        string   `json:"code"`
			Description string   `json:"description"`
			Properties  []string `json:"properties"`
			Items       int      `json:"items"`
		}
		var out []categoryOut
		for _, cat := range m.Categories() {
			props := make([]string, 0, len(cat.PropertiesOrder))
			for _, def := range cat.PropertiesOrder {
				props = append(props, def.Name)
			}
			out = append(out, categoryOut{
				Code:        cat.Name,
				Description: cat.Description,
				Properties:  props,
				Items:       len(m.RegisteredItems(cat)),
			})
		}
		return printJSON(out)
	}

	for _, cat := range m.Categories() {
		fmt.Printf("%s\t%s\t(%d items)\n", cat.Name, cat.Description, len(m.RegisteredItems(cat)))
		for _, def := range cat.PropertiesOrder {
			fmt.Printf("  - %s\n", def.Name)
		}
	}
	return nil
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	code, description := args[0], args[1]
	if m.Category(code) != nil {
		return fmt.Errorf("category %q already exists", code)
	}

	props := make([]any, 0, len(args)-2)
	for _, name := range args[2:] {
		props = append(props, name)
	}
	cat := m.AddCategory(code, description, props)

	if err := saveManager(m); err != nil {
		return err
	}
	fmt.Printf("Added category %s with %d properties\n", cat.Name, len(cat.PropertiesOrder))
	return nil
}
