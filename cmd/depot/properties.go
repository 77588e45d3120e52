// Properties command: list property definitions and add new ones.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/depot/pkg/types"
)

var (
	flagPropsAll      bool
	flagPropType      string
	flagPropUnit      string
	flagPropMandatory bool
	flagPropNoEdit    bool
	flagPropSelect    []string
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List property definitions",
	Args:  cobra.NoArgs,
	RunE:  runPropertiesList,
}

var propertiesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Define a new property",
	Long: `Add defines a new property that categories and items can use.

Example:
  depot properties add length --type integer --unit cm
  depot properties add state --select new,used,broken`,
	Args: cobra.ExactArgs(1),
	RunE: runPropertiesAdd,
}

func init() {
	propertiesCmd.Flags().BoolVar(&flagPropsAll, "all", false, "include retired properties")

	propertiesAddCmd.Flags().StringVar(&flagPropType, "type", types.ValueTypeString, "value type: string, integer or float")
	propertiesAddCmd.Flags().StringVar(&flagPropUnit, "unit", "", "display unit, e.g. cm")
	propertiesAddCmd.Flags().BoolVar(&flagPropMandatory, "mandatory", false, "items must carry a value for this property")
	propertiesAddCmd.Flags().BoolVar(&flagPropNoEdit, "no-edit", false, "protect values from later edits")
	propertiesAddCmd.Flags().StringSliceVar(&flagPropSelect, "select", nil, "restrict values to this list")

	propertiesCmd.AddCommand(propertiesAddCmd)
}

func runPropertiesList(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	defs := m.Properties(flagPropsAll)
	if flagJSON {
		return printJSON(defs)
	}

	for _, def := range defs {
		line := fmt.Sprintf("%s\t%s", def.Name, def.ValueType)
		if def.Unit != "" {
			line += " [" + def.Unit + "]"
		}
		if def.Mandatory {
			line += "\tmandatory"
		}
		if !m.PropertyActive(def) {
			line += "\tretired"
		}
		fmt.Println(line)
	}
	return nil
}

func runPropertiesAdd(cmd *cobra.Command, args []string) error {
	m, err := loadManager()
	if err != nil {
		return err
	}

	if m.Registry().Get(args[0]) != nil {
		return fmt.Errorf("property %q already defined", args[0])
	}

	def, err := m.CreateProperty(types.PropertySpec{
		Name:      args[0],
		ValueType: flagPropType,
		Unit:      flagPropUnit,
		Mandatory: flagPropMandatory,
		NoEdit:    flagPropNoEdit,
		Select:    flagPropSelect,
	})
	if err != nil {
		return fmt.Errorf("define property: %w", err)
	}

	if err := saveManager(m); err != nil {
		return err
	}
	fmt.Printf("Defined property %s (%s)\n", def.Name, def.ValueType)
	return nil
}
