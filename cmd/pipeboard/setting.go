// Setting commands expose the key-value settings facade.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Read and write application settings",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingGet,
}

var settingSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingSet,
}

var settingUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingUnset,
}

func init() {
	settingCmd.AddCommand(settingGetCmd)
	settingCmd.AddCommand(settingSetCmd)
	settingCmd.AddCommand(settingUnsetCmd)
}

func runSettingGet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	value, ok, err := s.settings.GetItem(args[0])
	if err != nil {
		return fmt.Errorf("get setting: %w", err)
	}
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	fmt.Println(value)
	return nil
}

func runSettingSet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.settings.SetItem(args[0], args[1]); err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	fmt.Printf("Set %s\n", args[0])
	return nil
}

func runSettingUnset(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.settings.RemoveItem(args[0]); err != nil {
		return fmt.Errorf("unset setting: %w", err)
	}
	fmt.Printf("Unset %s\n", args[0])
	return nil
}
