package fitnutrition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/app"
	"github.com/madDev-12/fitnutrition/internal/config"
	"github.com/madDev-12/fitnutrition/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local state database and config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := withStore(func(*store.Store) error { return nil }); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized fitnutrition state at %s\n", path)

		cfgPath, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfgPath); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", cfgPath)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config %s: %w", cfgPath, err)
		}
		if err := app.EnsureDir(cfgPath); err != nil {
			return err
		}
		if err := config.Write(cfgPath, settings); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
