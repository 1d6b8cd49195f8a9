package fitnutrition

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/store"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect client-side state (selected plan, recipe favorites)",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored client state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			all, err := s.All()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No client state stored")
				return nil
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, all[k])
			}
			return nil
		})
	},
}

var stateWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print client state changes made by other fitnutrition processes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		return withStore(func(s *store.Store) error {
			out := cmd.OutOrStdout()
			s.Subscribe("", func(c store.Change) {
				if c.Deleted {
					fmt.Fprintf(out, "%s\tremoved\n", c.Key)
					return
				}
				fmt.Fprintf(out, "%s\t%s\n", c.Key, describeChange(c))
			})
			if err := s.Watch(ctx); err != nil {
				return err
			}
			log.Infof("watching %s", s.Path())
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", s.Path())
			<-ctx.Done()
			return nil
		})
	},
}

var stateBackupCmd = &cobra.Command{
	Use:   "backup <output>",
	Short: "Write a copy of the state database with a sha256 checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			checksum, err := s.Backup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\nsha256\t%s\n", args[0], checksum)
			return nil
		})
	},
}

func describeChange(c store.Change) string {
	switch c.Key {
	case store.KeySelectedPlan:
		if p := store.DecodeSelectedPlan(c.Value); p != nil {
			return fmt.Sprintf("selected plan %d (%s)", p.ID, p.Name)
		}
		return "no selected plan"
	case store.KeyRecipeFavorites:
		return fmt.Sprintf("favorite recipes %v", store.DecodeRecipeFavorites(c.Value))
	default:
		return c.Value
	}
}

func init() {
	stateCmd.AddCommand(stateShowCmd, stateWatchCmd, stateBackupCmd)
	rootCmd.AddCommand(stateCmd)
}
