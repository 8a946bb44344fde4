package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adventuremap/internal/config"
	"adventuremap/internal/ui"
)

const Version = "0.2.0"

var (
	cfg       config.Config
	dbPathArg string
	slotArg   string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "amap",
		Short:         "Adventure Map: a local-first quest tracker with levels and rewards",
		Long:          "Adventure Map turns a task list into quests across four regions, with XP, streaks and rewards.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if dbPathArg != "" {
				loaded.DBPath = dbPathArg
			}
			if slotArg != "" {
				loaded.SlotKey = slotArg
			}
			cfg = loaded
			config.SetupLogging(cfg, cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&dbPathArg, "db", "", "SQLite database path (default ~/.adventure-map.db, or $AMAP_DB_PATH)")
	cmd.PersistentFlags().StringVar(&slotArg, "slot", "", "Save slot key (default $AMAP_SLOT_KEY)")

	cmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newTakeCmd(),
		newUntakeCmd(),
		newDoCmd(),
		newUndoCmd(),
		newRemoveCmd(),
		newDupCmd(),
		newRepeatCmd(),
		newEditCmd(),
		newStatusCmd(),
		newClaimCmd(),
		newImportCmd(),
		newExportCmd(),
		newTemplateCmd(),
		newSampleCmd(),
		newConfigCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
