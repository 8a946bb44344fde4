package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adventuremap/internal/csvcodec"
	"adventuremap/internal/engine"
	"adventuremap/internal/ui"
)

func newImportCmd() *cobra.Command {
	var mode string
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import quests from a CSV file",
		Long: `Import quests from a CSV file.

--mode add        append the file's quests to the backlog as new quests
--mode overwrite  replace all quests and stats with the file's contents (asks first)`,
		Args: requireArg("file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := engine.ParseImportMode(mode)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			load := func(ctx context.Context, s *session) error {
				_, err := s.ImportCSV(ctx, string(data), m)
				return err
			}
			if m == engine.ImportOverwrite {
				return replaceAll(cmd, yes, load)
			}

			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.finish(cmd, load(ctx, s))
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", string(engine.ImportAdd), "Import mode (add|overwrite)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask before overwriting")

	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.csv]",
		Short: "Write quests, stats and settings as CSV (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			text := s.ExportCSV()
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(args[0], []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Exported"), args[0])
			return nil
		},
	}

	return cmd
}

func newTemplateCmd() *cobra.Command {
	var yes, toStdout bool
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Replace all quests with the starter template, or write the template CSV",
		Long: `Replace all quests with the starter template.

With --print or --output the template CSV is written out instead and your
adventure is left alone. Fill it in and bring it back with amap import.`,
		Example: `  amap template
  amap template --output quests.csv
  amap template --print > quests.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case toStdout:
				_, err := fmt.Fprint(cmd.OutOrStdout(), csvcodec.Template())
				return err
			case output != "":
				if err := os.WriteFile(output, []byte(csvcodec.Template()), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Template written"), output)
				return nil
			}
			return replaceAll(cmd, yes, func(ctx context.Context, s *session) error { return s.LoadTemplate(ctx) })
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVarP(&toStdout, "print", "p", false, "Write the template CSV to stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the template CSV to this file")
	cmd.MarkFlagsMutuallyExclusive("print", "output")

	return cmd
}

func newSampleCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Replace all quests and settings with the sample adventure",
		RunE: func(cmd *cobra.Command, args []string) error {
			return replaceAll(cmd, yes, func(ctx context.Context, s *session) error { return s.LoadSample(ctx) })
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

// replaceAll asks before discarding existing quests, then runs load.
func replaceAll(cmd *cobra.Command, yes bool, load func(context.Context, *session) error) error {
	ctx := context.Background()
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if n := len(s.Tasks()); n > 0 && !yes {
		if !confirm(cmd, fmt.Sprintf("This replaces your %d quests and resets your stats. Continue?", n)) {
			return errors.New("cancelled")
		}
	}
	return s.finish(cmd, load(ctx, s))
}

// confirm prints prompt and reads a yes/no answer; anything but yes is no.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
