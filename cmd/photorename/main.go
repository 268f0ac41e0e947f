package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photorename/internal/app"
	"photorename/internal/config"
	"photorename/internal/rename"
	"photorename/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Preview", "Apply").
func newApp(cmd *cobra.Command, operation string) (*app.App, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")

	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.LoadOrDefault(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, defaults, operation, verbose)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "photorename",
	Short: "Rename photos and videos by their capture date",
	Long: "photorename renames photo and video files after the date they were taken,\n" +
		"read from embedded metadata when available and file timestamps otherwise.\n\n" +
		"Supported file types: " + strings.Join(rename.AllowedExtensions(), ", ") + ".",
}

// printRows prints the mapping table, one rename per line.
func printRows(rows []rename.Row) {
	for _, r := range rows {
		fmt.Printf("%-38s -> %-38s [%s]\n", filepath.Base(r.Before), filepath.Base(r.After), r.Label)
	}
}

// printSkipped prints the files that were not selected.
func printSkipped(skipped []string) {
	for _, name := range skipped {
		fmt.Printf("Skipping unsupported file: %s\n", name)
	}
}

// confirm asks the user to approve renaming count files. Requires a terminal
// on stdin; non-interactive callers must pass --yes.
func confirm(count int) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to rename without confirmation")
	}

	fmt.Printf("Rename %d file(s)? [y/N] ", count)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// preview command
var previewCmd = &cobra.Command{
	Use:   "preview PATH...",
	Short: "Show how files would be renamed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Preview")
		if err != nil {
			return err
		}
		defer a.Close()

		firstUse := a.Config().FirstUse
		selected, skipped := a.Select(args)
		if firstUse {
			fmt.Printf("First run: files are named with the date format %q. Run 'photorename config' to change it.\n\n", a.Config().DateFormat)
		}
		printSkipped(skipped)

		if selected == 0 {
			fmt.Println("No supported files selected.")
			return nil
		}

		printRows(a.Rows())
		return nil
	},
}

// apply command
var applyCmd = &cobra.Command{
	Use:   "apply PATH...",
	Short: "Rename files by their capture date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(cmd, "Apply")
		if err != nil {
			return err
		}
		defer a.Close()

		firstUse := a.Config().FirstUse
		selected, skipped := a.Select(args)
		if firstUse {
			fmt.Printf("First run: files are named with the date format %q. Run 'photorename config' to change it.\n\n", a.Config().DateFormat)
		}
		printSkipped(skipped)

		if selected == 0 {
			fmt.Println("No supported files selected.")
			return nil
		}

		printRows(a.Rows())
		fmt.Println()

		if !yes {
			ok, err := confirm(selected)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		report := a.Apply()
		fmt.Printf("Renamed %d file(s)\n", report.Succeeded)
		if len(report.FailedNames) > 0 {
			return fmt.Errorf("%d file(s) could not be renamed: %s",
				len(report.FailedNames), strings.Join(report.FailedNames, ", "))
		}
		return nil
	},
}

// tui command
var tuiCmd = &cobra.Command{
	Use:   "tui PATH...",
	Short: "Review and edit renames interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "TUI")
		if err != nil {
			return err
		}
		defer a.Close()

		selected, skipped := a.Select(args)
		printSkipped(skipped)

		if selected == 0 {
			fmt.Println("No supported files selected.")
			return nil
		}

		m := tui.NewModel(a.Service())
		if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("running interface: %w", err)
		}
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Config")
		if err != nil {
			return err
		}
		defer a.Close()

		var patch config.Patch
		changed := false
		if cmd.Flags().Changed("set-date-format") {
			v, _ := cmd.Flags().GetString("set-date-format")
			patch.DateFormat = &v
			changed = true
		}
		if cmd.Flags().Changed("set-naming-method") {
			v, _ := cmd.Flags().GetInt("set-naming-method")
			patch.NamingMethod = &v
			changed = true
		}

		cfg := a.Config()
		if changed {
			cfg, err = a.UpdateConfig(patch)
			if err != nil {
				return err
			}
			fmt.Println("Settings updated.")
		}

		method, _ := rename.ParseNamingMethod(cfg.NamingMethod)
		fmt.Printf("Date format:   %s\n", cfg.DateFormat)
		fmt.Printf("Naming method: %s\n", method)
		if cfg.LastOpenedFolder != "" {
			fmt.Printf("Last folder:   %s\n", cfg.LastOpenedFolder)
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View rename batch history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd, "History")
		if err != nil {
			return err
		}
		defer a.Close()

		batches, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(batches) == 0 {
			fmt.Println("No rename batches recorded.")
			return nil
		}

		for _, b := range batches {
			fmt.Printf("%s  %s  %d renamed, %d failed  (%s)\n",
				b.ID,
				b.StartedAt.Format("2006-01-02 15:04:05"),
				b.Succeeded,
				b.Failed,
				humanize.Time(b.StartedAt),
			)
		}
		return nil
	},
}

// undo command
var undoCmd = &cobra.Command{
	Use:   "undo [BATCH_ID]",
	Short: "Revert a rename batch",
	Long: "undo reverts the renames of a recorded batch, newest first when no\n" +
		"BATCH_ID is given. The reverted batch is recorded as a batch of its own,\n" +
		"so an undo can itself be undone.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batchID := ""
		if len(args) > 0 {
			batchID = args[0]
		}

		a, err := newApp(cmd, "Undo")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Undo(batchID)
		if err != nil {
			return err
		}

		fmt.Printf("Reverted %d file(s)\n", report.Succeeded)
		if len(report.FailedNames) > 0 {
			return fmt.Errorf("%d file(s) could not be reverted: %s",
				len(report.FailedNames), strings.Join(report.FailedNames, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug detail and mirror log output to stderr")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolP("yes", "y", false, "Rename without asking for confirmation")
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("set-date-format", "", "Set the date format (strftime, e.g. %Y-%m-%d_%H-%M-%S)")
	configCmd.Flags().Int("set-naming-method", 0, "Set the naming method (0=date only, 1=date before name, 2=date after name)")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of batches to show")
	rootCmd.AddCommand(undoCmd)
}
