// Backup commands export and restore the full entity graph.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipeboard/pipeboard/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore the full data set",
}

var backupCreateOut string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a backup file",
	Long: `Create exports every pipeline with its leads and the
current-pipeline pointer to a versioned JSON file.

Example:
  pipeboard backup create
  pipeboard backup create -o crm-backup.json`,
	Args: cobra.NoArgs,
	RunE: runBackupCreate,
}

var backupRestoreYes bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore from a backup file",
	Long: `Restore upserts the backup's pipelines and leads into the database.
Existing records with matching ids are overwritten; records not in the
backup are left alone. The whole restore applies in one transaction.

Example:
  pipeboard backup restore crm-backup.json --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

func init() {
	backupCreateCmd.Flags().StringVarP(&backupCreateOut, "out", "o", "", "output file (default: pipeboard-backup-<date>.json)")
	backupRestoreCmd.Flags().BoolVar(&backupRestoreYes, "yes", false, "confirm restore")

	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	path := backupCreateOut
	if path == "" {
		path = fmt.Sprintf("pipeboard-backup-%s.json", time.Now().Format("2006-01-02"))
	}

	result := backup.New(s.backend, s.settings).Export(path)
	if flagJSON {
		return printJSON(result)
	}
	if !result.OK {
		return fmt.Errorf("%s", result.Message)
	}
	fmt.Printf("%s (%s)\n", result.Message, result.Path)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if err := confirmDestructive(backupRestoreYes, "restore over existing data"); err != nil {
		return err
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	counts, err := backup.New(s.backend, s.settings).Restore(raw)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(counts)
	}
	fmt.Printf("Restored %d pipeline(s), %d lead(s)\n", counts.Pipelines, counts.Leads)
	return nil
}
