// Init command bootstraps the local database and the default pipeline.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local database",
	Long: `Init creates the database and schema, the default pipeline when none
exist, and the default stage configuration.

Running init on an existing installation is safe; it changes nothing.

Example:
  pipeboard init
  pipeboard init --data-dir ./crm-data`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	p, created, err := s.pipelines.EnsureDefault()
	if err != nil {
		return fmt.Errorf("ensure default pipeline: %w", err)
	}

	// Seed stage configurations for every pipeline that lacks one.
	for _, pipeline := range s.pipelines.Pipelines() {
		if _, err := s.stageManager(pipeline.ID); err != nil {
			return fmt.Errorf("seed stages for %s: %w", pipeline.Name, err)
		}
	}

	if created {
		fmt.Printf("Initialized with pipeline %q (%s)\n", p.Name, p.ID)
	} else {
		fmt.Printf("Already initialized: %d pipeline(s)\n", len(s.pipelines.Pipelines()))
	}
	return nil
}
