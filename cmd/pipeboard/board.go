// Board command renders the current pipeline grouped by stage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipeboard/pipeboard/internal/manager"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the current pipeline grouped by stage",
	Long: `Board shows every configured stage with its leads and monetary
value. Leads whose stage matches no configured stage appear under
"unclassified".

Example:
  pipeboard board
  pipeboard board --json`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	sm, err := s.stageManager(pipelineID)
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	stages := sm.Stages()
	groups := lm.GroupByStage(stages)

	if flagJSON {
		return printJSON(groups)
	}

	for _, stage := range stages {
		leads := groups[stage.ID]
		fmt.Printf("%s (%d, %.2f)\n", stage.Label, len(leads), lm.StageValue(stage.ID))
		for _, l := range leads {
			fmt.Printf("  %s  %.2f\n", l.Name, l.Value)
		}
	}
	if orphans := groups[manager.UnclassifiedGroup]; len(orphans) > 0 {
		fmt.Printf("Unclassified (%d)\n", len(orphans))
		for _, l := range orphans {
			fmt.Printf("  %s  %.2f\n", l.Name, l.Value)
		}
	}
	fmt.Printf("Total: %.2f\n", lm.TotalValue())
	return nil
}
