// Lead commands manage the lead collection of the current pipeline.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pipeboard/pipeboard/pkg/types"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Manage leads in the current pipeline",
}

var leadListStage string

var leadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, newest first",
	Long: `List shows the current pipeline's leads.

Example:
  pipeboard lead list
  pipeboard lead list --stage negotiation
  pipeboard lead list --json`,
	Args: cobra.NoArgs,
	RunE: runLeadList,
}

var leadAddJSON string

var leadAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a lead",
	Long: `Add creates a lead from a JSON document. The id and timestamps are
assigned automatically; pipeline defaults to the current pipeline.

Example:
  pipeboard lead add --data '{"name": "Acme Corp", "stage": "new", "value": 5000}'`,
	Args: cobra.NoArgs,
	RunE: runLeadAdd,
}

var leadUpdateJSON string

var leadUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Patch fields on a lead",
	Long: `Update patches the named columns on one lead. Keys use the column
names of the leads table; id and timestamps cannot be patched.

Example:
  pipeboard lead update 0199a1b2-... --data '{"value": 7500, "notes": "sent offer"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runLeadUpdate,
}

var leadMoveCmd = &cobra.Command{
	Use:   "move <id> <stage>",
	Short: "Move a lead to a stage",
	Args:  cobra.ExactArgs(2),
	RunE:  runLeadMove,
}

var leadDeleteYes bool

var leadDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more leads",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLeadDelete,
}

func init() {
	leadListCmd.Flags().StringVar(&leadListStage, "stage", "", "filter by stage identifier")

	leadAddCmd.Flags().StringVar(&leadAddJSON, "data", "", "lead as JSON (required)")
	_ = leadAddCmd.MarkFlagRequired("data")

	leadUpdateCmd.Flags().StringVar(&leadUpdateJSON, "data", "", "fields to patch as JSON (required)")
	_ = leadUpdateCmd.MarkFlagRequired("data")

	leadDeleteCmd.Flags().BoolVar(&leadDeleteYes, "yes", false, "confirm deletion")

	leadCmd.AddCommand(leadListCmd)
	leadCmd.AddCommand(leadAddCmd)
	leadCmd.AddCommand(leadUpdateCmd)
	leadCmd.AddCommand(leadMoveCmd)
	leadCmd.AddCommand(leadDeleteCmd)
}

func runLeadList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	leads := lm.Leads()
	if leadListStage != "" {
		filtered := leads[:0:0]
		for _, l := range leads {
			if l.Stage == leadListStage {
				filtered = append(filtered, l)
			}
		}
		leads = filtered
	}

	if flagJSON {
		return printJSON(leads)
	}
	printLeadTable(leads)
	return nil
}

func runLeadAdd(cmd *cobra.Command, args []string) error {
	var lead types.Lead
	if err := json.Unmarshal([]byte(leadAddJSON), &lead); err != nil {
		return fmt.Errorf("parse lead: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	created, err := lm.Add(lead)
	if err != nil {
		return fmt.Errorf("add lead: %w", err)
	}

	if flagJSON {
		return printJSON(created)
	}
	fmt.Printf("Created lead %q (%s)\n", created.Name, created.ID)
	return nil
}

func runLeadUpdate(cmd *cobra.Command, args []string) error {
	var fields map[string]any
	if err := json.Unmarshal([]byte(leadUpdateJSON), &fields); err != nil {
		return fmt.Errorf("parse fields: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	if err := lm.Update(args[0], fields); err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	fmt.Printf("Updated lead %s\n", args[0])
	return nil
}

func runLeadMove(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	if err := lm.MoveToStage(args[0], args[1]); err != nil {
		return fmt.Errorf("move lead: %w", err)
	}
	fmt.Printf("Moved lead %s to %s\n", args[0], args[1])
	return nil
}

func runLeadDelete(cmd *cobra.Command, args []string) error {
	if err := confirmDestructive(leadDeleteYes, "delete leads"); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelineID, err := s.currentPipelineID()
	if err != nil {
		return err
	}
	lm, err := s.leadManager(pipelineID)
	if err != nil {
		return err
	}

	if err := lm.DeleteMany(args); err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}
	fmt.Printf("Deleted %d lead(s)\n", len(args))
	return nil
}

// printLeadTable prints leads in a human-readable table format.
func printLeadTable(leads []types.Lead) {
	if len(leads) == 0 {
		fmt.Println("No leads found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAGE\tVALUE\tUPDATED")
	for _, l := range leads {
		name := l.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		shortID := l.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			shortID, name, l.Stage, l.Value, l.UpdatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Print(sb.String())
	fmt.Printf("Total: %d lead(s)\n", len(leads))
}
