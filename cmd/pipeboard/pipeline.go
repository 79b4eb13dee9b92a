// Pipeline commands manage the pipeline collection and the current-pipeline
// pointer.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Manage pipelines",
}

var pipelineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pipelines, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPipelineList,
}

var pipelineAddName string

var pipelineAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a pipeline",
	Long: `Add creates a new pipeline. The first pipeline created becomes current.

Example:
  pipeboard pipeline add --name "Enterprise Sales"`,
	Args: cobra.NoArgs,
	RunE: runPipelineAdd,
}

var pipelineRenameName string

var pipelineRenameCmd = &cobra.Command{
	Use:   "rename <id>",
	Short: "Rename a pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runPipelineRename,
}

var pipelineDeleteYes bool

var pipelineDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pipeline and all its leads",
	Long: `Delete removes a pipeline. Its leads and stage configuration are
removed with it. When the deleted pipeline is current, the pointer moves to
the newest remaining pipeline.

Example:
  pipeboard pipeline delete 0199a1b2-... --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineDelete,
}

var pipelineUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Make a pipeline current",
	Args:  cobra.ExactArgs(1),
	RunE:  runPipelineUse,
}

func init() {
	pipelineAddCmd.Flags().StringVar(&pipelineAddName, "name", "", "pipeline name (required)")
	_ = pipelineAddCmd.MarkFlagRequired("name")

	pipelineRenameCmd.Flags().StringVar(&pipelineRenameName, "name", "", "new name (required)")
	_ = pipelineRenameCmd.MarkFlagRequired("name")

	pipelineDeleteCmd.Flags().BoolVar(&pipelineDeleteYes, "yes", false, "confirm deletion")

	pipelineCmd.AddCommand(pipelineListCmd)
	pipelineCmd.AddCommand(pipelineAddCmd)
	pipelineCmd.AddCommand(pipelineRenameCmd)
	pipelineCmd.AddCommand(pipelineDeleteCmd)
	pipelineCmd.AddCommand(pipelineUseCmd)
}

func runPipelineList(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	pipelines := s.pipelines.Pipelines()
	if flagJSON {
		return printJSON(pipelines)
	}

	if len(pipelines) == 0 {
		fmt.Println("No pipelines found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tCURRENT")
	for _, p := range pipelines {
		current := ""
		if p.ID == s.pipelines.CurrentID() {
			current = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02"), current)
	}
	w.Flush()
	fmt.Print(sb.String())
	return nil
}

func runPipelineAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.pipelines.Create(pipelineAddName)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	// New pipelines start with the default stage configuration.
	if _, err := s.stageManager(p.ID); err != nil {
		return fmt.Errorf("seed stages: %w", err)
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Printf("Created pipeline %q (%s)\n", p.Name, p.ID)
	return nil
}

func runPipelineRename(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.pipelines.Rename(args[0], pipelineRenameName); err != nil {
		return fmt.Errorf("rename pipeline: %w", err)
	}
	fmt.Printf("Renamed pipeline %s to %q\n", args[0], pipelineRenameName)
	return nil
}

func runPipelineDelete(cmd *cobra.Command, args []string) error {
	if err := confirmDestructive(pipelineDeleteYes, "delete a pipeline"); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.pipelines.Delete(args[0]); err != nil {
		return fmt.Errorf("delete pipeline: %w", err)
	}
	fmt.Printf("Deleted pipeline %s\n", args[0])
	return nil
}

func runPipelineUse(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.pipelines.SetCurrent(args[0]); err != nil {
		return fmt.Errorf("set current pipeline: %w", err)
	}
	fmt.Printf("Current pipeline is now %s\n", args[0])
	return nil
}
