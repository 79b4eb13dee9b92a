// Shared helpers for pipeboard CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pipeboard/pipeboard/internal/manager"
	"github.com/pipeboard/pipeboard/internal/sqlite"
	"github.com/pipeboard/pipeboard/pkg/store"
	"github.com/pipeboard/pipeboard/pkg/types"
)

// session bundles the attached backend, the settings facade, and the loaded
// pipeline manager for the duration of one command. The caller must defer
// close().
type session struct {
	backend   *sqlite.Backend
	settings  types.Settings
	pipelines *manager.PipelineManager
}

// openSession resolves the data directory, attaches the backend, selects the
// settings facade for this environment, and loads the pipeline collection.
func openSession() (*session, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	err = backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	settings, err := store.OpenSettings(context.Background(), backend, dataDir)
	if err != nil {
		backend.Detach()
		return nil, fmt.Errorf("open settings: %w", err)
	}

	pipelines := manager.NewPipelineManager(backend, settings)
	if err := pipelines.Load(); err != nil {
		backend.Detach()
		return nil, err
	}

	return &session{backend: backend, settings: settings, pipelines: pipelines}, nil
}

func (s *session) close() error {
	return s.backend.Detach()
}

// currentPipelineID returns the current-pipeline pointer, or an error when
// no pipeline exists yet.
func (s *session) currentPipelineID() (string, error) {
	id := s.pipelines.CurrentID()
	if id == "" {
		return "", fmt.Errorf("no pipeline selected; run 'pipeboard init' first")
	}
	return id, nil
}

// leadManager loads the lead collection for the given pipeline.
func (s *session) leadManager(pipelineID string) (*manager.LeadManager, error) {
	lm := manager.NewLeadManager(s.backend)
	if err := lm.Load(pipelineID); err != nil {
		return nil, err
	}
	return lm, nil
}

// stageManager loads the stage configuration for the given pipeline.
func (s *session) stageManager(pipelineID string) (*manager.StageManager, error) {
	sm := manager.NewStageManager(s.settings)
	if err := sm.Load(pipelineID); err != nil {
		return nil, err
	}
	return sm, nil
}

// confirmDestructive guards destructive commands behind the --yes flag.
func confirmDestructive(yes bool, what string) error {
	if !yes {
		return fmt.Errorf("refusing to %s without --yes", what)
	}
	return nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
