// Package integration tests the persistence layer end to end: backend
// lifecycle, managers, settings facade, and backup round-trips, the way the
// desktop application drives them.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipeboard/pipeboard/internal/backup"
	"github.com/pipeboard/pipeboard/internal/manager"
	"github.com/pipeboard/pipeboard/internal/settings"
	"github.com/pipeboard/pipeboard/internal/sqlite"
	"github.com/pipeboard/pipeboard/pkg/types"
)

// newApp wires the stack the way the desktop process does: attached sqlite
// backend, relational settings facade, loaded pipeline manager.
func newApp(t *testing.T) (*sqlite.Backend, types.Settings, *manager.PipelineManager) {
	t.Helper()

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })

	sett := settings.New(settings.NewRelational(b))
	pm := manager.NewPipelineManager(b, sett)
	require.NoError(t, pm.Load())
	return b, sett, pm
}

// A lead moves through the funnel: created in an early stage, updated, then
// dragged to won; the board and the aggregates follow.
func TestLeadLifecycleThroughFunnel(t *testing.T) {
	b, sett, pm := newApp(t)

	_, created, err := pm.EnsureDefault()
	require.NoError(t, err)
	require.True(t, created)

	sm := manager.NewStageManager(sett)
	require.NoError(t, sm.Load(pm.CurrentID()))

	lm := manager.NewLeadManager(b)
	require.NoError(t, lm.Load(pm.CurrentID()))

	lead, err := lm.Add(types.Lead{Name: "Acme Corp", Stage: "negotiation", Value: 5000})
	require.NoError(t, err)

	require.NoError(t, lm.Update(lead.ID, map[string]any{"notes": "offer accepted"}))
	require.NoError(t, lm.MoveToStage(lead.ID, types.StageWon))

	groups := lm.GroupByStage(sm.Stages())
	require.Len(t, groups[types.StageWon], 1)
	assert.Empty(t, groups["negotiation"])
	assert.Equal(t, 5000.0, lm.StageValue(types.StageWon))
	assert.Equal(t, 5000.0, lm.TotalValue())

	// The move survives a full reload from disk.
	lm2 := manager.NewLeadManager(b)
	require.NoError(t, lm2.Load(pm.CurrentID()))
	require.Len(t, lm2.Leads(), 1)
	assert.Equal(t, types.StageWon, lm2.Leads()[0].Stage)
	assert.Equal(t, "offer accepted", lm2.Leads()[0].Notes)
}

// A backup taken from one database restores into a fresh one; restoring the
// same file twice converges instead of duplicating.
func TestBackupRestoreAcrossDatabases(t *testing.T) {
	b, sett, pm := newApp(t)

	p1, err := pm.Create("Sales")
	require.NoError(t, err)
	p2, err := pm.Create("Partnerships")
	require.NoError(t, err)
	require.NoError(t, pm.SetCurrent(p2.ID))

	lm := manager.NewLeadManager(b)
	require.NoError(t, lm.Load(p1.ID))
	for _, name := range []string{"Acme", "Globex", "Initech"} {
		_, err := lm.Add(types.Lead{PipelineID: p1.ID, Name: name, Stage: "new", Value: 100})
		require.NoError(t, err)
	}

	codec := backup.New(b, sett)
	doc, err := codec.Create()
	require.NoError(t, err)
	raw, err := codec.Encode(doc)
	require.NoError(t, err)

	// The export stamps the last-backup setting.
	_, ok, err := sett.GetItem(types.SettingLastBackup)
	require.NoError(t, err)
	assert.True(t, ok)

	// Fresh database, fresh process.
	b2, sett2, pm2 := newApp(t)
	codec2 := backup.New(b2, sett2)

	counts, err := codec2.Restore(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Pipelines)
	assert.Equal(t, 3, counts.Leads)

	counts, err = codec2.Restore(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Pipelines)
	assert.Equal(t, 3, counts.Leads)

	require.NoError(t, pm2.Load())
	require.Len(t, pm2.Pipelines(), 2)
	assert.Equal(t, p2.ID, pm2.CurrentID())

	restored, err := b2.GetAllLeads(p1.ID)
	require.NoError(t, err)
	assert.Len(t, restored, 3)
}

// Clearing the current pipeline and deleting the last pipeline leaves the
// application empty: nothing recreates a pipeline behind the user's back.
func TestDeletingLastPipelineLeavesStoreEmpty(t *testing.T) {
	b, sett, pm := newApp(t)

	p, err := pm.Create("Only")
	require.NoError(t, err)
	require.NoError(t, pm.Delete(p.ID))

	assert.Empty(t, pm.CurrentID())
	pipelines, err := b.GetAllPipelines()
	require.NoError(t, err)
	assert.Empty(t, pipelines)

	current, _, err := sett.GetItem(types.SettingCurrentPipeline)
	require.NoError(t, err)
	assert.Empty(t, current)

	// A reload does not resurrect anything either.
	pm2 := manager.NewPipelineManager(b, sett)
	require.NoError(t, pm2.Load())
	assert.Empty(t, pm2.Pipelines())
	assert.Empty(t, pm2.CurrentID())
}

// Bulk delete removes exactly the selected rows and the rest keep their
// ordering and contents.
func TestBulkDeleteLeavesSurvivorsIntact(t *testing.T) {
	b, _, pm := newApp(t)

	p, err := pm.Create("Sales")
	require.NoError(t, err)

	lm := manager.NewLeadManager(b)
	require.NoError(t, lm.Load(p.ID))

	var doomed []string
	for i := 0; i < 100; i++ {
		lead, err := lm.Add(types.Lead{Name: "Lead", Stage: "new", Value: float64(i)})
		require.NoError(t, err)
		if i%2 == 0 {
			doomed = append(doomed, lead.ID)
		}
	}

	require.NoError(t, lm.DeleteMany(doomed))
	assert.Len(t, lm.Leads(), 50)

	stored, err := b.GetAllLeads(p.ID)
	require.NoError(t, err)
	require.Len(t, stored, 50)
	for _, l := range stored {
		assert.Equal(t, 1, int(l.Value)%2, "even-valued leads should be gone")
	}
}

// Records written before the won/lost rename load cleanly and are rewritten
// once.
func TestLegacyStageRecordsMigrateOnLoad(t *testing.T) {
	b, sett, pm := newApp(t)

	p, err := pm.Create("Sales")
	require.NoError(t, err)

	old := types.Lead{PipelineID: p.ID, Name: "Old Deal", Stage: types.LegacyStageWon}
	require.NoError(t, b.CreateLead(&old))

	lm := manager.NewLeadManager(b)
	require.NoError(t, lm.Load(p.ID))
	require.Len(t, lm.Leads(), 1)
	assert.Equal(t, types.StageWon, lm.Leads()[0].Stage)

	// Stage configuration migrates the same way.
	require.NoError(t, sett.SetItem(types.StagesKey(p.ID),
		`[{"id":"closed_won","label":"Won"},{"id":"closed_lost","label":"Lost"}]`))
	sm := manager.NewStageManager(sett)
	require.NoError(t, sm.Load(p.ID))
	ids := []string{sm.Stages()[0].ID, sm.Stages()[1].ID}
	assert.Equal(t, []string{types.StageWon, types.StageLost}, ids)
}

// The settings facade behaves identically over both backends for the same
// key traffic.
func TestSettingsFacadeRoundTrip(t *testing.T) {
	_, sett, _ := newApp(t)

	_, ok, err := sett.GetItem("crm_onboarding_done")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, sett.SetItem(types.SettingOnboardingDone, "true"))
	require.NoError(t, sett.SetItem(types.SettingOnboardingDone, "false"))

	got, ok, err := sett.GetItem(types.SettingOnboardingDone)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", got)

	require.NoError(t, sett.RemoveItem(types.SettingOnboardingDone))
	_, ok, err = sett.GetItem(types.SettingOnboardingDone)
	require.NoError(t, err)
	assert.False(t, ok)
}

// Reattaching the backend over the same data directory sees the same rows:
// the database file is the source of truth between process runs.
func TestDataSurvivesProcessRestart(t *testing.T) {
	dir := t.TempDir()

	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))

	now := time.Now().UTC()
	require.NoError(t, b.CreatePipeline("p1", "Sales", now))
	lead := types.Lead{PipelineID: "p1", Name: "Acme", Stage: "new"}
	require.NoError(t, b.CreateLead(&lead))
	require.NoError(t, b.Detach())

	b2 := sqlite.NewBackend()
	require.NoError(t, b2.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b2.Detach()

	pipelines, err := b2.GetAllPipelines()
	require.NoError(t, err)
	require.Len(t, pipelines, 1)

	leads, err := b2.GetAllLeads("p1")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, lead.ID, leads[0].ID)
}
