package types

// Well-known settings keys. Values are opaque strings; structured values are
// serialized JSON.
const (
	SettingCurrentPipeline = "crm_current_pipeline"
	SettingLastBackup      = "crm_last_backup"
	SettingOnboardingDone  = "crm_onboarding_done"
)

// stagesKeyPrefix scopes a pipeline's stage configuration in the settings
// store.
const stagesKeyPrefix = "crm_stages_"

// StagesKey returns the settings key holding the serialized stage list for
// the given pipeline.
func StagesKey(pipelineID string) string {
	return stagesKeyPrefix + pipelineID
}

// Settings is the uniform key-value contract every domain manager consumes
// for anything that is not a pipeline or lead row. GetItem on a missing key
// reports ok=false; it is not an error. Which concrete backend sits behind
// the interface (relational settings table or browser key-value store) is
// decided once at startup.
type Settings interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}
