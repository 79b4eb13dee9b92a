package types

// BackupFormatVersion tags every backup document written by this version of
// the application. The restore path treats the field as informational; there
// is no per-version branching.
const BackupFormatVersion = "1.0"

// BackupDocument is a complete, portable snapshot of all user data: every
// pipeline with its nested leads, plus the current-pipeline pointer.
type BackupDocument struct {
	Version   string     `json:"version"`
	Timestamp string     `json:"timestamp"`
	Data      BackupData `json:"data"`
}

// BackupData is the payload of a BackupDocument.
type BackupData struct {
	Pipelines         []PipelineSnapshot `json:"pipelines"`
	CurrentPipelineID string             `json:"currentPipelineId"`
}

// PipelineSnapshot is a pipeline with its leads nested, as serialized in a
// backup document.
type PipelineSnapshot struct {
	Pipeline
	Leads []Lead `json:"leads"`
}

// RestoreCounts reports how many rows a restore touched.
type RestoreCounts struct {
	Pipelines int `json:"pipelines"`
	Leads     int `json:"leads"`
}
