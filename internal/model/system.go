package model

// VersionInfo reports the running build, the applied schema migration and
// which optional integrations are configured.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  int64           `json:"db_version"`
	Features   map[string]bool `json:"features"`
}
