package entity

// SyncStatus reflects the outcome of the most recent occupancy push to the upstream backend.
type SyncStatus string

const (
	// SyncStatusConnected means the last push was answered with a 2xx status.
	SyncStatusConnected SyncStatus = "CONNECTED"
	// SyncStatusDisconnected means the last push failed, or no push was ever attempted.
	SyncStatusDisconnected SyncStatus = "DISCONNECTED"
)

// String returns the string representation of the SyncStatus.
func (s SyncStatus) String() string {
	return string(s)
}

// IsValid checks if the SyncStatus is a valid value.
func (s SyncStatus) IsValid() bool {
	return s == SyncStatusConnected || s == SyncStatusDisconnected
}

// SyncStatusFromHTTP derives the sync status for an upstream response code.
func SyncStatusFromHTTP(code int) SyncStatus {
	if code >= 200 && code < 300 {
		return SyncStatusConnected
	}

	return SyncStatusDisconnected
}
