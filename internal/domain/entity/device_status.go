package entity

import "strings"

// DeviceStatus is the last operational state observed for a device.
type DeviceStatus string

const (
	DeviceStatusOnline      DeviceStatus = "ONLINE"
	DeviceStatusOffline     DeviceStatus = "OFFLINE"
	DeviceStatusMaintenance DeviceStatus = "MAINTENANCE"
	DeviceStatusError       DeviceStatus = "ERROR"
)

// String returns the string representation of the DeviceStatus.
func (s DeviceStatus) String() string {
	return string(s)
}

// IsValid checks if the DeviceStatus is a valid value.
func (s DeviceStatus) IsValid() bool {
	switch s {
	case DeviceStatusOnline, DeviceStatusOffline, DeviceStatusMaintenance, DeviceStatusError:
		return true
	default:
		return false
	}
}

// ParseDeviceStatus maps a reported status string to a DeviceStatus, case-insensitively.
// Unknown values are treated as ONLINE: a device that reports at all is alive.
func ParseDeviceStatus(s string) DeviceStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "online":
		return DeviceStatusOnline
	case "offline":
		return DeviceStatusOffline
	case "maintenance":
		return DeviceStatusMaintenance
	case "error":
		return DeviceStatusError
	default:
		return DeviceStatusOnline
	}
}
