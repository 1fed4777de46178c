// Package entity contains the core business objects of the project.
package entity

import "strings"

// DeviceType classifies the hardware behind a serial number.
type DeviceType string

const (
	// DeviceTypeSensor is an occupancy sensor mounted on a parking spot.
	DeviceTypeSensor DeviceType = "SENSOR"
	// DeviceTypeCamera is a camera watching one or more spots.
	DeviceTypeCamera DeviceType = "CAMERA"
	// DeviceTypeActuator is a barrier or any other device that acts on the lot.
	DeviceTypeActuator DeviceType = "ACTUATOR"
	// DeviceTypeGateway relays traffic for other devices.
	DeviceTypeGateway DeviceType = "GATEWAY"
	// DeviceTypeTracker is a mobile tracking device.
	DeviceTypeTracker DeviceType = "TRACKER"
)

// String returns the string representation of the DeviceType.
func (t DeviceType) String() string {
	return string(t)
}

// IsValid checks if the DeviceType is a valid value.
func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypeSensor, DeviceTypeCamera, DeviceTypeActuator, DeviceTypeGateway, DeviceTypeTracker:
		return true
	default:
		return false
	}
}

// ParseDeviceType maps a loosely formatted type name reported by a device to a DeviceType.
// Matching is case-insensitive, "barrier" is an alias of ACTUATOR and anything
// unrecognised (including the empty string) falls back to SENSOR.
func ParseDeviceType(s string) DeviceType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sensor":
		return DeviceTypeSensor
	case "camera":
		return DeviceTypeCamera
	case "barrier", "actuator":
		return DeviceTypeActuator
	case "gateway":
		return DeviceTypeGateway
	case "tracker":
		return DeviceTypeTracker
	default:
		return DeviceTypeSensor
	}
}
