package entity

// LowBatteryThreshold is the battery percentage below which a device counts as low on battery.
const LowBatteryThreshold = 20

// DeviceKPI summarises the devices owned by one user.
type DeviceKPI struct {
	TotalDevices      int64
	OnlineDevices     int64
	OfflineDevices    int64
	AverageBattery    float64 // Rounded half away from zero to two decimals; 0 when there are no devices.
	LowBatteryDevices int64
}
