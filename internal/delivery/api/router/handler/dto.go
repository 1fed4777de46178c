package handler

import (
	"strconv"
	"time"

	"edgeserver/internal/domain/entity"
	"edgeserver/internal/usecase"
)

// RegisterDeviceRequest represents the request body for registering a device
type RegisterDeviceRequest struct {
	SerialNumber  string  `json:"serialNumber" validate:"required,notblank,max=64"`
	Model         *string `json:"model" validate:"omitempty,max=100"`
	Type          *string `json:"type"`
	ParkingID     *string `json:"parkingId" validate:"omitempty,max=64"`
	ParkingSpotID *string `json:"parkingSpotId" validate:"omitempty,max=64"`
	Status        *string `json:"status"`
}

// RegisterDeviceResponse is returned by device registration. DeviceToken is reserved and always empty.
type RegisterDeviceResponse struct {
	ID           string `json:"id"`
	SerialNumber string `json:"serialNumber"`
	DeviceToken  string `json:"deviceToken"`
}

// BulkDeviceRequest is one item of an administrative bulk insert.
type BulkDeviceRequest struct {
	SerialNumber string     `json:"serialNumber" validate:"required,notblank,max=64"`
	Model        string     `json:"model" validate:"required,notblank,max=100"`
	Type         string     `json:"type" validate:"required,oneof=SENSOR CAMERA ACTUATOR GATEWAY TRACKER"`
	Status       string     `json:"status" validate:"required,oneof=ONLINE OFFLINE MAINTENANCE ERROR"`
	Battery      *int       `json:"battery" validate:"required,min=0,max=100"`
	LastCheckIn  *time.Time `json:"lastCheckIn"`
}

// BindDeviceRequest represents the request body for binding a device
type BindDeviceRequest struct {
	UserID string `json:"userId" validate:"required,notblank,max=64"`
}

// HealthMonitorRequest carries device self-diagnostics.
type HealthMonitorRequest struct {
	FailuresSinceStartup     *int     `json:"failuresSinceStartup"`
	FailuresSinceLastCheckup *int     `json:"failuresSinceLastCheckup"`
	RequestsSinceLastCheckup *int     `json:"requestsSinceLastCheckup"`
	RequestsSinceStartup     *int     `json:"requestsSinceStartup"`
	FailingRate              *float64 `json:"failingRate"`
}

// TelemetryRequest is one sensor report.
type TelemetryRequest struct {
	SerialNumber  string                `json:"serialNumber" validate:"required,notblank,max=64"`
	Status        *string               `json:"status"`
	Battery       *int                  `json:"battery" validate:"omitempty,min=0,max=100"`
	CheckedAt     *time.Time            `json:"checkedAt"`
	Occupied      *bool                 `json:"occupied"`
	HealthMonitor *HealthMonitorRequest `json:"healthMonitor"`
}

// DeviceResponse is the transport view of a device.
type DeviceResponse struct {
	ID            int64     `json:"id"`
	SerialNumber  string    `json:"serialNumber"`
	Model         string    `json:"model"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Battery       int       `json:"battery"`
	LastCheckIn   time.Time `json:"lastCheckIn"`
	OwnerID       *string   `json:"ownerId"`
	ParkingID     *string   `json:"parkingId"`
	ParkingSpotID *string   `json:"parkingSpotId"`
	SyncStatus    string    `json:"syncStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DeviceKPIResponse is the transport view of an owner's device statistics.
type DeviceKPIResponse struct {
	TotalDevices      int64   `json:"totalDevices"`
	OnlineDevices     int64   `json:"onlineDevices"`
	OfflineDevices    int64   `json:"offlineDevices"`
	AverageBattery    float64 `json:"averageBattery"`
	LowBatteryDevices int64   `json:"lowBatteryDevices"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status string `json:"status"`
}

func toDeviceResponse(d *entity.Device) DeviceResponse {
	return DeviceResponse{
		ID:            d.ID,
		SerialNumber:  d.SerialNumber,
		Model:         d.Model,
		Type:          d.Type.String(),
		Status:        d.Status.String(),
		Battery:       d.Battery,
		LastCheckIn:   d.LastCheckIn,
		OwnerID:       d.OwnerID,
		ParkingID:     d.ParkingID,
		ParkingSpotID: d.ParkingSpotID,
		SyncStatus:    d.SyncStatus.String(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// toDeviceResponses never returns nil so empty lists encode as [].
func toDeviceResponses(devices []*entity.Device) []DeviceResponse {
	out := make([]DeviceResponse, 0, len(devices))
	for _, d := range devices {
		out = append(out, toDeviceResponse(d))
	}

	return out
}

func toRegisterDeviceResponse(d *entity.Device) RegisterDeviceResponse {
	id := d.SerialNumber
	if d.ID != 0 {
		id = strconv.FormatInt(d.ID, 10)
	}

	return RegisterDeviceResponse{ID: id, SerialNumber: d.SerialNumber}
}

func toDeviceKPIResponse(k *entity.DeviceKPI) DeviceKPIResponse {
	return DeviceKPIResponse{
		TotalDevices:      k.TotalDevices,
		OnlineDevices:     k.OnlineDevices,
		OfflineDevices:    k.OfflineDevices,
		AverageBattery:    k.AverageBattery,
		LowBatteryDevices: k.LowBatteryDevices,
	}
}

func (r *RegisterDeviceRequest) toInput() *usecase.RegisterDeviceInput {
	return &usecase.RegisterDeviceInput{
		SerialNumber:  r.SerialNumber,
		Model:         r.Model,
		Type:          r.Type,
		Status:        r.Status,
		ParkingID:     r.ParkingID,
		ParkingSpotID: r.ParkingSpotID,
	}
}

func (r *BulkDeviceRequest) toInput() *usecase.BulkDeviceInput {
	return &usecase.BulkDeviceInput{
		SerialNumber: r.SerialNumber,
		Model:        r.Model,
		Type:         entity.DeviceType(r.Type),
		Status:       entity.DeviceStatus(r.Status),
		Battery:      *r.Battery,
		LastCheckIn:  r.LastCheckIn,
	}
}

// toReport converts the request into a usecase report.
func (r *TelemetryRequest) toReport() *usecase.TelemetryReport {
	report := &usecase.TelemetryReport{
		SerialNumber: r.SerialNumber,
		Status:       r.Status,
		Battery:      r.Battery,
		CheckedAt:    r.CheckedAt,
		Occupied:     r.Occupied,
	}
	if hm := r.HealthMonitor; hm != nil {
		report.HealthMonitor = &usecase.HealthMonitor{
			FailuresSinceStartup:     hm.FailuresSinceStartup,
			FailuresSinceLastCheckup: hm.FailuresSinceLastCheckup,
			RequestsSinceLastCheckup: hm.RequestsSinceLastCheckup,
			RequestsSinceStartup:     hm.RequestsSinceStartup,
			FailingRate:              hm.FailingRate,
		}
	}

	return report
}
