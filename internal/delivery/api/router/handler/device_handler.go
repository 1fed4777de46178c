package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"edgeserver/internal/delivery/api/middleware"
	"edgeserver/internal/delivery/api/response"
	deliverycontext "edgeserver/internal/delivery/context"
	domainerrors "edgeserver/internal/domain/errors"
	"edgeserver/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	OwnershipUC  usecase.OwnershipUsecase
	QueryUC      usecase.QueryUsecase
	ManagementUC usecase.DeviceManagementUsecase
	Logger       *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	ownershipUC  usecase.OwnershipUsecase
	queryUC      usecase.QueryUsecase
	managementUC usecase.DeviceManagementUsecase
	logger       *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		ownershipUC:  params.OwnershipUC,
		queryUC:      params.QueryUC,
		managementUC: params.ManagementUC,
		logger:       params.Logger,
	}
}

func (h *DeviceHandler) log(c echo.Context) *slog.Logger {
	return deliverycontext.LoggerFromContext(c.Request().Context(), h.logger)
}

// RegisterDevice handles device self-registration. Registering a known serial returns it unchanged.
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	var req RegisterDeviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	device, err := h.managementUC.RegisterDevice(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.JSON(c, http.StatusOK, toRegisterDeviceResponse(device))
}

// BulkCreateDevices handles the administrative bulk insert.
func (h *DeviceHandler) BulkCreateDevices(c echo.Context) error {
	var reqs []BulkDeviceRequest
	if err := c.Bind(&reqs); err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("request body must be a JSON array of devices"))
	}

	inputs := make([]*usecase.BulkDeviceInput, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("item "+strconv.Itoa(i)+": "+err.Error()))
		}
		inputs = append(inputs, reqs[i].toInput())
	}

	devices, err := h.managementUC.BulkCreate(c.Request().Context(), inputs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.log(c).Info("Bulk created devices", slog.Int("count", len(devices)))

	return response.JSON(c, http.StatusCreated, toDeviceResponses(devices))
}

// GetUserDevices lists the caller's devices.
func (h *DeviceHandler) GetUserDevices(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingUserID)
	}

	devices, err := h.queryUC.FindAllByUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.JSON(c, http.StatusOK, toDeviceResponses(devices))
}

// GetDeviceKpis aggregates the caller's devices.
func (h *DeviceHandler) GetDeviceKpis(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingUserID)
	}

	kpis, err := h.queryUC.GetKpis(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.JSON(c, http.StatusOK, toDeviceKPIResponse(kpis))
}

// BindDevice claims the device for the user named in the body.
func (h *DeviceHandler) BindDevice(c echo.Context) error {
	var req BindDeviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	device, err := h.ownershipUC.BindDevice(c.Request().Context(), c.Param("serial"), req.UserID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.JSON(c, http.StatusOK, toDeviceResponse(device))
}

// UnbindDevice releases the device; only its owner may do so.
func (h *DeviceHandler) UnbindDevice(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrMissingUserID)
	}

	device, err := h.ownershipUC.UnbindDevice(c.Request().Context(), c.Param("serial"), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.JSON(c, http.StatusOK, toDeviceResponse(device))
}

// DeleteDevice removes the device permanently.
func (h *DeviceHandler) DeleteDevice(c echo.Context) error {
	if err := h.managementUC.DeleteDevice(c.Request().Context(), c.Param("serial")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindAndValidate decodes the JSON body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}
	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
