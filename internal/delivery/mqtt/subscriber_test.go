package mqtt

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"edgeserver/config"
	"edgeserver/internal/delivery/api/validator"
	deliverycontext "edgeserver/internal/delivery/context"
	domainerrors "edgeserver/internal/domain/errors"
	mockusecase "edgeserver/internal/mocks/usecase"
	"edgeserver/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func newTestSubscriber(t *testing.T) (*subscriber, *mockusecase.MockTelemetryUsecase) {
	t.Helper()

	telemetryUC := mockusecase.NewMockTelemetryUsecase(t)

	return &subscriber{
		cfg:         &config.MQTTConfig{Enabled: true, Broker: "tcp://localhost:1883", TelemetryTopic: "spotfinder/+/telemetry"},
		telemetryUC: telemetryUC,
		validator:   validator.New(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, telemetryUC
}

func TestHandleMessage_IngestsReport(t *testing.T) {
	s, telemetryUC := newTestSubscriber(t)

	telemetryUC.EXPECT().
		Ingest(mock.Anything, mock.MatchedBy(func(r *usecase.TelemetryReport) bool {
			return r.SerialNumber == "SENSOR-001" && *r.Battery == 64 && *r.Occupied && *r.Status == "offline"
		})).
		Run(func(ctx context.Context, _ *usecase.TelemetryReport) {
			assert.NotEmpty(t, deliverycontext.RequestIDFromContext(ctx))
			assert.NotNil(t, deliverycontext.LoggerFromContext(ctx, nil))
		}).
		Return(nil)

	s.handleMessage(nil, fakeMessage{
		topic:   "spotfinder/SENSOR-001/telemetry",
		payload: []byte(`{"serialNumber":"SENSOR-001","battery":64,"status":"offline","occupied":true}`),
	})
}

func TestHandleMessage_SerialFromTopic(t *testing.T) {
	s, telemetryUC := newTestSubscriber(t)

	telemetryUC.EXPECT().
		Ingest(mock.Anything, mock.MatchedBy(func(r *usecase.TelemetryReport) bool {
			return r.SerialNumber == "X-9" && r.Battery == nil
		})).
		Return(nil)

	s.handleMessage(nil, fakeMessage{topic: "spotfinder/X-9/telemetry", payload: []byte(`{"occupied":false}`)})
}

func TestHandleMessage_DropsInvalidPayloads(t *testing.T) {
	s, _ := newTestSubscriber(t)

	// No Ingest expectation: the mock fails the test if any of these reach the usecase.
	for _, payload := range []string{
		`not json`,
		`{"serialNumber":"SENSOR-001","battery":140}`,
		`{"serialNumber":"   "}`,
	} {
		s.handleMessage(nil, fakeMessage{topic: "spotfinder/SENSOR-001/telemetry", payload: []byte(payload)})
	}

	s.handleMessage(nil, fakeMessage{topic: "other/topic", payload: []byte(`{"battery":10}`)})

	longSerial := strings.Repeat("S", 65)
	s.handleMessage(nil, fakeMessage{topic: "spotfinder/SENSOR-001/telemetry", payload: []byte(`{"serialNumber":"` + longSerial + `"}`)})
	s.handleMessage(nil, fakeMessage{topic: "spotfinder/" + longSerial + "/telemetry", payload: []byte(`{"battery":10}`)})
}

func TestHandleMessage_IngestErrorIsLogged(t *testing.T) {
	s, telemetryUC := newTestSubscriber(t)

	telemetryUC.EXPECT().Ingest(mock.Anything, mock.Anything).Return(domainerrors.ErrStoreUnavailable)

	assert.NotPanics(t, func() {
		s.handleMessage(nil, fakeMessage{topic: "spotfinder/S/telemetry", payload: []byte(`{"serialNumber":"S"}`)})
	})
}

func TestWildcardSegment(t *testing.T) {
	assert.Equal(t, "S-1", wildcardSegment("spotfinder/+/telemetry", "spotfinder/S-1/telemetry"))
	assert.Equal(t, "lot-a", wildcardSegment("+/sensors/#", "lot-a/sensors/x/y"))
	assert.Empty(t, wildcardSegment("spotfinder/#", "spotfinder/S-1/telemetry"))
	assert.Empty(t, wildcardSegment("spotfinder/telemetry", "spotfinder/telemetry"))
	assert.Empty(t, wildcardSegment("a/b/+", "a"))
}

func TestNewSubscriber_DisabledIsNoop(t *testing.T) {
	d, err := NewSubscriber(SubscriberParams{
		Lc:          fxtest.NewLifecycle(t),
		Config:      &config.Config{},
		TelemetryUC: mockusecase.NewMockTelemetryUsecase(t),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	assert.IsType(t, noopSubscriber{}, d)
	require.NoError(t, d.Serve(context.Background()))
}
