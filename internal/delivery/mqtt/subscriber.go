// Package mqtt is the optional broker intake for sensor telemetry. Each message on the
// telemetry topic goes through the same ingest path as POST /api/iot/telemetry.
package mqtt

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"edgeserver/config"
	"edgeserver/internal/delivery"
	"edgeserver/internal/delivery/api/validator"
	deliverycontext "edgeserver/internal/delivery/context"
	"edgeserver/internal/domain/entity"
	"edgeserver/internal/errors"
	"edgeserver/internal/usecase"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultConnectTimeout    = 10 * time.Second
	defaultKeepAlive         = 60 * time.Second
	defaultMaxReconnectDelay = 30 * time.Second
	defaultDisconnectQuiesce = 250 // milliseconds
	ingestTimeout            = 10 * time.Second
)

// telemetryMessage is the JSON payload published by sensors.
type telemetryMessage struct {
	SerialNumber  string                 `json:"serialNumber" validate:"omitempty,notblank,max=64"`
	Status        *string                `json:"status"`
	Battery       *int                   `json:"battery" validate:"omitempty,min=0,max=100"`
	CheckedAt     *time.Time             `json:"checkedAt"`
	Occupied      *bool                  `json:"occupied"`
	HealthMonitor *usecase.HealthMonitor `json:"healthMonitor"`
}

type subscriber struct {
	cfg         *config.MQTTConfig
	telemetryUC usecase.TelemetryUsecase
	validator   *validator.CustomValidator
	logger      *slog.Logger
	client      pahomqtt.Client
}

// SubscriberParams holds dependencies for the MQTT intake, injected by Fx.
type SubscriberParams struct {
	fx.In

	Lc          fx.Lifecycle
	Config      *config.Config
	TelemetryUC usecase.TelemetryUsecase
	Logger      *slog.Logger
}

// noopSubscriber stands in when mqtt is not enabled
type noopSubscriber struct{}

func (noopSubscriber) Serve(context.Context) error { return nil }

// NewSubscriber creates the MQTT intake, or a no-op delivery when mqtt.enabled is false.
func NewSubscriber(params SubscriberParams) (delivery.Delivery, error) {
	cfg := params.Config.MQTT
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("MQTT intake not enabled")

		return noopSubscriber{}, nil
	}

	s := &subscriber{
		cfg:         cfg,
		telemetryUC: params.TelemetryUC,
		validator:   validator.New(),
		logger:      params.Logger.With(slog.String("component", "mqtt")),
	}
	s.client = pahomqtt.NewClient(s.clientOptions())

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			s.logger.Info("Disconnecting from MQTT broker")
			s.client.Disconnect(defaultDisconnectQuiesce)

			return nil
		},
	})

	return s, nil
}

func (s *subscriber) clientOptions() *pahomqtt.ClientOptions {
	clientID := s.cfg.ClientID
	if clientID == "" {
		clientID = "edgeserver-" + uuid.NewString()[:8]
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(s.cfg.Broker)
	opts.SetClientID(clientID)
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
		opts.SetPassword(s.cfg.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(defaultMaxReconnectDelay)
	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)
	// Ingest blocks on the store and the upstream backend; handle messages concurrently.
	opts.SetOrderMatters(false)

	// A clean session drops subscriptions, so subscribe on every (re)connect.
	opts.SetOnConnectHandler(s.subscribe)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		s.logger.Warn("MQTT connection lost", slog.Any("error", err))
	})

	return opts
}

// Serve starts connecting in the background. Connection retries never fail the process.
func (s *subscriber) Serve(_ context.Context) error {
	s.logger.Info("Connecting to MQTT broker",
		slog.String("broker", s.cfg.Broker),
		slog.String("topic", s.cfg.TelemetryTopic),
	)
	s.client.Connect()

	return nil
}

func (s *subscriber) subscribe(client pahomqtt.Client) {
	token := client.Subscribe(s.cfg.TelemetryTopic, byte(s.cfg.QoS), s.handleMessage)
	if !token.WaitTimeout(defaultConnectTimeout) {
		s.logger.Error("Timed out subscribing to telemetry topic", slog.String("topic", s.cfg.TelemetryTopic))

		return
	}
	if err := token.Error(); err != nil {
		s.logger.Error("Failed to subscribe to telemetry topic", slog.String("topic", s.cfg.TelemetryTopic), slog.Any("error", err))

		return
	}

	s.logger.Info("Subscribed to telemetry topic", slog.String("topic", s.cfg.TelemetryTopic))
}

func (s *subscriber) handleMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()
	ctx, logger := deliverycontext.WithScope(ctx, deliverycontext.NewRequestID(), s.logger.With(slog.String("topic", msg.Topic())))

	report, err := s.decode(msg.Topic(), msg.Payload())
	if err != nil {
		logger.Warn("Dropping invalid telemetry message", slog.Any("error", err))

		return
	}

	if err := s.telemetryUC.Ingest(ctx, report); err != nil {
		logger.Error("Failed to ingest telemetry message",
			slog.String("serial", report.SerialNumber),
			slog.Any("error", err),
		)
	}
}

// decode parses and validates a payload. A payload without serialNumber takes it from
// the wildcard segment of the topic.
func (s *subscriber) decode(topic string, payload []byte) (*usecase.TelemetryReport, error) {
	var msg telemetryMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, errors.Wrap(err, "malformed telemetry payload")
	}
	if err := s.validator.Validate(&msg); err != nil {
		return nil, err
	}

	serial := strings.TrimSpace(msg.SerialNumber)
	if serial == "" {
		serial = wildcardSegment(s.cfg.TelemetryTopic, topic)
	}
	if serial == "" {
		return nil, errors.New("serialNumber is required")
	}
	if !entity.ValidIdentifier(serial) {
		return nil, errors.New("serialNumber must be at most 64 characters")
	}

	return &usecase.TelemetryReport{
		SerialNumber:  serial,
		Status:        msg.Status,
		Battery:       msg.Battery,
		CheckedAt:     msg.CheckedAt,
		Occupied:      msg.Occupied,
		HealthMonitor: msg.HealthMonitor,
	}, nil
}

// wildcardSegment returns the topic level matched by the first '+' in filter, or ""
// when topic does not match filter or filter has no '+'.
func wildcardSegment(filter, topic string) string {
	filterLevels := strings.Split(filter, "/")
	topicLevels := strings.Split(topic, "/")

	segment := ""
	for i, level := range filterLevels {
		if level == "#" {
			return segment
		}
		if i >= len(topicLevels) {
			return ""
		}
		switch {
		case level == "+":
			if segment == "" {
				segment = topicLevels[i]
			}
		case level != topicLevels[i]:
			return ""
		}
	}
	if len(topicLevels) != len(filterLevels) {
		return ""
	}

	return segment
}
