package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultHTTPPort           = 8080
	defaultMaxRequestBodySize = "100KB"
	defaultBackendMainURL     = "http://localhost:8081"
	defaultSyncTimeout        = 2 * time.Second
	defaultTelemetryTopic     = "spotfinder/+/telemetry"
	defaultSlowQueryThreshold = 200 * time.Millisecond

	// PersistenceDriverPostgres stores devices in PostgreSQL through GORM.
	PersistenceDriverPostgres = "postgres"
	// PersistenceDriverMemory keeps devices in process memory (development and tests).
	PersistenceDriverMemory = "memory"
)

// defaultAllowOrigins are the browser origins allowed to call /api/iot: local frontend
// development, the deployed edge server and the deployed frontend.
var defaultAllowOrigins = []string{
	"http://localhost:4200",
	"https://edgeserverspot-dudqatdsf5cebwe3.eastus2-01.azurewebsites.net",
	"https://brave-mushroom-0031ada10.3.azurestaticapps.net",
}

var defaultAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		CORS CORSConfig `json:"cors" yaml:"cors"`
	} `json:"http" yaml:"http"`

	// Backend is the central backend that receives occupancy updates
	Backend BackendConfig `json:"backend" yaml:"backend"`

	Persistence PersistenceConfig `json:"persistence" yaml:"persistence"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// MQTT enables telemetry intake from a broker in addition to HTTP
	MQTT *MQTTConfig `json:"mqtt" yaml:"mqtt"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// CORSConfig is the static allow-list for browser clients of /api/iot.
type CORSConfig struct {
	AllowOrigins     []string `json:"allowOrigins" yaml:"allowOrigins"`
	AllowMethods     []string `json:"allowMethods" yaml:"allowMethods"`
	AllowCredentials bool     `json:"allowCredentials" yaml:"allowCredentials"`
}

// BackendConfig locates the upstream backend and bounds calls to it.
type BackendConfig struct {
	Main struct {
		// Base URL; occupancy is posted to {URL}/api/spots/sync-telemetry
		URL string `json:"url" yaml:"url"`
	} `json:"main" yaml:"main"`

	Sync struct {
		// Timeout for a single occupancy push. Expiry counts as a failed push.
		Timeout time.Duration `json:"timeout" yaml:"timeout"`
	} `json:"sync" yaml:"sync"`
}

// PersistenceConfig selects the device store implementation.
type PersistenceConfig struct {
	// Driver is "postgres" or "memory"
	Driver string `json:"driver" yaml:"driver"`

	// AutoMigrate creates or updates the iot_devices table at start-up (postgres only)
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`

	// SlowQueryThreshold is the statement duration above which a query is logged as slow.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// MQTTConfig defines the broker connection used for telemetry intake.
type MQTTConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	Broker         string `json:"broker" yaml:"broker"`
	ClientID       string `json:"clientId" yaml:"clientId"`
	Username       string `json:"username" yaml:"username"`
	Password       string `json:"password" yaml:"password"`
	TelemetryTopic string `json:"telemetryTopic" yaml:"telemetryTopic"`
	QoS            int    `json:"qos" yaml:"qos"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: BACKEND_MAIN_URL -> backend.main.url, HTTP_MAXREQUESTBODYSIZE -> http.maxRequestBodySize
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Case-insensitive so env overrides land on camelCase fields
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if cfg.Postgres != nil {
		// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if len(cfg.HTTP.CORS.AllowOrigins) == 0 {
		cfg.HTTP.CORS.AllowOrigins = defaultAllowOrigins
		cfg.HTTP.CORS.AllowCredentials = true
	}
	if len(cfg.HTTP.CORS.AllowMethods) == 0 {
		cfg.HTTP.CORS.AllowMethods = defaultAllowMethods
	}

	cfg.Backend.Main.URL = strings.TrimRight(strings.TrimSpace(cfg.Backend.Main.URL), "/")
	if cfg.Backend.Main.URL == "" {
		cfg.Backend.Main.URL = defaultBackendMainURL
	}
	if cfg.Backend.Sync.Timeout <= 0 {
		cfg.Backend.Sync.Timeout = defaultSyncTimeout
	}

	if cfg.Persistence.Driver == "" {
		cfg.Persistence.Driver = PersistenceDriverPostgres
	}
	if cfg.Persistence.SlowQueryThreshold <= 0 {
		cfg.Persistence.SlowQueryThreshold = defaultSlowQueryThreshold
	}

	if cfg.MQTT != nil && cfg.MQTT.TelemetryTopic == "" {
		cfg.MQTT.TelemetryTopic = defaultTelemetryTopic
	}
}

func validate(cfg *Config) error {
	switch cfg.Persistence.Driver {
	case PersistenceDriverMemory:
	case PersistenceDriverPostgres:
		if cfg.Postgres == nil {
			return errors.New("postgres configuration is required for the postgres persistence driver")
		}
	default:
		return errors.Errorf("unknown persistence driver: %s", cfg.Persistence.Driver)
	}

	if cfg.MQTT != nil && cfg.MQTT.Enabled {
		if cfg.MQTT.Broker == "" {
			return errors.New("mqtt broker is required when mqtt is enabled")
		}
		if cfg.MQTT.QoS < 0 || cfg.MQTT.QoS > 2 {
			return errors.Errorf("mqtt qos must be 0, 1 or 2, got %d", cfg.MQTT.QoS)
		}
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
