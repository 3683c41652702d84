package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Email     EmailConfig
	Reconcile ReconcileConfig
	Routing   RoutingConfig
}

// EmailConfig holds conflict alert delivery settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	AlertTo     []string `mapstructure:"alert_to"`
	ReviewURL   string   `mapstructure:"review_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify access tokens from the shop identity provider.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings for exported review sheets.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReconcileConfig tunes the reconciliation engine.
type ReconcileConfig struct {
	ThicknessToleranceIn float64        `mapstructure:"thickness_tolerance_in"`
	GapFillConfidence    float64        `mapstructure:"gap_fill_confidence"`
	MaterialSuffixes     []string       `mapstructure:"material_suffixes"`
	MaterialPrefixes     []string       `mapstructure:"material_prefixes"`
	OpNumbers            map[string]int `mapstructure:"op_numbers"`
}

// TimingConfig is the default setup/run time for one routing category, in minutes.
type TimingConfig struct {
	SetupMinutes float64 `mapstructure:"setup_minutes"`
	RunMinutes   float64 `mapstructure:"run_minutes"`
}

// RoutingConfig tunes how routing suggestions are placed into the property schema.
type RoutingConfig struct {
	OtherSlotOpNumbers []int                   `mapstructure:"other_slot_op_numbers"`
	AssemblyBaseOp     int                     `mapstructure:"assembly_base_op"`
	AssemblyOpStep     int                     `mapstructure:"assembly_op_step"`
	NoteSeparator      string                  `mapstructure:"note_separator"`
	Timings            map[string]TimingConfig `mapstructure:"timings"`
	WorkCenters        map[string]string       `mapstructure:"work_centers"`
}

// Load reads configuration from environment variables with the PARTSYNC_ prefix and,
// when PARTSYNC_CONFIG_FILE is set, from that YAML file. Routing tables (maps) can only
// be overridden from the file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PARTSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path := os.Getenv("PARTSYNC_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "PARTSYNC_SERVER_PORT",
		"server.read_timeout":              "PARTSYNC_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "PARTSYNC_SERVER_WRITE_TIMEOUT",
		"server.environment":               "PARTSYNC_SERVER_ENVIRONMENT",
		"db.host":                          "PARTSYNC_DB_HOST",
		"db.port":                          "PARTSYNC_DB_PORT",
		"db.user":                          "PARTSYNC_DB_USER",
		"db.password":                      "PARTSYNC_DB_PASSWORD",
		"db.name":                          "PARTSYNC_DB_NAME",
		"db.sslmode":                       "PARTSYNC_DB_SSLMODE",
		"db.max_open":                      "PARTSYNC_DB_MAX_OPEN",
		"db.max_idle":                      "PARTSYNC_DB_MAX_IDLE",
		"jwt.secret":                       "PARTSYNC_JWT_SECRET",
		"jwt.issuer":                       "PARTSYNC_JWT_ISSUER",
		"jwt.audience":                     "PARTSYNC_JWT_AUDIENCE",
		"s3.region":                        "PARTSYNC_S3_REGION",
		"s3.bucket":                        "PARTSYNC_S3_BUCKET",
		"s3.endpoint":                      "PARTSYNC_S3_ENDPOINT",
		"s3.access_key":                    "PARTSYNC_S3_ACCESS_KEY",
		"s3.secret_key":                    "PARTSYNC_S3_SECRET_KEY",
		"s3.key_prefix":                    "PARTSYNC_S3_KEY_PREFIX",
		"s3.presign_expiry":                "PARTSYNC_S3_PRESIGN_EXPIRY",
		"log.level":                        "PARTSYNC_LOG_LEVEL",
		"log.format":                       "PARTSYNC_LOG_FORMAT",
		"cors.allowed_origins":             "PARTSYNC_CORS_ALLOWED_ORIGINS",
		"email.provider":                   "PARTSYNC_EMAIL_PROVIDER",
		"email.region":                     "PARTSYNC_EMAIL_REGION",
		"email.from_address":               "PARTSYNC_EMAIL_FROM_ADDRESS",
		"email.from_name":                  "PARTSYNC_EMAIL_FROM_NAME",
		"email.alert_to":                   "PARTSYNC_EMAIL_ALERT_TO",
		"email.review_url":                 "PARTSYNC_EMAIL_REVIEW_URL",
		"reconcile.thickness_tolerance_in": "PARTSYNC_RECONCILE_THICKNESS_TOLERANCE_IN",
		"reconcile.gap_fill_confidence":    "PARTSYNC_RECONCILE_GAP_FILL_CONFIDENCE",
		"routing.assembly_base_op":         "PARTSYNC_ROUTING_ASSEMBLY_BASE_OP",
		"routing.assembly_op_step":         "PARTSYNC_ROUTING_ASSEMBLY_OP_STEP",
		"routing.note_separator":           "PARTSYNC_ROUTING_NOTE_SEPARATOR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set PORT. Use it if PARTSYNC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PARTSYNC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		KeyPrefix:     v.GetString("s3.key_prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		AlertTo:     splitList(v.GetString("email.alert_to")),
		ReviewURL:   v.GetString("email.review_url"),
	}

	cfg.Reconcile = ReconcileConfig{
		ThicknessToleranceIn: v.GetFloat64("reconcile.thickness_tolerance_in"),
		GapFillConfidence:    v.GetFloat64("reconcile.gap_fill_confidence"),
		MaterialSuffixes:     v.GetStringSlice("reconcile.material_suffixes"),
		MaterialPrefixes:     v.GetStringSlice("reconcile.material_prefixes"),
	}
	if err := v.UnmarshalKey("reconcile.op_numbers", &cfg.Reconcile.OpNumbers); err != nil {
		return nil, fmt.Errorf("decoding reconcile.op_numbers: %w", err)
	}

	cfg.Routing = RoutingConfig{
		AssemblyBaseOp: v.GetInt("routing.assembly_base_op"),
		AssemblyOpStep: v.GetInt("routing.assembly_op_step"),
		NoteSeparator:  v.GetString("routing.note_separator"),
	}
	if err := v.UnmarshalKey("routing.other_slot_op_numbers", &cfg.Routing.OtherSlotOpNumbers); err != nil {
		return nil, fmt.Errorf("decoding routing.other_slot_op_numbers: %w", err)
	}
	if err := v.UnmarshalKey("routing.timings", &cfg.Routing.Timings); err != nil {
		return nil, fmt.Errorf("decoding routing.timings: %w", err)
	}
	if err := v.UnmarshalKey("routing.work_centers", &cfg.Routing.WorkCenters); err != nil {
		return nil, fmt.Errorf("decoding routing.work_centers: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "partsync")
	v.SetDefault("db.password", "partsync_secret")
	v.SetDefault("db.name", "partsync_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "shop-identity")
	v.SetDefault("jwt.audience", "partsync")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "partsync-review-sheets")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "exports")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (approval UI in development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "partsync@localhost")
	v.SetDefault("email.from_name", "PartSync")
	v.SetDefault("email.alert_to", "")
	v.SetDefault("email.review_url", "http://localhost:3000/runs")

	// Reconcile defaults; zero values fall back to the engine's built-in tables.
	v.SetDefault("reconcile.thickness_tolerance_in", 0.005)
	v.SetDefault("reconcile.gap_fill_confidence", 0.90)
	v.SetDefault("reconcile.material_suffixes", []string{})
	v.SetDefault("reconcile.material_prefixes", []string{})
	v.SetDefault("reconcile.op_numbers", map[string]int{})

	// Routing defaults
	v.SetDefault("routing.other_slot_op_numbers", []int{60, 70, 80, 90, 100, 110})
	v.SetDefault("routing.assembly_base_op", 20)
	v.SetDefault("routing.assembly_op_step", 10)
	v.SetDefault("routing.note_separator", "; ")
	v.SetDefault("routing.timings", map[string]interface{}{})
	v.SetDefault("routing.work_centers", map[string]string{})
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
