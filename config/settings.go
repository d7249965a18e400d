package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings is the runtime configuration of the API. Values come from an
// optional TOML file (CONFIG_FILE) and are overridden by environment variables.
type Settings struct {
	Environment string           `toml:"environment"`
	ServerPort  string           `toml:"server_port"`
	GinMode     string           `toml:"gin_mode"`
	Database    DatabaseSettings `toml:"database"`
	Auth        AuthSettings     `toml:"auth"`
	Upload      UploadSettings   `toml:"upload"`
	Events      EventSettings    `toml:"events"`
	CORS        CORSSettings     `toml:"cors"`

	// EmployeeCodePrefix is prepended to the zero padded employee sequence.
	EmployeeCodePrefix string `toml:"employee_code_prefix"`
}

type DatabaseSettings struct {
	Driver   string `toml:"driver"` // "mysql" (default) or "sqlite"
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Name     string `toml:"name"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Path     string `toml:"path"` // sqlite only
	DebugSQL bool   `toml:"debug_sql"`
}

type AuthSettings struct {
	JWTSecret   string `toml:"jwt_secret"`
	ExpireHours int    `toml:"expire_hours"`
}

type UploadSettings struct {
	Backend  string `toml:"backend"` // "local" (default) or "s3"
	Path     string `toml:"path"`
	S3Bucket string `toml:"s3_bucket,omitempty"`
	S3Region string `toml:"s3_region,omitempty"`
	S3Prefix string `toml:"s3_prefix,omitempty"`
	MaxBytes int64  `toml:"max_bytes"`
}

type EventSettings struct {
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

type CORSSettings struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Environment: "development",
		ServerPort:  "8080",
		Database: DatabaseSettings{
			Driver: "mysql",
			Port:   "3306",
			Path:   "employee-records.db",
		},
		Auth: AuthSettings{ExpireHours: 24},
		Upload: UploadSettings{
			Backend:  "local",
			Path:     "./uploads",
			MaxBytes: 10 * 1024 * 1024,
		},
		Events:             EventSettings{Exchange: "employee-records"},
		CORS:               CORSSettings{AllowedOrigins: []string{"http://localhost:3000"}},
		EmployeeCodePrefix: "GSS",
	}
}

// LoadSettings builds the settings from defaults, the TOML file named by
// CONFIG_FILE (if any) and finally the process environment.
func LoadSettings() (Settings, error) {
	s := DefaultSettings()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return s, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	applyEnv(&s)

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func applyEnv(s *Settings) {
	setString(&s.Environment, "ENVIRONMENT")
	setString(&s.ServerPort, "SERVER_PORT")
	setString(&s.GinMode, "GIN_MODE")

	setString(&s.Database.Driver, "DB_DRIVER")
	setString(&s.Database.Host, "DB_HOST")
	setString(&s.Database.Port, "DB_PORT")
	setString(&s.Database.Name, "DB_DATABASE")
	setString(&s.Database.Username, "DB_USERNAME")
	setString(&s.Database.Password, "DB_PASSWORD")
	setString(&s.Database.Path, "DB_PATH")
	if v := os.Getenv("DEBUG_SQL"); v != "" {
		s.Database.DebugSQL = strings.EqualFold(v, "true")
	}

	setString(&s.Auth.JWTSecret, "JWT_SECRET")
	if v, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_HOURS")); err == nil && v > 0 {
		s.Auth.ExpireHours = v
	}

	setString(&s.Upload.Backend, "UPLOAD_BACKEND")
	setString(&s.Upload.Path, "UPLOAD_PATH")
	setString(&s.Upload.S3Bucket, "S3_BUCKET")
	setString(&s.Upload.S3Region, "S3_REGION")
	setString(&s.Upload.S3Prefix, "S3_PREFIX")

	setString(&s.Events.AMQPURL, "AMQP_URL")
	setString(&s.Events.Exchange, "AMQP_EXCHANGE")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		s.CORS.AllowedOrigins = origins
	}

	setString(&s.EmployeeCodePrefix, "EMPLOYEE_CODE_PREFIX")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks the combinations that cannot work at runtime.
func (s Settings) Validate() error {
	switch s.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", s.Database.Driver)
	}
	switch s.Upload.Backend {
	case "local":
	case "s3":
		if s.Upload.S3Bucket == "" {
			return fmt.Errorf("upload backend s3 requires a bucket")
		}
	default:
		return fmt.Errorf("unsupported upload backend %q", s.Upload.Backend)
	}
	if strings.EqualFold(s.Environment, "production") && s.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}
