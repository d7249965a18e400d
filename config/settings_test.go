package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadSettings reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"CONFIG_FILE", "ENVIRONMENT", "SERVER_PORT", "GIN_MODE",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_DATABASE", "DB_USERNAME", "DB_PASSWORD", "DB_PATH", "DEBUG_SQL",
		"JWT_SECRET", "JWT_EXPIRE_HOURS",
		"UPLOAD_BACKEND", "UPLOAD_PATH", "S3_BUCKET", "S3_REGION", "S3_PREFIX",
		"AMQP_URL", "AMQP_EXCHANGE", "ALLOWED_ORIGINS", "EMPLOYEE_CODE_PREFIX",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	clearEnv(t)

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.Equal(t, "GSS", s.EmployeeCodePrefix)
	assert.Equal(t, "local", s.Upload.Backend)
}

func TestLoadSettingsFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "records.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "staging"
server_port = "9090"
employee_code_prefix = "EMP"

[database]
driver = "sqlite"
path = "/tmp/records.db"

[upload]
backend = "s3"
s3_bucket = "records-uploads"
s3_region = "ap-south-1"

[cors]
allowed_origins = ["https://hr.example.com"]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "staging", s.Environment)
	assert.Equal(t, "7000", s.ServerPort)
	assert.Equal(t, "sqlite", s.Database.Driver)
	assert.Equal(t, "/tmp/records.db", s.Database.Path)
	assert.Equal(t, "records-uploads", s.Upload.S3Bucket)
	assert.Equal(t, "EMP", s.EmployeeCodePrefix)
	assert.Equal(t, 2, s.Auth.ExpireHours)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, s.CORS.AllowedOrigins)
	// Untouched defaults survive the file.
	assert.EqualValues(t, 10*1024*1024, s.Upload.MaxBytes)
}

func TestLoadSettingsBadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("server_port = "), 0o600))
	t.Setenv("CONFIG_FILE", path)

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"unknown driver", func(s *Settings) { s.Database.Driver = "postgres" }, false},
		{"s3 without bucket", func(s *Settings) { s.Upload.Backend = "s3" }, false},
		{"unknown backend", func(s *Settings) { s.Upload.Backend = "ftp" }, false},
		{"production without secret", func(s *Settings) { s.Environment = "production" }, false},
		{"production with secret", func(s *Settings) {
			s.Environment = "production"
			s.Auth.JWTSecret = "x"
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			if tc.ok {
				assert.NoError(t, s.Validate())
			} else {
				assert.Error(t, s.Validate())
			}
		})
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	db, err := OpenDB(DatabaseSettings{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "m.db")}, "production")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{
		"users", "works", "banks", "employee_sequences", "approval_events",
		"employee_drafts", "employees", "aadhar_drafts", "aadhars",
		"pan_drafts", "pans", "bank_detail_drafts", "bank_details",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
