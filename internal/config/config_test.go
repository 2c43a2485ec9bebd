package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "devconnector", cfg.DBName)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.NotEmpty(t, cfg.RedisURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "Missing Port",
			cfg:     Config{JWTSecret: "x"},
			wantErr: true,
		},
		{
			name:    "Missing Secret",
			cfg:     Config{Port: "5000"},
			wantErr: true,
		},
		{
			name: "Development Defaults OK",
			cfg: Config{
				Port:      "5000",
				JWTSecret: "secret-change-in-production",
				Env:       "development",
			},
			wantErr: false,
		},
		{
			name: "Production Rejects Default Secret",
			cfg: Config{
				Port:      "5000",
				JWTSecret: "secret-change-in-production",
				Env:       "production",
			},
			wantErr: true,
		},
		{
			name: "Production Rejects Short Secret",
			cfg: Config{
				Port:       "5000",
				JWTSecret:  "short",
				DBPassword: "str0ng-db-pass",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "Production Rejects Default DB Password",
			cfg: Config{
				Port:       "5000",
				JWTSecret:  "a-long-enough-production-secret-value",
				DBPassword: "password",
				Env:        "production",
			},
			wantErr: true,
		},
		{
			name: "Production OK",
			cfg: Config{
				Port:       "5000",
				JWTSecret:  "a-long-enough-production-secret-value",
				DBPassword: "str0ng-db-pass",
				DBSSLMode:  "require",
				Env:        "production",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
