package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Empty(t, cfg.Manifest)
	assert.Equal(t, 30*time.Second, cfg.LoadTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "normalized-agri-records", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_DIR", "/srv/oecd")
	t.Setenv("DATASET_MANIFEST", "/srv/oecd/manifest.yaml")
	t.Setenv("LOAD_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/srv/oecd", cfg.DataDir)
	assert.Equal(t, "/srv/oecd/manifest.yaml", cfg.Manifest)
	assert.Equal(t, 5*time.Second, cfg.LoadTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, "SHUTDOWN_TIMEOUT"},
		{"invalid load timeout", map[string]string{"LOAD_TIMEOUT": "-1s"}, "LOAD_TIMEOUT"},
		{"invalid kafka flag", map[string]string{"KAFKA_ENABLED": "maybe"}, "KAFKA_ENABLED"},
		{"kafka without brokers", map[string]string{"KAFKA_ENABLED": "true"}, "KAFKA_BROKERS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte("datasets:\n  nutrients: nutrients.csv\n  land: land.json\n"))
	require.NoError(t, err)

	files := m.Files()
	assert.Equal(t, "water_data.json", files[domain.Water])
	assert.Equal(t, "nutrients.csv", files[domain.Nutrient])
	assert.Equal(t, "energy_data.json", files[domain.Energy])
	assert.Equal(t, "land.json", files[domain.Land])
}

func TestParseManifest_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown dataset": "datasets:\n  soil: soil.json\n",
		"blank file":      "datasets:\n  water: \"\"\n",
		"not yaml":        "datasets: [unclosed",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifest([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	m, err := LoadManifest("")
	require.NoError(t, err)
	assert.Len(t, m.Files(), 4)

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets:\n  energy: energy.csv\n"), 0o600))
	m, err = LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "energy.csv", m.Files()[domain.Energy])

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
