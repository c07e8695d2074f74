package storage_test

import (
	"testing"
	"time"

	"vessel-manager/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"bare host", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "vessel-data", Region: "us-east-1"}},
		{"http scheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"https scheme with slash", storage.Config{Endpoint: "https://s3.amazonaws.com/", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "eu-west-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestConfig_Timeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, storage.Config{}.Timeout())
	assert.Equal(t, 30*time.Second, storage.Config{TimeoutSeconds: -4}.Timeout())
	assert.Equal(t, 5*time.Second, storage.Config{TimeoutSeconds: 5}.Timeout())
}
