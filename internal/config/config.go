package config

import (
	"encoding/base64"
	"fmt"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	ServerAddr       string
	StorageBackend   string
	DataDir          string
	DatabaseDSN      string
	SigningKey       []byte
	AllowedOrigins   []string
	AssistantAPIKey  string
	AssistantBaseURL string
}

func decodeSigningSecret(base64Secret string) ([]byte, error) {
	if base64Secret == "" {
		return nil, fmt.Errorf("signing secret cannot be empty")
	}
	return base64.StdEncoding.DecodeString(base64Secret)
}

func NewConfig(serverAddr, storageBackend, dataDir, databaseDSN, base64Secret string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}

	switch storageBackend {
	case BackendFile:
		if dataDir == "" {
			return nil, fmt.Errorf("data directory cannot be empty for file backend")
		}
	case BackendPostgres:
		if databaseDSN == "" {
			return nil, fmt.Errorf("database DSN cannot be empty for postgres backend")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", storageBackend)
	}

	signingKey, err := decodeSigningSecret(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode signing secret: %w", err)
	}

	return &Config{
		ServerAddr:     serverAddr,
		StorageBackend: storageBackend,
		DataDir:        dataDir,
		DatabaseDSN:    databaseDSN,
		SigningKey:     signingKey,
		AllowedOrigins: allowedOrigins,
	}, nil
}
