package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the process needs.
type Config struct {
	Server ServerConfig
	Room   RoomConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr          string
	AllowedOrigin string
}

// RoomConfig describes the broker's tunables.
type RoomConfig struct {
	HistoryLimit int
	SendBuffer   int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	room, err := loadRoomConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Room: room}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	origin := getEnvOrDefault("ALLOWED_ORIGIN", "*")

	if strings.Contains(port, ":") {
		// Accept ":8080" and "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port, AllowedOrigin: origin}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigin: origin}, nil
}

func loadRoomConfig() (RoomConfig, error) {
	historyLimit := 100
	if override, err := parseOptionalIntEnv("ROOM_HISTORY_LIMIT"); err != nil {
		return RoomConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return RoomConfig{}, fmt.Errorf("ROOM_HISTORY_LIMIT must be positive, got %d", *override)
		}
		historyLimit = *override
	}

	sendBuffer := 32
	if override, err := parseOptionalIntEnv("ROOM_SEND_BUFFER"); err != nil {
		return RoomConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return RoomConfig{}, fmt.Errorf("ROOM_SEND_BUFFER must be positive, got %d", *override)
		}
		sendBuffer = *override
	}

	return RoomConfig{HistoryLimit: historyLimit, SendBuffer: sendBuffer}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
