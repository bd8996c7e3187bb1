package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=deposit_system;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultListenAddr = ":8080"
const defaultChannelID = "DepositOps"
const defaultChannelKey = "DepositOpsKey001"
const defaultTokenSecret = "change-me-in-production"
const defaultTokenTTL = 12 * time.Hour

type Config struct {
	DatabaseDSN string
	ListenAddr  string
	ChannelID   string
	ChannelKey  string
	TokenSecret string
	TokenTTL    time.Duration
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	tokenSecret := strings.TrimSpace(os.Getenv("PORTAL_TOKEN_SECRET"))
	if tokenSecret == "" {
		tokenSecret = defaultTokenSecret
	}

	tokenTTL := defaultTokenTTL
	if raw := strings.TrimSpace(os.Getenv("PORTAL_TOKEN_TTL_HOURS")); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			tokenTTL = time.Duration(hours) * time.Hour
		}
	}

	return Config{
		DatabaseDSN: normalizeConnectionString(conn),
		ListenAddr:  listenAddr,
		ChannelID:   channelID,
		ChannelKey:  channelKey,
		TokenSecret: tokenSecret,
		TokenTTL:    tokenTTL,
	}, nil
}

func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
