package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultLLMURL   = "https://router.huggingface.co/v1/chat/completions"
	defaultLLMModel = "Qwen/Qwen3-Coder-480B-A35B-Instruct:cerebras"
)

// Config is read once at startup and passed to the components that need it.
type Config struct {
	Port         string
	DBPath       string
	Location     *time.Location
	UploadDir    string
	UploadBucket string
	UploadPrefix string
	LLMAPIURL    string
	LLMAPIKey    string
	LLMModel     string
	LLMTimeout   time.Duration
	OCRLanguage  string
	LogLevel     logrus.Level
	MaxUploadMB  int
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	port, err := resolvePort()
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(getEnv("TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ: %w", err)
	}

	timeout, err := getEnvDuration("LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	maxUpload, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 || maxUpload > 1024 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %d", maxUpload)
	}

	return &Config{
		Port:         port,
		DBPath:       getEnv("DB_PATH", filepath.Join("data", "vytal.db")),
		Location:     location,
		UploadDir:    getEnv("UPLOAD_DIR", filepath.Join("data", "uploads")),
		UploadBucket: strings.TrimSpace(os.Getenv("UPLOAD_BUCKET")),
		UploadPrefix: getEnv("UPLOAD_PREFIX", "prescriptions/"),
		LLMAPIURL:    getEnv("LLM_API_URL", defaultLLMURL),
		LLMAPIKey:    getEnv("LLM_API_KEY", os.Getenv("HF_KEY")),
		LLMModel:     getEnv("LLM_MODEL", defaultLLMModel),
		LLMTimeout:   timeout,
		OCRLanguage:  getEnv("OCR_LANGUAGE", "eng"),
		LogLevel:     level,
		MaxUploadMB:  maxUpload,
	}, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "5000")
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid PORT %q: %w", raw, err)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %d", port)
	}
	return raw, nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return parsed, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return parsed, nil
}
