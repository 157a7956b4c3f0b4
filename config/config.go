package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações da lib do storefront.
// Cobre o endereço do backend externo, timeouts, storage local e o
// serviço externo de imagens.
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// Backend externo
	// APIBaseURL é o endereço absoluto do backend, usado por processos que
	// falam direto com ele (CLIs, render no servidor).
	// ProxyBaseURL, quando definido, é o prefixo roteado pela plataforma de
	// hospedagem (o caminho de rede não é o mesmo nos dois ambientes).
	APIBaseURL   string
	ProxyBaseURL string
	HTTPTimeout  time.Duration

	// Storage do cliente (análogo ao local storage do navegador)
	StorageBackend string // "file" ou "redis"
	StoragePath    string
	RedisAddr      string
	RedisPrefix    string

	// Serviço externo de imagens
	UploadURL    string
	UploadPreset string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Backend externo
		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:9003"),
		ProxyBaseURL: getEnv("API_PROXY_BASE_URL", ""),
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT_SEC", 15) * time.Second,

		// 3. Storage local
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		StoragePath:    getEnv("STORAGE_PATH", ".storefront"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:    getEnv("REDIS_PREFIX", "storefront"),

		// 4. Imagens (host externo, fora do backend primário)
		UploadURL:    getEnv("UPLOAD_URL", "https://api.cloudinary.com/v1_1/dxlbwdqop/image/upload"),
		UploadPreset: getEnv("UPLOAD_PRESET", "4fun_preset"),
	}

	return cfg
}

// BackendBaseURL resolve o endereço efetivo do backend: o prefixo proxiado
// quando existe (tráfego interceptado pela plataforma), senão o absoluto.
func (c *Config) BackendBaseURL() string {
	base := c.APIBaseURL
	if c.ProxyBaseURL != "" {
		base = c.ProxyBaseURL
	}
	return strings.TrimSuffix(base, "/")
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Duration(defaultValue)
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Aviso: valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return time.Duration(defaultValue)
	}
	return time.Duration(value)
}
