package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("orderapi")
	assert.Equal(t, ":8083", cfg.HTTPAddr)
	assert.Equal(t, "orderapi", cfg.ServiceName)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "http://localhost:8082/products", cfg.ProductAPIURL)
	assert.Equal(t, "http://localhost:8081/customers", cfg.CustomerAPIURL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")

	cfg := Load("customerapi")
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestServiceDefaultAddrs(t *testing.T) {
	assert.Equal(t, ":8081", Load("customerapi").HTTPAddr)
	assert.Equal(t, ":8082", Load("productapi").HTTPAddr)
}
