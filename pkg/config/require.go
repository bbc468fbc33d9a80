package config

import (
	"fmt"
	"log"
)

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// Validate reports values the server cannot start with.
func (c Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT out of range: %d", c.ServerPort)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("LOW_STOCK_THRESHOLD must be >= 0, got %d", c.LowStockThreshold)
	}
	if len(c.KafkaBrokers) > 0 && c.LowStockTopic == "" {
		return fmt.Errorf("LOW_STOCK_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}
