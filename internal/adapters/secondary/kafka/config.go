package kafka

import (
	"strings"
)

// Config Kafka producer событий заказов. При Enabled=false события не публикуются
type Config struct {
	Enabled          bool   `envconfig:"ENABLED" default:"false"`
	Brokers          string `envconfig:"BROKERS"`                                  // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC" default:"exam_shop.order_events"`   // название топика
	ClientID         string `envconfig:"CLIENT_ID" default:"exam_shop_bot"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "SASL_PLAINTEXT", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}

	var brokers []string
	for _, broker := range strings.Split(c.Brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
