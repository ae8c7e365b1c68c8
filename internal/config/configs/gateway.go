package configs

import "time"

// Gateway configures the outbound statistics clients.
type Gateway struct {
	StatCanURL      string `env:"STATCAN_URL" envDefault:"https://www150.statcan.gc.ca/t1/wds/rest"`
	BankOfCanadaURL string `env:"BOC_URL" envDefault:"https://www.bankofcanada.ca/valet"`
	// ConsumerURL is the consumer-behaviour endpoint; empty disables it.
	ConsumerURL   string        `env:"CONSUMER_URL"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"10s"`
	MaxRetries    int           `env:"MAX_RETRIES" envDefault:"3"`
	RatePerSecond float64       `env:"RATE_PER_SECOND" envDefault:"5"`
}
