package configs

import "time"

// Redis is optional. With an empty Address the market cache lives in
// Postgres and analysis locks are process-local.
type Redis struct {
	Address  string        `env:"ADDRESS"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	LockTTL  time.Duration `env:"LOCK_TTL" envDefault:"5m"`
}

// Enabled reports whether a Redis server is configured.
func (c Redis) Enabled() bool {
	return c.Address != ""
}
