package configs

// Redis holds configuration for the Redis connection backing the simulated
// day counter.
type Redis struct {
	// Addr is a host:port pair.
	Addr     string `env:"ADDRESS" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB" envDefault:"0"`
}
