package configs

// RateLimit configures the process-wide HTTP token bucket. A zero
// RequestsPerSec disables limiting.
type RateLimit struct {
	RequestsPerSec float64 `env:"RPS" envDefault:"0"`
	Burst          int     `env:"BURST" envDefault:"50"`
}
