package configs

// HTTP defines configuration for the ad engine's HTTP server. Only the
// bind port is configurable; the server always listens on all interfaces.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
