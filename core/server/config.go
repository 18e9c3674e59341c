package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// An empty key disables the guard.
	ApiKey string `mapstructure:"api_key" default:""`
	// Channel is stamped onto every object returned by the endpoints.
	Channel string `mapstructure:"channel" default:"Vend"`
}
