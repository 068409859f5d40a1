package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables
	// authentication, for local single-user setups.
	ApiKey string `mapstructure:"api_key" default:""`
}

// RequiresAuth reports whether the API key middleware should be installed.
func (c Config) RequiresAuth() bool {
	return c.ApiKey != ""
}
