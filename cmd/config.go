package cmd

// Config carries all runtime configuration for the fulfillment service.
// Values are read from the environment by the application entrypoint.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// MarketplaceAPIURL is the base URL of the marketplace seller API.
	MarketplaceAPIURL string
	// MarketplaceAPIKey authenticates every seller API call.
	MarketplaceAPIKey string

	// OriginZip is the postal code labels ship from.
	OriginZip string
}
