package config

import "os"

// Config is loaded from the environment once at startup.
type Config struct {
	Addr      string
	JWTSecret string

	// Store selects the backing store: "memory" or "mongo".
	Store    string
	MongoURI string
	MongoDB  string

	// StrictStatus rejects status values outside the enumeration on
	// PUT /orders/:id/status. Off by default: an admin may write any
	// status string.
	StrictStatus bool

	// CookieSecure sets the Secure flag on the auth cookie.
	CookieSecure bool
}

func Load() Config {
	return Config{
		Addr:         getenv("ADDR", ":8080"),
		JWTSecret:    getenv("JWT_SECRET", "replace-with-secure-secret"),
		Store:        getenv("STORE", "memory"),
		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "ecommerce"),
		StrictStatus: getenvBool("ORDER_STATUS_STRICT", false),
		CookieSecure: getenvBool("COOKIE_SECURE", false),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	case "0", "false", "FALSE", "no":
		return false
	}
	return def
}
