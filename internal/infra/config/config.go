package config

import "os"

// Config holds the environment configuration for both binaries.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Product image uploads. Empty disables the console upload endpoint.
	ProductImageBucket string
	GCPCreds           string

	// Optional reporting database. Empty disables the sales ledger.
	DatabaseURL string

	// SendGrid. The API key may come from Secret Manager (secret name) or
	// directly from the env var; the env var wins when both are set.
	SendGridAPIKey     string
	SendGridSecretName string
	MailFrom           string

	// Storefront origin allowed by CORS. Empty means "*" (dev only).
	CORSAllowedOrigin string
}

// Load reads the environment and returns the Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "mihrab-dev")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		ProductImageBucket: os.Getenv("PRODUCT_IMAGE_BUCKET"),
		GCPCreds:           os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: os.Getenv("SENDGRID_SECRET_NAME"),
		MailFrom:           getenvDefault("MAIL_FROM", "orders@mihrab.example"),

		CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
