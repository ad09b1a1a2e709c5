package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Browser callers live on a different origin; "*" mirrors the
	// original deployment.
	CORSAllowedOrigin string `envconfig:"CORS_ALLOWED_ORIGIN" default:"*"`

	// Attachment storage
	AttachmentsBucket string `envconfig:"ATTACHMENTS_BUCKET" default:"case-attachments"`
	SignedURLTTLSec   uint   `envconfig:"SIGNED_URL_TTL_SEC" default:"3600"`

	// Stripe (payment-link command only; the serve path never talks to
	// the gateway)
	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
}
