package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Admin gate
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	SessionTTLSec int    `envconfig:"SESSION_TTL_SEC" default:"28800"` // 8 hours
	CookieName    string `envconfig:"SESSION_COOKIE_NAME" default:"admin_session"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Session store; falls back to in-process memory when unset
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	// Verification gate
	CodeTTLSec        int `envconfig:"VERIFICATION_CODE_TTL_SEC" default:"900"`
	ResendCooldownSec int `envconfig:"RESEND_COOLDOWN_SEC" default:"60"`

	// Outbound code delivery webhook; logs codes instead when unset
	NotifyWebhookURL string `envconfig:"NOTIFY_WEBHOOK_URL"`
	NotifyWebhookKey string `envconfig:"NOTIFY_WEBHOOK_KEY"`

	// CSV export archival bucket; exports skip archival when unset
	ExportBucket string `envconfig:"EXPORT_BUCKET"`
}
