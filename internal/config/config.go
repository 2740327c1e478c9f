package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration. It is loaded once at process
// start and passed explicitly to every component.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	Port        string

	SMTP SMTPConfig
	DB   DBConfig

	// ReceiptDir is the scratch directory holding generated PDFs.
	ReceiptDir string

	SealImagePath      string
	SignatureImagePath string
	PDFFontPath        string

	// CreditCardInputURL overrides the built-in card entry page when set.
	CreditCardInputURL string

	// BankTransferInfo is the multi-line transfer details block included
	// in bank-transfer confirmation mails.
	BankTransferInfo string

	// WebDir holds the static form page and HTML templates.
	WebDir string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type DBConfig struct {
	Type     string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	MaxIdleConn int
	MaxOpenConn int
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	smtpUser := getenv("SMTP_USER", "")

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "kifukin"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "5000"),
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: smtpUser,
			Password: strings.ReplaceAll(getenv("SMTP_PASS", ""), " ", ""),
			From:     getenv("FROM_MAIL", smtpUser),
		},
		DB: DBConfig{
			Type:        getenv("DATABASE_TYPE", "mysql"),
			Host:        getenv("DATABASE_HOST", "127.0.0.1"),
			Port:        getenv("DATABASE_PORT", "3306"),
			Name:        getenv("DATABASE_NAME", "donation"),
			User:        getenv("DATABASE_USER", "kifukin_user"),
			Password:    getenv("DATABASE_PASSWORD", ""),
			SSLMode:     getenv("DATABASE_SSLMODE", "disable"),
			MaxIdleConn: getenvInt("DATABASE_MAX_IDLE_CONN", 2),
			MaxOpenConn: getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		},
		ReceiptDir:         getenv("RECEIPT_DIR", defaultReceiptDir()),
		SealImagePath:      getenv("SEAL_IMAGE_PATH", "assets/seals/issuer_seal.png"),
		SignatureImagePath: getenv("SIGNATURE_IMAGE_PATH", "assets/seals/issuer_signature.png"),
		PDFFontPath:        strings.TrimSpace(getenv("PDF_FONT_PATH", "")),
		CreditCardInputURL: strings.TrimSpace(getenv("CREDIT_CARD_INPUT_URL", "")),
		BankTransferInfo:   ParseMultiline(getenv("BANK_TRANSFER_INFO", "")),
		WebDir:             getenv("WEB_DIR", "web"),
	}

	return cfg
}

// ParseMultiline normalizes newline escaping in multi-line env values.
// Operators paste transfer details through shells and dashboards that
// mangle backslashes, so every common mutation is accepted.
func ParseMultiline(value string) string {
	normalized := strings.NewReplacer(
		"\r\n", "\n",
		`\r\n`, "\n",
		`\n`, "\n",
		"¥n", "\n",
	).Replace(value)
	normalized = strings.TrimSpace(normalized)

	// Fallback for values like "支店n普通 1234n口座名義..." where the
	// backslash was dropped entirely.
	if !strings.Contains(normalized, "\n") && strings.Contains(normalized, "n") {
		parts := strings.Split(normalized, "n")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) >= 2 && allNonEmpty(parts) {
			normalized = strings.Join(parts, "\n")
		}
	}
	return normalized
}

func allNonEmpty(parts []string) bool {
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

func defaultReceiptDir() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("donation_receipts_%d", os.Getuid()))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
