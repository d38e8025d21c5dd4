package common

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	BackendDrive = "drive"
	BackendS3    = "s3"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Classifier ClassifierConfig
	Policy     PolicyConfig
	RulesPath  string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// StorageConfig holds document-store configuration
type StorageConfig struct {
	Backend          string
	TicketSubfolder  string
	DriveCredentials string
	S3               S3Config
}

// S3Config holds the object-store connection settings
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ClassifierConfig holds the invoice/receipt matching patterns
type ClassifierConfig struct {
	InvoiceRegex string
	ReceiptRegex string
}

// PolicyConfig holds the file-name admission keywords
type PolicyConfig struct {
	Keywords []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Storage: StorageConfig{
			Backend:          getEnv("STORAGE_BACKEND", BackendDrive),
			TicketSubfolder:  getEnv("TICKET_SUBFOLDER_NAME", "Tickets en general"),
			DriveCredentials: getEnv("DRIVE_CREDENTIALS_FILE", ""),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", ""),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Bucket:    getEnv("S3_BUCKET", ""),
				UseSSL:    getEnvAsBool("S3_USE_SSL", true),
			},
		},
		Classifier: ClassifierConfig{
			InvoiceRegex: getEnv("INVOICE_REGEX", `F\d{3}-\d{8}`),
			ReceiptRegex: getEnv("RECEIPT_REGEX", `B\d{3}-\d{8}`),
		},
		Policy: PolicyConfig{
			Keywords: SplitKeywords(getEnv("POLICY_KEYWORDS", "ticket,factura,boleta")),
		},
		RulesPath: getEnv("RULES_PATH", ""),
	}
}

// ApplyRules overrides the classifier patterns and policy keywords from a
// validated rules file.
func (c *Config) ApplyRules(r *ClassificationRules) {
	c.Classifier.InvoiceRegex = r.InvoiceRegex
	c.Classifier.ReceiptRegex = r.ReceiptRegex
	c.Policy.Keywords = normalizeKeywords(r.Keywords)
}

// SplitKeywords splits a comma-separated keyword list, lowercasing and
// dropping blanks.
func SplitKeywords(raw string) []string {
	return normalizeKeywords(strings.Split(raw, ","))
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration. A bad pattern or an empty
// keyword set fails here, at startup, not mid-batch.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewTechnicalError(CodeConfig, "HTTP_ADDR is required", nil)
	}
	if strings.TrimSpace(c.Storage.TicketSubfolder) == "" {
		return NewTechnicalError(CodeConfig, "TICKET_SUBFOLDER_NAME must not be blank", nil)
	}
	switch c.Storage.Backend {
	case BackendDrive:
		if c.Storage.DriveCredentials == "" {
			return NewTechnicalError(CodeConfig, "DRIVE_CREDENTIALS_FILE is required for the drive backend", nil)
		}
	case BackendS3:
		s3 := c.Storage.S3
		if s3.Endpoint == "" || s3.AccessKey == "" || s3.SecretKey == "" || s3.Bucket == "" {
			return NewTechnicalError(CodeConfig, "S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY and S3_BUCKET are required for the s3 backend", nil)
		}
	default:
		return NewTechnicalError(CodeConfig, fmt.Sprintf("unknown STORAGE_BACKEND: %q", c.Storage.Backend), nil)
	}
	if _, err := regexp.Compile(c.Classifier.InvoiceRegex); err != nil {
		return NewTechnicalError(CodeConfig, "INVOICE_REGEX does not compile", err)
	}
	if _, err := regexp.Compile(c.Classifier.ReceiptRegex); err != nil {
		return NewTechnicalError(CodeConfig, "RECEIPT_REGEX does not compile", err)
	}
	if len(normalizeKeywords(c.Policy.Keywords)) == 0 {
		return NewTechnicalError(CodeConfig, "POLICY_KEYWORDS must contain at least one keyword", nil)
	}
	return nil
}
