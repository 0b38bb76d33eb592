package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
)

type Config struct {
	HTTPAddr    string   `yaml:"http_addr"`
	GRPCAddr    string   `yaml:"grpc_addr"`
	DatabaseURL string   `yaml:"database_url"`
	QRCodeSize  int      `yaml:"qr_code_size"`
	Merchant    Merchant `yaml:"merchant"`
}

type Merchant struct {
	UEN        string `yaml:"uen"`
	Name       string `yaml:"name"`
	City       string `yaml:"city"`
	BillNumber string `yaml:"bill_number"`
}

// PayNow converts the merchant section into the encoder's configuration.
func (m Merchant) PayNow() paynow.Merchant {
	pm := paynow.NewMerchant(m.UEN, m.Name)
	if m.City != "" {
		pm.City = m.City
	}
	if m.BillNumber != "" {
		pm.BillNumber = m.BillNumber
	}
	return pm
}

func defaults() *Config {
	return &Config{
		HTTPAddr:   ":8080",
		GRPCAddr:   ":50051",
		QRCodeSize: 400,
		Merchant: Merchant{
			UEN:        "202012345K",
			Name:       "AQUATIC AVENUE",
			City:       paynow.DefaultCity,
			BillNumber: paynow.DefaultBillNumber,
		},
	}
}

// Load layers defaults, the YAML file named by CONFIG_FILE and environment
// variables, in that order.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.GRPCAddr = getEnv("GRPC_ADDR", cfg.GRPCAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Merchant.UEN = getEnv("PAYNOW_UEN", cfg.Merchant.UEN)
	cfg.Merchant.Name = getEnv("PAYNOW_MERCHANT_NAME", cfg.Merchant.Name)
	cfg.Merchant.City = getEnv("PAYNOW_MERCHANT_CITY", cfg.Merchant.City)
	cfg.Merchant.BillNumber = getEnv("PAYNOW_BILL_NUMBER", cfg.Merchant.BillNumber)

	size, err := getEnvInt("QR_CODE_SIZE", cfg.QRCodeSize)
	if err != nil {
		return nil, err
	}
	cfg.QRCodeSize = size

	if cfg.QRCodeSize <= 0 {
		return nil, fmt.Errorf("qr code size must be positive, got %d", cfg.QRCodeSize)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
