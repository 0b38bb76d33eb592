package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "GRPC_ADDR", "DATABASE_URL", "QR_CODE_SIZE",
		"PAYNOW_UEN", "PAYNOW_MERCHANT_NAME", "PAYNOW_MERCHANT_CITY", "PAYNOW_BILL_NUMBER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":50051", cfg.GRPCAddr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 400, cfg.QRCodeSize)
	assert.Equal(t, "202012345K", cfg.Merchant.UEN)
	assert.Equal(t, "AQUATIC AVENUE", cfg.Merchant.Name)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "paynow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_addr: ":9000"
qr_code_size: 300
merchant:
  uen: "201912345A"
  name: "FILE SHOP"
  bill_number: "INV"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PAYNOW_MERCHANT_NAME", "ENV SHOP")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 300, cfg.QRCodeSize)
	assert.Equal(t, "201912345A", cfg.Merchant.UEN)
	assert.Equal(t, "ENV SHOP", cfg.Merchant.Name)

	m := cfg.Merchant.PayNow()
	assert.Equal(t, "INV", m.BillNumber)
	assert.Equal(t, "Singapore", m.City)
	assert.Equal(t, "702", m.CurrencyCode)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Setenv("QR_CODE_SIZE", "big")
	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("QR_CODE_SIZE", "-1")
	_, err = config.Load()
	require.Error(t, err)

	t.Setenv("QR_CODE_SIZE", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = config.Load()
	require.Error(t, err)
}
