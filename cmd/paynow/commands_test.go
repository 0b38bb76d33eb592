package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldenPayload = "00020101021226410009SG.PAYNOW010120210202012345K0305AA123" +
	"520400005303702540510.005802SG5914AQUATIC AVENUE6009Singapore62070503***6304A500"

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE",
		"PAYNOW_UEN",
		"PAYNOW_MERCHANT_NAME",
		"PAYNOW_MERCHANT_CITY",
		"PAYNOW_BILL_NUMBER",
		"QR_CODE_SIZE",
	} {
		t.Setenv(key, "")
	}

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncodeCmd(t *testing.T) {
	out, err := runCmd(t, "encode", "--amount", "10", "--reference", "AA123")
	require.NoError(t, err)
	assert.Equal(t, goldenPayload, strings.TrimSpace(out))
}

func TestEncodeCmd_IgnoresAmbientMerchantEnv(t *testing.T) {
	t.Setenv("PAYNOW_MERCHANT_CITY", "Jurong")
	t.Setenv("PAYNOW_BILL_NUMBER", "INV-1")

	out, err := runCmd(t, "encode", "--amount", "10", "--reference", "AA123")
	require.NoError(t, err)
	assert.Equal(t, goldenPayload, strings.TrimSpace(out))
}

func TestEncodeCmd_RequiresAmount(t *testing.T) {
	_, err := runCmd(t, "encode")
	require.Error(t, err)
}

func TestDecodeCmd(t *testing.T) {
	out, err := runCmd(t, "decode", goldenPayload)
	require.NoError(t, err)
	assert.Contains(t, out, "reference\tAA123")
	assert.Contains(t, out, "amount\t10.00")

	_, err = runCmd(t, "decode", "nonsense")
	require.Error(t, err)
}

func TestQRCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qr.png")

	out, err := runCmd(t, "qr", "--amount", "2.5", "--reference", "AA9", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "AA9")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestRoutesCmd(t *testing.T) {
	out, err := runCmd(t, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "/decode")
}
