package qrgenerator_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/qrgenerator"
)

const payload = "00020101021226410009SG.PAYNOW010120210202012345K0305AA123" +
	"520400005303702540510.005802SG5914AQUATIC AVENUE6009Singapore62070503***6304A500"

func TestGenerator_Generate(t *testing.T) {
	gen := qrgenerator.NewGenerator(400)

	data, err := gen.Generate(payload)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestGenerator_DataURL(t *testing.T) {
	gen := qrgenerator.NewGenerator(256)

	url, err := gen.DataURL(payload)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
}

func TestGenerator_EmptyContent(t *testing.T) {
	gen := qrgenerator.NewGenerator(256)

	_, err := gen.Generate("")
	assert.ErrorIs(t, err, qrgenerator.ErrEmptyContent)
}
