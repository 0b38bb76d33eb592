package generateqr_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/generateqr"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/generateqr/mocks"
)

const goldenPayload = "00020101021226410009SG.PAYNOW010120210202012345K0305AA123" +
	"520400005303702540510.005802SG5914AQUATIC AVENUE6009Singapore62070503***6304A500"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEncoder(t *testing.T) *paynow.Encoder {
	t.Helper()
	enc, err := paynow.NewEncoder(paynow.NewMerchant("202012345K", "AQUATIC AVENUE"))
	require.NoError(t, err)
	return enc
}

func TestGenerateQRUseCase_Execute_SuppliedReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(goldenPayload).Return([]byte("png"), nil)

	uc := generateqr.NewUseCase(newEncoder(t), paynow.NewReferenceGenerator(), gen)

	resp, err := uc.Execute(generateqr.Request{
		Amount:    decimal.NewFromInt(10),
		Reference: "AA123",
	})

	require.NoError(t, err)
	assert.Equal(t, "AA123", resp.Reference)
	assert.Equal(t, goldenPayload, resp.Payload)
	assert.Equal(t, []byte("png"), resp.PNG)
}

func TestGenerateQRUseCase_Execute_GeneratedReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any()).Return([]byte("png"), nil)

	refs := paynow.NewReferenceGeneratorWith(
		func() time.Time { return time.UnixMilli(1700000000000) },
		bytes.NewReader([]byte{0x0a, 0xff}),
	)
	uc := generateqr.NewUseCase(newEncoder(t), refs, gen)

	resp, err := uc.Execute(generateqr.Request{Amount: decimal.RequireFromString("3.5")})

	require.NoError(t, err)
	assert.Equal(t, "AA17000000000000AFF", resp.Reference)

	decoded, err := paynow.Decode(resp.Payload)
	require.NoError(t, err)
	assert.Equal(t, "3.50", decoded.Amount)
	assert.Equal(t, resp.Reference, decoded.Reference)
}

func TestGenerateQRUseCase_Execute_EncodingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	uc := generateqr.NewUseCase(newEncoder(t), paynow.NewReferenceGenerator(), gen)

	_, err := uc.Execute(generateqr.Request{Amount: decimal.NewFromInt(-5), Reference: "AA1"})

	require.Error(t, err)
	assert.True(t, paynow.IsEncodingError(err))
}

func TestGenerateQRUseCase_Execute_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderErr := errors.New("boom")
	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(gomock.Any()).Return(nil, renderErr)

	uc := generateqr.NewUseCase(newEncoder(t), paynow.NewReferenceGenerator(), gen)

	_, err := uc.Execute(generateqr.Request{Amount: decimal.NewFromInt(1), Reference: "AA1"})
	assert.ErrorIs(t, err, renderErr)
}

func TestGenerateQRUseCase_Custom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerator(ctrl)
	gen.EXPECT().Generate(goldenPayload).Return([]byte("png"), nil)

	uc := generateqr.NewUseCase(newEncoder(t), paynow.NewReferenceGenerator(), gen)

	png, err := uc.Custom(goldenPayload)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	_, err = uc.Custom(goldenPayload[:len(goldenPayload)-1] + "1")
	assert.ErrorIs(t, err, paynow.ErrChecksumMismatch)
}
