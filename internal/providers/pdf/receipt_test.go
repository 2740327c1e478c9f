package pdf

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptData() ReceiptData {
	return ReceiptData{
		CertificateNo: "RCPT-2024-000001",
		DonorName:     "山田 太郎",
		DonorAddress:  "京都市伏見区",
		AmountYen:     "5000",
		PaymentMethod: "銀行振込",
		DonatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local),
	}
}

func TestRenderReceipt(t *testing.T) {
	p := NewMaroto(Config{})

	got, err := p.RenderReceipt(context.Background(), receiptData())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "%PDF", string(got[:4]))
}

func TestRenderReceiptMissingImagesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	p := NewMaroto(Config{
		SealImagePath:      filepath.Join(dir, "seal.png"),
		SignatureImagePath: filepath.Join(dir, "signature.png"),
	})

	got, err := p.RenderReceipt(context.Background(), receiptData())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestRenderReceiptBadFontFails(t *testing.T) {
	p := NewMaroto(Config{
		FontPath: filepath.Join(t.TempDir(), "missing.ttf"),
	})

	_, err := p.RenderReceipt(context.Background(), receiptData())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register receipt font")
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, fileExists(""))
	assert.False(t, fileExists(filepath.Join(dir, "nope.png")))
	assert.False(t, fileExists(dir))
}
