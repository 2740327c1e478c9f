package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/hokkori/kifukin/internal/clock"
	"github.com/hokkori/kifukin/internal/config"
	"github.com/hokkori/kifukin/internal/filecache"
	"github.com/hokkori/kifukin/internal/providers/email"
	"github.com/hokkori/kifukin/internal/providers/pdf"
	"github.com/hokkori/kifukin/internal/receipt/domain"
	"github.com/hokkori/kifukin/internal/receipt/repository"
	"github.com/hokkori/kifukin/internal/receipt/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubPDF struct {
	err error
}

func (p *stubPDF) RenderReceipt(_ context.Context, data pdf.ReceiptData) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 " + data.CertificateNo), nil
}

type stubMail struct {
	err  error
	sent []email.Message
}

func (m *stubMail) Send(_ context.Context, msg email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	repo   domain.Repository
	files  *filecache.Cache
	mail   *stubMail
	pdf    *stubPDF
}

func writeWebAssets(t *testing.T, webDir string) {
	t.Helper()

	templates := filepath.Join(webDir, "templates")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "thanks.html"),
		[]byte(`thanks:{{ .name }}:{{ .certificate_no }}:{{ .token }}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "credit_card.html"),
		[]byte(`card:{{ .certificate_no }}`), 0o644))

	static := filepath.Join(webDir, "static")
	require.NoError(t, os.MkdirAll(static, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"),
		[]byte(`<form action="/submit" method="post"></form>`), 0o644))
}

func newTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg.WebDir = t.TempDir()
	writeWebAssets(t, cfg.WebDir)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.DonationReceipt{}))

	clk := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))
	files, err := filecache.New(t.TempDir(), clk, zap.NewNop())
	require.NoError(t, err)

	repo := repository.Provide()
	mailer := &stubMail{}
	renderer := &stubPDF{}

	svc := service.New(service.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		Cfg:   cfg,
		Clock: clk,
		Repo:  repo,
		PDF:   renderer,
		Mail:  mailer,
		Files: files,
	})

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	loadTemplates(r, cfg)

	NewServer(ServerParams{
		Gin:      r,
		Cfg:      cfg,
		DB:       db,
		Log:      zap.NewNop(),
		Clock:    clk,
		Receipts: svc,
		Repo:     repo,
		Files:    files,
	})

	return &testServer{engine: r, db: db, repo: repo, files: files, mail: mailer, pdf: renderer}
}

func postForm(ts *testServer, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func donationForm() url.Values {
	return url.Values{
		"name":           {"山田 太郎"},
		"address":        {"京都市伏見区"},
		"email":          {"taro@example.com"},
		"amount":         {"5000"},
		"payment_method": {"銀行振込"},
	}
}

func TestSubmitRendersThanksPage(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := postForm(ts, donationForm())
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "thanks:山田 太郎:RCPT-2024-000001:")
	require.Len(t, ts.mail.sent, 1)

	stored, err := ts.repo.FindByID(context.Background(), ts.db, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusIssued, stored.Status)
	require.NotNil(t, stored.DownloadToken)
}

func TestSubmitMissingFieldIsRejected(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	form := donationForm()
	form.Del("address")
	w := postForm(ts, form)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "address is required")

	// The rejected submission must not create a row.
	total, err := ts.repo.Count(context.Background(), ts.db)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSubmitMailFailure(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.mail.err = errors.New("smtp: connection refused")

	w := postForm(ts, donationForm())
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)

	stored, err := ts.repo.FindByID(context.Background(), ts.db, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusMailFailed, stored.Status)
	assert.Nil(t, stored.DownloadToken)
}

func TestSubmitPDFFailure(t *testing.T) {
	ts := newTestServer(t, config.Config{})
	ts.pdf.err = errors.New("font file missing")

	w := postForm(ts, donationForm())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestSubmitCreditCardRedirect(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	form := donationForm()
	form.Set("payment_method", "クレジットカード")
	w := postForm(ts, form)

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "/payment/credit-card?certificate_no=RCPT-2024-000001")
}

func TestDownloadRoundtrip(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := postForm(ts, donationForm())
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := ts.repo.FindByID(context.Background(), ts.db, 1)
	require.NoError(t, err)
	require.NotNil(t, stored.DownloadToken)

	dw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/"+*stored.DownloadToken, nil)
	ts.engine.ServeHTTP(dw, req)

	require.Equal(t, http.StatusOK, dw.Code)
	assert.Equal(t, ts.mail.sent[0].Attachment, dw.Body.Bytes())
	assert.Contains(t, dw.Header().Get("Content-Disposition"), "attachment")
}

func TestDownloadUnknownToken(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/download/00000000000000000000000000", nil)
	ts.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestCreditCardInputPage(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payment/credit-card?certificate_no=RCPT-2024-000001", nil)
	ts.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "card:RCPT-2024-000001", w.Body.String())
}

func TestFormPage(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ts.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/submit")
}

func TestDBCheck(t *testing.T) {
	ts := newTestServer(t, config.Config{DB: config.DBConfig{Name: "donation"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/db-check", nil)
	ts.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"ok":true`)
	assert.Contains(t, body, `"donation_receipts_exists":true`)
}

func TestDBCheckReceipts(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	w := postForm(ts, donationForm())
	require.Equal(t, http.StatusOK, w.Code)

	cw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/db-check/receipts", nil)
	ts.engine.ServeHTTP(cw, req)

	require.Equal(t, http.StatusOK, cw.Code)
	body := cw.Body.String()
	assert.Contains(t, body, `"ok":true`)
	assert.Contains(t, body, `"total":1`)
	assert.Contains(t, body, "RCPT-2024-000001")
}
