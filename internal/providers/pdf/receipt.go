package pdf

import (
	"context"
	"fmt"
	"os"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

const (
	issuerName    = "受け入れ団体：NPO法人ほっこり サポートホーム／ほっこりくろちゃん"
	issuerAddress = "所在地：〒612-8403 京都市伏見区深草ヲカヤ町23-6 サポートホーム"

	receiptFontFamily = "receipt"
)

// Config points at the optional drawing resources. The seal and
// signature images are skipped when absent; the font is required to
// load once a path is configured.
type Config struct {
	FontPath           string
	SealImagePath      string
	SignatureImagePath string
}

// MarotoProvider renders the fixed single-page receipt layout.
type MarotoProvider struct {
	cfg Config
}

func NewMaroto(cfg Config) *MarotoProvider {
	return &MarotoProvider{cfg: cfg}
}

func (p *MarotoProvider) RenderReceipt(ctx context.Context, data ReceiptData) ([]byte, error) {
	_ = ctx

	builder := config.NewBuilder()
	if p.cfg.FontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(receiptFontFamily, fontstyle.Normal, p.cfg.FontPath).
			AddUTF8Font(receiptFontFamily, fontstyle.Bold, p.cfg.FontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("register receipt font: %w", err)
		}
		builder = builder.
			WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: receiptFontFamily})
	}

	m := maroto.New(builder.Build())

	m.AddRow(14,
		text.NewCol(12, "寄付受領書", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
	)

	m.AddRow(10,
		text.NewCol(12, "証明書番号："+data.CertificateNo, props.Text{Size: 12}),
	)

	m.AddRow(24,
		col.New(12).Add(
			text.New(data.DonorName+" 様", props.Text{Size: 12}),
			text.New("住所："+data.DonorAddress, props.Text{Size: 12, Top: 7}),
		),
	)

	m.AddRow(28,
		col.New(12).Add(
			text.New("寄附金額："+data.AmountYen+" 円", props.Text{Size: 12}),
			text.New("支払方法："+data.PaymentMethod, props.Text{Size: 12, Top: 7}),
			text.New("日付："+data.DonatedAt.Format("2006年01月02日 15:04:05"), props.Text{Size: 12, Top: 14}),
		),
	)

	m.AddRow(18,
		col.New(12).Add(
			text.New(issuerName, props.Text{Size: 12}),
			text.New(issuerAddress, props.Text{Size: 12, Top: 7}),
		),
	)

	m.AddRows(p.issuerAssetRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate receipt pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// issuerAssetRows draws the seal and signature labels plus whichever
// image files exist on disk. Missing files are skipped silently.
func (p *MarotoProvider) issuerAssetRows() []core.Row {
	labels := row.New(8).Add(
		text.NewCol(4, "発行者印", props.Text{Size: 10}),
		text.NewCol(8, "代表者署名", props.Text{Size: 10}),
	)

	assets := row.New(26)
	if fileExists(p.cfg.SealImagePath) {
		assets.Add(image.NewFromFileCol(4, p.cfg.SealImagePath, props.Rect{
			Center:  false,
			Percent: 80,
		}))
	} else {
		assets.Add(col.New(4))
	}
	if fileExists(p.cfg.SignatureImagePath) {
		assets.Add(image.NewFromFileCol(8, p.cfg.SignatureImagePath, props.Rect{
			Center:  false,
			Percent: 80,
		}))
	} else {
		assets.Add(col.New(8))
	}

	return []core.Row{labels, assets}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
