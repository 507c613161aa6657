package receipt

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/paymint/paymint-bot/internal/models"
)

const (
	imageWidth = 400
	padding    = 20
	lineHeight = 22
)

var (
	inkColor    = color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	accentColor = color.NRGBA{R: 0x1a, G: 0x73, B: 0xe8, A: 0xff}
	ruleColor   = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
)

// Render rasterizes a receipt as a PNG. Layout is a fixed-width ticket:
// business header, date line, item rows, total, note and a social footer.
func Render(vendor *models.Vendor, items []models.SaleItem, total float64, note, date, timeOfDay string) ([]byte, error) {
	footerLines := socialFooter(vendor)

	height := padding*2 + // margins
		4*lineHeight + // header block
		(len(items)+2)*lineHeight + // items plus column rule rows
		2*lineHeight + // total block
		(len(footerLines)+3)*lineHeight // note, footer, branding

	canvas := imaging.New(imageWidth, height, color.White)

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(inkColor),
		Face: basicfont.Face7x13,
	}

	y := padding + lineHeight

	name := vendor.BusinessName
	if name == "" {
		name = "Your Business"
	}
	drawCentered(d, name, y)
	y += lineHeight

	if vendor.Contact != "" {
		drawCentered(d, vendor.Contact, y)
		y += lineHeight
	}
	if vendor.Address != "" {
		drawCentered(d, vendor.Address, y)
		y += lineHeight
	}

	d.Src = image.NewUniform(accentColor)
	drawCentered(d, "Verified Receipt | Powered by Paymint", y)
	d.Src = image.NewUniform(inkColor)
	y += lineHeight

	drawCentered(d, fmt.Sprintf("%s  %s", date, timeOfDay), y)
	y += lineHeight

	drawRule(canvas, y-lineHeight/2)

	for _, item := range items {
		drawLeft(d, item.Name, padding, y)
		drawRight(d, FormatAmount(item.Price), imageWidth-padding, y)
		y += lineHeight
	}

	drawRule(canvas, y-lineHeight/2)
	y += lineHeight / 2

	drawLeft(d, "TOTAL", padding, y)
	drawRight(d, FormatAmount(total), imageWidth-padding, y)
	y += lineHeight

	if note != "" {
		drawLeft(d, "Note: "+note, padding, y)
		y += lineHeight
	}

	y += lineHeight / 2
	for _, line := range footerLines {
		drawCentered(d, line, y)
		y += lineHeight
	}

	if vendor.EnableShareIncentive && vendor.ShareIncentiveText != "" {
		drawCentered(d, vendor.ShareIncentiveText, y)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode receipt image: %w", err)
	}
	return buf.Bytes(), nil
}

func socialFooter(vendor *models.Vendor) []string {
	if !vendor.EnableSocialMarketing {
		return nil
	}
	var lines []string
	if vendor.Instagram != "" {
		lines = append(lines, "Instagram: @"+vendor.Instagram)
	}
	if vendor.TikTok != "" {
		lines = append(lines, "TikTok: @"+vendor.TikTok)
	}
	if vendor.Twitter != "" {
		lines = append(lines, "Twitter: @"+vendor.Twitter)
	}
	if vendor.Facebook != "" {
		lines = append(lines, "Facebook: "+vendor.Facebook)
	}
	if vendor.YouTube != "" {
		lines = append(lines, "YouTube: @"+vendor.YouTube)
	}
	if vendor.Website != "" {
		lines = append(lines, vendor.Website)
	}
	return lines
}

func drawCentered(d *font.Drawer, text string, y int) {
	width := d.MeasureString(text).Ceil()
	x := (imageWidth - width) / 2
	if x < padding {
		x = padding
	}
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

func drawLeft(d *font.Drawer, text string, x, y int) {
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

func drawRight(d *font.Drawer, text string, right, y int) {
	width := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(right-width, y)
	d.DrawString(text)
}

func drawRule(canvas *image.NRGBA, y int) {
	for x := padding; x < imageWidth-padding; x++ {
		canvas.SetNRGBA(x, y, ruleColor)
	}
}
