package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/asvarma/vivah/internal/model"
)

const (
	noteImageW = 80.0
	noteImageH = 60.0
)

// decodeDataURI splits a base64 data URI into its fpdf image type and raw
// bytes. The bytes are verified to decode as an actual image so a corrupt
// entry can be skipped instead of poisoning the whole document.
func decodeDataURI(uri string) (imageType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("not base64 encoded")
	}

	switch meta {
	case "image/jpeg", "image/jpg":
		imageType = "JPEG"
	case "image/png":
		imageType = "PNG"
	case "image/gif":
		imageType = "GIF"
	default:
		return "", nil, fmt.Errorf("unsupported media type %q", meta)
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode base64: %w", err)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", nil, fmt.Errorf("decode image: %w", err)
	}
	return imageType, data, nil
}

// drawNoteImage places one embedded image at y and returns the new y.
// Failures are recoverable: the document error state is cleared and the
// image skipped.
func drawNoteImage(doc *fpdf.Fpdf, name, uri string, y float64) float64 {
	imageType, data, err := decodeDataURI(uri)
	if err != nil {
		return y
	}

	if y > 200 {
		doc.AddPage()
		y = 20
	}

	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if doc.Err() {
		doc.ClearError()
		return y
	}

	doc.ImageOptions(name, pageLeft, y, noteImageW, noteImageH, false, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	if doc.Err() {
		doc.ClearError()
		return y
	}
	return y + noteImageH + 10
}

// Notes renders notes newest first with wrapped content and any embedded
// images.
func Notes(w io.Writer, notes []model.Note, now time.Time) error {
	doc := newDoc()
	doc.AddPage()
	pageHeader(doc, "Wedding Notes & Inspiration", now)

	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	y := contentFrom
	for i, note := range sorted {
		if y > breakAt || (i > 0 && y > 200) {
			doc.AddPage()
			y = 20
		}

		doc.SetFont("Helvetica", "B", 14)
		doc.Text(pageLeft, y, note.Title)
		y += lineHeight

		doc.SetFont("Helvetica", "", 10)
		doc.Text(pageLeft, y, "Created: "+note.CreatedAt.Format("2 January 2006"))
		y += 8

		doc.SetFont("Helvetica", "", 12)
		for _, line := range doc.SplitText(note.Content, pageRight-pageLeft) {
			doc.Text(pageLeft, y, line)
			y += lineHeight
		}
		y += 10

		if len(note.Images) > 0 {
			doc.Text(pageLeft, y, "Images:")
			y += 8
			for j, img := range note.Images {
				y = drawNoteImage(doc, fmt.Sprintf("note-%s-%d", note.ID, j), img, y)
			}
		}

		doc.Line(pageLeft, y, pageRight, y)
		y += 15
	}

	return finish(doc, w)
}
