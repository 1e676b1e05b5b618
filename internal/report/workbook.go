// Package report assembles the styled spreadsheet summarizing
// extracted chat messages.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// FileName is the workbook name written into the scanned root.
const FileName = "googleChats.xlsx"

// SheetName is the single sheet holding all messages.
const SheetName = "Messages"

// Headers lists the report columns in output order.
var Headers = [...]string{
	"chatID", "datetime UTC", "sender", "text", "attachment",
	"IP address",
}

const numColumns = len(Headers)

// Column positions, 1-based.
const (
	colChatID = iota + 1
	colDatetime
	colSender
	colText
	colAttachment
	colUploadIP
)

const (
	headerFontColor = "FFFFFF"
	headerFillColor = "000000"
	linkFontColor   = "0563C1"

	// datetimeNumFmt controls how datetime cells display;
	// datetimeDisplay is the equivalent Go layout used when
	// measuring column widths.
	datetimeNumFmt  = "yyyy-mm-dd hh:mm:ss"
	datetimeDisplay = "2006-01-02 15:04:05"

	// Free-form columns get fixed widths; the rest are sized to
	// their longest line plus padding. The xlsx format caps
	// column width at 255.
	textColWidth       = 80
	attachmentColWidth = 50
	autoWidthPadding   = 2
	maxColWidth        = 255
)

// Row is one message rendered into the report. A zero When
// leaves the datetime cell blank. LinkTarget, when non-empty,
// becomes a hyperlink on the attachment cell.
type Row struct {
	ChatID      string
	When        time.Time
	Sender      string
	Text        string
	Attachments []string
	UploadIP    string
	LinkTarget  string
}

// AttachmentText returns the attachment cell content, one
// export name per line.
func (r Row) AttachmentText() string {
	return strings.Join(r.Attachments, "\n")
}

// Workbook accumulates message rows and writes the styled
// result. Rows appear in Append order under a fixed header.
type Workbook struct {
	f      *excelize.File
	rows   int
	widths [numColumns]float64

	headerStyle   int
	datetimeStyle int
	wrapStyle     int
	linkStyle     int
}

// NewWorkbook returns a workbook with the header row written
// and styled. Callers must Close it when done.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{f: f}
	if err := w.init(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Workbook) init() error {
	if err := w.f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := w.createStyles(); err != nil {
		return err
	}

	header := Headers[:]
	if err := w.f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	if err := w.f.SetCellStyle(
		SheetName, "A1", cellName(numColumns, 1), w.headerStyle,
	); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	// Header text participates in column auto-sizing.
	for i, h := range Headers {
		w.widths[i] = float64(utf8.RuneCountInString(h))
	}
	return nil
}

func (w *Workbook) createStyles() error {
	var err error
	w.headerStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontColor},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{headerFillColor},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	numFmt := datetimeNumFmt
	w.datetimeStyle, err = w.f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return fmt.Errorf("creating datetime style: %w", err)
	}

	w.wrapStyle, err = w.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating wrap style: %w", err)
	}

	w.linkStyle, err = w.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color:     linkFontColor,
			Underline: "single",
		},
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating hyperlink style: %w", err)
	}
	return nil
}

// Append writes one message row beneath those already written.
func (w *Workbook) Append(r Row) error {
	row := w.rows + 2 // data starts under the header
	attachment := r.AttachmentText()

	values := []any{
		r.ChatID, nil, r.Sender, r.Text, attachment, r.UploadIP,
	}
	if !r.When.IsZero() {
		values[colDatetime-1] = r.When
	}
	if err := w.f.SetSheetRow(
		SheetName, cellName(colChatID, row), &values,
	); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}

	if err := w.styleCell(colDatetime, row, w.datetimeStyle); err != nil {
		return err
	}
	if err := w.styleCell(colText, row, w.wrapStyle); err != nil {
		return err
	}

	attachStyle := w.wrapStyle
	if r.LinkTarget != "" {
		attachStyle = w.linkStyle
		if err := w.f.SetCellHyperLink(
			SheetName, cellName(colAttachment, row),
			r.LinkTarget, "External",
		); err != nil {
			return fmt.Errorf("linking row %d: %w", row, err)
		}
	}
	if err := w.styleCell(colAttachment, row, attachStyle); err != nil {
		return err
	}

	w.noteWidth(colChatID, r.ChatID)
	if !r.When.IsZero() {
		w.noteWidth(colDatetime, r.When.Format(datetimeDisplay))
	}
	w.noteWidth(colSender, r.Sender)
	w.noteWidth(colUploadIP, r.UploadIP)

	w.rows++
	return nil
}

// Rows returns the number of data rows appended so far.
func (w *Workbook) Rows() int {
	return w.rows
}

// Finish sizes the columns and locks in the header filter and
// frozen pane. Call once after the last Append.
func (w *Workbook) Finish() error {
	for i := range Headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column %d: %w", i+1, err)
		}
		width := w.widths[i] + autoWidthPadding
		switch i + 1 {
		case colText:
			width = textColWidth
		case colAttachment:
			width = attachmentColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := w.f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	filterRange := "A1:" + cellName(numColumns, 1)
	if err := w.f.AutoFilter(SheetName, filterRange, nil); err != nil {
		return fmt.Errorf("adding header filter: %w", err)
	}

	if err := w.f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header row: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying workbook resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) styleCell(col, row, style int) error {
	cell := cellName(col, row)
	if err := w.f.SetCellStyle(SheetName, cell, cell, style); err != nil {
		return fmt.Errorf("styling cell %s: %w", cell, err)
	}
	return nil
}

// noteWidth grows the tracked width of col to fit the longest
// line of s.
func (w *Workbook) noteWidth(col int, s string) {
	for _, line := range strings.Split(s, "\n") {
		if n := float64(utf8.RuneCountInString(line)); n > w.widths[col-1] {
			w.widths[col-1] = n
		}
	}
}

// cellName converts 1-based coordinates to an A1 reference.
// Coordinates here are always in range.
func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
