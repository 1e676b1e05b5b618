package main

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/sgrimes/chatsheet/internal/report"
	"github.com/sgrimes/chatsheet/internal/takeout"
)

// Exporter turns a Takeout tree into the report workbook.
// Progress goes to Out. Problems with individual files or dates
// are logged and counted rather than aborting the run.
type Exporter struct {
	Out      io.Writer
	warnings int
}

// Run scans root for conversation files and writes the report
// workbook into root. A tree with no conversation files is not
// an error; no workbook is written in that case.
func (e *Exporter) Run(root string) error {
	files := takeout.FindMessageFiles(root)
	if len(files) == 0 {
		fmt.Fprintf(e.Out,
			"No messages.json files found under %s\n", root)
		return nil
	}
	fmt.Fprintf(e.Out,
		"Found %d messages.json file(s). Beginning to parse.\n",
		len(files))

	wb, err := report.NewWorkbook()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	defer wb.Close()

	parsed := 0
	for _, path := range files {
		conv, err := takeout.ParseFile(path)
		if err != nil {
			e.warnf("skipping %s: %v", path, err)
			continue
		}
		parsed++
		for _, m := range conv.Messages {
			if err := wb.Append(e.buildRow(root, conv, m)); err != nil {
				return fmt.Errorf(
					"appending rows from %s: %w", conv.Path, err)
			}
		}
	}

	fmt.Fprintf(e.Out,
		"Parsed %d message(s) from %d conversation(s).\n",
		wb.Rows(), parsed)
	if e.warnings > 0 {
		fmt.Fprintf(e.Out, "Completed with %d warning(s).\n", e.warnings)
	}

	if err := wb.Finish(); err != nil {
		return fmt.Errorf("formatting workbook: %w", err)
	}
	outPath := filepath.Join(root, report.FileName)
	if err := wb.SaveAs(outPath); err != nil {
		return err
	}
	fmt.Fprintf(e.Out, "Created Excel workbook: %s\n", outPath)
	return nil
}

// buildRow converts an extracted message into a report row,
// resolving the created date and the attachment link target.
func (e *Exporter) buildRow(
	root string, conv takeout.Conversation, m takeout.Message,
) report.Row {
	row := report.Row{
		ChatID:      conv.ID,
		Sender:      m.Sender,
		Text:        m.Text,
		Attachments: m.Attachments,
		UploadIP:    m.UploadIP,
	}

	when, err := takeout.ParseExportDate(m.RawDate)
	if err != nil {
		e.warnf("%s: %v", conv.Path, err)
	} else {
		row.When = when
	}

	if len(m.Attachments) > 0 {
		row.LinkTarget = attachmentLink(root, conv.Path, m.Attachments[0])
	}
	return row
}

func (e *Exporter) warnf(format string, args ...any) {
	e.warnings++
	log.Printf("warning: "+format, args...)
}

// attachmentLink returns the workbook-relative path of an
// attachment, with forward slashes so the link opens on any
// platform. Attachments sit beside their messages.json.
func attachmentLink(root, exportPath, name string) string {
	abs := filepath.Join(filepath.Dir(exportPath), name)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}
