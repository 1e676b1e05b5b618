// Package testchat provides shared fixture builders for Google
// Chat Takeout test data. Used by the takeout and command test
// packages.
package testchat

import (
	"encoding/json"
	"strings"
)

// Message builds a chat message object. An empty email omits
// the creator field entirely and an empty createdDate or text
// omits that field, so callers can exercise the missing-field
// paths.
func Message(email, createdDate, text string) map[string]any {
	m := map[string]any{}
	if email != "" {
		m["creator"] = map[string]any{
			"name":  nameFromEmail(email),
			"email": email,
		}
	}
	if createdDate != "" {
		m["created_date"] = createdDate
	}
	if text != "" {
		m["text"] = text
	}
	return m
}

// WithAttachments adds attached_files entries with the given
// export names. An empty name produces an entry without an
// export_name field.
func WithAttachments(m map[string]any, names ...string) map[string]any {
	files := make([]map[string]any, 0, len(names))
	for _, name := range names {
		entry := map[string]any{}
		if name != "" {
			entry["export_name"] = name
			entry["original_name"] = name
		}
		files = append(files, entry)
	}
	m["attached_files"] = files
	return m
}

// WithUploadIP adds upload metadata carrying the given IP.
func WithUploadIP(m map[string]any, ip string) map[string]any {
	m["upload_metadata"] = []map[string]any{
		{
			"backend_upload_metadata": map[string]any{
				"upload_ip": ip,
			},
		},
	}
	return m
}

// WithRevisions adds previous_message_versions entries with the
// given created dates. An empty date produces a revision
// without a created_date field.
func WithRevisions(m map[string]any, dates ...string) map[string]any {
	revs := make([]map[string]any, 0, len(dates))
	for _, d := range dates {
		rev := map[string]any{}
		if d != "" {
			rev["created_date"] = d
		}
		revs = append(revs, rev)
	}
	m["previous_message_versions"] = revs
	return m
}

// ExportJSON builds a complete messages.json document from the
// given message objects.
func ExportJSON(msgs ...map[string]any) string {
	if msgs == nil {
		msgs = []map[string]any{}
	}
	doc := map[string]any{"messages": msgs}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}

func nameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
