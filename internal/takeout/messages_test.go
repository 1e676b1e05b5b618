package takeout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sgrimes/chatsheet/internal/testchat"
)

const testExportDate = "Friday, October 25, 2024 at 3:20:36 AM UTC"

func writeConversation(t *testing.T, root, chat, content string) string {
	t.Helper()
	return writeFileAt(t, filepath.Join(root, chat), ExportFileName, content)
}

func TestParseFile(t *testing.T) {
	msg := testchat.WithUploadIP(
		testchat.WithAttachments(
			testchat.Message(
				"ann@example.com", testExportDate, "see the photos",
			),
			"photo_1.jpg", "photo_2.jpg",
		),
		"203.0.113.7",
	)
	path := writeConversation(
		t, t.TempDir(), "DM 4815162342", testchat.ExportJSON(msg),
	)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	want := Conversation{
		ID:   "DM 4815162342",
		Path: path,
		Messages: []Message{{
			Sender:      "ann@example.com",
			RawDate:     testExportDate,
			Text:        "see the photos",
			Attachments: []string{"photo_1.jpg", "photo_2.jpg"},
			UploadIP:    "203.0.113.7",
		}},
	}
	if diff := cmp.Diff(want, conv); diff != "" {
		t.Errorf("ParseFile mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileMissingFields(t *testing.T) {
	path := writeConversation(t, t.TempDir(), "Space AAA",
		testchat.ExportJSON(map[string]any{"topic_id": "t123"}))

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if diff := cmp.Diff([]Message{{}}, conv.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileRevisionDateFallback(t *testing.T) {
	msg := testchat.WithRevisions(
		testchat.Message("bob@example.com", "", "edited later"),
		"", // revision without a date is passed over
		testExportDate,
		"Saturday, October 26, 2024 at 9:00:00 AM UTC",
	)
	path := writeConversation(
		t, t.TempDir(), "DM 1", testchat.ExportJSON(msg),
	)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := conv.Messages[0].RawDate; got != testExportDate {
		t.Errorf("RawDate = %q, want %q", got, testExportDate)
	}
}

func TestParseFileRevisionIgnoredWhenDatePresent(t *testing.T) {
	msg := testchat.WithRevisions(
		testchat.Message("bob@example.com", testExportDate, "hi"),
		"Saturday, October 26, 2024 at 9:00:00 AM UTC",
	)
	path := writeConversation(
		t, t.TempDir(), "DM 1", testchat.ExportJSON(msg),
	)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if got := conv.Messages[0].RawDate; got != testExportDate {
		t.Errorf("RawDate = %q, want %q", got, testExportDate)
	}
}

func TestParseFileSkipsNamelessAttachments(t *testing.T) {
	msg := testchat.WithAttachments(
		testchat.Message("ann@example.com", testExportDate, "files"),
		"", "report.pdf",
	)
	path := writeConversation(
		t, t.TempDir(), "DM 1", testchat.ExportJSON(msg),
	)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	want := []string{"report.pdf"}
	if diff := cmp.Diff(want, conv.Messages[0].Attachments); diff != "" {
		t.Errorf("attachments mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFileUploadMetadata(t *testing.T) {
	tests := []struct {
		name string
		set  func(m map[string]any)
		want string
	}{
		{
			name: "empty list",
			set: func(m map[string]any) {
				m["upload_metadata"] = []map[string]any{}
			},
		},
		{
			name: "entry without upload_ip",
			set: func(m map[string]any) {
				m["upload_metadata"] = []map[string]any{
					{"backend_upload_metadata": map[string]any{}},
				}
			},
		},
		{
			name: "first entry wins",
			set: func(m map[string]any) {
				m["upload_metadata"] = []map[string]any{
					{"backend_upload_metadata": map[string]any{
						"upload_ip": "203.0.113.7",
					}},
					{"backend_upload_metadata": map[string]any{
						"upload_ip": "198.51.100.2",
					}},
				}
			},
			want: "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testchat.Message("ann@example.com", testExportDate, "hi")
			tt.set(msg)
			path := writeConversation(
				t, t.TempDir(), "DM 1", testchat.ExportJSON(msg),
			)

			conv, err := ParseFile(path)
			if err != nil {
				t.Fatalf("ParseFile: %v", err)
			}
			if got := conv.Messages[0].UploadIP; got != tt.want {
				t.Errorf("UploadIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFileNoMessagesKey(t *testing.T) {
	path := writeConversation(t, t.TempDir(), "DM 9", "{}")

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if conv.ID != "DM 9" {
		t.Errorf("ID = %q, want %q", conv.ID, "DM 9")
	}
	if len(conv.Messages) != 0 {
		t.Errorf("messages = %d, want 0", len(conv.Messages))
	}
}

func TestParseFileMessagesNotAList(t *testing.T) {
	path := writeConversation(
		t, t.TempDir(), "DM 9", `{"messages": "nope"}`,
	)

	conv, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(conv.Messages) != 0 {
		t.Errorf("messages = %d, want 0", len(conv.Messages))
	}
}

func TestParseFileInvalidJSON(t *testing.T) {
	path := writeConversation(t, t.TempDir(), "DM 9", `{"messages": [`)

	_, err := ParseFile(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("error = %q", err)
	}
}

func TestParseFileMissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), ExportFileName))
	if err == nil {
		t.Fatal("expected error")
	}
}
