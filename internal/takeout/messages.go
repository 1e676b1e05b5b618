package takeout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// ParseFile reads a messages.json file and extracts its
// messages. The conversation ID is the name of the directory
// containing the file, which Takeout names after the chat. A
// valid JSON document without a messages list yields an empty
// conversation rather than an error.
func ParseFile(path string) (Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conversation{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return Conversation{}, fmt.Errorf("parsing %s: invalid JSON", path)
	}

	conv := Conversation{
		ID:   filepath.Base(filepath.Dir(path)),
		Path: path,
	}

	msgs := gjson.GetBytes(data, "messages")
	if !msgs.IsArray() {
		return conv, nil
	}
	for _, m := range msgs.Array() {
		conv.Messages = append(conv.Messages, extractMessage(m))
	}
	return conv, nil
}

// extractMessage pulls the reported fields out of one message
// object. Messages edited after posting carry their original
// created_date only under previous_message_versions; the first
// revision with a non-empty date supplies the fallback.
func extractMessage(m gjson.Result) Message {
	msg := Message{
		Sender:  m.Get("creator.email").Str,
		RawDate: m.Get("created_date").Str,
		Text:    m.Get("text").Str,
	}

	if msg.RawDate == "" {
		for _, rev := range m.Get("previous_message_versions").Array() {
			if d := rev.Get("created_date").Str; d != "" {
				msg.RawDate = d
				break
			}
		}
	}

	for _, f := range m.Get("attached_files").Array() {
		if name := f.Get("export_name").Str; name != "" {
			msg.Attachments = append(msg.Attachments, name)
		}
	}

	msg.UploadIP = m.Get("upload_metadata.0.backend_upload_metadata.upload_ip").Str

	return msg
}
