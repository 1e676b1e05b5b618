package takeout

// Message is a single chat message extracted from a Takeout
// conversation file. Extraction is tolerant: absent fields
// yield zero values rather than errors.
type Message struct {
	Sender      string   // creator email address
	RawDate     string   // created date exactly as exported
	Text        string   // plain message body
	Attachments []string // attachment export names, in file order
	UploadIP    string   // IP the first attachment was uploaded from
}

// Conversation holds the messages of one messages.json file.
type Conversation struct {
	ID       string // name of the directory containing the file
	Path     string
	Messages []Message
}
