package tool

import (
	"encoding/base64"
	"mime"
	"mime/quotedprintable"
	"strings"
)

// OutboundEmail is a plain text message sent from the authenticated account.
type OutboundEmail struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Bytes renders the message in RFC 5322 format.
func (e OutboundEmail) Bytes() []byte {
	var b strings.Builder

	writeHeader(&b, "From", sanitizeHeader(e.From))
	writeHeader(&b, "To", sanitizeHeader(e.To))
	writeHeader(&b, "Subject", encodeRFC2047(sanitizeHeader(e.Subject)))
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="UTF-8"`)

	body, encoding := encodeBody(e.Body)
	writeHeader(&b, "Content-Transfer-Encoding", encoding)
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

// Raw returns the base64url encoded message expected by messages.send.
func (e OutboundEmail) Raw() string {
	return base64.URLEncoding.EncodeToString(e.Bytes())
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// sanitizeHeader keeps caller text from starting new header lines.
func sanitizeHeader(s string) string {
	return headerBreaks.Replace(s)
}

// maxLineLength is the RFC 5322 line limit, excluding CRLF.
const maxLineLength = 998

var lineBreaks = strings.NewReplacer("\r\n", "\r\n", "\r", "\r\n", "\n", "\r\n")

// encodeBody returns the body with CRLF line endings and its transfer
// encoding: 7bit when it is short-lined ASCII, quoted-printable otherwise.
func encodeBody(body string) (string, string) {
	if is7bit(body) {
		return lineBreaks.Replace(body), "7bit"
	}

	var b strings.Builder
	w := quotedprintable.NewWriter(&b)
	// strings.Builder never fails a write.
	_, _ = w.Write([]byte(body))
	_ = w.Close()

	return b.String(), "quoted-printable"
}

func is7bit(s string) bool {
	line := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c > 127:
			return false
		case c == '\r' || c == '\n':
			line = 0
		default:
			line++
			if line > maxLineLength {
				return false
			}
		}
	}

	return true
}

func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}

	return s
}
