package email

import (
	"io"
	"strings"

	gomessage "github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
)

// decomposeEntity splits a parsed message into a displayable body and its
// attachments. Exactly one body is kept: the first non-attachment part
// whose content type is text/plain or text/html. Every part whose
// Content-Disposition contains "attachment" is collected as an Attachment
// regardless of content type. It handles both single-part and multipart
// messages, including nested multipart.
func decomposeEntity(msg *Message, entity *gomessage.Entity) {
	if mr := entity.MultipartReader(); mr != nil {
		decomposeMultipart(msg, mr)
	} else {
		decomposeSinglePart(msg, entity)
	}
}

// decomposeMultipart iterates over the parts of a multipart message,
// recursing into nested multipart containers.
func decomposeMultipart(msg *Message, mr gomessage.MultipartReader) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}

		if nested := part.MultipartReader(); nested != nil {
			decomposeMultipart(msg, nested)
			continue
		}

		disposition, _, _ := part.Header.ContentDisposition()
		if strings.Contains(disposition, "attachment") {
			collectAttachment(msg, part)
			continue
		}

		// Only the first qualifying body is kept.
		if msg.ContentKind != ContentKindUnset {
			continue
		}
		kind := contentKindOf(part.Header)
		if kind == ContentKindUnset {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			// Not decodable as text: skip the part, a later one may
			// still qualify.
			continue
		}
		msg.Body = string(body)
		msg.ContentKind = kind
	}
}

// decomposeSinglePart classifies the sole part of a non-multipart message
// as body-or-nothing. The disposition header is not consulted on this path,
// so a lone attachment-disposed part yields no Attachment.
func decomposeSinglePart(msg *Message, entity *gomessage.Entity) {
	kind := contentKindOf(entity.Header)
	if kind == ContentKindUnset {
		return
	}
	body, err := io.ReadAll(entity.Body)
	if err != nil {
		return
	}
	msg.Body = string(body)
	msg.ContentKind = kind
}

// collectAttachment reads an attachment-disposed part into msg.Attachments.
func collectAttachment(msg *Message, part *gomessage.Entity) {
	contents, err := io.ReadAll(part.Body)
	if err != nil {
		return
	}
	h := mail.AttachmentHeader{Header: part.Header}
	filename, _ := h.Filename()
	msg.Attachments = append(msg.Attachments, Attachment{
		Filename: filename,
		Contents: contents,
	})
}

func contentKindOf(h gomessage.Header) ContentKind {
	ct, _, _ := h.ContentType()
	switch {
	case strings.HasPrefix(ct, "text/plain"):
		return ContentKindPlain
	case strings.HasPrefix(ct, "text/html"):
		return ContentKindHTML
	}
	return ContentKindUnset
}
