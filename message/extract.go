/*
 * PDFPump - Copyright (C) 2024 PDFPump contributors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 2, and only
 * version 2 as published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 59 Temple Place, Suite 330, Boston, MA  02111-1307  USA
 */

package message

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"io/ioutil"
	"strings"
	"time"

	// Registers decoders for the legacy charsets still common in mail.
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// Content is the renderable payload of a message plus the metadata the
// output filename is derived from.
type Content struct {
	Subject        string
	From           string
	Date           time.Time
	HTML           string
	Text           string
	HasAttachments bool
}

func (c *Content) Empty() bool {
	return strings.TrimSpace(c.HTML) == "" && strings.TrimSpace(c.Text) == ""
}

const charsetMeta = `<meta http-equiv="Content-type" content="text/html; charset=utf-8"/>`

// Body returns the markup handed to the renderer: the HTML part when
// present, otherwise the plain text wrapped in <pre>. All parts are
// decoded to UTF-8 by the mail reader, hence the forced charset meta.
func (c *Content) Body() string {
	if strings.TrimSpace(c.HTML) != "" {
		return charsetMeta + c.HTML
	}

	return charsetMeta + "<pre>" + html.EscapeString(c.Text) + "</pre>"
}

// Extract parses raw RFC822 bytes. The first text/html and text/plain
// inline parts win; attachment parts only set HasAttachments.
func Extract(raw []byte) (*Content, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if mr == nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}

	content := &Content{}
	content.Subject, _ = mr.Header.Subject()
	content.Date, _ = mr.Header.Date()
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		content.From = addrs[0].Address
	}

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("parse message part: %w", err)
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			ct, _, err := h.ContentType()
			if err != nil {
				continue
			}

			switch ct {
			case "text/html":
				if content.HTML == "" {
					b, err := ioutil.ReadAll(p.Body)
					if err != nil {
						return nil, fmt.Errorf("read html part: %w", err)
					}
					content.HTML = string(b)
				}
			case "text/plain":
				if content.Text == "" {
					b, err := ioutil.ReadAll(p.Body)
					if err != nil {
						return nil, fmt.Errorf("read text part: %w", err)
					}
					content.Text = string(b)
				}
			}
		case *mail.AttachmentHeader:
			content.HasAttachments = true
		}
	}

	return content, nil
}
