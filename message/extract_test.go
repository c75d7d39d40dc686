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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func crlf(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

func TestExtractPlain(t *testing.T) {
	raw := crlf(
		"From: Sender <from@example.com>",
		"To: to@example.com",
		"Subject: Plain Message",
		"Date: Wed, 11 May 2016 14:31:59 +0000",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"just text",
	)

	content, err := Extract(raw)
	assert.NoError(t, err)
	assert.Equal(t, "Plain Message", content.Subject)
	assert.Equal(t, "from@example.com", content.From)
	assert.Equal(t, "", content.HTML)
	assert.Contains(t, content.Text, "just text")
	assert.False(t, content.HasAttachments)
	assert.False(t, content.Empty())

	body := content.Body()
	assert.Contains(t, body, "<pre>")
	assert.Contains(t, body, "just text")
	assert.Contains(t, body, "charset=utf-8")
}

func TestExtractPrefersHTML(t *testing.T) {
	raw := crlf(
		"From: from@example.com",
		"To: to@example.com",
		"Subject: Multi",
		"Date: Wed, 11 May 2016 14:31:59 +0000",
		"MIME-Version: 1.0",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"plain body",
		"--b1",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>html body</p>",
		"--b1--",
	)

	content, err := Extract(raw)
	assert.NoError(t, err)
	assert.Contains(t, content.HTML, "<p>html body</p>")
	assert.Contains(t, content.Text, "plain body")

	body := content.Body()
	assert.Contains(t, body, "<p>html body</p>")
	assert.NotContains(t, body, "<pre>")
}

func TestExtractAttachment(t *testing.T) {
	raw := crlf(
		"From: from@example.com",
		"To: to@example.com",
		"Subject: With Attachment",
		"Date: Wed, 11 May 2016 14:31:59 +0000",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="b2"`,
		"",
		"--b2",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"see attached",
		"--b2",
		"Content-Type: application/octet-stream",
		`Content-Disposition: attachment; filename="x.bin"`,
		"",
		"AAAA",
		"--b2--",
	)

	content, err := Extract(raw)
	assert.NoError(t, err)
	assert.True(t, content.HasAttachments)
	assert.Contains(t, content.Text, "see attached")
}

func TestExtractEmptyBody(t *testing.T) {
	raw := crlf(
		"From: from@example.com",
		"To: to@example.com",
		"Subject: Empty",
		"Date: Wed, 11 May 2016 14:31:59 +0000",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"",
	)

	content, err := Extract(raw)
	assert.NoError(t, err)
	assert.True(t, content.Empty())
}

func TestExtractTextEscapedInBody(t *testing.T) {
	raw := crlf(
		"From: from@example.com",
		"To: to@example.com",
		"Subject: Escapes",
		"Date: Wed, 11 May 2016 14:31:59 +0000",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"1 < 2 & 3 > 2",
	)

	content, err := Extract(raw)
	assert.NoError(t, err)
	assert.Contains(t, content.Body(), "1 &lt; 2 &amp; 3 &gt; 2")
}

func TestSlug(t *testing.T) {
	cases := []struct {
		name     string
		subject  string
		expected string
	}{
		{"simple", "Hello World", "Hello-World"},
		{"invoice", "Invoice #1001", "Invoice-1001"},
		{"bad_characters", `a/b*c:d<e>f|g"h`, "a_b_c_d_e_f_g_h"},
		{"typographic", "Re– that thing’s done", "Re_-that-thing_s-done"},
		{"empty", "", "message"},
		{"only_symbols", "###", "message"},
		{"long", strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, Slug(c.subject))
		})
	}
}
