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

package mailbox

import (
	"testing"

	"github.com/emersion/go-imap/backend"
	"github.com/stretchr/testify/assert"

	imap2 "github.com/pdfpump/pdfpump/imap"
	"github.com/pdfpump/pdfpump/imap/client"
	"github.com/pdfpump/pdfpump/internal"
)

func buildTestSession(t *testing.T) (*Session, backend.User) {
	_, addr, user := internal.BuildTestIMAPServer(t)

	sess, err := Connect(&SessionConfig{
		Connection: imap2.ConnectionConfig{
			HostPort: addr,
			Auth:     imap2.NewNormalAuthenticator("username", "password"),
		},
		SourceFolder: "INBOX",
		TargetFolder: "Processed",
	}, &client.Factory{})
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	t.Cleanup(sess.Close)
	return sess, user
}

func TestListEmpty(t *testing.T) {
	sess, _ := buildTestSession(t)

	refs, err := sess.List(0)
	assert.NoError(t, err)
	assert.Empty(t, refs)
}

func TestListOrderAndLimit(t *testing.T) {
	sess, user := buildTestSession(t)

	inbox := internal.Mailbox(t, user, "INBOX")
	for _, subject := range []string{"first", "second", "third"} {
		internal.SeedMessage(t, inbox, internal.MakeTestMessage(t, subject, "text/plain", "hello"))
	}

	refs, err := sess.List(0)
	assert.NoError(t, err)
	assert.Len(t, refs, 3)
	assert.True(t, refs[0].UID < refs[1].UID)
	assert.True(t, refs[1].UID < refs[2].UID)

	limited, err := sess.List(2)
	assert.NoError(t, err)
	assert.Len(t, limited, 2)
	assert.Equal(t, refs[0].UID, limited[0].UID)
}

func TestFetch(t *testing.T) {
	sess, user := buildTestSession(t)

	raw := internal.MakeTestMessage(t, "Test Email", "text/plain", "Fetch me")
	internal.SeedMessage(t, internal.Mailbox(t, user, "INBOX"), raw)

	refs, err := sess.List(0)
	assert.NoError(t, err)
	if !assert.Len(t, refs, 1) {
		t.FailNow()
	}

	got, err := sess.Fetch(refs[0])
	assert.NoError(t, err)
	assert.Contains(t, string(got), "Fetch me")
	assert.Contains(t, string(got), "Subject: Test Email")
}

func TestRelocate(t *testing.T) {
	sess, user := buildTestSession(t)

	raw := internal.MakeTestMessage(t, "Move Me", "text/plain", "body")
	internal.SeedMessage(t, internal.Mailbox(t, user, "INBOX"), raw)

	refs, err := sess.List(0)
	assert.NoError(t, err)
	if !assert.Len(t, refs, 1) {
		t.FailNow()
	}

	err = sess.Relocate(refs[0])
	assert.NoError(t, err)

	assert.Empty(t, internal.Mailbox(t, user, "INBOX").Messages)
	assert.Len(t, internal.Mailbox(t, user, "Processed").Messages, 1)

	refs, err = sess.List(0)
	assert.NoError(t, err)
	assert.Empty(t, refs)
}
