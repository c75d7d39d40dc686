package internal

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/emersion/go-imap/backend"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/emersion/go-message"
	"github.com/stretchr/testify/assert"
)

// BuildTestIMAPServer starts an in-memory IMAP server on an ephemeral
// port. The "username"/"password" account starts with an empty INBOX.
func BuildTestIMAPServer(t *testing.T) (*server.Server, string, backend.User) {
	be := memory.New()
	user, err := be.Login(nil, "username", "password")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mb, err := user.GetMailbox("INBOX")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mb.(*memory.Mailbox).Messages = nil

	s := server.New(be)
	t.Cleanup(func() { _ = s.Close() })

	s.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "localhost:0")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	go func() { err = s.Serve(l) }()

	return s, l.Addr().String(), user
}

// Mailbox fetches a named mailbox from the in-memory backend.
func Mailbox(t *testing.T, user backend.User, name string) *memory.Mailbox {
	mb, err := user.GetMailbox(name)
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	return mb.(*memory.Mailbox)
}

// MakeTestMessage renders a single-part RFC822 message.
func MakeTestMessage(t *testing.T, subject, contentType, body string) []byte {
	hdr := message.Header{}
	hdr.Add("From", "Sender <from@example.com>")
	hdr.Add("To", "to@example.com")
	hdr.Add("Subject", subject)
	hdr.Add("Date", "Wed, 11 May 2016 14:31:59 +0000")
	hdr.Add("Content-Type", contentType)
	hdr.Add("Message-ID", "<test@example.com>")

	msg, err := message.New(hdr, bytes.NewReader([]byte(body)))
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	bb := new(bytes.Buffer)
	err = msg.WriteTo(bb)
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	return bb.Bytes()
}

// SeedMessage appends a raw message to a mailbox, letting the backend
// assign the UID.
func SeedMessage(t *testing.T, mbox *memory.Mailbox, raw []byte) {
	err := mbox.CreateMessage([]string{}, time.Now(), bytes.NewBuffer(raw))
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}
}
