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
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/emersion/go-imap"
	log "github.com/sirupsen/logrus"

	imap2 "github.com/pdfpump/pdfpump/imap"
)

// Connect dials, authenticates and selects the source folder. No
// retries happen here; a failure is the run's to handle.
func Connect(cfg *SessionConfig, factory imap2.Factory) (*Session, error) {
	c, err := factory.NewClient(&cfg.Connection)
	if err != nil {
		return nil, fmt.Errorf("mailbox connect: %w", err)
	}

	wantCleanup := true
	defer func() {
		if wantCleanup {
			_ = c.Logout()
		}
	}()

	// Best-effort; most servers already have the folder and return
	// an ALREADYEXISTS-style NO, which is fine.
	if err := c.Create(cfg.TargetFolder); err != nil {
		log.WithError(err).WithField("folder", cfg.TargetFolder).Trace("mailbox_create_target_skipped")
	}

	supportMove, err := c.Support("MOVE")
	if err != nil {
		return nil, fmt.Errorf("mailbox capability: %w", err)
	}

	status, err := c.Select(cfg.SourceFolder, false)
	if err != nil {
		return nil, fmt.Errorf("mailbox select %q: %w", cfg.SourceFolder, err)
	}

	log.WithFields(log.Fields{
		"folder":       cfg.SourceFolder,
		"messages":     status.Messages,
		"support_move": supportMove,
	}).Debug("mailbox_session_open")

	wantCleanup = false
	return &Session{
		client:       c,
		sourceFolder: cfg.SourceFolder,
		targetFolder: cfg.TargetFolder,
		supportMove:  supportMove,
	}, nil
}

// List returns references for the messages currently in the source
// folder, oldest UID first. An empty folder is not an error. A
// non-positive limit means unlimited.
func (s *Session) List(limit int) ([]Ref, error) {
	uids, err := s.client.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		return nil, fmt.Errorf("mailbox list: %w", err)
	}

	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	if limit > 0 && len(uids) > limit {
		uids = uids[:limit]
	}

	refs := make([]Ref, 0, len(uids))
	for _, uid := range uids {
		refs = append(refs, Ref{UID: uid, Folder: s.sourceFolder})
	}

	return refs, nil
}

// Fetch returns the raw RFC822 bytes of a message. BODY.PEEK is used so
// fetching never mutates flags.
func (s *Session) Fetch(ref Ref) ([]byte, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(ref.UID)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	if err := s.client.UidFetch(seqset, items, messages); err != nil {
		return nil, fmt.Errorf("mailbox fetch uid %d: %w", ref.UID, err)
	}

	msg := <-messages
	if msg == nil {
		return nil, fmt.Errorf("mailbox fetch uid %d: no such message", ref.UID)
	}

	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("mailbox fetch uid %d: server returned no body", ref.UID)
	}

	raw, err := ioutil.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("mailbox fetch uid %d: %w", ref.UID, err)
	}

	return raw, nil
}

// Relocate moves a message to the target folder. This is the commit
// point of the pipeline: callers must only invoke it once the rendered
// document is durably on disk.
func (s *Session) Relocate(ref Ref) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(ref.UID)

	if s.supportMove {
		if err := s.client.UidMove(seqset, s.targetFolder); err != nil {
			return fmt.Errorf("mailbox move uid %d: %w", ref.UID, err)
		}

		return nil
	}

	// COPY + \Deleted + EXPUNGE for servers without MOVE. The session
	// is exclusive to this run and only relocated messages carry
	// \Deleted, so the folder-wide expunge is safe.
	if err := s.client.UidCopy(seqset, s.targetFolder); err != nil {
		return fmt.Errorf("mailbox copy uid %d: %w", ref.UID, err)
	}

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.DeletedFlag}
	if err := s.client.UidStore(seqset, item, flags, nil); err != nil {
		return fmt.Errorf("mailbox flag uid %d: %w", ref.UID, err)
	}

	if err := s.client.Expunge(nil); err != nil {
		return fmt.Errorf("mailbox expunge uid %d: %w", ref.UID, err)
	}

	return nil
}

// Close logs the session out. Runs call this unconditionally, success
// or not.
func (s *Session) Close() {
	if err := s.client.Logout(); err != nil {
		log.WithError(err).Warn("mailbox_logout_failed")
	}
}
