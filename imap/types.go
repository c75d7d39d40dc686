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

package imap

import (
	"crypto/tls"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Client is the subset of go-imap's client that the pipeline uses.
type Client interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)

	Create(name string) error

	Support(cap string) (bool, error)

	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)

	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error

	UidMove(seqset *imap.SeqSet, dest string) error

	UidCopy(seqset *imap.SeqSet, dest string) error

	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error

	Expunge(ch chan uint32) error

	Logout() error
}

// Authenticator authenticates a freshly-dialled connection.
type Authenticator interface {
	Authenticate(c *client.Client) error
}

type ConnectionConfig struct {
	HostPort  string
	Auth      Authenticator
	TLS       bool
	TLSConfig *tls.Config
	Debug     bool
}

type Factory interface {
	NewClient(cfg *ConnectionConfig) (Client, error)
}

type Message = imap.Message
type SeqSet = imap.SeqSet
type SearchCriteria = imap.SearchCriteria
type StoreItem = imap.StoreItem
type MailboxStatus = imap.MailboxStatus
type FetchItem = imap.FetchItem
