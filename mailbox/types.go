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
	imap2 "github.com/pdfpump/pdfpump/imap"
)

type SessionConfig struct {
	Connection   imap2.ConnectionConfig
	SourceFolder string
	TargetFolder string
}

// Ref identifies a message within the session that listed it. It is
// meaningless outside that session.
type Ref struct {
	UID    uint32
	Folder string
}

// Session is a live, authenticated connection with the source folder
// selected. It is owned by exactly one run and must be closed when the
// run ends.
type Session struct {
	client       imap2.Client
	sourceFolder string
	targetFolder string
	supportMove  bool
}
