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

package processor

import (
	"github.com/pdfpump/pdfpump/mailbox"
)

// Session is the slice of a mailbox session the processor needs.
// *mailbox.Session implements it.
type Session interface {
	Fetch(ref mailbox.Ref) ([]byte, error)
	Relocate(ref mailbox.Ref) error
}

type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		panic("invalid_status")
	}
}

// Outcome describes what happened to one message. Outcomes are not
// persisted; the message's folder is the only durable record.
type Outcome struct {
	Ref    mailbox.Ref
	Status Status

	// Reason is set for skips.
	Reason string

	// Path is set once a document has been written, including for a
	// failed relocation (the file stays on disk).
	Path string

	// Err is set for failures, wrapped in the stage error below.
	Err error
}

type FetchError struct{ Err error }

func (e *FetchError) Error() string { return "fetch: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

type RenderError struct{ Err error }

func (e *RenderError) Error() string { return "render: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

type WriteError struct{ Err error }

func (e *WriteError) Error() string { return "write: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

type RelocateError struct{ Err error }

func (e *RelocateError) Error() string { return "relocate: " + e.Err.Error() }
func (e *RelocateError) Unwrap() error { return e.Err }
