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

package scheduler

import (
	"time"

	imap2 "github.com/pdfpump/pdfpump/imap"
	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/processor"
	"github.com/pdfpump/pdfpump/render"
)

type Config struct {
	Session mailbox.SessionConfig
	Factory imap2.Factory

	Renderer        render.Renderer
	OutputDirectory string

	// Interval between runs. Must be at least one second.
	Interval time.Duration

	// Limit caps how many messages one run handles; the rest are
	// picked up on later ticks. Non-positive means unlimited.
	Limit int

	PrintFailed bool

	DoneChan chan<- error
	StopChan <-chan struct{}
}

// Stats are per-run counters. They exist only for logs and tests;
// durable state lives in the mailbox alone.
type Stats struct {
	Listed    int
	Converted int
	Skipped   int
	Failed    int
}

type Scheduler struct {
	session  mailbox.SessionConfig
	factory  imap2.Factory
	proc     *processor.Processor
	interval time.Duration
	limit    int
}
