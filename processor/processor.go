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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/message"
	"github.com/pdfpump/pdfpump/render"
)

type Processor struct {
	renderer        render.Renderer
	outputDirectory string
	printFailed     bool
}

func New(renderer render.Renderer, outputDirectory string, printFailed bool) *Processor {
	return &Processor{
		renderer:        renderer,
		outputDirectory: outputDirectory,
		printFailed:     printFailed,
	}
}

// Process runs one message through fetch, extract, render, write and
// relocate. The write and the relocation are the only durable effects,
// in that order: the relocation is the commit, so a crash anywhere
// before it means the message is safely re-processed on a later run.
func (p *Processor) Process(ctx context.Context, sess Session, ref mailbox.Ref) Outcome {
	logger := log.WithFields(log.Fields{"uid": ref.UID, "folder": ref.Folder})

	raw, err := sess.Fetch(ref)
	if err != nil {
		return p.failed(logger, ref, &FetchError{Err: err}, "")
	}

	content, err := message.Extract(raw)
	if err != nil {
		return p.failed(logger, ref, &FetchError{Err: err}, "")
	}

	logger = logger.WithField("subject", content.Subject)

	if content.HasAttachments {
		return p.skipped(logger, ref, "has attachments")
	}

	if content.Empty() {
		return p.skipped(logger, ref, "no content")
	}

	body := content.Body()
	data, err := p.renderer.Render(ctx, body)
	if err != nil {
		if render.IsContentError(err) {
			logger.WithError(err).Warn("message_render_content_error")
		}

		return p.failed(logger, ref, &RenderError{Err: err}, body)
	}

	path, err := p.writeDocument(message.Slug(content.Subject), ref.UID, data)
	if err != nil {
		return p.failed(logger, ref, &WriteError{Err: err}, body)
	}

	logger = logger.WithField("path", path)
	logger.Debug("document_written")

	if err := sess.Relocate(ref); err != nil {
		// The document stays on disk and the message stays in the
		// source folder; the next run renders it again. An extra file,
		// never a lost message.
		relErr := &RelocateError{Err: err}
		logger.WithError(relErr).Warn("message_relocate_failed_document_kept")
		return Outcome{Ref: ref, Status: StatusFailed, Path: path, Err: relErr}
	}

	logger.Info("message_converted")
	return Outcome{Ref: ref, Status: StatusConverted, Path: path}
}

func (p *Processor) skipped(logger *log.Entry, ref mailbox.Ref, reason string) Outcome {
	logger.WithField("reason", reason).Info("message_skipped")
	return Outcome{Ref: ref, Status: StatusSkipped, Reason: reason}
}

func (p *Processor) failed(logger *log.Entry, ref mailbox.Ref, err error, body string) Outcome {
	logger.WithError(err).Error("message_failed")
	if p.printFailed && body != "" {
		logger.WithField("body", body).Error("message_failed_body")
	}

	return Outcome{Ref: ref, Status: StatusFailed, Err: err}
}

// writeDocument persists the PDF under a deterministic name, never
// overwriting: on collision the UID and then a timestamp disambiguate.
func (p *Processor) writeDocument(slug string, uid uint32, data []byte) (string, error) {
	candidates := []string{
		fmt.Sprintf("%s.pdf", slug),
		fmt.Sprintf("%s-%d.pdf", slug, uid),
		fmt.Sprintf("%s-%d-%d.pdf", slug, uid, time.Now().UnixNano()),
	}

	for _, name := range candidates {
		path := filepath.Join(p.outputDirectory, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		} else if err != nil {
			return "", err
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}

		if err := f.Sync(); err != nil {
			_ = f.Close()
			return "", err
		}

		return path, f.Close()
	}

	return "", fmt.Errorf("no free filename for %q", slug)
}
