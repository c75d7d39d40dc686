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
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/processor"
)

var (
	errInvalidInterval = errors.New("interval must be at least one second")
	errSameFolder      = errors.New("source and target folders must differ")
)

// NewScheduler validates the config and starts the run loop. The loop
// posts its terminal result to DoneChan; closing StopChan ends it after
// the in-flight run completes. Runs never overlap.
func NewScheduler(cfg *Config) (*Scheduler, error) {
	if cfg.Interval < time.Second {
		return nil, errInvalidInterval
	}

	if cfg.Session.SourceFolder == cfg.Session.TargetFolder {
		return nil, errSameFolder
	}

	s := &Scheduler{
		session:  cfg.Session,
		factory:  cfg.Factory,
		proc:     processor.New(cfg.Renderer, cfg.OutputDirectory, cfg.PrintFailed),
		interval: cfg.Interval,
		limit:    cfg.Limit,
	}

	doneChan := cfg.DoneChan
	stopChan := cfg.StopChan
	go func() { doneChan <- s.loop(stopChan) }()

	return s, nil
}

func (s *Scheduler) loop(stop <-chan struct{}) error {
	for {
		s.RunOnce(context.Background())

		select {
		case <-stop:
			log.Trace("scheduler_exit_requested")
			return nil
		case <-time.After(s.interval):
		}
	}
}

// RunOnce performs one complete run: open a session, list the source
// folder, process every reference, close the session. Run-level
// failures are logged and absorbed; the next tick retries from current
// mailbox state.
func (s *Scheduler) RunOnce(ctx context.Context) Stats {
	log.WithFields(log.Fields{
		"folder": s.session.SourceFolder,
		"target": s.session.TargetFolder,
	}).Info("run_started")

	stats := Stats{}

	sess, err := mailbox.Connect(&s.session, s.factory)
	if err != nil {
		log.WithError(err).Error("run_failed")
		return stats
	}
	defer sess.Close()

	refs, err := sess.List(s.limit)
	if err != nil {
		log.WithError(err).Error("run_failed")
		return stats
	}

	stats.Listed = len(refs)

	for _, ref := range refs {
		outcome := s.proc.Process(ctx, sess, ref)
		switch outcome.Status {
		case processor.StatusConverted:
			stats.Converted++
		case processor.StatusSkipped:
			stats.Skipped++
		case processor.StatusFailed:
			stats.Failed++
		}
	}

	log.WithFields(log.Fields{
		"listed":    stats.Listed,
		"converted": stats.Converted,
		"skipped":   stats.Skipped,
		"failed":    stats.Failed,
	}).Info("run_finished")

	return stats
}
