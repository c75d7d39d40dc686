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
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	imap2 "github.com/pdfpump/pdfpump/imap"
	"github.com/pdfpump/pdfpump/imap/client"
	"github.com/pdfpump/pdfpump/internal"
	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/processor"
)

type fakeRenderer struct{}

func (r *fakeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	return []byte("%PDF-1.4 fake\n" + html), nil
}

func testConfig(addr, outputDir string) *Config {
	return &Config{
		Session: mailbox.SessionConfig{
			Connection: imap2.ConnectionConfig{
				HostPort: addr,
				Auth:     imap2.NewNormalAuthenticator("username", "password"),
			},
			SourceFolder: "INBOX",
			TargetFolder: "Processed",
		},
		Factory:         &client.Factory{},
		Renderer:        &fakeRenderer{},
		OutputDirectory: outputDir,
		Interval:        time.Minute,
		Limit:           50,
	}
}

func TestNewSchedulerValidation(t *testing.T) {
	t.Run("interval_too_small", func(t *testing.T) {
		cfg := testConfig("localhost:1", t.TempDir())
		cfg.Interval = 500 * time.Millisecond

		_, err := NewScheduler(cfg)
		assert.ErrorIs(t, err, errInvalidInterval)
	})

	t.Run("same_folders", func(t *testing.T) {
		cfg := testConfig("localhost:1", t.TempDir())
		cfg.Session.TargetFolder = "INBOX"

		_, err := NewScheduler(cfg)
		assert.ErrorIs(t, err, errSameFolder)
	})
}

func TestEndToEnd(t *testing.T) {
	_, addr, user := internal.BuildTestIMAPServer(t)
	outputDir := t.TempDir()

	inbox := internal.Mailbox(t, user, "INBOX")
	internal.SeedMessage(t, inbox,
		internal.MakeTestMessage(t, "Invoice #1001", "text/html; charset=utf-8", "<p>total due</p>"))

	cfg := testConfig(addr, outputDir)

	doneChan := make(chan error)
	stopChan := make(chan struct{})
	cfg.DoneChan = doneChan
	cfg.StopChan = stopChan

	_, err := NewScheduler(cfg)
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(internal.Mailbox(t, user, "Processed").Messages) == 1
	}, 5*time.Second, 10*time.Millisecond)

	close(stopChan)

	select {
	case err := <-doneChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	// Exactly one document, the message left the source folder.
	assert.Empty(t, internal.Mailbox(t, user, "INBOX").Messages)

	files, err := ioutil.ReadDir(outputDir)
	assert.NoError(t, err)
	if assert.Len(t, files, 1) {
		assert.Equal(t, "Invoice-1001.pdf", files[0].Name())

		data, err := ioutil.ReadFile(filepath.Join(outputDir, files[0].Name()))
		assert.NoError(t, err)
		assert.Contains(t, string(data), "total due")
	}
}

func TestRunOnceCounts(t *testing.T) {
	_, addr, user := internal.BuildTestIMAPServer(t)
	outputDir := t.TempDir()

	inbox := internal.Mailbox(t, user, "INBOX")
	internal.SeedMessage(t, inbox,
		internal.MakeTestMessage(t, "Real", "text/html; charset=utf-8", "<p>hi</p>"))
	internal.SeedMessage(t, inbox,
		internal.MakeTestMessage(t, "Empty", "text/plain", ""))

	cfg := testConfig(addr, outputDir)
	s := &Scheduler{
		session:  cfg.Session,
		factory:  cfg.Factory,
		proc:     processor.New(cfg.Renderer, cfg.OutputDirectory, cfg.PrintFailed),
		interval: cfg.Interval,
		limit:    cfg.Limit,
	}

	stats := s.RunOnce(context.Background())
	assert.Equal(t, Stats{Listed: 2, Converted: 1, Skipped: 1, Failed: 0}, stats)

	// The skipped message stays listed; a second run re-reports it and
	// converts nothing new.
	stats = s.RunOnce(context.Background())
	assert.Equal(t, Stats{Listed: 1, Converted: 0, Skipped: 1, Failed: 0}, stats)
}

func TestRunSurvivesConnectFailure(t *testing.T) {
	cfg := testConfig("localhost:1", t.TempDir())
	cfg.Interval = time.Second

	doneChan := make(chan error)
	stopChan := make(chan struct{})
	cfg.DoneChan = doneChan
	cfg.StopChan = stopChan

	_, err := NewScheduler(cfg)
	assert.NoError(t, err)

	// The first run fails to connect; the scheduler must keep going
	// until told to stop.
	time.Sleep(50 * time.Millisecond)
	close(stopChan)

	select {
	case err := <-doneChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
