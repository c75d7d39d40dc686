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

package config

import (
	"fmt"
	"time"

	"github.com/pdfpump/pdfpump/imap/client"
	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/render"
	"github.com/pdfpump/pdfpump/scheduler"
	"github.com/urfave/cli/v2"
)

func DefaultConfig() CliConfig {
	return CliConfig{
		IMAP:            DefaultIMAPConfig(),
		SourceFolder:    "Inbox",
		TargetFolder:    "Processed",
		Interval:        60 * time.Second,
		Limit:           50,
		OutputDirectory: "/data/pdfs",
		BlockedHosts:    "127.0.0.1",
		HostsFile:       "/etc/hosts",
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

func (cfg *CliConfig) Parameters() []cli.Flag {
	def := DefaultConfig()

	flags := cfg.IMAP.Parameters()
	return append(flags, []cli.Flag{
		&cli.StringFlag{
			Name:        "source-folder",
			Usage:       "folder to poll for messages",
			EnvVars:     []string{"PDFPUMP_SOURCE_FOLDER"},
			Value:       def.SourceFolder,
			Destination: &cfg.SourceFolder,
		},
		&cli.StringFlag{
			Name:        "target-folder",
			Usage:       "folder to move processed messages to",
			EnvVars:     []string{"PDFPUMP_TARGET_FOLDER"},
			Value:       def.TargetFolder,
			Destination: &cfg.TargetFolder,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "polling interval",
			EnvVars:     []string{"PDFPUMP_INTERVAL"},
			Value:       def.Interval,
			Destination: &cfg.Interval,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "maximum messages to process per run",
			EnvVars:     []string{"PDFPUMP_LIMIT"},
			Value:       def.Limit,
			Destination: &cfg.Limit,
		},
		&cli.StringFlag{
			Name:        "output-directory",
			Usage:       "directory to write pdf documents to",
			EnvVars:     []string{"PDFPUMP_OUTPUT_DIRECTORY"},
			Value:       def.OutputDirectory,
			Destination: &cfg.OutputDirectory,
		},
		&cli.StringFlag{
			Name:        "pdf-options",
			Usage:       "render options as a json object",
			EnvVars:     []string{"PDFPUMP_PDF_OPTIONS"},
			Destination: &cfg.PDFOptions,
		},
		&cli.BoolFlag{
			Name:        "print-failed",
			Usage:       "log the body of messages that fail to render",
			EnvVars:     []string{"PDFPUMP_PRINT_FAILED"},
			Destination: &cfg.PrintFailed,
		},
		&cli.StringFlag{
			Name:        "blocked-hosts",
			Usage:       "space-separated hosts to null-route during rendering",
			EnvVars:     []string{"PDFPUMP_BLOCKED_HOSTS"},
			Value:       def.BlockedHosts,
			Destination: &cfg.BlockedHosts,
		},
		&cli.StringFlag{
			Name:        "hosts-file",
			Usage:       "hosts file to write the block-list to",
			EnvVars:     []string{"PDFPUMP_HOSTS_FILE"},
			Value:       def.HostsFile,
			Destination: &cfg.HostsFile,
		},
		&cli.StringFlag{
			Name:        "log.level",
			Usage:       "logging level",
			EnvVars:     []string{"PDFPUMP_LOG_LEVEL"},
			Value:       def.LogLevel,
			Destination: &cfg.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log.format",
			Usage:       "logging format (text/json)",
			EnvVars:     []string{"PDFPUMP_LOG_FORMAT"},
			Value:       def.LogFormat,
			Destination: &cfg.LogFormat,
		},
	}...)
}

// BuildSchedulerConfig fills in everything except the lifecycle channels.
func (cfg *CliConfig) BuildSchedulerConfig(schedConfig *scheduler.Config) error {
	conn, urlFolder, err := cfg.IMAP.Resolve()
	if err != nil {
		return err
	}

	sourceFolder := cfg.SourceFolder
	if urlFolder != "" {
		sourceFolder = urlFolder
	}

	if sourceFolder == cfg.TargetFolder {
		return fmt.Errorf("source and target folders may not be the same")
	}

	if cfg.Interval < time.Second {
		return fmt.Errorf("interval may not be less than a second")
	}

	opts, err := render.ParseOptions(cfg.PDFOptions)
	if err != nil {
		return fmt.Errorf("invalid pdf options: %w", err)
	}

	schedConfig.Session = mailbox.SessionConfig{
		Connection:   conn,
		SourceFolder: sourceFolder,
		TargetFolder: cfg.TargetFolder,
	}
	schedConfig.Factory = &client.Factory{}
	schedConfig.Renderer = render.NewWKHTMLToPDF(opts)
	schedConfig.OutputDirectory = cfg.OutputDirectory
	schedConfig.Interval = cfg.Interval
	schedConfig.Limit = cfg.Limit
	schedConfig.PrintFailed = cfg.PrintFailed
	return nil
}
