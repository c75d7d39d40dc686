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

package run

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pdfpump/pdfpump/cmd/config"
	"github.com/pdfpump/pdfpump/hostfilter"
	"github.com/pdfpump/pdfpump/scheduler"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Run the converter",
		Flags:  cfg.Parameters(),
		Action: func(context *cli.Context) error { return run(context, cfg) },
	})
	return app
}

func run(_ *cli.Context, cfg *config.CliConfig) error {
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(logLevel)
	}

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	log.WithFields(log.Fields{
		"url":              cfg.IMAP.URL,
		"auth_method":      cfg.IMAP.AuthMethod,
		"username":         cfg.IMAP.Username,
		"password_file":    cfg.IMAP.PasswordFile,
		"tls_skip_verify":  cfg.IMAP.TLSSkipVerify,
		"debug":            cfg.IMAP.Debug,
		"source_folder":    cfg.SourceFolder,
		"target_folder":    cfg.TargetFolder,
		"interval":         cfg.Interval,
		"limit":            cfg.Limit,
		"output_directory": cfg.OutputDirectory,
		"blocked_hosts":    cfg.BlockedHosts,
		"hosts_file":       cfg.HostsFile,
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
	}).Info("starting")

	if err := os.MkdirAll(cfg.OutputDirectory, 0755); err != nil {
		return err
	}

	if hosts := hostfilter.Parse(cfg.BlockedHosts); len(hosts) > 0 {
		if err := hostfilter.Apply(cfg.HostsFile, hosts); err != nil {
			return err
		}
	}

	schedConfig := scheduler.Config{}
	if err := cfg.BuildSchedulerConfig(&schedConfig); err != nil {
		return err
	}

	doneChan := make(chan error)
	stopChan := make(chan struct{})
	schedConfig.DoneChan = doneChan
	schedConfig.StopChan = stopChan

	if _, err := scheduler.NewScheduler(&schedConfig); err != nil {
		return err
	}

	sigchan := make(chan os.Signal, 10)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	sigcount := 0
	for {
		select {
		case sig := <-sigchan:
			log.WithFields(log.Fields{"signal": sig, "count": sigcount}).Trace("caught_signal")

			sigcount += 1
			if sigcount > 1 {
				log.WithFields(log.Fields{"signal": sig}).Warn("received_interrupt_force_exit")
				os.Exit(1)
			}
			log.WithFields(log.Fields{"signal": sig}).Info("received_interrupt")

			close(stopChan)
		case err := <-doneChan:
			log.Info("scheduler_terminated")
			return err
		}
	}
}
