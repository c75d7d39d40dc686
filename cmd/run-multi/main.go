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

package run_multi

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pdfpump/pdfpump/hostfilter"
	"github.com/pdfpump/pdfpump/scheduler"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RegisterCommand(app *cli.App) *cli.App {
	cfg := DefaultConfig()
	app.Commands = append(app.Commands, &cli.Command{
		Name:                   "run-multi",
		Usage:                  "Run converters for multiple accounts",
		Flags:                  cfg.Parameters(),
		UseShortOptionHandling: true,
		Before: func(context *cli.Context) error {
			return cfg.Resolve()
		},
		Action: func(context *cli.Context) error {
			return run(context, &cfg)
		},
	})
	return app
}

func run(_ *cli.Context, cfg *Configuration) error {
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		cfg.Logger.SetLevel(logLevel)
	}

	if cfg.LogFormat == "json" {
		cfg.Logger.SetFormatter(&log.JSONFormatter{})
	}

	if hosts := hostfilter.Parse(cfg.BlockedHosts); len(hosts) > 0 {
		if err := hostfilter.Apply(cfg.HostsFile, hosts); err != nil {
			return err
		}
	}

	doneChan := make(chan error, len(cfg.ResolvedAccounts))
	stopChan := make(chan struct{})

	running := 0
	for name, schedConfig := range cfg.ResolvedAccounts {
		if err := os.MkdirAll(schedConfig.OutputDirectory, 0755); err != nil {
			return err
		}

		schedConfig.DoneChan = doneChan
		schedConfig.StopChan = stopChan

		if _, err := scheduler.NewScheduler(&schedConfig); err != nil {
			cfg.Logger.WithFields(log.Fields{"account": name}).Fatal(err)
		}

		cfg.Logger.WithFields(log.Fields{
			"account":       name,
			"source_folder": schedConfig.Session.SourceFolder,
			"target_folder": schedConfig.Session.TargetFolder,
			"interval":      schedConfig.Interval,
		}).Info("account_started")
		running += 1
	}

	sigchan := make(chan os.Signal, 10)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	sigcount := 0
	for running > 0 {
		select {
		case sig := <-sigchan:
			cfg.Logger.WithFields(log.Fields{"signal": sig, "count": sigcount}).Trace("caught_signal")

			sigcount += 1
			if sigcount > 1 {
				cfg.Logger.WithFields(log.Fields{"signal": sig}).Warn("received_interrupt_force_exit")
				os.Exit(1)
			}
			cfg.Logger.WithFields(log.Fields{"signal": sig}).Info("received_interrupt")

			close(stopChan)
		case err := <-doneChan:
			if err != nil {
				cfg.Logger.WithError(err).Warn("scheduler_terminated")
			} else {
				cfg.Logger.Info("scheduler_terminated")
			}
			running -= 1
		}
	}

	return nil
}
