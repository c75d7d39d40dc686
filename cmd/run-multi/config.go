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
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pdfpump/pdfpump/cmd/config"
	"github.com/pdfpump/pdfpump/imap/client"
	"github.com/pdfpump/pdfpump/mailbox"
	"github.com/pdfpump/pdfpump/render"
	"github.com/pdfpump/pdfpump/scheduler"
	"github.com/urfave/cli/v2"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultSourceFolder    = "Inbox"
	DefaultTargetFolder    = "Processed"
	DefaultInterval        = 60 * time.Second
	DefaultLimit           = 50
	DefaultOutputDirectory = "/data/pdfs"
)

type Account struct {
	Connection      config.IMAPConfig `json:"connection"`
	SourceFolder    string            `json:"source_folder"`
	TargetFolder    string            `json:"target_folder"`
	Interval        time.Duration     `json:"interval"`
	Limit           int               `json:"limit"`
	OutputDirectory string            `json:"output_directory"`
	PDFOptions      json.RawMessage   `json:"pdf_options,omitempty"`
	PrintFailed     bool              `json:"print_failed"`
}

func (acc *Account) Resolve() (scheduler.Config, error) {
	connConfig, urlFolder, err := acc.Connection.Resolve()
	if err != nil {
		return scheduler.Config{}, err
	}

	sourceFolder := acc.SourceFolder
	if urlFolder != "" {
		sourceFolder = urlFolder
	}
	if sourceFolder == "" {
		sourceFolder = DefaultSourceFolder
	}

	targetFolder := acc.TargetFolder
	if targetFolder == "" {
		targetFolder = DefaultTargetFolder
	}

	if sourceFolder == targetFolder {
		return scheduler.Config{}, fmt.Errorf("source and target folders may not be the same")
	}

	opts, err := render.ParseOptions(string(acc.PDFOptions))
	if err != nil {
		return scheduler.Config{}, fmt.Errorf("invalid pdf options: %w", err)
	}

	cfg := scheduler.Config{
		Session: mailbox.SessionConfig{
			Connection:   connConfig,
			SourceFolder: sourceFolder,
			TargetFolder: targetFolder,
		},
		Factory:         &client.Factory{},
		Renderer:        render.NewWKHTMLToPDF(opts),
		OutputDirectory: acc.OutputDirectory,
		Interval:        acc.Interval,
		Limit:           acc.Limit,
		PrintFailed:     acc.PrintFailed,
	}

	if cfg.OutputDirectory == "" {
		cfg.OutputDirectory = DefaultOutputDirectory
	}

	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.Limit == 0 {
		cfg.Limit = DefaultLimit
	}

	return cfg, nil
}

type Configuration struct {
	ConfigPath string `json:"-"`

	Accounts     map[string]*Account `json:"accounts,omitempty"`
	BlockedHosts string              `json:"blocked_hosts,omitempty"`
	HostsFile    string              `json:"hosts_file,omitempty"`
	LogLevel     string              `json:"log_level,omitempty"`
	LogFormat    string              `json:"log_format,omitempty"`

	ResolvedAccounts map[string]scheduler.Config `json:"-"`
	Logger           *log.Logger                 `json:"-"`
}

func DefaultConfig() Configuration {
	return Configuration{
		ConfigPath: "config.json",
		HostsFile:  "/etc/hosts",
		LogLevel:   DefaultLogLevel,
		LogFormat:  DefaultLogFormat,
		Logger:     log.StandardLogger(),
	}
}

func (cfg *Configuration) Parameters() []cli.Flag {
	def := DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to configuration file, or '-' to read from stdin",
			EnvVars:     []string{"PDFPUMP_CONFIG"},
			Value:       def.ConfigPath,
			Destination: &cfg.ConfigPath,
		},
	}
}

func (cfg *Configuration) Resolve() error {
	var err error
	var raw []byte

	if cfg.ConfigPath == "" || cfg.ConfigPath == "-" {
		raw, err = ioutil.ReadAll(os.Stdin)
	} else {
		raw, err = ioutil.ReadFile(cfg.ConfigPath)
	}

	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, cfg); err != nil {
		return err
	}

	if cfg.HostsFile == "" {
		cfg.HostsFile = DefaultConfig().HostsFile
	}

	cfg.ResolvedAccounts = make(map[string]scheduler.Config, len(cfg.Accounts))
	for name, acc := range cfg.Accounts {
		sc, err := acc.Resolve()
		if err != nil {
			return fmt.Errorf("account %v: %w", name, err)
		}

		cfg.ResolvedAccounts[name] = sc
	}

	return nil
}
