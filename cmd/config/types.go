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
	"errors"
	"time"
)

var (
	errInvalidScheme = errors.New("invalid uri scheme")
)

type IMAPConfig struct {
	URL               string `json:"url"`
	AuthMethod        string `json:"auth_method"`
	Username          string `json:"username"`
	Password          string `json:"-"`
	PasswordFile      string `json:"password_file"`
	SystemdCredential string `json:"systemd_credential"`
	TLSSkipVerify     bool   `json:"tls_skip_verify"`
	Debug             bool   `json:"debug"`
}

type CliConfig struct {
	IMAP            IMAPConfig    `json:"imap"`
	SourceFolder    string        `json:"source_folder"`
	TargetFolder    string        `json:"target_folder"`
	Interval        time.Duration `json:"interval"`
	Limit           int           `json:"limit"`
	OutputDirectory string        `json:"output_directory"`
	PDFOptions      string        `json:"pdf_options"`
	PrintFailed     bool          `json:"print_failed"`
	BlockedHosts    string        `json:"blocked_hosts"`
	HostsFile       string        `json:"hosts_file"`
	LogLevel        string        `json:"log_level"`
	LogFormat       string        `json:"log_format"`
}
