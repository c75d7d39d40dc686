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
	"crypto/tls"
	"errors"
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/pdfpump/pdfpump/imap"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
)

func DefaultIMAPConfig() IMAPConfig {
	return IMAPConfig{
		AuthMethod: "NORMAL",
	}
}

func (cfg *IMAPConfig) Parameters() []cli.Flag {
	def := DefaultIMAPConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "imap url, e.g. imaps://mail.example.com:993 (the path, if any, names the source folder)",
			EnvVars:     []string{"PDFPUMP_IMAP_URL"},
			Destination: &cfg.URL,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "imap username",
			EnvVars:     []string{"PDFPUMP_IMAP_USERNAME"},
			Destination: &cfg.Username,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "imap password",
			EnvVars:     []string{"PDFPUMP_IMAP_PASSWORD"},
			Destination: &cfg.Password,
		},
		&cli.StringFlag{
			Name:        "password-file",
			Usage:       "file containing the imap password",
			EnvVars:     []string{"PDFPUMP_IMAP_PASSWORD_FILE"},
			Destination: &cfg.PasswordFile,
		},
		&cli.StringFlag{
			Name:        "systemd-credential",
			Usage:       "name of a systemd credential containing the imap password",
			EnvVars:     []string{"PDFPUMP_IMAP_SYSTEMD_CREDENTIAL"},
			Destination: &cfg.SystemdCredential,
		},
		&cli.StringFlag{
			Name:        "auth-method",
			Usage:       "imap authentication method (NORMAL, PLAIN, OAUTHBEARER)",
			EnvVars:     []string{"PDFPUMP_IMAP_AUTH_METHOD"},
			Value:       def.AuthMethod,
			Destination: &cfg.AuthMethod,
		},
		&cli.BoolFlag{
			Name:        "tls-skip-verify",
			Usage:       "skip imap certificate verification",
			EnvVars:     []string{"PDFPUMP_IMAP_TLS_SKIP_VERIFY"},
			Destination: &cfg.TLSSkipVerify,
		},
		&cli.BoolFlag{
			Name:        "imap-debug",
			Usage:       "dump imap protocol traffic to stderr",
			EnvVars:     []string{"PDFPUMP_IMAP_DEBUG"},
			Destination: &cfg.Debug,
		},
	}
}

func extractUrl(u *url.URL) (string, string, bool, error) {
	var defPort string
	var useTLS bool
	switch u.Scheme {
	case "imap":
		defPort = "143"
		useTLS = false
	case "imaps":
		defPort = "993"
		useTLS = true
	default:
		return "", "", false, errInvalidScheme
	}

	hostPort := u.Host
	if u.Port() == "" {
		hostPort = fmt.Sprintf("%v:%v", u.Hostname(), defPort)
	}

	folder := strings.TrimPrefix(u.Path, "/")
	return hostPort, folder, useTLS, nil
}

func (cfg *IMAPConfig) resolvePassword() (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}

	if cfg.PasswordFile != "" {
		pass, err := ioutil.ReadFile(cfg.PasswordFile)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(pass)), nil
	}

	if cfg.SystemdCredential != "" {
		if filepath.Base(cfg.SystemdCredential) != cfg.SystemdCredential {
			return "", fmt.Errorf("invalid systemd credential name %q", cfg.SystemdCredential)
		}

		credDir := os.Getenv("CREDENTIALS_DIRECTORY")
		if credDir == "" {
			return "", errors.New("CREDENTIALS_DIRECTORY not set, not launched via systemd?")
		}

		pass, err := ioutil.ReadFile(filepath.Join(credDir, cfg.SystemdCredential))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(pass)), nil
	}

	return "", errors.New("no password, password-file, or systemd-credential given")
}

// Resolve builds the connection parameters from the flag values. The
// returned string is the folder named by the URL path, empty if none.
func (cfg *IMAPConfig) Resolve() (imap.ConnectionConfig, string, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return imap.ConnectionConfig{}, "", err
	}

	hostPort, folder, useTLS, err := extractUrl(u)
	if err != nil {
		return imap.ConnectionConfig{}, "", err
	}

	password, err := cfg.resolvePassword()
	if err != nil {
		return imap.ConnectionConfig{}, "", err
	}

	var auth imap.Authenticator
	switch strings.ToUpper(cfg.AuthMethod) {
	case "NORMAL", "":
		auth = imap.NewNormalAuthenticator(cfg.Username, password)
	case sasl.Plain:
		auth = imap.NewSASLAuthenticator(sasl.NewPlainClient("", cfg.Username, password))
	case sasl.OAuthBearer:
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: password})
		auth = imap.NewOAuthBearerAuthenticator(cfg.Username, ts)
	default:
		return imap.ConnectionConfig{}, "", fmt.Errorf("unsupported auth method %q", cfg.AuthMethod)
	}

	conn := imap.ConnectionConfig{
		HostPort: hostPort,
		Auth:     auth,
		TLS:      useTLS,
		Debug:    cfg.Debug,
	}

	if cfg.TLSSkipVerify {
		conn.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return conn, folder, nil
}
