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
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

type OAuth2Config struct {
	Provider     string
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       cli.StringSlice

	Config oauth2.Config
}

func (cfg *OAuth2Config) Parameters() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "oauth2 provider (google, microsoft); omit to use --auth-url/--token-url",
			EnvVars:     []string{"PDFPUMP_OAUTH2_PROVIDER"},
			Destination: &cfg.Provider,
		},
		&cli.StringFlag{
			Name:        "client-id",
			Usage:       "oauth2 client id",
			EnvVars:     []string{"PDFPUMP_OAUTH2_CLIENT_ID"},
			Destination: &cfg.ClientID,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "client-secret",
			Usage:       "oauth2 client secret",
			EnvVars:     []string{"PDFPUMP_OAUTH2_CLIENT_SECRET"},
			Destination: &cfg.ClientSecret,
		},
		&cli.StringFlag{
			Name:        "auth-url",
			Usage:       "oauth2 authorization endpoint",
			EnvVars:     []string{"PDFPUMP_OAUTH2_AUTH_URL"},
			Destination: &cfg.AuthURL,
		},
		&cli.StringFlag{
			Name:        "token-url",
			Usage:       "oauth2 token endpoint",
			EnvVars:     []string{"PDFPUMP_OAUTH2_TOKEN_URL"},
			Destination: &cfg.TokenURL,
		},
		&cli.StringSliceFlag{
			Name:        "scope",
			Usage:       "oauth2 scope, may be given multiple times",
			EnvVars:     []string{"PDFPUMP_OAUTH2_SCOPES"},
			Destination: &cfg.Scopes,
		},
	}
}

func (cfg *OAuth2Config) Resolve() error {
	scopes := cfg.Scopes.Value()

	var endpoint oauth2.Endpoint
	switch cfg.Provider {
	case "google":
		endpoint = endpoints.Google
		if len(scopes) == 0 {
			scopes = []string{"https://mail.google.com/"}
		}
	case "microsoft":
		endpoint = endpoints.Microsoft
		if len(scopes) == 0 {
			scopes = []string{
				"https://outlook.office.com/IMAP.AccessAsUser.All",
				"offline_access",
			}
		}
	case "":
		if cfg.AuthURL == "" || cfg.TokenURL == "" {
			return errors.New("either a provider or both auth-url and token-url are required")
		}
		endpoint = oauth2.Endpoint{AuthURL: cfg.AuthURL, TokenURL: cfg.TokenURL}
	default:
		return fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	cfg.Config = oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
	return nil
}
