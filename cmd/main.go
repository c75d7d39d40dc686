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

package cmd

import (
	"os"

	"github.com/pdfpump/pdfpump/cmd/oauthlogin"
	"github.com/pdfpump/pdfpump/cmd/run"
	run_multi "github.com/pdfpump/pdfpump/cmd/run-multi"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func Main() {
	app := cli.App{
		Name:  "pdfpump",
		Usage: os.Args[0],
		Description: `PDFPump polls a mailbox via IMAP, converts each message to a
PDF document, and moves the converted originals to another folder.
`,
	}

	run.RegisterCommand(&app)
	run_multi.RegisterCommand(&app)
	oauthlogin.RegisterCommand(&app)

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
