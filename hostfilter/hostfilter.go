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

// Package hostfilter pins blocked hostnames to loopback in an
// /etc/hosts-format file. The renderer is an external process that
// resolves through the system resolver, so the hosts file is the one
// place a block applies to every render uniformly: tracking pixels and
// analytics beacons embedded in mail never reach their real hosts, and
// renders can't hang on them either.
package hostfilter

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	loopback    = "127.0.0.1"
	beginMarker = "# pdfpump block-list begin"
	endMarker   = "# pdfpump block-list end"
)

// Parse splits a space-separated block-list, dropping empties and
// duplicates. Order is preserved.
func Parse(list string) []string {
	seen := map[string]bool{}
	var hosts []string
	for _, h := range strings.Fields(list) {
		h = strings.ToLower(h)
		if seen[h] {
			continue
		}
		seen[h] = true
		hosts = append(hosts, h)
	}

	return hosts
}

// Apply rewrites the managed block in the hosts file so that every name
// in hosts resolves to loopback. It is idempotent: the previous managed
// block is replaced, lines outside the markers are left untouched.
func Apply(path string, hosts []string) error {
	existing, err := ioutil.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("hostfilter read %q: %w", path, err)
	}

	kept := stripManagedBlock(string(existing))

	var b strings.Builder
	b.WriteString(kept)
	if kept != "" && !strings.HasSuffix(kept, "\n") {
		b.WriteString("\n")
	}

	if len(hosts) > 0 {
		b.WriteString(beginMarker + "\n")
		for _, h := range hosts {
			fmt.Fprintf(&b, "%s %s\n", loopback, h)
		}
		b.WriteString(endMarker + "\n")
	}

	if err := ioutil.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("hostfilter write %q: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":  path,
		"hosts": hosts,
	}).Info("hostfilter_applied")

	return nil
}

func stripManagedBlock(content string) string {
	if content == "" {
		return ""
	}

	var kept []string
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		switch strings.TrimSpace(line) {
		case beginMarker:
			inBlock = true
			continue
		case endMarker:
			inBlock = false
			continue
		}

		if !inBlock {
			kept = append(kept, line)
		}
	}

	out := strings.Join(kept, "\n")
	return strings.TrimRight(out, "\n") + "\n"
}
