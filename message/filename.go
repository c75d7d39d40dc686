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

package message

import (
	"regexp"
	"strings"
)

// Characters that break filenames on at least one supported filesystem,
// plus the typographic ones mail clients love to put in subjects.
var badCharacters = []string{"/", "*", ":", "<", ">", "|", `"`, "’", "–"}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	invalidRunes  = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

const maxSlugLength = 50

// Slug derives the output base name from a subject. The result is
// deterministic: the same subject always yields the same slug, and
// collisions are the caller's to disambiguate.
func Slug(subject string) string {
	s := strings.TrimSpace(subject)
	for _, ch := range badCharacters {
		s = strings.ReplaceAll(s, ch, "_")
	}

	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidRunes.ReplaceAllString(s, "")

	if runes := []rune(s); len(runes) > maxSlugLength {
		s = string(runes[:maxSlugLength])
	}

	s = strings.Trim(s, "-_.")
	if s == "" {
		return "message"
	}

	return s
}
