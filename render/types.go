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

package render

import (
	"context"
	"strings"
)

// Renderer converts markup into a PDF byte stream. Implementations must
// bound the duration of a call; a hung renderer may not stall a run.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Failure strings wkhtmltopdf emits when page content (not the tool
// itself) is broken: unreachable images, refused connections, dead
// hosts. These are expected in the wild and classified as content
// errors so callers can log them less alarmingly.
var contentErrors = []string{
	"ContentNotFoundError",
	"ContentOperationNotPermittedError",
	"UnknownContentError",
	"RemoteHostClosedError",
	"ConnectionRefusedError",
	"Server refused a stream",
}

func IsContentError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()
	for _, s := range contentErrors {
		if strings.Contains(msg, s) {
			return true
		}
	}

	return false
}
