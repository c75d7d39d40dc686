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
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Options is the validated subset of wkhtmltopdf switches exposed via
// configuration. Unknown keys are rejected at startup instead of being
// passed through untyped.
type Options struct {
	PageSize               string
	Orientation            string
	MarginTop              *uint
	MarginBottom           *uint
	MarginLeft             *uint
	MarginRight            *uint
	DPI                    *uint
	Zoom                   *float64
	Grayscale              bool
	Encoding               string
	NoImages               bool
	DisableJavascript      bool
	JavascriptDelay        *uint
	LoadErrorHandling      string
	LoadMediaErrorHandling string
	Title                  string
}

// DefaultOptions tolerates broken embedded resources rather than
// failing the whole document, matching the pipeline's job of archiving
// whatever arrived.
func DefaultOptions() *Options {
	return &Options{
		LoadErrorHandling:      "ignore",
		LoadMediaErrorHandling: "ignore",
	}
}

var errorHandlingValues = map[string]bool{"abort": true, "ignore": true, "skip": true}

// ParseOptions decodes a JSON object of renderer options. The empty
// string yields the defaults.
func ParseOptions(s string) (*Options, error) {
	opts := DefaultOptions()
	if strings.TrimSpace(s) == "" {
		return opts, nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("pdf options: %w", err)
	}

	for key, value := range raw {
		var err error
		switch key {
		case "page-size":
			opts.PageSize, err = optString(key, value)
		case "orientation":
			opts.Orientation, err = optString(key, value)
			if err == nil && opts.Orientation != "Portrait" && opts.Orientation != "Landscape" {
				err = fmt.Errorf("pdf option %q: must be Portrait or Landscape", key)
			}
		case "margin-top":
			opts.MarginTop, err = optUint(key, value)
		case "margin-bottom":
			opts.MarginBottom, err = optUint(key, value)
		case "margin-left":
			opts.MarginLeft, err = optUint(key, value)
		case "margin-right":
			opts.MarginRight, err = optUint(key, value)
		case "dpi":
			opts.DPI, err = optUint(key, value)
		case "zoom":
			opts.Zoom, err = optFloat(key, value)
		case "grayscale":
			opts.Grayscale, err = optBool(key, value)
		case "encoding":
			opts.Encoding, err = optString(key, value)
		case "no-images":
			opts.NoImages, err = optBool(key, value)
		case "disable-javascript":
			opts.DisableJavascript, err = optBool(key, value)
		case "javascript-delay":
			opts.JavascriptDelay, err = optUint(key, value)
		case "load-error-handling":
			opts.LoadErrorHandling, err = optErrorHandling(key, value)
		case "load-media-error-handling":
			opts.LoadMediaErrorHandling, err = optErrorHandling(key, value)
		case "title":
			opts.Title, err = optString(key, value)
		default:
			return nil, fmt.Errorf("pdf option %q: unrecognised", key)
		}

		if err != nil {
			return nil, err
		}
	}

	return opts, nil
}

func optString(key string, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("pdf option %q: expected string", key)
	}

	return s, nil
}

func optErrorHandling(key string, value interface{}) (string, error) {
	s, err := optString(key, value)
	if err != nil {
		return "", err
	}

	if !errorHandlingValues[s] {
		return "", fmt.Errorf("pdf option %q: must be one of abort, ignore, skip", key)
	}

	return s, nil
}

func optUint(key string, value interface{}) (*uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return nil, fmt.Errorf("pdf option %q: expected non-negative integer", key)
		}
		u := uint(v)
		return &u, nil
	case string:
		u64, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("pdf option %q: expected non-negative integer", key)
		}
		u := uint(u64)
		return &u, nil
	default:
		return nil, fmt.Errorf("pdf option %q: expected non-negative integer", key)
	}
}

func optFloat(key string, value interface{}) (*float64, error) {
	switch v := value.(type) {
	case float64:
		return &v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("pdf option %q: expected number", key)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("pdf option %q: expected number", key)
	}
}

func optBool(key string, value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("pdf option %q: expected boolean", key)
		}
		return b, nil
	default:
		return false, fmt.Errorf("pdf option %q: expected boolean", key)
	}
}
