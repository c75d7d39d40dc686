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

package hostfilter

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Equal(t, []string{"127.0.0.1"}, Parse("127.0.0.1"))
	assert.Equal(t,
		[]string{"tracking.example.com", "analytics.example.com"},
		Parse("  tracking.example.com   ANALYTICS.example.com tracking.example.com "))
}

func TestApplyCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")

	err := Apply(path, []string{"tracking.example.com"})
	assert.NoError(t, err)

	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "127.0.0.1 tracking.example.com")
}

func TestApplyPreservesExistingEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	err := ioutil.WriteFile(path, []byte("127.0.0.1 localhost\n::1 localhost\n"), 0644)
	assert.NoError(t, err)

	err = Apply(path, []string{"tracking.example.com"})
	assert.NoError(t, err)

	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "127.0.0.1 localhost")
	assert.Contains(t, string(content), "::1 localhost")
	assert.Contains(t, string(content), "127.0.0.1 tracking.example.com")
}

func TestApplyIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")

	err := Apply(path, []string{"tracking.example.com", "ads.example.com"})
	assert.NoError(t, err)

	err = Apply(path, []string{"tracking.example.com", "ads.example.com"})
	assert.NoError(t, err)

	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "127.0.0.1 tracking.example.com"))
	assert.Equal(t, 1, strings.Count(string(content), "127.0.0.1 ads.example.com"))
}

func TestApplyReplacesManagedBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")

	err := Apply(path, []string{"old.example.com"})
	assert.NoError(t, err)

	err = Apply(path, []string{"new.example.com"})
	assert.NoError(t, err)

	content, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.NotContains(t, string(content), "old.example.com")
	assert.Contains(t, string(content), "127.0.0.1 new.example.com")
}
