/*
 * nakgpu - Configuration file parser test set.
 *
 * Copyright 2026, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package configparser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "target.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadConfigFileBasic(t *testing.T) {
	path := writeTempConfig(t, "sm = 70\naddr_imm_bits = 12\n# a comment\ntrace = 0xff\n")

	opts, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v got: %v", path, err)
	}
	if len(opts) != 3 {
		t.Fatalf("got %d options expected: 3 (%v)", len(opts), opts)
	}

	want := []Option{
		{Name: "SM", Value: "70"},
		{Name: "ADDR_IMM_BITS", Value: "12"},
		{Name: "TRACE", Value: "0xff"},
	}
	for i, w := range want {
		if opts[i] != w {
			t.Errorf("option %d: got: %v expected: %v", i, opts[i], w)
		}
	}
}

func TestLoadConfigFileBlankAndCommentLines(t *testing.T) {
	path := writeTempConfig(t, "\n   \n# only a comment\nsm = 75\n")

	opts, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if len(opts) != 1 || opts[0].Name != "SM" || opts[0].Value != "75" {
		t.Errorf("got: %v expected: [{SM 75}]", opts)
	}
}

func TestLoadConfigFileBareKey(t *testing.T) {
	path := writeTempConfig(t, "verbose\n")

	opts, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile failed: %v", err)
	}
	if len(opts) != 1 || opts[0].Name != "VERBOSE" || opts[0].Value != "" {
		t.Errorf("got: %v expected: [{VERBOSE }]", opts)
	}
}

func TestLoadConfigFileMissingValue(t *testing.T) {
	path := writeTempConfig(t, "sm =\n")

	if _, err := LoadConfigFile(path); err == nil {
		t.Errorf("LoadConfigFile succeeded, expected an error for a missing value")
	}
}

func TestLoadConfigFileMissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.cfg")); err == nil {
		t.Errorf("LoadConfigFile succeeded, expected an error for a missing file")
	}
}

func TestParseUint(t *testing.T) {
	opt := Option{Name: "SM", Value: "0x46"}
	v, err := ParseUint(opt, 8)
	if err != nil {
		t.Fatalf("ParseUint failed: %v", err)
	}
	if v != 0x46 {
		t.Errorf("got: %#x expected: %#x", v, 0x46)
	}
}
