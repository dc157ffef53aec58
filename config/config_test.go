/*
 * nakgpu - Target configuration resolution tests.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.cfg")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, "sm = 75\naddr_imm_bits = 10\ntrace = 0x3\n")

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.Compile.SM != 75 {
		t.Errorf("got SM: %d expected: 75", opts.Compile.SM)
	}
	if opts.Compile.AddrImmBits != 10 {
		t.Errorf("got AddrImmBits: %d expected: 10", opts.Compile.AddrImmBits)
	}
	if opts.Compile.TraceMask != 3 {
		t.Errorf("got TraceMask: %d expected: 3", opts.Compile.TraceMask)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	opts := Defaults()
	if opts.Compile.SM != 70 || opts.Compile.AddrImmBits != 12 {
		t.Errorf("got: %+v expected sm=70 addr_imm_bits=12", opts.Compile)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeTempConfig(t, "bogus = 1\n")
	if _, err := Load(path); err == nil {
		t.Errorf("Load succeeded, expected an error for an unknown key")
	}
}
