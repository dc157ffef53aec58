/*
 * nakgpu - Target configuration: resolves parsed option lines into
 * the compile options the lowering engine is parameterized by.
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

// Package config resolves a target-configuration file into the
// CompileOptions the Lowering Engine is parameterized by.
package config

import (
	"fmt"

	"github.com/rcornwell/nakgpu/config/configparser"
	"github.com/rcornwell/nakgpu/lower"
	"github.com/rcornwell/nakgpu/util/debug"
)

// Options is the fully resolved configuration: the CompileOptions the
// Lowering Engine takes, including its debug-trace mask.
type Options struct {
	Compile lower.CompileOptions
}

// Defaults matches sm_70 with a 12-bit address-immediate window, which is
// a conservative, always-safe choice when no config file is given.
func Defaults() Options {
	return Options{Compile: lower.CompileOptions{SM: 70, AddrImmBits: 12}}
}

// Load reads name and resolves it into Options, starting from Defaults
// and overriding one field per recognized key. Unrecognized keys are
// reported as an error rather than silently ignored, since a typo'd key
// silently keeping the default SM is exactly the kind of mistake this
// function exists to catch.
func Load(name string) (Options, error) {
	opts := Defaults()

	parsed, err := configparser.LoadConfigFile(name)
	if err != nil {
		return opts, err
	}

	for _, opt := range parsed {
		switch opt.Name {
		case "SM":
			v, err := configparser.ParseUint(opt, 8)
			if err != nil {
				return opts, fmt.Errorf("config: sm: %w", err)
			}
			opts.Compile.SM = uint8(v)

		case "ADDR_IMM_BITS":
			v, err := configparser.ParseUint(opt, 8)
			if err != nil {
				return opts, fmt.Errorf("config: addr_imm_bits: %w", err)
			}
			opts.Compile.AddrImmBits = uint8(v)

		case "TRACE":
			v, err := configparser.ParseUint(opt, 32)
			if err != nil {
				return opts, fmt.Errorf("config: trace: %w", err)
			}
			opts.Compile.TraceMask = debug.Mask(v)

		default:
			return opts, fmt.Errorf("config: unknown key %q", opt.Name)
		}
	}

	return opts, nil
}
