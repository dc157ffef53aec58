/*
 * nakgpu - Configuration file parser
 *
 * Line-oriented parser for the target-configuration file grammar:
 * "key = value" pairs and '#' comments.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Option is one parsed "key = value" line.
type Option struct {
	Name  string // Key name, upper-cased.
	Value string // Raw value text, empty for a bare key.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <key> | <key> '=' <value>
 * <key>   ::= <letter> *(<letter> | <number> | '_')
 * <value> ::= any run of non-space characters, ended by white space or '#'
 */

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

var lineNumber int

// LoadConfigFile reads name and returns every key/value line it contains,
// in file order. Blank and comment-only lines are skipped; a line with a
// malformed key or an '=' with no value is an error.
func LoadConfigFile(name string) ([]Option, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var options []Option
	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		line := optionLine{}
		var err error
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return options, err
		}
		opt, perr := line.parseLine()
		if perr != nil {
			return options, perr
		}
		if opt != nil {
			options = append(options, *opt)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return options, err
		}
	}
	return options, nil
}

// parseLine parses a single "key" or "key = value" line, returning nil if
// the line is blank or pure comment.
func (line *optionLine) parseLine() (*Option, error) {
	name, err := line.getName()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}

	opt := Option{Name: strings.ToUpper(name)}

	line.skipSpace()
	if line.isEOL() {
		return &opt, nil
	}
	if line.line[line.pos] != '=' {
		return nil, fmt.Errorf("unexpected character after key %q, line: %d", name, lineNumber)
	}
	line.pos++
	line.skipSpace()

	value, err := line.parseValue()
	if err != nil {
		return nil, err
	}
	opt.Value = value
	return &opt, nil
}

// skipSpace skips forward over the line until a non-whitespace character.
func (line *optionLine) skipSpace() {
	for !line.isEOL() && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// isEOL reports whether the cursor is at end of line or a '#' comment.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// getName parses a key: a run of letters, digits, and underscores.
func (line *optionLine) getName() (string, error) {
	line.skipSpace()
	if line.isEOL() {
		return "", nil
	}

	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid key encountered, line: %d [%d]", lineNumber, line.pos)
	}

	value := ""
	for !line.isEOL() {
		by = line.line[line.pos]
		if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || by == '_' {
			value += string(by)
			line.pos++
			continue
		}
		break
	}
	return value, nil
}

// parseValue parses a run of value characters up to whitespace or comment.
func (line *optionLine) parseValue() (string, error) {
	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsSpace(rune(by)) {
			break
		}
		value += string(by)
		line.pos++
	}
	if value == "" {
		return "", fmt.Errorf("key requires a value, line: %d", lineNumber)
	}
	return value, nil
}

// ParseUint parses an Option's Value as an unsigned integer, base 0 (so
// "0x1f"-style hex is accepted alongside plain decimal).
func ParseUint(opt Option, bits int) (uint64, error) {
	return strconv.ParseUint(opt.Value, 0, bits)
}
