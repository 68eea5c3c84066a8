// This file is part of r64emu.
//
// r64emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// r64emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with r64emu.  If not, see <https://www.gnu.org/licenses/>.

package curated

import (
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface. the
// pattern string is kept unformatted so it can serve as the error's
// identity; formatting happens lazily in Error().
type curated struct {
	pattern string
	values  []interface{}
}

// Errorf creates a new curated error. The first argument is named
// "pattern" rather than "format" because it doubles as the identity of
// the error for the Is() and Has() functions. Passing another curated
// error as one of the values chains the two; Has() walks the chain.
func Errorf(pattern string, values ...interface{}) error {
	return curated{pattern: pattern, values: values}
}

// Error returns the formatted message with duplicate adjacent parts of
// the message chain folded away. Chained errors repeat their head when a
// wrapping site uses the "%v" of the inner error as its own prefix; the
// folding keeps the rendered message readable.
//
// Implements the go language error interface.
func (er curated) Error() string {
	parts := strings.SplitN(fmt.Errorf(er.pattern, er.values...).Error(), ": ", 3)

	for len(parts) > 1 && parts[0] == parts[1] {
		parts = parts[1:]
	}

	return strings.Join(parts, ": ")
}

// wrapped returns the curated errors chained directly into this one.
func (er curated) wrapped() []curated {
	var chain []curated
	for _, v := range er.values {
		if e, ok := v.(curated); ok {
			chain = append(chain, e)
		}
	}
	return chain
}

// IsAny checks if the error is a curated error.
func IsAny(err error) bool {
	if err == nil {
		return false
	}

	_, ok := err.(curated)
	return ok
}

// Is checks if the error is a curated error with the specified pattern.
func Is(err error, pattern string) bool {
	if err == nil {
		return false
	}

	er, ok := err.(curated)
	return ok && er.pattern == pattern
}

// Has checks if the error is a curated error with the specified pattern
// anywhere in the chain.
func Has(err error, pattern string) bool {
	if !IsAny(err) {
		return false
	}

	// breadth-first over the wrapped errors; chains are short so there
	// is no need for anything cleverer
	queue := []curated{err.(curated)}
	for len(queue) > 0 {
		er := queue[0]
		queue = queue[1:]
		if er.pattern == pattern {
			return true
		}
		queue = append(queue, er.wrapped()...)
	}

	return false
}
