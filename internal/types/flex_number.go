// flex_number.go
//
// A personal tracker for goals, habits, grinds, tasks and finances
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of lifetracker.
// lifetracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// lifetracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with lifetracker.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that can be unmarshaled from either a JSON number or a numeric JSON string.
// Form-driven clients send amounts and habit values as strings.
type FlexFloat float64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data)
	if err != nil {
		return fmt.Errorf("FlexFloat: %w", err)
	}
	*f = FlexFloat(v)
	return nil
}

// Float64 converts FlexFloat back to float64.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// FlexInt is an int that can be unmarshaled from either a JSON number or a numeric JSON string.
type FlexInt int

// UnmarshalJSON implements the json.Unmarshaler interface. Fractional values are rejected.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data)
	if err != nil {
		return fmt.Errorf("FlexInt: %w", err)
	}
	if v != math.Trunc(v) {
		return fmt.Errorf("FlexInt: %v is not a whole number", v)
	}
	*f = FlexInt(int(v))
	return nil
}

// Int converts FlexInt back to int.
func (f FlexInt) Int() int {
	return int(f)
}

func parseFlexNumber(data []byte) (float64, error) {
	if len(data) == 0 || string(data) == "null" {
		return 0, nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, fmt.Errorf("unexpected type, expected number or string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number string %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number string %q", s)
	}
	return v, nil
}
