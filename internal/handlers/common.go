// common.go
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

package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/models"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/localnerve/lifetracker/internal/utils"
	"gorm.io/datatypes"
)

// parseBody decodes the request body into dst by its Content-Type.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if len(c.Body()) == 0 {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "request body is required", Type: "body"}
	}
	if err := c.BodyParser(dst); err != nil {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "malformed request body: " + err.Error(), Type: "body"}
	}
	return nil
}

// parseDate reads a required YYYY-MM-DD value.
func parseDate(field, value string) (datatypes.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, &types.CustomError{Code: fiber.StatusBadRequest, Message: field + ": " + err.Error(), Type: "validation"}
	}
	return d, nil
}

// parseOptionalDate reads a YYYY-MM-DD value, nil when blank.
func parseOptionalDate(field string, value *string) (*datatypes.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// fail writes err as a JSON error body with its mapped status.
func fail(c *fiber.Ctx, err error) error {
	return utils.StoreErrorResponse(c, err)
}
