// Package basehdl provides shared HTTP handler plumbing: the uniform JSON
// response envelope and panic-safe handler wrapping.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"netops_reports/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse writes a JSON response with charset=utf-8 so UTF-8 payloads
// are rendered correctly by every client.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler wraps a handler body with recover so the server always
// answers the client, even when the handler panics.
func SafeHandler(c fiber.Ctx, handler func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
				err = HandleResponse(c, nil, common.NewError(
					common.ErrCodeInternalServer,
					fmt.Sprintf("Unexpected internal error: %v", r),
					common.StatusInternalServerError,
					nil,
				))
			}
		}()
		err = handler()
	}()
	return err
}

// HandleResponse normalizes the response format. Errors of type
// *common.Error decide the HTTP status themselves; anything else becomes an
// internal server error. Success responses use the standard envelope with
// status 200 unless successStatus overrides it.
func HandleResponse(c fiber.Ctx, data interface{}, err error, successStatus ...int) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeInternalServer.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	status := common.StatusOK
	message := common.MsgSuccess
	if len(successStatus) > 0 {
		status = successStatus[0]
		if status == common.StatusCreated {
			message = common.MsgCreated
		}
	}

	return JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}
