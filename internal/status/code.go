// internal/status/code.go
package status

import (
	"errors"

	"github.com/goburrow/modbus"
)

// GenericErrorCode is reported for errors that expose no code.
const GenericErrorCode uint16 = 1

// ErrorCode extracts a best-effort code from err without assuming concrete
// types. Modbus exceptions report their exception code.
func ErrorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	var me *modbus.ModbusError
	if errors.As(err, &me) {
		return uint16(me.ExceptionCode)
	}

	type coder interface{ Code() uint16 }
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}

	return GenericErrorCode
}
