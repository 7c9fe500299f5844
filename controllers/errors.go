// controllers/errors.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/CyberArcenal/Kabisilya-Management-sub007/config"
)

// errStateConflict marks operations attempted against a locked or otherwise
// incompatible entity state. Handlers map it to 409.
var errStateConflict = errors.New("state conflict")

func conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errStateConflict, fmt.Sprintf(format, args...))
}

func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, errStateConflict):
		return http.StatusConflict
	case errors.Is(err, config.ErrNoDefaultSession):
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadRequest
}
