package assert

import (
	"fmt"

	"github.com/bloeys/ngl/logging"
)

// T panics with the formatted message when check is false. It is meant for
// programmer errors, not for validating user input.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	errMsg := fmt.Sprintf("Assert failed: "+msg, args...)
	logging.ErrLog.Println(errMsg)
	panic(errMsg)
}
