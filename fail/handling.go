// Package fail turns early-exit error checks into panics that are caught
// at the function boundary, so multi-step operations read top to bottom.
//
//	func work() (err error) {
//		defer fail.Around(&err)
//		blob, err := os.ReadFile(name)
//		fail.Fast(err)
//		fail.On(len(blob) == 0, "%q is empty", name)
//		...
//	}
package fail

import "fmt"

type delegated struct {
	err error
}

func Around(err *error) {
	if err == nil {
		return
	}
	original := recover()
	if original == nil {
		return
	}
	if reason, ok := original.(delegated); ok {
		*err = reason.err
		return
	}
	panic(original)
}

func Fast(err error) {
	if err != nil {
		panic(delegated{err})
	}
}

func On(condition bool, form string, details ...interface{}) {
	if condition {
		panic(delegated{fmt.Errorf(form, details...)})
	}
}
