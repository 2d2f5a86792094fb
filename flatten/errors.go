package flatten

import (
	"errors"
	"fmt"

	"github.com/jacoelho/flatjson/jsonvalue"
)

// Sentinel errors. The typed errors below unwrap to them, so callers can use
// either errors.Is or errors.As.
var (
	ErrInputMustBeObject = errors.New("input must be a JSON object")
	ErrKeyCollision      = errors.New("key collision")
)

// InputMustBeObjectError reports a root value that is not an object.
type InputMustBeObjectError struct {
	Found jsonvalue.Kind
}

func (e *InputMustBeObjectError) Error() string {
	return fmt.Sprintf("%v, found %s", ErrInputMustBeObject, e.Found)
}

func (e *InputMustBeObjectError) Unwrap() error {
	return ErrInputMustBeObject
}

// KeyCollisionError reports two source paths that flatten to the same key.
type KeyCollisionError struct {
	Key string
}

func (e *KeyCollisionError) Error() string {
	return fmt.Sprintf("%v: flattened key %q already exists", ErrKeyCollision, e.Key)
}

func (e *KeyCollisionError) Unwrap() error {
	return ErrKeyCollision
}
