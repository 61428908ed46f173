package reservation

import (
	"errors"
	"fmt"
)

// ErrStorage marks failures of the storage layer, as opposed to business
// rejections and programming errors.
var ErrStorage = errors.New("storage failure")

func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStorage, err))
}
