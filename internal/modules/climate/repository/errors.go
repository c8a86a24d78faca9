package repository

import "errors"

// ErrDataAccess matches every error returned by the repository.
var ErrDataAccess = errors.New("data access failed")

// DataAccessError reports a failed read against the dataset.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func (e *DataAccessError) Is(target error) bool { return target == ErrDataAccess }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataAccessError{Op: op, Err: err}
}
