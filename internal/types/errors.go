package types

import "errors"

var ErrNotFound = errors.New("requested item not found")
var ErrConflict = errors.New("item already exists or conflict")
var ErrUnauthenticated = errors.New("authentication required or invalid credentials")
var ErrBadRequest = errors.New("invalid request")
var ErrInternal = errors.New("internal error")
