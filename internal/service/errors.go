package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/internal/board"
)

// connectError maps a board failure to a connect error.
// Internal details stay in the logs.
func connectError(err error) error {
	var boardErr *board.Error
	if !errors.As(err, &boardErr) {
		return connect.NewError(connect.CodeInternal, errors.New("internal error"))
	}

	switch boardErr.Kind {
	case board.KindNotFound:
		return connect.NewError(connect.CodeNotFound, errors.New(boardErr.Message))
	case board.KindForbidden:
		return connect.NewError(connect.CodePermissionDenied, errors.New(boardErr.Message))
	case board.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, errors.New(boardErr.Message))
	default:
		return connect.NewError(connect.CodeInternal, errors.New(boardErr.Message))
	}
}
