package status

import (
	"errors"

	kerrors "github.com/framebluffer/KTX-Software/go/common/errors"
)

type Code int32

const (
	KOk                  Code = 0
	KFileDataError       Code = 1
	KFileWriteError      Code = 2
	KInvalidOperation    Code = 3
	KInvalidValue        Code = 4
	KUnexpectedEndOfFile Code = 5
	KUnknownFileFormat   Code = 6
	KFileStatError       Code = 7
	KUnknown             Code = 8
)

var codeNames = map[Code]string{
	KOk:                  "OK",
	KFileDataError:       "FILE_DATA_ERROR",
	KFileWriteError:      "FILE_WRITE_ERROR",
	KInvalidOperation:    "INVALID_OPERATION",
	KInvalidValue:        "INVALID_VALUE",
	KUnexpectedEndOfFile: "UNEXPECTED_END_OF_FILE",
	KUnknownFileFormat:   "UNKNOWN_FILE_FORMAT",
	KFileStatError:       "FILE_STAT_ERROR",
	KUnknown:             "UNKNOWN",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[KUnknown]
}

// kinds is checked in order; the first matching kind wins.
var kinds = []struct {
	err  error
	code Code
}{
	{kerrors.ErrInvalidArgument, KInvalidValue},
	{kerrors.ErrUnexpectedEndOfData, KUnexpectedEndOfFile},
	{kerrors.ErrWriteError, KFileWriteError},
	{kerrors.ErrInvalidOperation, KInvalidOperation},
	{kerrors.ErrSizeUnavailable, KFileStatError},
	{kerrors.ErrUnknownFileFormat, KUnknownFileFormat},
	{kerrors.ErrInvalidHeader, KFileDataError},
}

type Status struct {
	code Code
	msg  string
}

// FromError maps err onto the status code of the kind it wraps.
func FromError(err error) Status {
	if err == nil {
		return OK()
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return Status{code: k.code, msg: err.Error()}
		}
	}
	return Status{code: KUnknown, msg: err.Error()}
}

func (s *Status) Code() Code {
	return s.code
}

func (s *Status) Msg() string {
	return s.msg
}

func OK() Status {
	return Status{
		code: KOk,
	}
}

func InvalidValue(msg string) Status {
	return Status{
		code: KInvalidValue,
		msg:  msg,
	}
}

func (s *Status) IsOK() bool {
	return s.code == KOk
}

func (s *Status) IsInvalidValue() bool {
	return s.code == KInvalidValue
}

func (s *Status) IsUnexpectedEndOfFile() bool {
	return s.code == KUnexpectedEndOfFile
}
