package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidData is matched by every ValidationError.
	ErrInvalidData = errors.New("data not valid for transfer encoding")

	// ErrNotASCII reports a byte above 127 in 7bit data.
	ErrNotASCII = errors.New("byte is not 7bit")

	// ErrNulByte reports a NUL byte in 7bit or 8bit data.
	ErrNulByte = errors.New("NUL byte")

	// ErrBareLineBreak reports a CR not followed by LF or a LF not preceded
	// by CR.
	ErrBareLineBreak = errors.New("CR and LF must only appear as CRLF")
)

// ValidationError places a validation failure in the data.
type ValidationError struct {
	Encoding Encoding
	Offset   int
	Byte     byte
	Err      error
}

// Error describes the failure.
func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s data at offset %d (0x%02x): %v", err.Encoding, err.Offset, err.Byte, err.Err)
}

// Unwrap returns the specific reason.
func (err *ValidationError) Unwrap() error {
	return err.Err
}

// Is matches ErrInvalidData.
func (err *ValidationError) Is(target error) bool {
	return target == ErrInvalidData
}

func checkLines(enc Encoding, data []byte, allow func(byte) error) error {
	var last byte
	for i, b := range data {
		if err := allow(b); err != nil {
			return &ValidationError{enc, i, b, err}
		}
		if (last == '\r') != (b == '\n') {
			return &ValidationError{enc, i, b, ErrBareLineBreak}
		}
		last = b
	}
	if last == '\r' {
		return &ValidationError{enc, len(data) - 1, last, ErrBareLineBreak}
	}
	return nil
}

// Check7Bit accepts bytes from 1 to 127 where CR and LF only appear as CRLF.
func Check7Bit(data []byte) error {
	return checkLines(Bit7, data, func(b byte) error {
		switch {
		case b == 0:
			return ErrNulByte
		case b > 127:
			return ErrNotASCII
		}
		return nil
	})
}

// Check8Bit accepts any byte except NUL where CR and LF only appear as CRLF.
func Check8Bit(data []byte) error {
	return checkLines(Bit8, data, func(b byte) error {
		if b == 0 {
			return ErrNulByte
		}
		return nil
	})
}
