package sanitizer

import "errors"

var (
	// ErrNullByte indicates the text contains a NUL byte
	ErrNullByte = errors.New("sanitizer.null_byte")

	// ErrInvalidUTF8 indicates the text is not valid UTF-8
	ErrInvalidUTF8 = errors.New("sanitizer.invalid_utf8")

	// ErrControlChar indicates DEL or a C1 control character in stored text
	ErrControlChar = errors.New("sanitizer.control_char")
)
