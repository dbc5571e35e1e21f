package types

import "storemy/pkg/qerrors"

// EncodingErr wraps a types-package encoding/decoding failure in the
// shared qerrors.EncodingError kind.
func EncodingErr(detail string, cause error) error {
	return qerrors.EncodingError(detail, cause)
}
