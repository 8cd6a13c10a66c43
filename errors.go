package hiertab

import "errors"

// ErrEmptyGrid indicates the input grid has no rows.
var ErrEmptyGrid = errors.New("empty grid provided")

// ErrMissingIdentifierField indicates the config has no identifier field.
var ErrMissingIdentifierField = errors.New("identifier field must be specified in config")

// ErrMissingTargetFields indicates the config has no target fields.
var ErrMissingTargetFields = errors.New("target fields must be specified in config")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")
