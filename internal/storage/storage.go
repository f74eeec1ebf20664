package storage

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already exists")
	ErrSlugExists  = errors.New("slug already exists")
)

var (
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrFileNotFound = errors.New("file not found")
	ErrUpload       = errors.New("image host rejected upload")
)
