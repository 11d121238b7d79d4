package view_file

import (
	"context"
	"io"
)

type FileStorage interface {
	Open(ctx context.Context, fileID string, w io.Writer) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
