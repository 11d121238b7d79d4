package delete_property

import "context"

type PropertyService interface {
	Delete(ctx context.Context, id string, userID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
