package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contentTypeKey = "contentType"

var (
	// ErrFileNotFound возвращается, когда файла нет в хранилище
	ErrFileNotFound = errors.New("gridfs: file not found")

	// ErrStorage возвращается при прочих ошибках хранилища
	ErrStorage = errors.New("gridfs: storage error")
)

// Storage файловое хранилище изображений объектов в GridFS
type Storage struct {
	bucket    *gridfs.Bucket
	publicURL string
}

// New создает хранилище в bucket с заданным именем
func New(db *mongo.Database, bucketName, publicURL string) (*Storage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("%w: New - create bucket: %v", ErrStorage, err)
	}

	return &Storage{
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload сохраняет файл и возвращает его ID
func (s *Storage) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	fileID := uuid.NewString()

	opts := options.GridFSUpload().SetMetadata(bson.M{contentTypeKey: contentType})
	stream, err := s.bucket.OpenUploadStreamWithID(fileID, filename, opts)
	if err != nil {
		return "", fmt.Errorf("%w: Upload - open stream: %v", ErrStorage, err)
	}
	defer stream.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetWriteDeadline(deadline); err != nil {
			return "", fmt.Errorf("%w: Upload - set deadline: %v", ErrStorage, err)
		}
	}

	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("%w: Upload - write: %v", ErrStorage, err)
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("%w: Upload - close: %v", ErrStorage, err)
	}

	return fileID, nil
}

// Open пишет содержимое файла в w и возвращает его content type
func (s *Storage) Open(ctx context.Context, fileID string, w io.Writer) (string, error) {
	stream, err := s.bucket.OpenDownloadStream(fileID)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return "", ErrFileNotFound
		}
		return "", fmt.Errorf("%w: Open - open stream: %v", ErrStorage, err)
	}
	defer stream.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetReadDeadline(deadline); err != nil {
			return "", fmt.Errorf("%w: Open - set deadline: %v", ErrStorage, err)
		}
	}

	contentType := "application/octet-stream"
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, ok := file.Metadata.Lookup(contentTypeKey).StringValueOK(); ok && v != "" {
			contentType = v
		}
	}

	if _, err := io.Copy(w, stream); err != nil {
		return "", fmt.Errorf("%w: Open - read: %v", ErrStorage, err)
	}

	return contentType, nil
}

// Delete удаляет файл
func (s *Storage) Delete(ctx context.Context, fileID string) error {
	if err := s.bucket.DeleteContext(ctx, fileID); err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return ErrFileNotFound
		}
		return fmt.Errorf("%w: Delete: %v", ErrStorage, err)
	}
	return nil
}

// ViewURL возвращает публичную ссылку на просмотр файла
func (s *Storage) ViewURL(fileID string) string {
	return s.publicURL + "/api/v1/files/" + fileID + "/view"
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: Connect: %v", ErrStorage, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: Connect - ping: %v", ErrStorage, err)
	}

	return client, nil
}
