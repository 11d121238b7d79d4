package handlers

import (
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RealtyService/internal/service/properties/models"
)

// ParseMultipart ограничивает размер тела и разбирает multipart форму
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return r.ParseMultipartForm(32 << 20)
}

// FormImages открывает загруженные файлы поля field
// Возвращаемая функция закрывает все открытые файлы
func FormImages(r *http.Request, field string) ([]models.ImageUpload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	if r.MultipartForm == nil {
		return nil, closeAll, nil
	}

	headers := r.MultipartForm.File[field]
	images := make([]models.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		files = append(files, f)

		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			closeAll()
			return nil, func() {}, fmt.Errorf("file %s is not an image", fh.Filename)
		}

		images = append(images, models.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType,
			Content:     f,
		})
	}

	return images, closeAll, nil
}

// FormString возвращает значение поля или nil, если поле не передано
func FormString(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

// FormFloat разбирает необязательное числовое поле
func FormFloat(r *http.Request, key string) (*float64, error) {
	v := FormString(r, key)
	if v == nil || *v == "" {
		return nil, nil
	}
	return ParseFloat(key, *v)
}

// ParseFloat разбирает число из формы или query; NaN и бесконечности не принимаются
func ParseFloat(key, value string) (*float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("invalid %s: must be a finite number", key)
	}
	return &f, nil
}

// FormInt разбирает необязательное целое поле
func FormInt(r *http.Request, key string) (*int, error) {
	v := FormString(r, key)
	if v == nil || *v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &n, nil
}

// FormList собирает значения поля, переданные повтором или через запятую
// nil означает, что поле не передано
func FormList(r *http.Request, key string) []string {
	raw, ok := r.MultipartForm.Value[key]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
