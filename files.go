package client

import (
	"context"
	"io"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

// UploadResult is the stored file reference the upload endpoint returns;
// the URL goes into report photos and event covers.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName,omitempty"`
}

// FileService binds the multipart upload endpoint.
type FileService struct {
	client *Client
}

func NewFileService(c *Client) *FileService {
	return &FileService{client: c}
}

// Upload stores one file and returns its public reference.
func (s *FileService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if err := validation.Validate(filename, validation.Required, validation.Length(1, 255)); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid upload filename")
	}

	result := &UploadResult{}
	if err := s.client.Upload(ctx, "/files/upload", "file", filename, r, result); err != nil {
		return nil, err
	}
	return result, nil
}
