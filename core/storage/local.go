package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig holds configuration for filesystem storage
type LocalConfig struct {
	BasePath string
	BaseURL  string
}

type localProvider struct {
	basePath string
	baseURL  string
}

// NewLocalProvider stores files under a local directory
func NewLocalProvider(config LocalConfig) (Provider, error) {
	basePath := config.BasePath
	if !filepath.IsAbs(basePath) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		basePath = filepath.Join(cwd, basePath)
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &localProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

func (p *localProvider) Upload(file *multipart.FileHeader, config UploadConfig) (*UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	filename := generateUniqueFilename(file.Filename)
	relPath := filepath.Join(config.UploadPath, filename)
	fullPath := filepath.Join(p.basePath, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		Filename: filename,
		Path:     filepath.ToSlash(relPath),
		Size:     file.Size,
	}, nil
}

func (p *localProvider) Delete(path string) error {
	fullPath := filepath.Join(p.basePath, path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (p *localProvider) GetURL(path string) string {
	return p.baseURL + "/" + strings.TrimPrefix(path, "/")
}
