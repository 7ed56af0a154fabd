package storage

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is a stored file linked to a model field
type Attachment struct {
	Id        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
	ModelType string         `json:"model_type" gorm:"index"`
	ModelId   uint           `json:"model_id" gorm:"index"`
	Field     string         `json:"field"`
	Filename  string         `json:"filename"`
	Path      string         `json:"path"`
	URL       string         `json:"url"`
	Size      int64          `json:"size"`
}

// TableName returns the table name for the Attachment model
func (a *Attachment) TableName() string {
	return "attachments"
}

// Attachable is implemented by models that can own attachments
type Attachable interface {
	GetId() uint
	GetModelName() string
}

// UploadConfig constrains a single upload
type UploadConfig struct {
	AllowedExtensions []string
	MaxFileSize       int64
	UploadPath        string
}

// UploadResult describes a stored file
type UploadResult struct {
	Filename string
	Path     string
	Size     int64
}

// Provider stores and serves file content
type Provider interface {
	Upload(file *multipart.FileHeader, config UploadConfig) (*UploadResult, error)
	Delete(path string) error
	GetURL(path string) string
}

// AttachmentConfig declares an attachable field on a model
type AttachmentConfig struct {
	Field             string
	Path              string
	AllowedExtensions []string
	MaxFileSize       int64
}

// Config selects and configures the storage provider
type Config struct {
	Provider  string
	Path      string
	BaseURL   string
	APIKey    string
	APISecret string
	Endpoint  string
	Bucket    string
	Region    string
}

// ActiveStorage manages attachments: provider-backed file content plus a
// database record per stored file.
type ActiveStorage struct {
	db       *gorm.DB
	provider Provider
	configs  map[string]map[string]AttachmentConfig
}

// NewActiveStorage builds an ActiveStorage for the configured provider and
// migrates the attachments table.
func NewActiveStorage(db *gorm.DB, config Config) (*ActiveStorage, error) {
	var provider Provider
	var err error

	switch strings.ToLower(config.Provider) {
	case "local", "":
		provider, err = NewLocalProvider(LocalConfig{
			BasePath: config.Path,
			BaseURL:  config.BaseURL,
		})
	case "s3":
		provider, err = NewS3Provider(S3Config{
			AccessKeyID:     config.APIKey,
			AccessKeySecret: config.APISecret,
			Endpoint:        config.Endpoint,
			Bucket:          config.Bucket,
			BaseURL:         config.BaseURL,
			Region:          config.Region,
		})
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage provider: %w", err)
	}

	as := &ActiveStorage{
		db:       db,
		provider: provider,
		configs:  make(map[string]map[string]AttachmentConfig),
	}

	if err := db.AutoMigrate(&Attachment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate attachments table: %w", err)
	}
	return as, nil
}

// RegisterAttachment declares an attachable field for a model
func (as *ActiveStorage) RegisterAttachment(modelName string, config AttachmentConfig) {
	if as.configs[modelName] == nil {
		as.configs[modelName] = make(map[string]AttachmentConfig)
	}
	as.configs[modelName][config.Field] = config
}

// Attach validates, stores and records a file for the model field
func (as *ActiveStorage) Attach(model Attachable, field string, file *multipart.FileHeader) (*Attachment, error) {
	config, err := as.getConfig(model.GetModelName(), field)
	if err != nil {
		return nil, err
	}
	if err := validateFile(file, config); err != nil {
		return nil, err
	}

	result, err := as.provider.Upload(file, UploadConfig{
		AllowedExtensions: config.AllowedExtensions,
		MaxFileSize:       config.MaxFileSize,
		UploadPath:        filepath.Join(config.Path, model.GetModelName(), field),
	})
	if err != nil {
		return nil, err
	}

	attachment := &Attachment{
		ModelType: model.GetModelName(),
		ModelId:   model.GetId(),
		Field:     field,
		Filename:  result.Filename,
		Path:      result.Path,
		URL:       as.provider.GetURL(result.Path),
		Size:      result.Size,
	}

	if err := as.db.Create(attachment).Error; err != nil {
		_ = as.provider.Delete(result.Path)
		return nil, err
	}
	return attachment, nil
}

// Delete removes the stored file and its record
func (as *ActiveStorage) Delete(attachment *Attachment) error {
	if err := as.provider.Delete(attachment.Path); err != nil {
		return err
	}
	return as.db.Delete(attachment).Error
}

// LoadAttachment fetches the attachment record for a model field
func (as *ActiveStorage) LoadAttachment(model Attachable, field string) (*Attachment, error) {
	var attachment Attachment
	err := as.db.Where("model_type = ? AND model_id = ? AND field = ?",
		model.GetModelName(), model.GetId(), field).First(&attachment).Error
	if err != nil {
		return nil, err
	}
	attachment.URL = as.provider.GetURL(attachment.Path)
	return &attachment, nil
}

func (as *ActiveStorage) getConfig(modelName, field string) (AttachmentConfig, error) {
	modelConfigs, ok := as.configs[modelName]
	if !ok {
		return AttachmentConfig{}, fmt.Errorf("no attachment config found for model %s", modelName)
	}
	config, ok := modelConfigs[field]
	if !ok {
		return AttachmentConfig{}, fmt.Errorf("no attachment config found for field %s in model %s", field, modelName)
	}
	return config, nil
}

func validateFile(file *multipart.FileHeader, config AttachmentConfig) error {
	if config.MaxFileSize > 0 && file.Size > config.MaxFileSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", config.MaxFileSize)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(config.AllowedExtensions) > 0 {
		allowed := false
		for _, e := range config.AllowedExtensions {
			if e == ext {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("file extension %s is not allowed", ext)
		}
	}
	return nil
}

func generateUniqueFilename(original string) string {
	ext := filepath.Ext(original)
	return uuid.NewString() + ext
}
