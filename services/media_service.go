package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fucina/flexhibition-api/config"
	"github.com/fucina/flexhibition-api/models"
	"github.com/fucina/flexhibition-api/storage"
)

// MediaService owns the lifecycle of media assets: per-language file upload,
// record creation and update, file cleanup, and the gallery associations.
//
// Create and update are all-or-nothing: files are stored inside the database
// transaction and compensating deletes remove anything written during a
// failed attempt, so no orphan file or partial row survives an error.
type MediaService struct {
	DB   *gorm.DB
	Disk storage.Disk
	Log  *zap.Logger
}

func NewMediaService(db *gorm.DB, disk storage.Disk, log *zap.Logger) *MediaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MediaService{DB: db, Disk: disk, Log: log}
}

// MediaAttrs carries the optional non-translatable attributes of a media
// record: free-form tags and the frontend's custom property bag. Nil fields
// leave the stored value untouched on update.
type MediaAttrs struct {
	Tags             pq.StringArray
	CustomProperties datatypes.JSONMap
}

// CreateMedia stores one uploaded file per language and persists a single
// media record holding the aggregated URL/title/description maps. The type,
// the file handles and the per-language titles are validated before any I/O.
// folder overrides the type's default destination folder when non-empty.
func (s *MediaService) CreateMedia(
	ctx context.Context,
	mediaType models.MediaType,
	files map[string]*multipart.FileHeader,
	titles models.Translations,
	descriptions models.Translations,
	folder string,
	attrs *MediaAttrs,
) (*models.Media, error) {
	settings, ok := config.SettingsForMediaType(mediaType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for lang, file := range files {
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, lang)
		}
		if err := validateFile(file, settings); err != nil {
			return nil, fmt.Errorf("%s: %w", lang, err)
		}
		if !titles.Has(lang) {
			return nil, fmt.Errorf("%w: %s", ErrMissingTitle, lang)
		}
	}
	if folder == "" {
		folder = settings.Folder
	}

	var media *models.Media
	var uploaded []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		urls := models.Translations{}
		for lang, file := range files {
			path, err := s.storeUpload(ctx, file, folder)
			if err != nil {
				return err
			}
			uploaded = append(uploaded, path)
			urls[lang] = s.Disk.URL(path)
		}

		m := &models.Media{
			Type:        mediaType,
			URL:         urls,
			Title:       titles,
			Description: orEmpty(descriptions),
		}
		if attrs != nil {
			m.Tags = attrs.Tags
			m.CustomProperties = attrs.CustomProperties
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		media = m
		return nil
	})
	if err != nil {
		s.removeFiles(ctx, uploaded)
		return nil, err
	}

	s.Log.Info("media created",
		zap.Uint("id", media.ID),
		zap.String("type", string(mediaType)),
		zap.Int("languages", len(files)))
	return media, nil
}

// CreateMediaFromBytes behaves like CreateMedia for content generated by the
// backend itself (QR codes). ext is the file extension without the dot.
func (s *MediaService) CreateMediaFromBytes(
	ctx context.Context,
	mediaType models.MediaType,
	files map[string][]byte,
	ext string,
	titles models.Translations,
	descriptions models.Translations,
	folder string,
) (*models.Media, error) {
	settings, ok := config.SettingsForMediaType(mediaType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if !extensionAllowed(ext, settings) {
		return nil, fmt.Errorf("%w: .%s", ErrExtensionNotAllowed, ext)
	}
	if folder == "" {
		folder = settings.Folder
	}

	var media *models.Media
	var uploaded []string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		urls := models.Translations{}
		for lang, content := range files {
			name := uuid.New().String() + "." + ext
			path, err := s.Disk.Put(ctx, folder+"/"+name, bytes.NewReader(content))
			if err != nil {
				return fmt.Errorf("store file: %w", err)
			}
			uploaded = append(uploaded, path)
			urls[lang] = s.Disk.URL(path)
		}

		m := &models.Media{
			Type:        mediaType,
			URL:         urls,
			Title:       orEmpty(titles),
			Description: orEmpty(descriptions),
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		media = m
		return nil
	})
	if err != nil {
		s.removeFiles(ctx, uploaded)
		return nil, err
	}
	return media, nil
}

// CreateMediaFromURLs persists a media record pointing at already-stored
// URLs, without uploading anything.
func (s *MediaService) CreateMediaFromURLs(
	ctx context.Context,
	mediaType models.MediaType,
	urls models.Translations,
	titles models.Translations,
	descriptions models.Translations,
) (*models.Media, error) {
	if _, ok := config.SettingsForMediaType(mediaType); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}

	media := &models.Media{
		Type:        mediaType,
		URL:         orEmpty(urls),
		Title:       orEmpty(titles),
		Description: orEmpty(descriptions),
	}
	if err := s.DB.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// UpdateMedia replaces files per language and/or the title and description
// maps. A nil files map leaves storage untouched; nil titles/descriptions
// leave that map unchanged, while a non-nil map replaces it wholesale (the
// admin form always resubmits the complete set). The same applies to the
// attrs fields. For each replaced language the new file is stored before the
// old one is removed, and old files are only deleted after the database
// update commits.
func (s *MediaService) UpdateMedia(
	ctx context.Context,
	mediaID uint,
	files map[string]*multipart.FileHeader,
	titles models.Translations,
	descriptions models.Translations,
	folder string,
	attrs *MediaAttrs,
) (*models.Media, error) {
	media, err := s.findMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	settings, _ := config.SettingsForMediaType(media.Type)
	for lang, file := range files {
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, lang)
		}
		if err := validateFile(file, settings); err != nil {
			return nil, fmt.Errorf("%s: %w", lang, err)
		}
	}
	if folder == "" {
		folder = settings.Folder
	}

	var oldPaths, newPaths []string

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		urls := models.Translations{}
		for lang, u := range media.URL {
			urls[lang] = u
		}

		for lang, file := range files {
			if current, ok := urls[lang]; ok {
				if p := s.Disk.PathFromURL(current); p != "" {
					oldPaths = append(oldPaths, p)
				}
			}
			path, err := s.storeUpload(ctx, file, folder)
			if err != nil {
				return err
			}
			newPaths = append(newPaths, path)
			urls[lang] = s.Disk.URL(path)
		}

		updates := map[string]interface{}{}
		if len(files) > 0 {
			updates["url"] = urls
		}
		if titles != nil {
			updates["title"] = titles
		}
		if descriptions != nil {
			updates["description"] = descriptions
		}
		if attrs != nil {
			if attrs.Tags != nil {
				updates["tags"] = attrs.Tags
			}
			if attrs.CustomProperties != nil {
				updates["custom_properties"] = attrs.CustomProperties
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(media).Updates(updates).Error
	})
	if err != nil {
		s.removeFiles(ctx, newPaths)
		return nil, err
	}

	// Old files go away only once the new state is committed.
	s.removeFiles(ctx, oldPaths)

	return s.findMedia(ctx, mediaID)
}

// DeleteMedia removes the record and every stored file across all languages.
// The record deletion commits first; file removal afterwards is best-effort
// and failures are logged, so a storage hiccup can leave a stray file but
// never a record pointing at missing files.
func (s *MediaService) DeleteMedia(ctx context.Context, mediaID uint) error {
	media, err := s.findMedia(ctx, mediaID)
	if err != nil {
		return err
	}

	var paths []string
	for _, u := range media.URL {
		if p := s.Disk.PathFromURL(u); p != "" {
			paths = append(paths, p)
		}
	}

	if err := s.DB.WithContext(ctx).Delete(media).Error; err != nil {
		return err
	}

	for _, p := range paths {
		if err := s.Disk.Delete(ctx, p); err != nil {
			s.Log.Warn("orphan file left after media delete",
				zap.Uint("id", mediaID),
				zap.String("path", p),
				zap.Error(err))
		}
	}

	s.Log.Info("media deleted", zap.Uint("id", mediaID), zap.Int("files", len(paths)))
	return nil
}

// GetMediaByType returns all media records of one type.
func (s *MediaService) GetMediaByType(ctx context.Context, mediaType models.MediaType) ([]models.Media, error) {
	var media []models.Media
	err := s.DB.WithContext(ctx).Where("type = ?", mediaType).Find(&media).Error
	return media, err
}

func (s *MediaService) findMedia(ctx context.Context, mediaID uint) (*models.Media, error) {
	var media models.Media
	if err := s.DB.WithContext(ctx).First(&media, mediaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrMediaNotFound, mediaID)
		}
		return nil, err
	}
	return &media, nil
}

func (s *MediaService) storeUpload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	path, err := s.Disk.Put(ctx, folder+"/"+name, src)
	if err != nil {
		return "", fmt.Errorf("store file: %w", err)
	}
	return path, nil
}

func (s *MediaService) removeFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.Disk.Delete(ctx, p); err != nil {
			s.Log.Warn("failed to remove file", zap.String("path", p), zap.Error(err))
		}
	}
}

func validateFile(file *multipart.FileHeader, settings config.MediaTypeSettings) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if !extensionAllowed(ext, settings) {
		return fmt.Errorf("%w: .%s", ErrExtensionNotAllowed, ext)
	}
	if file.Size > settings.MaxSizeKB*1024 {
		return ErrFileTooLarge
	}
	return nil
}

func extensionAllowed(ext string, settings config.MediaTypeSettings) bool {
	for _, allowed := range settings.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func orEmpty(t models.Translations) models.Translations {
	if t == nil {
		return models.Translations{}
	}
	return t
}

// MediaPayload is the shape the admin frontend consumes: the id, the type and
// the raw per-language maps.
type MediaPayload struct {
	ID               uint                `json:"id,omitempty"`
	Type             models.MediaType    `json:"type,omitempty"`
	URL              models.Translations `json:"url"`
	Title            models.Translations `json:"title"`
	Description      models.Translations `json:"description"`
	Tags             pq.StringArray      `json:"tags,omitempty"`
	CustomProperties datatypes.JSONMap   `json:"custom_properties,omitempty"`
}

// FormatMedia renders a media record for the frontend; a nil record formats
// as empty maps so the form can always bind.
func FormatMedia(m *models.Media) MediaPayload {
	if m == nil {
		return MediaPayload{
			URL:         models.Translations{},
			Title:       models.Translations{},
			Description: models.Translations{},
		}
	}
	return MediaPayload{
		ID:               m.ID,
		Type:             m.Type,
		URL:              m.URL,
		Title:            m.Title,
		Description:      m.Description,
		Tags:             m.Tags,
		CustomProperties: m.CustomProperties,
	}
}
