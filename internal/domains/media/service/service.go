package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"alupro-backend/internal/domains/media/model"
	settingsModel "alupro-backend/internal/domains/settings/model"
	"alupro-backend/pkg/logger"
)

type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ImageValidator interface {
	ValidateImage(data []byte) error
}

// VideoValidator returns the sniffed content type and file extension
type VideoValidator func(data []byte) (contentType, ext string, err error)

// SettingsUpdater points a site setting at the uploaded URL
type SettingsUpdater interface {
	Update(ctx context.Context, req settingsModel.UpdateRequest, updatedBy *uuid.UUID) (settingsModel.SiteSettings, error)
}

// Settings that may reference an upload of each kind
var settingTargets = map[model.Kind]map[string]bool{
	model.KindImage: {
		settingsModel.KeySiteLogo:         true,
		settingsModel.KeyHeroBackground:   true,
		settingsModel.KeyImagesBackground: true,
	},
	model.KindVideo: {
		settingsModel.KeyIntroVideoURL: true,
	},
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

type MediaService interface {
	UploadImage(ctx context.Context, data []byte, setting string, uploadedBy *uuid.UUID) (*model.Upload, error)
	UploadVideo(ctx context.Context, data []byte, setting string, uploadedBy *uuid.UUID) (*model.Upload, error)
}

type mediaService struct {
	storage       ObjectStorage
	images        ImageValidator
	validateVideo VideoValidator
	settings      SettingsUpdater
}

func NewMediaService(storage ObjectStorage, images ImageValidator, videos VideoValidator, settings SettingsUpdater) MediaService {
	return &mediaService{storage: storage, images: images, validateVideo: videos, settings: settings}
}

// UploadImage stores logos and backgrounds untouched so PNG transparency survives
func (s *mediaService) UploadImage(ctx context.Context, data []byte, setting string, uploadedBy *uuid.UUID) (*model.Upload, error) {
	if err := s.checkSetting(model.KindImage, setting); err != nil {
		return nil, err
	}
	if err := s.images.ValidateImage(data); err != nil {
		return nil, model.ErrInvalidMedia.Wrap(err)
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, model.ErrInvalidMedia.Wrap(fmt.Errorf("unexpected content type %s", contentType))
	}

	return s.store(ctx, model.KindImage, data, contentType, ext, setting, uploadedBy)
}

func (s *mediaService) UploadVideo(ctx context.Context, data []byte, setting string, uploadedBy *uuid.UUID) (*model.Upload, error) {
	if err := s.checkSetting(model.KindVideo, setting); err != nil {
		return nil, err
	}
	contentType, ext, err := s.validateVideo(data)
	if err != nil {
		return nil, model.ErrInvalidMedia.Wrap(err)
	}

	return s.store(ctx, model.KindVideo, data, contentType, ext, setting, uploadedBy)
}

func (s *mediaService) checkSetting(kind model.Kind, setting string) error {
	if setting == "" || settingTargets[kind][setting] {
		return nil
	}
	return model.ErrInvalidSetting
}

func (s *mediaService) store(ctx context.Context, kind model.Kind, data []byte, contentType, ext, setting string, uploadedBy *uuid.UUID) (*model.Upload, error) {
	key := fmt.Sprintf("%s%s.%s", kind.Folder(), uuid.New(), ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		logger.ErrorWithFields("Media upload failed", err, map[string]interface{}{"key": key})
		return nil, model.ErrUploadFailed.Wrap(err)
	}

	upload := &model.Upload{URL: url, Key: key, ContentType: contentType, Size: len(data)}

	if setting != "" {
		if _, err := s.settings.Update(ctx, settingsModel.UpdateRequest{setting: url}, uploadedBy); err != nil {
			return nil, err
		}
		upload.Setting = setting
	}

	logger.Info("Media uploaded", map[string]interface{}{"key": key, "kind": kind, "setting": setting})
	return upload, nil
}
