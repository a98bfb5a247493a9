package services

import (
	"context"
	"errors"

	"invoicesflow/internal/models"
	"invoicesflow/internal/storage"
)

// StorageDirectorySetting names the row holding the document storage
// directory identifier shared with the document pipeline.
const StorageDirectorySetting = "google_drive_directory"

type settingService struct {
	repo storage.SettingRepository
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(repo storage.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) Get(ctx context.Context, name string) (*models.Setting, error) {
	setting, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, mapRepoError(err, "getting setting")
	}
	return setting, nil
}

func (s *settingService) Upsert(ctx context.Context, name, value string) (*models.Setting, error) {
	setting, err := s.repo.Upsert(ctx, name, value)
	if err != nil {
		return nil, mapRepoError(err, "upserting setting")
	}
	return setting, nil
}

// StorageDirectory returns the configured directory identifier, or empty when
// the setting was never written.
func (s *settingService) StorageDirectory(ctx context.Context) (string, error) {
	setting, err := s.repo.Get(ctx, StorageDirectorySetting)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", mapRepoError(err, "getting storage directory setting")
	}
	return setting.Value, nil
}
