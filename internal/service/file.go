package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/macromind/backend/internal/model"
	"github.com/macromind/backend/internal/repository"
	"github.com/macromind/backend/internal/storage"
)

var ErrStorageDisabled = errors.New("file storage is not configured")

type FileService struct {
	db      *sqlx.DB
	storage storage.Storage
}

// NewFileService accepts a nil storage; uploads then fail with ErrStorageDisabled.
func NewFileService(database *sqlx.DB, storage storage.Storage) *FileService {
	return &FileService{
		db:      database,
		storage: storage,
	}
}

func (s *FileService) Enabled() bool {
	return s.storage != nil
}

// UploadAvatar stores a new avatar and replaces the previous one.
// The file must already be validated by the caller, which supplies the sniffed mimeType.
func (s *FileService) UploadAvatar(ctx context.Context, userID string, file multipart.File, header *multipart.FileHeader, mimeType string) (*model.File, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	ext := filepath.Ext(header.Filename)
	filename := uuid.New().String() + ext
	storagePath := path.Join("public", "avatars", filename)

	err := s.storage.Save(ctx, storagePath, file, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    model.FileOwnerUser,
		OwnerID:      userID,
		Type:         model.FileTypeAvatar,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
		StoragePath:  storagePath,
		Public:       true,
		CreatedAt:    time.Now(),
	}

	previous, _ := repository.NewFileRepository(s.db).FileByType(ctx, model.FileOwnerUser, userID, model.FileTypeAvatar)

	err = repository.NewFileRepository(s.db).Create(ctx, fileModel)
	if err != nil {
		if delErr := s.storage.Delete(ctx, storagePath); delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	if previous != nil {
		if err := s.remove(ctx, previous); err != nil {
			slog.Warn("failed to remove previous avatar", "user_id", userID, "error", err)
		}
	}

	return fileModel, nil
}

// AvatarURL returns a link to the user's avatar, or "" if there is none.
func (s *FileService) AvatarURL(ctx context.Context, userID string) string {
	if s.storage == nil {
		return ""
	}

	file, err := repository.NewFileRepository(s.db).FileByType(ctx, model.FileOwnerUser, userID, model.FileTypeAvatar)
	if err != nil {
		return ""
	}
	return s.storage.URL(ctx, file.StoragePath, file.Public)
}

func (s *FileService) DeleteUserAvatar(ctx context.Context, userID string) error {
	if s.storage == nil {
		return ErrStorageDisabled
	}

	file, err := repository.NewFileRepository(s.db).FileByType(ctx, model.FileOwnerUser, userID, model.FileTypeAvatar)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil
		}
		return err
	}

	return s.remove(ctx, file)
}

// remove deletes the stored object best effort, then the record.
func (s *FileService) remove(ctx context.Context, file *model.File) error {
	if err := s.storage.Delete(ctx, file.StoragePath); err != nil {
		slog.Error("failed to delete file from storage", "error", err, "path", file.StoragePath)
	}

	err := repository.NewFileRepository(s.db).Delete(ctx, file.ID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

func (s *FileService) DeleteAllUserFilesFromStorage(ctx context.Context, userID string) error {
	if s.storage == nil {
		return nil
	}

	files, err := repository.NewFileRepository(s.db).AllUserFiles(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user files: %w", err)
	}

	for _, file := range files {
		err = s.storage.Delete(ctx, file.StoragePath)
		if err != nil {
			// physical file may already be gone
			slog.Warn("failed to delete file from storage", "storage_path", file.StoragePath, "error", err)
		}
	}

	return nil
}
