package service

import (
	"context"
	"fmt"

	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/scanner"
	"github.com/mms8452/baby/internal/thumbs"
)

// Service is the operation surface exposed to the calling layer. All
// methods are synchronous; failures are terminal for that single call and
// never retried.
type Service struct {
	store   *catalog.Store
	scanner *scanner.Scanner
	thumbs  *thumbs.Generator
}

// New wires the catalog store, scanner, and thumbnail generator into the
// operation facade.
func New(store *catalog.Store, sc *scanner.Scanner, gen *thumbs.Generator) *Service {
	return &Service{
		store:   store,
		scanner: sc,
		thumbs:  gen,
	}
}

// ScanFolder catalogs every supported media file under rootPath and
// returns the resulting records, unordered. birthDate may be empty.
// Records are persisted before the call returns.
func (s *Service) ScanFolder(ctx context.Context, rootPath, birthDate string) ([]catalog.FileRecord, error) {
	return s.scanner.Scan(ctx, rootPath, birthDate)
}

// GenerateThumbnail produces (or reuses) the thumbnail for filePath and
// returns the artifact's path.
func (s *Service) GenerateThumbnail(ctx context.Context, filePath string) (string, error) {
	return s.thumbs.Generate(ctx, filePath)
}

// GetFileInfo returns the catalog record for filePath, or
// catalog.ErrRecordNotFound if the path was never scanned.
func (s *Service) GetFileInfo(ctx context.Context, filePath string) (*catalog.FileRecord, error) {
	record, err := s.store.GetFileByPath(ctx, filePath)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", catalog.ErrRecordNotFound, filePath)
	}
	return record, nil
}

// GetAllFiles returns every cataloged record, newest first.
func (s *Service) GetAllFiles(ctx context.Context) ([]catalog.FileRecord, error) {
	return s.store.GetAllFiles(ctx)
}

// SaveSettings updates only the settings that are non-nil; a nil argument
// leaves the other key at its prior value.
func (s *Service) SaveSettings(ctx context.Context, birthDate, folderPath *string) error {
	if birthDate != nil {
		if err := s.store.SetSetting(ctx, catalog.SettingBirthDate, *birthDate); err != nil {
			return err
		}
	}
	if folderPath != nil {
		if err := s.store.SetSetting(ctx, catalog.SettingFolderPath, *folderPath); err != nil {
			return err
		}
	}
	return nil
}

// GetSettings reads the settings bag. Unset keys come back empty.
func (s *Service) GetSettings(ctx context.Context) (catalog.Settings, error) {
	return s.store.GetSettings(ctx)
}

// SaveNote attaches a free-text note to a record. A note on an unknown
// path is a silent no-op, mirroring upsert semantics.
func (s *Service) SaveNote(ctx context.Context, filePath, note string) error {
	return s.store.UpdateNote(ctx, filePath, note)
}

// GetNote returns the note for filePath, or catalog.ErrRecordNotFound if
// the path was never scanned. A nil result on an existing record means no
// note has ever been saved; a saved empty note comes back non-nil.
func (s *Service) GetNote(ctx context.Context, filePath string) (*string, error) {
	note, found, err := s.store.GetNote(ctx, filePath)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", catalog.ErrRecordNotFound, filePath)
	}
	return note, nil
}

// UpdateFileAgeGroup manually overrides a record's age label. An unknown
// path is a silent no-op.
func (s *Service) UpdateFileAgeGroup(ctx context.Context, filePath, ageLabel string) error {
	logging.Debug("Updating age label for %s to %q", filePath, ageLabel)
	return s.store.UpdateAgeLabel(ctx, filePath, ageLabel)
}
