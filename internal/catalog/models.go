package catalog

import (
	"errors"

	"github.com/mms8452/baby/internal/mediatypes"
)

// ErrRecordNotFound is returned by operations that require an existing
// record for a path that was never scanned. Point lookups on the Store
// itself return (nil, nil) instead; callers that need a hard failure wrap
// the absence in this sentinel.
var ErrRecordNotFound = errors.New("no catalog record for path")

// FileRecord is one cataloged media file's metadata row.
//
// Path is the unique key: re-scanning the same path overwrites the prior
// record rather than appending a new one. ID is assigned by the store on
// first insert and stable across upserts.
type FileRecord struct {
	ID            int64               `json:"id"`
	Path          string              `json:"path"`
	Name          string              `json:"name"`
	Kind          mediatypes.FileType `json:"kind"`
	MimeType      string              `json:"mimeType"`
	CreatedAt     int64               `json:"createdAt"`
	ModifiedAt    int64               `json:"modifiedAt"`
	AgeLabel      string              `json:"ageLabel"`
	ThumbnailPath string              `json:"thumbnailPath,omitempty"`
	Note          string              `json:"note,omitempty"`
}

// Settings holds the fixed-key settings bag. Empty fields mean the key
// has never been saved.
type Settings struct {
	BirthDate  string `json:"babyBirthDate,omitempty"`
	FolderPath string `json:"folderPath,omitempty"`
}

// Settings keys as stored in the settings table.
const (
	SettingBirthDate  = "baby_birth_date"
	SettingFolderPath = "folder_path"
)
