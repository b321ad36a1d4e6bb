package dto

import "encoding/json"

// DriveItem is an opaque drive-file descriptor; the console lists it, never
// interprets it.
type DriveItem = json.RawMessage

// FolderStat is the flattened, client-facing form of one upstream folder
// record. Upstream sends an array of single-key objects keyed by folder name.
type FolderStat struct {
	Folder string      `json:"folder"`
	Unseen int         `json:"unseen"`
	Items  []DriveItem `json:"items"`
}

type CreateFolderRequest struct {
	Name string `json:"name" validate:"required"`
}

type MoveFileRequest struct {
	FileID string `json:"file_id" validate:"required"`
	Folder string `json:"folder" validate:"required"`
}
