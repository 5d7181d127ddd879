package model

import (
	"time"

	"github.com/google/uuid"
)

type PhotoType string

const (
	PhotoTypeBefore  PhotoType = "before"
	PhotoTypeDuring  PhotoType = "during"
	PhotoTypeAfter   PhotoType = "after"
	PhotoTypePart    PhotoType = "part"
	PhotoTypeGeneral PhotoType = "general"
)

// Photo holds a reference to an uploaded image. The bytes live in object
// storage; only the key and public URL are stored here.
type Photo struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	PartID       *uuid.UUID
	Filename     string
	OriginalName string
	URL          string
	StorageKey   string
	MimeType     string
	Size         int64
	Description  string
	PhotoType    PhotoType
	UploadedBy   *uuid.UUID
	CreatedAt    time.Time
}
