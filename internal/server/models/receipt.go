package models

import "time"

// Receipt is attachment metadata for an expense. The file bytes live in
// S3-compatible storage under StorageKey; OCRText/OCRData are filled by an
// external processing job once IsProcessed flips.
type Receipt struct {
	ID          int64
	ExpenseID   int64
	FileName    string
	StorageKey  string
	OCRText     string
	OCRData     []byte
	IsProcessed bool
	UploadedAt  time.Time
}
