// Package mediatypes provides shared type definitions and utilities for
// media file handling across the catalog application.
//
// This package exists as a dependency-free foundation that can be imported
// by other packages without creating import cycles. It contains primitive
// types, constants, and pure utility functions with no external dependencies
// beyond the standard library.
//
// # File Types
//
// The package defines a FileType enum for categorizing media files:
//
//	mediatypes.FileTypeImage // Supported image formats (jpg, png, heic, etc.)
//	mediatypes.FileTypeVideo // Supported video formats (mp4, mov, mkv, etc.)
//	mediatypes.FileTypeOther // Unrecognized or unsupported files
//
// # Extension Detection
//
// Use Classify to determine the type of a file from its name, or
// GetFileType when the lowercased extension is already at hand:
//
//	switch mediatypes.Classify(filename) {
//	case mediatypes.FileTypeImage:
//	    // Handle image
//	case mediatypes.FileTypeVideo:
//	    // Handle video
//	}
//
// The extension sets are exact, closed lists; no content sniffing is
// performed. Files classified as FileTypeOther are excluded from the
// catalog rather than treated as errors.
package mediatypes
