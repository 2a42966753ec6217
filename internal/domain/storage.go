package domain

import "io"

// Destination folders for stored images, relative to the upload root.
const (
	ProfileImageFolder = "perfil"
	EventImageFolder   = "eventos"
)

// ImageStore persists uploaded image files (infrastructure port).
type ImageStore interface {
	// Save stores the contents under the folder and returns the stored file
	// name. The stored name is generated by the implementation; the original
	// fileName is only consulted for its extension.
	Save(folder, fileName string, contents io.Reader) (storedName string, err error)
	// Delete removes a previously stored file. Deleting a missing file is
	// not an error.
	Delete(folder, storedName string) error
}
