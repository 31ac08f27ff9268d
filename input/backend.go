package input

import (
	"fmt"
	"log"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	"github.com/SchnorcherSepp/fileinput/gdrive"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
	google "google.golang.org/api/drive/v3"
)

// OpenFileSystem returns the file system of the backend config.
// The ram backend contains the demo files (see impl.InitDemo).
func OpenFileSystem(b Backend, debugLvl uint8) (interf.FileSystem, error) {
	switch b.Type {
	case BackendOS, "":
		return impl.NewOsFS(), nil

	case BackendRAM:
		s := impl.NewRamFS()
		if err := impl.InitDemo(s); err != nil {
			return nil, fmt.Errorf("input/OpenFileSystem: %v", err)
		}
		return s, nil

	case BackendGDrive:
		var service *google.Service
		var err error
		if b.ServiceAccountFile != "" {
			service, err = gdrive.ServiceAccount(b.ServiceAccountFile)
		} else {
			service, err = gdrive.OAuth(b.ClientCredFile, b.TokenFile)
		}
		if err != nil {
			log.Printf("ERROR: %s/OpenFileSystem: %v", packageName, err)
			return nil, err
		}
		return gdrive.NewGDrive(service, b.Root, debugLvl), nil

	default:
		return nil, fmt.Errorf("input/OpenFileSystem: unknown backend type '%s'", b.Type)
	}
}
