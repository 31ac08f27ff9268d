package interf

// Files is an ordered list of files, usually the result of a listing.
// Files and File are immutable objects!
type Files interface {

	// All returns all files in listing order.
	// The list is created with every call and can be changed safely.
	// This method is thread safe (Files is an immutable object).
	All() []File

	// ByPath returns the file with the requested path.
	// If no file is found, the os.ErrNotExist error is returned.
	// This method is thread safe (Files is an immutable object).
	ByPath(path string) (File, error)

	// ByName returns the latest (File.ModTime) file found with the requested name.
	// If no file is found, the os.ErrNotExist error is returned.
	// This method is thread safe (Files is an immutable object).
	ByName(name string) (File, error)

	// TotalSize is the sum of all file sizes in bytes (integer accumulation, no overflow check).
	// This method is thread safe (Files is an immutable object).
	TotalSize() int64

	// Len is the number of files.
	Len() int
}
