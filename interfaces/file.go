package interf

// File stands for a single entry (file or directory) of a file system listing.
// File is an immutable object!
type File interface {

	// Path is the fully qualified path of the entry. It is unique within one file system.
	// This method is thread safe (File is an immutable object).
	// Example: /logs/2020/03/access.log
	Path() string

	// Name is the last element of the path.
	// This method is thread safe (File is an immutable object).
	// Example: access.log
	Name() string

	// ModTime show the last change or update of the object (unix time; seconds).
	// If a file has never been changed, it's the time of creation.
	// This method is thread safe (File is an immutable object).
	// Example: 1584535538
	ModTime() int64

	// Size is the file size in bytes at listing time. Directories have the size 0.
	// This method is thread safe (File is an immutable object).
	// Example 16317
	Size() int64

	// IsDir reports whether the entry is a directory.
	// This method is thread safe (File is an immutable object).
	IsDir() bool
}
