package interf

// Partial describes a contiguous byte range [Start, End) of one file.
// It is the unit of work that is handed to exactly one worker.
// Partial is an immutable object!
type Partial interface {

	// Path of the source file.
	Path() string

	// Start is the first byte of the range (inclusive).
	Start() int64

	// End is the end of the range (exclusive). End is always greater than Start.
	End() int64

	// Size is End - Start.
	Size() int64

	// String returns 'path[start,end)' for logging.
	String() string
}
