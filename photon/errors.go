package photon

import "errors"

// ErrTruncatedMap is returned by Deserialize when the input stream ends
// before a complete map has been read.
var ErrTruncatedMap = errors.New("photon: truncated map data")

// ErrUnsupportedVersion is returned by Deserialize when the stream's
// format version is not one this build knows how to read.
var ErrUnsupportedVersion = errors.New("photon: unsupported format version")
