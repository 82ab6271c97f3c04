package content

import (
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"fmt"
)

// Store holds every servable representation of the document. All fields are
// computed once in Build and never change afterwards; handlers share a single
// *Store and must treat the byte slices as read-only.
type Store struct {
	// ETag is the strong validator for the document: the lowercase hex md5
	// digest of the uncompressed bytes, wrapped in double quotes as it
	// appears on the wire.
	ETag string

	// Uncompressed is the document exactly as read from disk.
	Uncompressed []byte

	// Compressed is the document under gzip.BestCompression.
	Compressed []byte

	// UncompressedLength and CompressedLength are the byte counts of the two
	// representations, precomputed for Content-Length headers.
	UncompressedLength int
	CompressedLength   int
}

// Build constructs a Store from the document bytes. It cannot fail: hashing
// and gzip-compressing arbitrary bytes are total operations.
func Build(data []byte) *Store {
	digest := md5.Sum(data)
	compressed := compress(data)

	return &Store{
		ETag:               fmt.Sprintf("%q", fmt.Sprintf("%x", digest)),
		Uncompressed:       data,
		Compressed:         compressed,
		UncompressedLength: len(data),
		CompressedLength:   len(compressed),
	}
}

// compress runs data through a one-shot gzip encoder at the best compression
// ratio. Writes to a bytes.Buffer cannot fail, so errors are impossible here.
func compress(data []byte) []byte {
	var buf bytes.Buffer
	zw, _ := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	_, _ = zw.Write(data)
	_ = zw.Close()
	return buf.Bytes()
}
