// Package content builds and holds the precomputed representations of the
// single served document.
//
// A Store is constructed exactly once at startup from the document bytes and
// is shared read-only by every request handler for the process lifetime. It
// carries the raw bytes, a gzip-compressed copy made with the best
// compression ratio, and a strong ETag derived from the content, so the
// request path never hashes or compresses anything.
//
// # Basic Usage
//
//	data, err := os.ReadFile("index.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := content.Build(data)
//	fmt.Println(store.ETag, store.UncompressedLength, store.CompressedLength)
//
// # Thread Safety
//
// A Store is immutable after Build returns and is safe for unsynchronized
// concurrent use.
package content
