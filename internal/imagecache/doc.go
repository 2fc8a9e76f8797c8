// Package imagecache stores poster image bytes on disk, content-addressed by
// a hash of the catalog-relative image path. Blobs are write-once with no
// expiry and committed with an atomic rename so racing writers cannot leave a
// torn file behind.
package imagecache
