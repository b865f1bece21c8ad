package database

import (
	"bytes"
	"encoding/hex"
)

var bucketSeparator = []byte("/")

// Bucket is a helper type meant to combine buckets, sub-buckets, and keys
// into a single full key-value database key.
type Bucket struct {
	path [][]byte
}

// MakeBucket creates a new Bucket using the given path of buckets.
func MakeBucket(path ...[]byte) *Bucket {
	return &Bucket{path: path}
}

// Bucket returns the sub-bucket of the current bucket defined by bucketBytes.
func (b *Bucket) Bucket(bucketBytes []byte) *Bucket {
	newPath := make([][]byte, len(b.path)+1)
	copy(newPath, b.path)
	newPath[len(b.path)] = bucketBytes

	return MakeBucket(newPath...)
}

// Key returns a key in the current bucket with the given suffix.
func (b *Bucket) Key(suffix []byte) *Key {
	return &Key{bucket: b, suffix: suffix}
}

// Path returns the full path of the current bucket, including the trailing
// separator.
func (b *Bucket) Path() []byte {
	bucketPath := bytes.Join(b.path, bucketSeparator)

	bucketPathWithFinalSeparator := make([]byte, len(bucketPath)+len(bucketSeparator))
	copy(bucketPathWithFinalSeparator, bucketPath)
	copy(bucketPathWithFinalSeparator[len(bucketPath):], bucketSeparator)

	return bucketPathWithFinalSeparator
}

// Key is a full database key composed of a bucket path and a key suffix.
type Key struct {
	bucket *Bucket
	suffix []byte
}

// Bytes returns the full key as a byte slice.
func (k *Key) Bytes() []byte {
	bucketPath := k.bucket.Path()
	fullKey := make([]byte, len(bucketPath)+len(k.suffix))
	copy(fullKey, bucketPath)
	copy(fullKey[len(bucketPath):], k.suffix)
	return fullKey
}

func (k *Key) String() string {
	return hex.EncodeToString(k.Bytes())
}

// Bucket returns the bucket part of the key.
func (k *Key) Bucket() *Bucket {
	return k.bucket
}

// Suffix returns the key suffix, i.e. the part of the key that is not the
// bucket path.
func (k *Key) Suffix() []byte {
	return k.suffix
}
