package database

import (
	"bytes"
	"testing"
)

func TestBucketPath(t *testing.T) {
	tests := []struct {
		bucket   *Bucket
		expected []byte
	}{
		{MakeBucket([]byte("hello")), []byte("hello/")},
		{MakeBucket([]byte("hello"), []byte("world")), []byte("hello/world/")},
		{MakeBucket([]byte("hello")).Bucket([]byte("world")), []byte("hello/world/")},
	}

	for _, test := range tests {
		if got := test.bucket.Path(); !bytes.Equal(got, test.expected) {
			t.Errorf("TestBucketPath: got %s, want %s", got, test.expected)
		}
	}
}

func TestKeyBytes(t *testing.T) {
	key := MakeBucket([]byte("hello"), []byte("world")).Key([]byte("key"))

	if got, want := key.Bytes(), []byte("hello/world/key"); !bytes.Equal(got, want) {
		t.Fatalf("TestKeyBytes: got %s, want %s", got, want)
	}
	if got := key.Suffix(); !bytes.Equal(got, []byte("key")) {
		t.Fatalf("TestKeyBytes: suffix is %s, want key", got)
	}
	if got := key.Bucket().Path(); !bytes.Equal(got, []byte("hello/world/")) {
		t.Fatalf("TestKeyBytes: bucket path is %s, want hello/world/", got)
	}
}
