package transfer

import (
	"bytes"
	"io"
)

// fakeShare is an in-memory remote.Share for engine tests. It records every
// mkdir attempt so memoization can be verified by counting calls.
type fakeShare struct {
	mkdirCalls []string
	mkdirErr   map[string]error // per-path mkdir failure injection
	createErr  map[string]error // per-path create failure injection
	files      map[string][]byte
	unmounted  bool
}

func newFakeShare() *fakeShare {
	return &fakeShare{
		mkdirErr:  map[string]error{},
		createErr: map[string]error{},
		files:     map[string][]byte{},
	}
}

func (f *fakeShare) Mkdir(path string) error {
	f.mkdirCalls = append(f.mkdirCalls, path)
	return f.mkdirErr[path]
}

func (f *fakeShare) Create(path string) (io.WriteCloser, error) {
	if err := f.createErr[path]; err != nil {
		return nil, err
	}
	return &fakeFile{share: f, path: path}, nil
}

func (f *fakeShare) Umount() error {
	f.unmounted = true
	return nil
}

// mkdirCount returns how many mkdir attempts hit the given path
func (f *fakeShare) mkdirCount(path string) int {
	n := 0
	for _, p := range f.mkdirCalls {
		if p == path {
			n++
		}
	}
	return n
}

type fakeFile struct {
	share *fakeShare
	path  string
	buf   bytes.Buffer
}

func (f *fakeFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *fakeFile) Close() error {
	f.share.files[f.path] = f.buf.Bytes()
	return nil
}
