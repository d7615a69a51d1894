package mocks

import (
	"fmt"
	"sync/atomic"

	"diotrix/internal/storage"
)

type BlobStoreMock struct {
	SaveFunc           func(base64Data, extension, fileName string) (*storage.SavedBlob, error)
	DeleteFunc         func(uri string) error
	ClearDirectoryFunc func() error
	ListFilesFunc      func() ([]string, error)

	saveCount atomic.Int64

	DeletedURIs []string
}

func (m *BlobStoreMock) Save(base64Data, extension, fileName string) (*storage.SavedBlob, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(base64Data, extension, fileName)
	}
	n := m.saveCount.Add(1)
	name := fmt.Sprintf("blob-%d.png", n)
	return &storage.SavedBlob{URI: "/gallery/" + name, FileName: name}, nil
}

func (m *BlobStoreMock) Delete(uri string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(uri)
	}
	m.DeletedURIs = append(m.DeletedURIs, uri)
	return nil
}

func (m *BlobStoreMock) ClearDirectory() error {
	if m.ClearDirectoryFunc != nil {
		return m.ClearDirectoryFunc()
	}
	return nil
}

func (m *BlobStoreMock) ListFiles() ([]string, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc()
	}
	return nil, nil
}
