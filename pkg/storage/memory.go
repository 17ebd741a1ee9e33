package storage

import (
	"context"
	"sync"
)

// MemoryStorage keeps uploaded objects in process. It backs local runs
// without an S3 endpoint.
type MemoryStorage struct {
	mu             sync.RWMutex
	publicEndpoint string
	objects        map[string][]byte
}

func NewMemoryStorage(publicEndpoint string) *MemoryStorage {
	return &MemoryStorage{
		publicEndpoint: publicEndpoint,
		objects:        map[string][]byte{},
	}
}

func (s *MemoryStorage) Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error) {
	resp := generateUploadURL(s.publicEndpoint, object)

	data := make([]byte, len(object.Data))
	copy(data, object.Data)

	s.mu.Lock()
	s.objects[object.Bucket+"/"+resp.FileName] = data
	s.mu.Unlock()

	return resp, nil
}

func (s *MemoryStorage) BulkUpload(ctx context.Context, objects []*UploadObject) ([]*UploadResponse, error) {
	out := make([]*UploadResponse, 0, len(objects))
	for _, o := range objects {
		resp, err := s.Upload(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get returns the stored bytes of an uploaded object.
func (s *MemoryStorage) Get(bucket, fileName string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.objects[bucket+"/"+fileName]
	return b, ok
}

func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
