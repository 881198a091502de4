package store

import "context"

// Photos are stored next to the collections in the key/value substrate, one
// blob per equipment record, and are deleted with the record.

func photoKey(id string) string     { return "photo:" + id }
func photoMIMEKey(id string) string { return "photo_mime:" + id }

// SetPhoto stores a processed photo for an existing equipment record.
func (s *Store) SetPhoto(ctx context.Context, id string, data []byte, mime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return ErrEquipmentNotFound
	}

	if err := s.db.Put(ctx, photoKey(id), data); err != nil {
		return err
	}
	return s.db.Put(ctx, photoMIMEKey(id), []byte(mime))
}

// Photo returns the stored photo and its MIME type, or nil data when the
// record has no photo.
func (s *Store) Photo(ctx context.Context, id string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.db.Get(ctx, photoKey(id))
	if err != nil || data == nil {
		return nil, "", err
	}
	mime, err := s.db.Get(ctx, photoMIMEKey(id))
	if err != nil {
		return nil, "", err
	}
	return data, string(mime), nil
}

// deletePhoto removes a record's photo blobs. Callers must hold the mutex.
func (s *Store) deletePhoto(ctx context.Context, id string) error {
	if err := s.db.Delete(ctx, photoKey(id)); err != nil {
		return err
	}
	return s.db.Delete(ctx, photoMIMEKey(id))
}
