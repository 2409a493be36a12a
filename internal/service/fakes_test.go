package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
	"studymate/internal/storage"
)

// In-memory repository fakes. They mirror the scoping and error behavior of
// the postgres implementations: course-scoped lookups miss on wrong course,
// and missing rows surface as domain.ErrNotFound.

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*models.Course
	nextID  int
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*models.Course)}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	course.ID = fmt.Sprintf("course-%d", r.nextID)
	c := *course
	r.courses[course.ID] = &c
	return nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}
	c := *course
	return &c, nil
}

func (r *fakeCourseRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Course
	for _, course := range r.courses {
		if course.OwnerID == ownerID {
			out = append(out, *course)
		}
	}
	return out, nil
}

type fakeFolderRepo struct {
	mu        sync.Mutex
	folders   map[string]*models.Folder
	nextID    int
	createErr error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	folder.ID = fmt.Sprintf("folder-%d", r.nextID)
	f := *folder
	r.folders[folder.ID] = &f
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, courseID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.CourseID != courseID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f := *folder
	return &f, nil
}

func (r *fakeFolderRepo) GetByIDOnly(ctx context.Context, id string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f := *folder
	return &f, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}
	f := *folder
	r.folders[folder.ID] = &f
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	folder, ok := r.folders[id]
	if !ok || folder.CourseID != courseID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, folderID *string, courseID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.CourseID != courseID {
			continue
		}
		if sameParent(folder.ParentID, folderID) {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) GetPath(ctx context.Context, folderID *string, courseID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if folderID == nil {
		return "", nil
	}
	var parts []string
	currentID := *folderID
	for {
		folder, ok := r.folders[currentID]
		if !ok || folder.CourseID != courseID {
			return "", fmt.Errorf("folder %s: %w", currentID, domain.ErrNotFound)
		}
		parts = append([]string{folder.Name}, parts...)
		if folder.ParentID == nil {
			break
		}
		currentID = *folder.ParentID
	}
	return strings.Join(parts, "/"), nil
}

func (r *fakeFolderRepo) GetAllByCourse(ctx context.Context, courseID string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.CourseID == courseID {
			out = append(out, *folder)
		}
	}
	return out, nil
}

type fakeFileRepo struct {
	mu        sync.Mutex
	files     map[string]*models.File
	nextID    int
	createErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.File)}
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	file.ID = fmt.Sprintf("file-%d", r.nextID)
	f := *file
	r.files[file.ID] = &f
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, courseID string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok || file.CourseID != courseID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	f := *file
	return &f, nil
}

func (r *fakeFileRepo) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	f := *file
	return &f, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id, courseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok || file.CourseID != courseID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(ctx context.Context, folderID *string, courseID string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.File
	for _, file := range r.files {
		if file.CourseID != courseID {
			continue
		}
		if sameParent(file.FolderID, folderID) {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) GetAllByCourse(ctx context.Context, courseID string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.File
	for _, file := range r.files {
		if file.CourseID == courseID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// fakeObjectStore records puts and removes in memory
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]int64 // key -> size
	nextKey int
	putErr  error
	remErr  error
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]int64)}
}

func (s *fakeObjectStore) Put(ctx context.Context, content io.Reader, size int64, opts storage.PutOptions) (*storage.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return nil, s.putErr
	}
	s.nextKey++
	key := fmt.Sprintf("%s/object-%d", opts.CourseID, s.nextKey)
	s.objects[key] = size
	return &storage.StoredObject{
		Key:         key,
		URL:         "https://store.test/" + key,
		ContentType: opts.ContentType,
		Size:        size,
	}, nil
}

func (s *fakeObjectStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, key)
	if s.remErr != nil {
		return s.remErr
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeObjectStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return "", &domain.StorageError{Op: "presign", Err: fmt.Errorf("no such object %s", key)}
	}
	return fmt.Sprintf("https://store.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func (s *fakeObjectStore) objectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeTxManager runs the function directly; the fakes have no transactions
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
