package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/cache"
)

// fakeStore is an in-memory stand-in for the three repositories sharing one dataset.
type fakeStore struct {
	mu        sync.Mutex
	faculties map[int64]*models.Faculty
	students  map[int64]*models.Student
	avatars   map[int64]*models.Avatar // keyed by avatar id
	nextID    int64

	avatarReads int
	upsertErr   error
	// commitErr fails a transaction after its file callback ran, leaving rows untouched.
	commitErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		faculties: map[int64]*models.Faculty{},
		students:  map[int64]*models.Student{},
		avatars:   map[int64]*models.Avatar{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addFaculty(name, color string) *models.Faculty {
	f.mu.Lock()
	defer f.mu.Unlock()
	fac := &models.Faculty{ID: f.id(), Name: name, Color: color}
	f.faculties[fac.ID] = fac
	return fac
}

func (f *fakeStore) addStudent(name string, age int, facultyID int64) *models.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := &models.Student{ID: f.id(), Name: name, Age: age, FacultyID: facultyID}
	f.students[st.ID] = st
	return st
}

func (f *fakeStore) addAvatar(studentID *int64, path string) *models.Avatar {
	f.mu.Lock()
	defer f.mu.Unlock()
	av := &models.Avatar{ID: f.id(), StudentID: studentID, FilePath: path, FileSize: 1, MediaType: "image/png"}
	f.avatars[av.ID] = av
	return av
}

func (f *fakeStore) withFaculty(st *models.Student) *models.Student {
	cp := *st
	if fac, ok := f.faculties[st.FacultyID]; ok {
		fc := *fac
		cp.Faculty = &fc
	}
	return &cp
}

func (f *fakeStore) sortedStudents(keep func(*models.Student) bool) []*models.Student {
	out := []*models.Student{}
	for _, st := range f.students {
		if keep == nil || keep(st) {
			out = append(out, f.withFaculty(st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStore) avatarOf(studentID int64) *models.Avatar {
	for _, av := range f.avatars {
		if av.StudentID != nil && *av.StudentID == studentID {
			return av
		}
	}
	return nil
}

// facultyRepo

type fakeFacultyRepo struct{ *fakeStore }

func (r fakeFacultyRepo) CreateFaculty(_ context.Context, faculty *models.Faculty) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.faculties {
		if f.Name == faculty.Name {
			return 0, apperrors.ErrFacultyAlreadyExists
		}
	}
	fac := *faculty
	fac.ID = r.id()
	r.faculties[fac.ID] = &fac
	return fac.ID, nil
}

func (r fakeFacultyRepo) GetFacultyByID(_ context.Context, id int64) (*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.faculties[id]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	cp := *f
	return &cp, nil
}

func (r fakeFacultyRepo) GetAllFaculties(_ context.Context) ([]*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filterFaculties(nil), nil
}

func (r fakeFacultyRepo) filterFaculties(keep func(*models.Faculty) bool) []*models.Faculty {
	out := []*models.Faculty{}
	for _, f := range r.faculties {
		if keep == nil || keep(f) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeFacultyRepo) UpdateFaculty(_ context.Context, faculty *models.Faculty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[faculty.ID]; !ok {
		return apperrors.ErrFacultyNotFound
	}
	cp := *faculty
	r.faculties[faculty.ID] = &cp
	return nil
}

func (r fakeFacultyRepo) DeleteFaculty(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[id]; !ok {
		return apperrors.ErrFacultyNotFound
	}
	delete(r.faculties, id)
	for sid, st := range r.students {
		if st.FacultyID == id {
			delete(r.students, sid)
			if av := r.avatarOf(sid); av != nil {
				av.StudentID = nil
			}
		}
	}
	return nil
}

func (r fakeFacultyRepo) CountFaculties(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.faculties)), nil
}

func (r fakeFacultyRepo) FindFacultiesByColor(_ context.Context, fragment string) ([]*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filterFaculties(func(f *models.Faculty) bool {
		return strings.Contains(strings.ToLower(f.Color), strings.ToLower(fragment))
	}), nil
}

func (r fakeFacultyRepo) FindFacultiesByNameOrColor(_ context.Context, name, color string) ([]*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filterFaculties(func(f *models.Faculty) bool {
		return (name != "" && strings.EqualFold(f.Name, name)) || (color != "" && strings.EqualFold(f.Color, color))
	}), nil
}

func (r fakeFacultyRepo) FindFacultyByNameFragment(_ context.Context, fragment string) (*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := r.filterFaculties(func(f *models.Faculty) bool {
		return strings.Contains(strings.ToLower(f.Name), strings.ToLower(fragment))
	})
	if len(found) == 0 {
		return nil, apperrors.ErrFacultyNotFound
	}
	return found[0], nil
}

func (r fakeFacultyRepo) GetFacultyWithLongestName(_ context.Context) (*models.Faculty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.filterFaculties(nil)
	if len(all) == 0 {
		return nil, apperrors.ErrEmptyStorage
	}
	best := all[0]
	for _, f := range all[1:] {
		if len([]rune(f.Name)) > len([]rune(best.Name)) {
			best = f
		}
	}
	return best, nil
}

// studentRepo

type fakeStudentRepo struct{ *fakeStore }

func (r fakeStudentRepo) CreateStudent(_ context.Context, student *models.Student) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.faculties[student.FacultyID]; !ok {
		return 0, apperrors.ErrFacultyNotFound
	}
	st := *student
	st.ID = r.id()
	r.students[st.ID] = &st
	return st.ID, nil
}

func (r fakeStudentRepo) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return r.withFaculty(st), nil
}

func (r fakeStudentRepo) StudentExists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.students[id]
	return ok, nil
}

func (r fakeStudentRepo) GetAllStudents(_ context.Context) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedStudents(nil), nil
}

func (r fakeStudentRepo) UpdateStudent(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if _, ok := r.faculties[student.FacultyID]; !ok {
		return apperrors.ErrFacultyNotFound
	}
	cp := *student
	r.students[student.ID] = &cp
	return nil
}

func (r fakeStudentRepo) DeleteStudent(_ context.Context, id int64, removeFile func(string) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	av := r.avatarOf(id)
	if _, ok := r.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	if av != nil {
		if err := removeFile(av.FilePath); err != nil {
			return err
		}
	}
	if r.commitErr != nil {
		return r.commitErr
	}
	if av != nil {
		delete(r.avatars, av.ID)
	}
	delete(r.students, id)
	return nil
}

func (r fakeStudentRepo) CountStudents(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.students)), nil
}

func (r fakeStudentRepo) AverageAge(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.students) == 0 {
		return 0, nil
	}
	sum := 0
	for _, st := range r.students {
		sum += st.Age
	}
	return float64(sum) / float64(len(r.students)), nil
}

func (r fakeStudentRepo) FindStudentsByAge(_ context.Context, age int) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedStudents(func(st *models.Student) bool { return st.Age == age }), nil
}

func (r fakeStudentRepo) FindStudentsByAgeBetween(_ context.Context, from, to int) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedStudents(func(st *models.Student) bool { return st.Age >= from && st.Age <= to }), nil
}

func (r fakeStudentRepo) FindStudentByNameFragment(_ context.Context, fragment string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := r.sortedStudents(func(st *models.Student) bool {
		return strings.Contains(strings.ToLower(st.Name), strings.ToLower(fragment))
	})
	if len(found) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return found[0], nil
}

func (r fakeStudentRepo) GetLastStudents(_ context.Context, limit uint64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedStudents(nil)
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if uint64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r fakeStudentRepo) GetStudentsByFaculty(_ context.Context, facultyID int64) ([]*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedStudents(func(st *models.Student) bool { return st.FacultyID == facultyID }), nil
}

func (r fakeStudentRepo) FindNamesStartingWith(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := []string{}
	for _, st := range r.sortedStudents(nil) {
		if strings.HasPrefix(st.Name, prefix) {
			names = append(names, st.Name)
		}
	}
	return names, nil
}

// avatarRepo

type fakeAvatarRepo struct{ *fakeStore }

func (r fakeAvatarRepo) UpsertAvatar(_ context.Context, avatar *models.Avatar, commitFile func(string) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if _, ok := r.students[*avatar.StudentID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	prev := r.avatarOf(*avatar.StudentID)
	var prevPath string
	if prev != nil {
		prevPath = prev.FilePath
	}
	if err := commitFile(prevPath); err != nil {
		return err
	}
	if r.commitErr != nil {
		return r.commitErr
	}
	if prev != nil {
		avatar.ID = prev.ID
	} else {
		avatar.ID = r.id()
	}
	cp := *avatar
	r.avatars[avatar.ID] = &cp
	return nil
}

func (r fakeAvatarRepo) GetAvatarByStudentID(_ context.Context, studentID int64) (*models.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.avatarReads++
	av := r.avatarOf(studentID)
	if av == nil {
		return nil, apperrors.ErrAvatarNotFound
	}
	cp := *av
	return &cp, nil
}

func (r fakeAvatarRepo) DeleteAvatarByStudentID(_ context.Context, studentID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	av := r.avatarOf(studentID)
	if av == nil {
		return apperrors.ErrAvatarNotFound
	}
	delete(r.avatars, av.ID)
	return nil
}

func (r fakeAvatarRepo) ListAvatars(_ context.Context, offset, limit uint64) ([]*models.Avatar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := []*models.Avatar{}
	for _, av := range r.avatars {
		all = append(all, av)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= uint64(len(all)) {
		return []*models.Avatar{}, nil
	}
	end := offset + limit
	if end > uint64(len(all)) {
		end = uint64(len(all))
	}
	return all[offset:end], nil
}

func (r fakeAvatarRepo) CountAvatars(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.avatars)), nil
}

func (r fakeAvatarRepo) DeleteOrphanAvatars(_ context.Context, removeFile func(string) error) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orphans := []*models.Avatar{}
	for _, av := range r.avatars {
		if av.IsOrphan() {
			orphans = append(orphans, av)
		}
	}
	for _, av := range orphans {
		if err := removeFile(av.FilePath); err != nil {
			return 0, err
		}
	}
	if r.commitErr != nil {
		return 0, r.commitErr
	}
	for _, av := range orphans {
		delete(r.avatars, av.ID)
	}
	return len(orphans), nil
}

func (r fakeAvatarRepo) ListAvatarPaths(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := []string{}
	for _, av := range r.avatars {
		paths = append(paths, av.FilePath)
	}
	return paths, nil
}

// fakeCache records entries in memory.
type fakeCache struct {
	mu      sync.Mutex
	entries map[int64]*cache.AvatarEntry
	deleted []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]*cache.AvatarEntry{}}
}

func (c *fakeCache) Get(_ context.Context, studentID int64) (*cache.AvatarEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[studentID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return e, nil
}

func (c *fakeCache) Set(_ context.Context, entry *cache.AvatarEntry, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.StudentID] = entry
	return nil
}

func (c *fakeCache) Delete(_ context.Context, studentIDs ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range studentIDs {
		delete(c.entries, id)
		c.deleted = append(c.deleted, id)
	}
	return nil
}

func (c *fakeCache) Close() error { return nil }

func (c *fakeCache) has(studentID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[studentID]
	return ok
}

// heldSetCache blocks its first Set until release is closed.
type heldSetCache struct {
	*fakeCache
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newHeldSetCache(inner *fakeCache) *heldSetCache {
	return &heldSetCache{fakeCache: inner, entered: make(chan struct{}), release: make(chan struct{})}
}

func (c *heldSetCache) Set(ctx context.Context, entry *cache.AvatarEntry, ttl time.Duration) error {
	held := false
	c.once.Do(func() { held = true })
	if held {
		close(c.entered)
		<-c.release
	}
	return c.fakeCache.Set(ctx, entry, ttl)
}

// blockingAvatarRepo parks the first avatar read until release is closed and then
// honours the context it was given.
type blockingAvatarRepo struct {
	AvatarRepository
	entered chan struct{}
	release chan struct{}
}

func (r blockingAvatarRepo) GetAvatarByStudentID(ctx context.Context, studentID int64) (*models.Avatar, error) {
	close(r.entered)
	<-r.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.AvatarRepository.GetAvatarByStudentID(ctx, studentID)
}

// fakeLifecycle records lifecycle calls made by the entity services.
type fakeLifecycle struct {
	removed     []string
	invalidated []int64
	removeErr   error
}

func (l *fakeLifecycle) WithFileRemoval(_ context.Context, op func(remove func(string) error) error) error {
	var pending []string
	err := op(func(filePath string) error {
		if l.removeErr != nil {
			return l.removeErr
		}
		pending = append(pending, filePath)
		return nil
	})
	if err != nil {
		return err
	}
	l.removed = append(l.removed, pending...)
	return nil
}

func (l *fakeLifecycle) Invalidate(_ context.Context, studentIDs ...int64) {
	l.invalidated = append(l.invalidated, studentIDs...)
}
