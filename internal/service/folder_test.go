package service

import (
	"context"
	"errors"
	"testing"

	"studymate/internal/domain"
	"studymate/internal/domain/services"
)

func TestCreateFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	if folder.ID == "" {
		t.Error("created folder has no ID")
	}
	if folder.ParentID != nil {
		t.Errorf("root folder has parent %v, want nil", folder.ParentID)
	}
	if folder.Path != "Week 1" {
		t.Errorf("folder path = %q, want %q", folder.Path, "Week 1")
	}

	// The folder must show up exactly once in the root listing
	contents, err := env.folders.ListContents(ctx, "owner-1", nil, env.courseID)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	seen := 0
	for _, f := range contents.Folders {
		if f.ID == folder.ID {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("folder appears %d times in listing, want 1", seen)
	}
}

func TestCreateNestedFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
	})
	if err != nil {
		t.Fatalf("CreateFolder parent: %v", err)
	}

	child, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Slides",
		FolderID: &parent.ID,
	})
	if err != nil {
		t.Fatalf("CreateFolder child: %v", err)
	}

	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Errorf("child parent = %v, want %s", child.ParentID, parent.ID)
	}
	if child.Path != "Week 1/Slides" {
		t.Errorf("child path = %q, want %q", child.Path, "Week 1/Slides")
	}
}

func TestCreateFolderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.CreateFolderRequest
	}{
		{
			name: "missing name",
			req:  &services.CreateFolderRequest{CourseID: env.courseID, UserID: "owner-1"},
		},
		{
			name: "missing course",
			req:  &services.CreateFolderRequest{UserID: "owner-1", Name: "Week 1"},
		},
		{
			name: "slash in name",
			req:  &services.CreateFolderRequest{CourseID: env.courseID, UserID: "owner-1", Name: "Week/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.CreateFolder(ctx, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("CreateFolder error = %v, want validation", err)
			}
		})
	}
}

func TestCreateFolderDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
	})
	if err != nil {
		t.Fatalf("first CreateFolder: %v", err)
	}

	_, err = env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
	})
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("second CreateFolder error = %v, want conflict", err)
	}
	if conflictErr.ResourceID != first.ID {
		t.Errorf("conflict resource = %q, want %q", conflictErr.ResourceID, first.ID)
	}

	// Same name under a different parent is fine
	if _, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
		FolderID: &first.ID,
	}); err != nil {
		t.Errorf("nested CreateFolder with same name: %v", err)
	}
}

func TestCreateFolderParentNotFound(t *testing.T) {
	env := newTestEnv(t)

	missing := "folder-999"
	_, err := env.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Orphan",
		FolderID: &missing,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("CreateFolder error = %v, want not found", err)
	}
}

func TestUpdateFolderRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID,
		UserID:   "owner-1",
		Name:     "Week 1",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	newName := "Week One"
	updated, err := env.folders.UpdateFolder(ctx, "owner-1", folder.ID, &services.UpdateFolderRequest{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateFolder: %v", err)
	}
	if updated.Name != "Week One" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Week One")
	}
	if updated.Path != "Week One" {
		t.Errorf("updated path = %q, want %q", updated.Path, "Week One")
	}
}

func TestUpdateFolderMove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "A",
	})
	if err != nil {
		t.Fatalf("CreateFolder A: %v", err)
	}
	b, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "B",
	})
	if err != nil {
		t.Fatalf("CreateFolder B: %v", err)
	}

	moved, err := env.folders.UpdateFolder(ctx, "owner-1", b.ID, &services.UpdateFolderRequest{FolderID: &a.ID})
	if err != nil {
		t.Fatalf("UpdateFolder move: %v", err)
	}
	if moved.ParentID == nil || *moved.ParentID != a.ID {
		t.Errorf("moved parent = %v, want %s", moved.ParentID, a.ID)
	}
	if moved.Path != "A/B" {
		t.Errorf("moved path = %q, want %q", moved.Path, "A/B")
	}

	// Empty string moves back to the course root
	root := ""
	moved, err = env.folders.UpdateFolder(ctx, "owner-1", b.ID, &services.UpdateFolderRequest{FolderID: &root})
	if err != nil {
		t.Fatalf("UpdateFolder move to root: %v", err)
	}
	if moved.ParentID != nil {
		t.Errorf("parent after move to root = %v, want nil", moved.ParentID)
	}
}

func TestUpdateFolderCircularMove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "A",
	})
	if err != nil {
		t.Fatalf("CreateFolder A: %v", err)
	}
	b, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "B", FolderID: &a.ID,
	})
	if err != nil {
		t.Fatalf("CreateFolder B: %v", err)
	}

	// A folder cannot become its own parent
	if _, err := env.folders.UpdateFolder(ctx, "owner-1", a.ID, &services.UpdateFolderRequest{FolderID: &a.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("self move error = %v, want validation", err)
	}

	// Nor move under its own descendant
	if _, err := env.folders.UpdateFolder(ctx, "owner-1", a.ID, &services.UpdateFolderRequest{FolderID: &b.ID}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("descendant move error = %v, want validation", err)
	}
}

func TestDeleteFolderCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Week 1/
	//   notes.txt
	//   Slides/
	//     deck.pdf
	week1, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "Week 1",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	slides, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "Slides", FolderID: &week1.ID,
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := env.files.Upload(ctx, env.uploadRequest("notes.txt", "text/plain", &week1.ID)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := env.files.Upload(ctx, env.uploadRequest("deck.pdf", "application/pdf", &slides.ID)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := env.folders.DeleteFolder(ctx, "owner-1", week1.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	folders, _ := env.folderRepo.GetAllByCourse(ctx, env.courseID)
	if len(folders) != 0 {
		t.Errorf("%d folders remain after cascade, want 0", len(folders))
	}
	files, _ := env.fileRepo.GetAllByCourse(ctx, env.courseID)
	if len(files) != 0 {
		t.Errorf("%d file records remain after cascade, want 0", len(files))
	}
	if env.store.objectCount() != 0 {
		t.Errorf("%d remote objects remain after cascade, want 0", env.store.objectCount())
	}

	// A second delete of the same folder reports not found
	if err := env.folders.DeleteFolder(ctx, "owner-1", week1.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second DeleteFolder = %v, want not found", err)
	}

	// Listing the deleted folder reports not found too
	if _, err := env.folders.ListContents(ctx, "owner-1", &week1.ID, env.courseID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListContents of deleted folder = %v, want not found", err)
	}
}

func TestDeleteFolderKeepsSiblings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doomed, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "Doomed",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "Survivor",
	}); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if _, err := env.files.Upload(ctx, env.uploadRequest("root.txt", "text/plain", nil)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := env.folders.DeleteFolder(ctx, "owner-1", doomed.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	contents, err := env.folders.ListContents(ctx, "owner-1", nil, env.courseID)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(contents.Folders) != 1 || contents.Folders[0].Name != "Survivor" {
		t.Errorf("root folders after delete = %v, want only Survivor", contents.Folders)
	}
	if len(contents.Files) != 1 {
		t.Errorf("root files after delete = %d, want 1", len(contents.Files))
	}
}

func TestListContentsCrossCourseFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A folder from another course must not be listable through this course
	course2, err := env.courses.CreateCourse(ctx, &services.CreateCourseRequest{
		UserID: "owner-1",
		Title:  "Networks",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	foreign, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: course2.ID, UserID: "owner-1", Name: "Elsewhere",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	_, err = env.folders.ListContents(ctx, "owner-1", &foreign.ID, env.courseID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ListContents error = %v, want not found", err)
	}
}

func TestFolderAccessDenied(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
		CourseID: env.courseID, UserID: "owner-1", Name: "Week 1",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	var forbidden *domain.ForbiddenError

	if _, err := env.folders.GetFolder(ctx, "stranger", folder.ID); !errors.As(err, &forbidden) {
		t.Errorf("GetFolder for stranger = %v, want forbidden", err)
	}
	if err := env.folders.DeleteFolder(ctx, "stranger", folder.ID); !errors.As(err, &forbidden) {
		t.Errorf("DeleteFolder for stranger = %v, want forbidden", err)
	}
	if _, err := env.folders.ListContents(ctx, "stranger", nil, env.courseID); !errors.As(err, &forbidden) {
		t.Errorf("ListContents for stranger = %v, want forbidden", err)
	}
}
