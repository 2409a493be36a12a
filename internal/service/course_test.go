package service

import (
	"context"
	"errors"
	"testing"

	"studymate/internal/domain"
	"studymate/internal/domain/services"
)

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)

	course, err := env.courses.CreateCourse(context.Background(), &services.CreateCourseRequest{
		UserID: "owner-2",
		Title:  "Operating Systems",
		Code:   "CS-350",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if course.ID == "" {
		t.Error("created course has no ID")
	}
	if course.OwnerID != "owner-2" {
		t.Errorf("course owner = %q, want %q", course.OwnerID, "owner-2")
	}
}

func TestCreateCourseValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.courses.CreateCourse(ctx, &services.CreateCourseRequest{UserID: "owner-1"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("CreateCourse without title = %v, want validation", err)
	}
	if _, err := env.courses.CreateCourse(ctx, &services.CreateCourseRequest{Title: "No owner"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("CreateCourse without owner = %v, want validation", err)
	}
}

func TestGetCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course, err := env.courses.GetCourse(ctx, "owner-1", env.courseID)
	if err != nil {
		t.Fatalf("GetCourse: %v", err)
	}
	if course.ID != env.courseID {
		t.Errorf("course ID = %q, want %q", course.ID, env.courseID)
	}

	var forbidden *domain.ForbiddenError
	if _, err := env.courses.GetCourse(ctx, "stranger", env.courseID); !errors.As(err, &forbidden) {
		t.Errorf("GetCourse for stranger = %v, want forbidden", err)
	}
	if _, err := env.courses.GetCourse(ctx, "owner-1", "course-999"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetCourse missing = %v, want not found", err)
	}
}

func TestListCourses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.courses.CreateCourse(ctx, &services.CreateCourseRequest{
		UserID: "owner-1",
		Title:  "Networks",
	}); err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	mine, err := env.courses.ListCourses(ctx, "owner-1")
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("owner has %d courses, want 2", len(mine))
	}

	theirs, err := env.courses.ListCourses(ctx, "stranger")
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("stranger has %d courses, want 0", len(theirs))
	}
}
