package service

import (
	"context"
	"testing"

	"bookmeet-api/core/errors"
	"bookmeet-api/modules/meetingtype/dto"
	"bookmeet-api/modules/meetingtype/entity"

	"github.com/lib/pq"
)

type fakeMeetingTypeRepo struct {
	nextID int
	types  []entity.MeetingType
}

func (f *fakeMeetingTypeRepo) Create(ctx context.Context, mt *entity.MeetingType) (*entity.MeetingType, error) {
	for _, existing := range f.types {
		if existing.Slug == mt.Slug {
			return nil, &pq.Error{Code: "23505"}
		}
	}
	f.nextID++
	saved := *mt
	saved.ID = f.nextID
	f.types = append(f.types, saved)
	return &saved, nil
}

func (f *fakeMeetingTypeRepo) GetByID(ctx context.Context, id int) (*entity.MeetingType, error) {
	for _, mt := range f.types {
		if mt.ID == id {
			copied := mt
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingTypeRepo) GetBySlug(ctx context.Context, slug string) (*entity.MeetingType, error) {
	for _, mt := range f.types {
		if mt.Slug == slug {
			copied := mt
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMeetingTypeRepo) GetAll(ctx context.Context) ([]entity.MeetingType, error) {
	return append([]entity.MeetingType(nil), f.types...), nil
}

func (f *fakeMeetingTypeRepo) Update(ctx context.Context, mt *entity.MeetingType) error {
	for i := range f.types {
		if f.types[i].ID == mt.ID {
			f.types[i] = *mt
			return nil
		}
	}
	return nil
}

func (f *fakeMeetingTypeRepo) Delete(ctx context.Context, id int) error {
	for i := range f.types {
		if f.types[i].ID == id {
			f.types = append(f.types[:i], f.types[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreateMeetingType(t *testing.T) {
	ctx := context.Background()
	svc := NewMeetingTypeService(&fakeMeetingTypeRepo{})

	created, appErr := svc.Create(ctx, &dto.CreateMeetingTypeRequest{
		Title:           "Intro Call",
		DurationMinutes: 30,
	})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if created.Slug != "intro-call" {
		t.Fatalf("slug = %q, want intro-call", created.Slug)
	}
	if created.Color == "" {
		t.Fatal("expected a default color")
	}
}

func TestCreateMeetingTypeValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewMeetingTypeService(&fakeMeetingTypeRepo{})

	tests := []struct {
		name string
		req  dto.CreateMeetingTypeRequest
	}{
		{"missing title", dto.CreateMeetingTypeRequest{DurationMinutes: 30}},
		{"duration too short", dto.CreateMeetingTypeRequest{Title: "Quick", DurationMinutes: 3}},
		{"negative buffer", dto.CreateMeetingTypeRequest{Title: "Buffered", DurationMinutes: 30, BufferBefore: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.Create(ctx, &tt.req)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("got %v, want ErrInvalidInput", appErr)
			}
		})
	}
}

func TestCreateMeetingTypeDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc := NewMeetingTypeService(&fakeMeetingTypeRepo{})

	req := &dto.CreateMeetingTypeRequest{Title: "Intro Call", DurationMinutes: 30}
	if _, appErr := svc.Create(ctx, req); appErr != nil {
		t.Fatalf("first create failed: %v", appErr)
	}

	_, appErr := svc.Create(ctx, req)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Fatalf("got %v, want ErrAlreadyExists", appErr)
	}
}

func TestUpdateMeetingType(t *testing.T) {
	ctx := context.Background()
	repo := &fakeMeetingTypeRepo{}
	svc := NewMeetingTypeService(repo)

	created, appErr := svc.Create(ctx, &dto.CreateMeetingTypeRequest{
		Title:           "Intro Call",
		DurationMinutes: 30,
		Description:     "A quick chat",
	})
	if appErr != nil {
		t.Fatalf("create failed: %v", appErr)
	}

	t.Run("title change follows slug", func(t *testing.T) {
		updated, appErr := svc.Update(ctx, created.ID, &dto.UpdateMeetingTypeRequest{Title: "Discovery Call"})
		if appErr != nil {
			t.Fatalf("update failed: %v", appErr)
		}
		if updated.Slug != "discovery-call" {
			t.Fatalf("slug = %q, want discovery-call", updated.Slug)
		}
		if updated.Description != "A quick chat" {
			t.Fatalf("description changed unexpectedly: %q", updated.Description)
		}
	})

	t.Run("zero values leave fields alone", func(t *testing.T) {
		updated, appErr := svc.Update(ctx, created.ID, &dto.UpdateMeetingTypeRequest{DurationMinutes: 45})
		if appErr != nil {
			t.Fatalf("update failed: %v", appErr)
		}
		if updated.Title != "Discovery Call" || updated.DurationMinutes != 45 {
			t.Fatalf("unexpected result: %+v", updated)
		}
	})

	t.Run("short duration rejected", func(t *testing.T) {
		_, appErr := svc.Update(ctx, created.ID, &dto.UpdateMeetingTypeRequest{DurationMinutes: 2})
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Fatalf("got %v, want ErrInvalidInput", appErr)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, appErr := svc.Update(ctx, 999, &dto.UpdateMeetingTypeRequest{Title: "Ghost"})
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("got %v, want ErrNotFound", appErr)
		}
	})
}

func TestDeleteMeetingType(t *testing.T) {
	ctx := context.Background()
	svc := NewMeetingTypeService(&fakeMeetingTypeRepo{})

	created, appErr := svc.Create(ctx, &dto.CreateMeetingTypeRequest{Title: "Intro Call", DurationMinutes: 30})
	if appErr != nil {
		t.Fatalf("create failed: %v", appErr)
	}

	if appErr := svc.Delete(ctx, created.ID); appErr != nil {
		t.Fatalf("delete failed: %v", appErr)
	}
	if appErr := svc.Delete(ctx, created.ID); appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("second delete: got %v, want ErrNotFound", appErr)
	}
}
