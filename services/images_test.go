package services_test

import (
	"errors"
	"testing"

	"eventapi/models"
	"eventapi/services"
	"eventapi/tests/mocks"
)

func imgFixture() (*mocks.MockImageRepo, services.ImageService) {
	repo := mocks.NewMockImageRepo()
	return repo, services.NewImageService(repo)
}

func TestAddImage_CapAtFour(t *testing.T) {
	_, is := imgFixture()

	for i := 1; i <= 4; i++ {
		if _, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/a", DisplayOrder: i}); err != nil {
			t.Fatalf("image %d: %v", i, err)
		}
	}
	// The 5th must be rejected.
	if _, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/a", DisplayOrder: 5}); !errors.Is(err, services.ErrImageLimit) {
		t.Fatalf("want ErrImageLimit, got %v", err)
	}
	// Other events are unaffected.
	if _, err := is.AddImage(2, models.ImageCreation{ImageURL: "http://x/b", DisplayOrder: 1}); err != nil {
		t.Fatalf("other event: %v", err)
	}
}

func TestAddImages_BatchAllOrNothing(t *testing.T) {
	repo, is := imgFixture()

	batch := []models.ImageCreation{
		{ImageURL: "http://x/1", DisplayOrder: 1},
		{ImageURL: "http://x/2", DisplayOrder: 2},
		{ImageURL: "http://x/3", DisplayOrder: 3},
	}
	if _, err := is.AddImages(1, batch); err != nil {
		t.Fatalf("first batch: %v", err)
	}

	// 3 existing + 2 new would exceed 4: nothing may be inserted.
	over := []models.ImageCreation{
		{ImageURL: "http://x/4", DisplayOrder: 4},
		{ImageURL: "http://x/5", DisplayOrder: 5},
	}
	if _, err := is.AddImages(1, over); !errors.Is(err, services.ErrImageLimit) {
		t.Fatalf("want ErrImageLimit, got %v", err)
	}
	if n, _ := repo.CountByEvent(1); n != 3 {
		t.Fatalf("partial insert happened: count=%d", n)
	}

	// Exactly filling up to 4 is fine.
	if _, err := is.AddImages(1, over[:1]); err != nil {
		t.Fatalf("filling to 4: %v", err)
	}
}

func TestUpdateImageOrder_ScopedToEvent(t *testing.T) {
	_, is := imgFixture()

	im, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/1", DisplayOrder: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Right event: order changes.
	updated, err := is.UpdateImageOrder(1, im.ID, 3)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DisplayOrder != 3 {
		t.Fatalf("order not updated: %d", updated.DisplayOrder)
	}

	// Wrong event in the path: not found.
	if _, err := is.UpdateImageOrder(2, im.ID, 1); !errors.Is(err, services.ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound, got %v", err)
	}
}

func TestDeleteImage_ScopedToEvent(t *testing.T) {
	repo, is := imgFixture()

	im, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/1", DisplayOrder: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := is.DeleteImage(2, im.ID); !errors.Is(err, services.ErrImageNotFound) {
		t.Fatalf("want ErrImageNotFound for wrong event, got %v", err)
	}
	if err := is.DeleteImage(1, im.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n, _ := repo.CountByEvent(1); n != 0 {
		t.Fatalf("image still present")
	}
}

func TestDeleteAllImages(t *testing.T) {
	repo, is := imgFixture()

	for i := 1; i <= 4; i++ {
		if _, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/a", DisplayOrder: i}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if _, err := is.AddImage(2, models.ImageCreation{ImageURL: "http://x/b", DisplayOrder: 1}); err != nil {
		t.Fatalf("add other: %v", err)
	}

	if err := is.DeleteAllImages(1); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n, _ := repo.CountByEvent(1); n != 0 {
		t.Fatalf("event 1 images remain: %d", n)
	}
	if n, _ := repo.CountByEvent(2); n != 1 {
		t.Fatalf("event 2 images touched: %d", n)
	}
}

func TestGetImagesByEvent_OrderedByDisplayOrder(t *testing.T) {
	_, is := imgFixture()

	for _, order := range []int{3, 1, 2} {
		if _, err := is.AddImage(1, models.ImageCreation{ImageURL: "http://x/a", DisplayOrder: order}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, err := is.GetImagesByEvent(1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for i, im := range got {
		if im.DisplayOrder != i+1 {
			t.Fatalf("position %d has order %d", i, im.DisplayOrder)
		}
	}
}
