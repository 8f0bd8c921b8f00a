package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eleganceshop/storefront/internal/domain"
)

func TestAddReviewAppends(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := NewReviewService(repo, testCatalog()).(*reviewService)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	review, err := svc.Add(ctx, "p1", &domain.AddReviewRequest{Author: " Amal ", Rating: 4, Text: " great shirt "})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if review.Author != "Amal" || review.Text != "great shirt" {
		t.Errorf("review = %+v, want trimmed fields", review)
	}

	got := svc.List(ctx, "p1")
	if len(got) != 1 {
		t.Fatalf("List() len = %d, want 1", len(got))
	}
	if got[0].Date.IsZero() {
		t.Error("review date not set")
	}
}

func TestAddReviewRejectsEmptyText(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), testCatalog())

	_, err := svc.Add(context.Background(), "p1", &domain.AddReviewRequest{Rating: 5, Text: "   "})
	if !errors.Is(err, ErrEmptyReview) {
		t.Errorf("error = %v, want ErrEmptyReview", err)
	}
}

func TestAddReviewUnknownProduct(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), testCatalog())

	_, err := svc.Add(context.Background(), "ghost", &domain.AddReviewRequest{Rating: 5, Text: "hi"})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
}

func TestAddReviewClampsRating(t *testing.T) {
	svc := NewReviewService(newFakeReviewRepo(), testCatalog())
	ctx := context.Background()

	low, _ := svc.Add(ctx, "p1", &domain.AddReviewRequest{Rating: -2, Text: "meh"})
	if low.Rating != 1 {
		t.Errorf("Rating = %d, want clamped to 1", low.Rating)
	}
	high, _ := svc.Add(ctx, "p1", &domain.AddReviewRequest{Rating: 9, Text: "wow"})
	if high.Rating != 5 {
		t.Errorf("Rating = %d, want clamped to 5", high.Rating)
	}
}
