package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eleganceshop/storefront/internal/domain"
)

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	repo := newFakeWishlistRepo()
	svc := NewWishlistService(repo, testCatalog())
	ctx := context.Background()

	resp, err := svc.Toggle(ctx, &domain.ToggleWishlistRequest{ID: "p1"})
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !resp.InList || resp.Count != 1 {
		t.Fatalf("first toggle: inList = %v, count = %d", resp.InList, resp.Count)
	}

	resp, err = svc.Toggle(ctx, &domain.ToggleWishlistRequest{ID: "p1"})
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if resp.InList || resp.Count != 0 {
		t.Errorf("second toggle: inList = %v, count = %d, want removed", resp.InList, resp.Count)
	}
	if len(svc.List(ctx)) != 0 {
		t.Error("double toggle should leave the wishlist empty")
	}
}

func TestToggleEnrichesFromCatalog(t *testing.T) {
	svc := NewWishlistService(newFakeWishlistRepo(), testCatalog())
	ctx := context.Background()

	svc.Toggle(ctx, &domain.ToggleWishlistRequest{ID: "p2"})
	entries := svc.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Name != "Wool Coat" || entries[0].Price != 350 {
		t.Errorf("entry = %+v, want catalog name and price", entries[0])
	}
}

func TestToggleRejectsMissingID(t *testing.T) {
	svc := NewWishlistService(newFakeWishlistRepo(), testCatalog())

	if _, err := svc.Toggle(context.Background(), &domain.ToggleWishlistRequest{ID: " "}); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("error = %v, want ErrInvalidItem", err)
	}
}

func TestListNormalizesLegacyBareIDs(t *testing.T) {
	repo := newFakeWishlistRepo()
	// 历史形态：裸ID反序列化后只有ID字段
	repo.wishlist = &domain.Wishlist{Entries: []domain.WishlistEntry{{ID: "p1"}, {ID: "unknown"}}}
	svc := NewWishlistService(repo, testCatalog())

	entries := svc.List(context.Background())
	if entries[0].Name != "Cotton Shirt" {
		t.Errorf("known id should be enriched, name = %q", entries[0].Name)
	}
	if entries[1].Name != "" {
		t.Errorf("unknown id stays bare, name = %q", entries[1].Name)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo := newFakeWishlistRepo()
	svc := NewWishlistService(repo, testCatalog())
	ctx := context.Background()

	svc.Toggle(ctx, &domain.ToggleWishlistRequest{ID: "p1"})
	if got := svc.Remove(ctx, "p1"); len(got) != 0 {
		t.Fatalf("entries = %d, want 0 after remove", len(got))
	}

	saves := repo.saveCalls
	if got := svc.Remove(ctx, "p1"); len(got) != 0 {
		t.Errorf("repeat remove changed state: %v", got)
	}
	if repo.saveCalls != saves {
		t.Error("absent id should not trigger a save")
	}
}
