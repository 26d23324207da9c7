package files

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/filebot/internal/server/models"
)

func TestMemory_CreateAndList(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		rec := &models.FileRecord{
			OwnerID:    "u1",
			Name:       name,
			ContentID:  "cid-" + name,
			Size:       int64(i + 1),
			UploadedAt: time.Now(),
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("create error: %v", err)
		}
		if rec.ID == "" {
			t.Fatal("expected a generated record ID")
		}
	}

	all, err := repo.ListByOwner(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(all) != 3 || all[0].Name != "a.txt" || all[2].Name != "c.txt" {
		t.Fatalf("unexpected listing: %+v", all)
	}

	newest, err := repo.ListByOwner(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(newest) != 2 || newest[0].Name != "b.txt" {
		t.Fatalf("limit must keep the newest records, got %+v", newest)
	}

	total, err := repo.SumSizeByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("sum error: %v", err)
	}
	if total != 6 {
		t.Fatalf("expected total 6, got %d", total)
	}
}

func TestMemory_EmptyOwner(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	recs, err := repo.ListByOwner(ctx, "nobody", 0)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}

	total, err := repo.SumSizeByOwner(ctx, "nobody")
	if err != nil || total != 0 {
		t.Fatalf("expected zero total, got %d, %v", total, err)
	}
}
