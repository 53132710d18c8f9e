package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/stockroom/internal/access"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

var (
	keeper     = access.Session{Role: access.RoleStorekeeper}
	supervisor = access.Session{Role: access.RoleSupervisor}
)

func newCatalogService() (*Service, *memory.Store) {
	store := memory.New()
	return NewService(store, models.ModeCatalog, models.DefaultLowStockThreshold, nil), store
}

func TestSupervisorCannotMutate(t *testing.T) {
	ctx := context.Background()
	svc, store := newCatalogService()

	if _, err := svc.AddItem(ctx, supervisor, "New Shirt", "", 50); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("AddItem as supervisor error = %v, want ErrPermissionDenied", err)
	}
	items, _ := store.ListItems(ctx)
	if len(items) != 0 {
		t.Fatalf("supervisor AddItem created %d items, want 0", len(items))
	}

	if _, err := svc.AddCategory(ctx, supervisor, "Shirts"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("AddCategory as supervisor error = %v, want ErrPermissionDenied", err)
	}
	if err := svc.DeleteItem(ctx, supervisor, "itm-1"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("DeleteItem as supervisor error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.AdjustQuantity(ctx, supervisor, "itm-1", -1, false); !errors.Is(err, models.ErrPermissionDenied) {
		t.Errorf("AdjustQuantity as supervisor error = %v, want ErrPermissionDenied", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService()

	if _, err := svc.AddItem(ctx, keeper, "  ", "", 5); !errors.Is(err, models.ErrValidation) {
		t.Errorf("AddItem with blank name error = %v, want ErrValidation", err)
	}
	if _, err := svc.AddItem(ctx, keeper, "Shirt", "", -1); !errors.Is(err, models.ErrValidation) {
		t.Errorf("AddItem with negative quantity error = %v, want ErrValidation", err)
	}

	item, err := svc.AddItem(ctx, keeper, "Shirt", "", 8)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Total != 8 || item.Remaining != 8 {
		t.Errorf("new item quantities = %d/%d, want 8/8", item.Remaining, item.Total)
	}
	if item.Status != models.StatusInStock {
		t.Errorf("new item status = %s, want %s", item.Status, models.StatusInStock)
	}
}

func TestUpdateItemInvariant(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService()

	item, _ := svc.AddItem(ctx, keeper, "Trousers", "", 10)

	remaining := 15
	if _, err := svc.UpdateItem(ctx, keeper, item.ID, repository.ItemUpdate{Remaining: &remaining}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("UpdateItem remaining > total error = %v, want ErrValidation", err)
	}

	total := 20
	updated, err := svc.UpdateItem(ctx, keeper, item.ID, repository.ItemUpdate{Total: &total, Remaining: &remaining})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Remaining != 15 || updated.Total != 20 {
		t.Errorf("updated quantities = %d/%d, want 15/20", updated.Remaining, updated.Total)
	}
}

func TestUpdateItemPlainModeLocksTotals(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store, models.ModePlain, 5, nil)

	item, _ := svc.AddItem(ctx, keeper, "Chalk", "", 3)

	remaining := 12
	updated, err := svc.UpdateItem(ctx, keeper, item.ID, repository.ItemUpdate{Remaining: &remaining})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Remaining != 12 || updated.Total != 12 {
		t.Errorf("plain-mode quantities = %d/%d, want lockstep 12/12", updated.Remaining, updated.Total)
	}
}

func TestAdjustQuantityZeroDelta(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService()
	item, _ := svc.AddItem(ctx, keeper, "Socks", "", 5)

	if _, err := svc.AdjustQuantity(ctx, keeper, item.ID, 0, false); !errors.Is(err, models.ErrValidation) {
		t.Errorf("AdjustQuantity(0) error = %v, want ErrValidation", err)
	}
}

func TestListItemsFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService()

	svc.AddItem(ctx, keeper, "White Shirt", "", 10)
	svc.AddItem(ctx, keeper, "Blue Shirt", "", 2)
	svc.AddItem(ctx, keeper, "Belt", "", 0)

	shirts, err := svc.ListItems(ctx, ListOptions{Search: "shirt"})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(shirts) != 2 {
		t.Errorf("search 'shirt' returned %d items, want 2", len(shirts))
	}

	low, _ := svc.ListItems(ctx, ListOptions{Status: models.StatusLowStock})
	if len(low) != 1 || low[0].Name != "Blue Shirt" {
		t.Errorf("low stock filter = %+v, want only Blue Shirt", low)
	}

	out, _ := svc.ListItems(ctx, ListOptions{Status: models.StatusOutOfStock})
	if len(out) != 1 || out[0].Name != "Belt" {
		t.Errorf("out of stock filter = %+v, want only Belt", out)
	}
}

func TestDeleteCategoryLeavesDanglingRef(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalogService()

	category, _ := svc.AddCategory(ctx, keeper, "Sports")
	item, _ := svc.AddItem(ctx, keeper, "Jersey", category.ID, 5)

	if err := svc.DeleteCategory(ctx, keeper, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	got, err := svc.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.CategoryID != category.ID {
		t.Errorf("item category ref = %q, want dangling %q", got.CategoryID, category.ID)
	}
}
