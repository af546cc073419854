package uowmock

import (
	"context"
	"errors"
	"testing"

	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/uow"
	"asset-custody/internal/testutil/assignmentmock"
	"asset-custody/internal/testutil/productmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	products := &productmock.Repo{}
	assigns := &assignmentmock.Repo{}
	repos := uow.Repos{Products: products, Assignments: assigns}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Products != products || r.Assignments != assigns {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinProductTx(ctx, 1, func(uow.Repos, *product.Product) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinProductTx default: want errUnimplemented, got %v", err)
	}
}

func TestPassthrough_WithinProductTx_LocksProduct(t *testing.T) {
	ctx := context.Background()
	locked := 0
	products := &productmock.Repo{
		GetByIDForUpdateFn: func(_ context.Context, id uint64) (*product.Product, error) {
			locked++
			return &product.Product{ID: id, Status: product.StatusAvailable}, nil
		},
	}
	m := Passthrough(uow.Repos{Products: products})

	err := m.WithinProductTx(ctx, 9, func(r uow.Repos, p *product.Product) error {
		if p.ID != 9 {
			t.Fatalf("product not forwarded: %+v", p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinProductTx: %v", err)
	}
	if locked != 1 {
		t.Fatalf("expected one lock call, got %d", locked)
	}
}

func TestPassthrough_WithinProductTx_MissingProduct(t *testing.T) {
	m := Passthrough(uow.Repos{Products: &productmock.Repo{}})
	called := false
	err := m.WithinProductTx(context.Background(), 1, func(uow.Repos, *product.Product) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("expected lookup error before callback, err=%v called=%v", err, called)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinProductTx(func(context.Context, uint64, func(uow.Repos, *product.Product) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinProductTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}
	m.Reset()
	if m.WithinTxFn != nil || m.WithinProductTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
