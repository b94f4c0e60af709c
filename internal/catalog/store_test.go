package catalog_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"Storefront/internal/catalog"
)

func TestStore_ReplacePreservesLoadOrder(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{
		{UUID: "b", Name: "second"},
		{UUID: "a", Name: "first"},
		{UUID: "c", Name: "third"},
	})

	got := s.GetAll()
	if len(got) != 3 || got[0].UUID != "b" || got[1].UUID != "a" || got[2].UUID != "c" {
		t.Fatalf("unexpected order: %#v", got)
	}
}

func TestStore_UpdateReplacesWholesale(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{
		{UUID: "a", Name: "widget", PriceCents: 100, AvailableAmount: 5, OrderAmount: 0},
	})

	s.Update(catalog.Product{UUID: "a", Name: "widget", PriceCents: 100, AvailableAmount: 4, OrderAmount: 1})

	p, ok := s.Get("a")
	if !ok {
		t.Fatalf("product missing")
	}
	if p.AvailableAmount != 4 || p.OrderAmount != 1 {
		t.Fatalf("available=%d order=%d", p.AvailableAmount, p.OrderAmount)
	}
}

func TestStore_UpdateUnknownUUIDIsIgnored(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{{UUID: "a", AvailableAmount: 5}})

	s.Update(catalog.Product{UUID: "ghost", AvailableAmount: 99})

	if s.Len() != 1 {
		t.Fatalf("len=%d want=1", s.Len())
	}
	if _, ok := s.Get("ghost"); ok {
		t.Fatalf("ghost product appeared")
	}
}

func TestStore_ReserveTakesStockAndReturnsPriorState(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{
		{UUID: "a", PriceCents: 100, AvailableAmount: 5, MinOrderAmount: 1},
	})

	p, err := s.Reserve("a", 3)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if p.AvailableAmount != 5 {
		t.Fatalf("returned available=%d want=5 (pre-reservation state)", p.AvailableAmount)
	}

	live, _ := s.Get("a")
	if live.AvailableAmount != 2 {
		t.Fatalf("available=%d want=2", live.AvailableAmount)
	}
}

func TestStore_ReserveRejectsWithoutMutating(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{
		{UUID: "a", AvailableAmount: 5, MinOrderAmount: 2},
	})

	for _, quantity := range []int{1, 6, 0} {
		if _, err := s.Reserve("a", quantity); err != catalog.ErrQuantityOutOfRange {
			t.Fatalf("quantity=%d err=%v want ErrQuantityOutOfRange", quantity, err)
		}
	}
	if _, err := s.Reserve("ghost", 2); err != catalog.ErrNotFound {
		t.Fatalf("err=%v want ErrNotFound", err)
	}

	p, _ := s.Get("a")
	if p.AvailableAmount != 5 {
		t.Fatalf("available=%d want=5 after rejected reserves", p.AvailableAmount)
	}
}

func TestStore_ReserveNeverOversells(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{
		{UUID: "a", AvailableAmount: 5, MinOrderAmount: 1},
	})

	var wg sync.WaitGroup
	var granted atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Reserve("a", 1); err == nil {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	if granted.Load() != 5 {
		t.Fatalf("granted=%d want=5", granted.Load())
	}
	p, _ := s.Get("a")
	if p.AvailableAmount != 0 {
		t.Fatalf("available=%d want=0", p.AvailableAmount)
	}
}

func TestStore_ApplyOrder(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{{UUID: "a", AvailableAmount: 5}})

	s.ApplyOrder("a", 1)
	p, _ := s.Get("a")
	if p.AvailableAmount != 4 || p.OrderAmount != 1 {
		t.Fatalf("available=%d order=%d", p.AvailableAmount, p.OrderAmount)
	}

	s.ApplyOrder("a", -1)
	p, _ = s.Get("a")
	if p.AvailableAmount != 5 || p.OrderAmount != 0 {
		t.Fatalf("available=%d order=%d", p.AvailableAmount, p.OrderAmount)
	}

	s.ApplyOrder("ghost", 1)
	if s.Len() != 1 {
		t.Fatalf("len=%d want=1", s.Len())
	}
}

func TestValidOrder(t *testing.T) {
	p := catalog.Product{AvailableAmount: 10, MinOrderAmount: 2}

	cases := []struct {
		quantity int
		want     bool
	}{
		{1, false},
		{2, true},
		{10, true},
		{11, false},
		{0, false},
		{-1, false},
	}
	for _, tc := range cases {
		if got := catalog.ValidOrder(p, tc.quantity); got != tc.want {
			t.Fatalf("ValidOrder(%d)=%v want=%v", tc.quantity, got, tc.want)
		}
	}
}

func TestStore_GetAllReturnsSnapshot(t *testing.T) {
	s := catalog.NewStore()
	s.Replace([]catalog.Product{{UUID: "a", AvailableAmount: 5}})

	snap := s.GetAll()
	snap[0].AvailableAmount = 0

	p, _ := s.Get("a")
	if p.AvailableAmount != 5 {
		t.Fatalf("store mutated through snapshot: available=%d", p.AvailableAmount)
	}
}
