package catalog

import (
	"reflect"
	"sync"
	"testing"
)

func samplePrimary(id int, name string) Primary {
	return Primary{ID: id, Name: name, Sprite: "s.png", Types: []string{"grass"}, Height: 7, Weight: 69}
}

func sampleSecondary(id int) Secondary {
	return Secondary{ID: id, Color: "green", EvolutionChainURL: "chain/1/"}
}

func TestJoinOrderIndependence(t *testing.T) {
	a := NewCache(10)
	a.SetPrimary(1, samplePrimary(1, "bulbasaur"))
	a.SetSecondary(1, sampleSecondary(1))

	b := NewCache(10)
	b.SetSecondary(1, sampleSecondary(1))
	b.SetPrimary(1, samplePrimary(1, "bulbasaur"))

	if !a.IsComplete(1) || !b.IsComplete(1) {
		t.Fatal("expected both records complete")
	}
	ra, _ := a.Get(1)
	rb, _ := b.Get(1)
	if !reflect.DeepEqual(ra, rb) {
		t.Errorf("merged records differ:\n%#v\n%#v", ra, rb)
	}
}

func TestGetAbsentAndPartial(t *testing.T) {
	c := NewCache(10)
	if _, ok := c.Get(3); ok {
		t.Error("expected absence for unseen key")
	}

	c.SetSecondary(3, sampleSecondary(3))
	rec, ok := c.Get(3)
	if !ok {
		t.Fatal("expected partial record")
	}
	if rec.Primary != nil || rec.Secondary == nil {
		t.Errorf("unexpected slots: %#v", rec)
	}
	if c.IsComplete(3) {
		t.Error("partial record reported complete")
	}
}

func TestLastWriteWins(t *testing.T) {
	c := NewCache(10)
	c.SetPrimary(2, samplePrimary(2, "first"))
	c.SetPrimary(2, samplePrimary(2, "second"))
	rec, _ := c.Get(2)
	if rec.Primary.Name != "second" {
		t.Errorf("got %q, want %q", rec.Primary.Name, "second")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	c := NewCache(10)
	c.SetPrimary(1, samplePrimary(1, "bulbasaur"))
	rec, _ := c.Get(1)
	rec.Primary = nil
	again, _ := c.Get(1)
	if again.Primary == nil {
		t.Error("mutating a returned record changed the cache")
	}
}

func TestOutOfRangeKeyAccepted(t *testing.T) {
	c := NewCache(3)
	c.SetPrimary(99, samplePrimary(99, "stray"))
	if _, ok := c.Get(99); !ok {
		t.Error("expected out-of-range key to be stored")
	}
	if c.Size() != 3 {
		t.Errorf("size changed to %d", c.Size())
	}
}

func TestKeysAndCounts(t *testing.T) {
	c := NewCache(10)
	c.SetPrimary(5, samplePrimary(5, "charmeleon"))
	c.SetSecondary(2, sampleSecondary(2))
	c.SetPrimary(2, samplePrimary(2, "ivysaur"))

	if got, want := c.Keys(), []Key{2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got := c.CompleteCount(); got != 1 {
		t.Errorf("CompleteCount() = %d, want 1", got)
	}
}

func TestFindByName(t *testing.T) {
	c := NewCache(10)
	c.SetPrimary(25, samplePrimary(25, "pikachu"))
	k, ok := c.FindByName(" Pikachu ")
	if !ok || k != 25 {
		t.Errorf("FindByName = %d, %v", k, ok)
	}
	if _, ok := c.FindByName("raichu"); ok {
		t.Error("expected miss for unknown name")
	}
}

func TestConcurrentSets(t *testing.T) {
	c := NewCache(100)
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(2)
		go func(k int) {
			defer wg.Done()
			c.SetPrimary(Key(k), samplePrimary(k, "x"))
		}(i)
		go func(k int) {
			defer wg.Done()
			c.SetSecondary(Key(k), sampleSecondary(k))
		}(i)
	}
	wg.Wait()
	if got := c.CompleteCount(); got != 100 {
		t.Errorf("CompleteCount() = %d, want 100", got)
	}
}
