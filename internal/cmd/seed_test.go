package cmd

import (
	"math/rand/v2"
	"testing"

	"github.com/dendrascience/runmenu/catalog"
)

func TestSeedSearchPath(t *testing.T) {
	out := t.TempDir()
	rng := rand.New(rand.NewPCG(1, 2))

	sp, st, err := seedSearchPath(out, 3, 200, rng)
	if err != nil {
		t.Fatalf("seedSearchPath failed: %v", err)
	}
	if got := len(sp.Dirs()); got != 3 {
		t.Errorf("search path has %d directories, expected 3", got)
	}

	items, err := catalog.Scan(sp)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(items) != st.Executables {
		t.Errorf("Scan found %d executables, expected %d", len(items), st.Executables)
	}

	catalog.Sort(items)
	unique := catalog.Dedup(items)
	if len(unique) > st.Names {
		t.Errorf("%d unique names from a pool of %d", len(unique), st.Names)
	}
	if st.Executables == 0 {
		t.Error("no executables generated")
	}
}

func TestSeedSearchPath_NoDirs(t *testing.T) {
	if _, _, err := seedSearchPath(t.TempDir(), 0, 10, rand.New(rand.NewPCG(1, 2))); err == nil {
		t.Error("seedSearchPath accepted zero directories, expected error")
	}
}
