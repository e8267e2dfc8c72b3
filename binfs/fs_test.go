package binfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"github.com/dendrascience/runmenu/catalog"
)

func makeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("Failed to create executable: %v", err)
	}
	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("Failed to chmod executable: %v", err)
	}
	return path
}

func newTestFS(t *testing.T) (*FS, string, string) {
	t.Helper()
	root := t.TempDir()
	bin := filepath.Join(root, "bin")
	usrBin := filepath.Join(root, "usr", "bin")
	makeExecutable(t, bin, "ls")
	makeExecutable(t, bin, "cp")
	makeExecutable(t, usrBin, "ls")
	makeExecutable(t, usrBin, "awk")

	cat := &catalog.Catalog{Items: catalog.NewItems("awk", "cp", "ls")}
	f, err := New(cat, catalog.SearchPath(bin+":"+usrBin), Options{CacheSize: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return f, bin, usrBin
}

func TestDir_ReadDirAll(t *testing.T) {
	f, _, _ := newTestFS(t)
	root, _ := f.Root()
	dir := root.(*Dir)

	dirents, err := dir.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll failed: %v", err)
	}
	var names []string
	for _, de := range dirents {
		names = append(names, de.Name)
		if de.Type != fuse.DT_Link {
			t.Errorf("entry %s has type %v, expected DT_Link", de.Name, de.Type)
		}
		if de.Inode != Inode(de.Name) {
			t.Errorf("entry %s has inode %d, expected %d", de.Name, de.Inode, Inode(de.Name))
		}
	}
	if !slices.Equal(names, []string{"awk", "cp", "ls"}) {
		t.Errorf("ReadDirAll names = %v, expected [awk cp ls]", names)
	}
}

func TestDir_Attr(t *testing.T) {
	f, _, _ := newTestFS(t)
	root, _ := f.Root()

	var a fuse.Attr
	if err := root.Attr(context.Background(), &a); err != nil {
		t.Fatalf("Attr failed: %v", err)
	}
	if a.Inode != RootInode {
		t.Errorf("root inode = %d, expected %d", a.Inode, RootInode)
	}
	if !a.Mode.IsDir() || a.Mode.Perm()&0o222 != 0 {
		t.Errorf("root mode = %v, expected read-only directory", a.Mode)
	}
}

func TestLink_Readlink(t *testing.T) {
	f, bin, usrBin := newTestFS(t)
	root, _ := f.Root()
	dir := root.(*Dir)
	ctx := context.Background()

	tests := []struct {
		name string
		want string
	}{
		{name: "ls", want: filepath.Join(bin, "ls")},
		{name: "awk", want: filepath.Join(usrBin, "awk")},
		{name: "cp", want: filepath.Join(bin, "cp")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := dir.Lookup(ctx, tt.name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", tt.name, err)
			}
			link := node.(*Link)

			got, err := link.Readlink(ctx, &fuse.ReadlinkRequest{})
			if err != nil {
				t.Fatalf("Readlink failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Readlink(%s) = %q, expected %q", tt.name, got, tt.want)
			}

			var a fuse.Attr
			if err := link.Attr(ctx, &a); err != nil {
				t.Fatalf("Attr failed: %v", err)
			}
			if a.Mode&os.ModeSymlink == 0 {
				t.Errorf("mode = %v, expected symlink", a.Mode)
			}
			if a.Size != uint64(len(tt.want)) {
				t.Errorf("size = %d, expected %d", a.Size, len(tt.want))
			}
		})
	}
}

func TestDir_LookupMissing(t *testing.T) {
	f, _, _ := newTestFS(t)
	root, _ := f.Root()

	if _, err := root.(*Dir).Lookup(context.Background(), "vim"); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Lookup(vim) error = %v, expected ENOENT", err)
	}
}

func TestFS_UpdateDropsResolvedTargets(t *testing.T) {
	f, bin, usrBin := newTestFS(t)

	got, err := f.Resolve("ls")
	if err != nil || got != filepath.Join(bin, "ls") {
		t.Fatalf("Resolve(ls) = %q, %v, expected %q", got, err, filepath.Join(bin, "ls"))
	}

	if err := os.Remove(filepath.Join(bin, "ls")); err != nil {
		t.Fatalf("Failed to remove: %v", err)
	}
	got, _ = f.Resolve("ls")
	if got != filepath.Join(bin, "ls") {
		t.Errorf("Resolve(ls) before Update = %q, expected cached %q", got, filepath.Join(bin, "ls"))
	}

	f.Update(&catalog.Catalog{Items: catalog.NewItems("awk", "ls")})
	got, err = f.Resolve("ls")
	if err != nil || got != filepath.Join(usrBin, "ls") {
		t.Errorf("Resolve(ls) after Update = %q, %v, expected %q", got, err, filepath.Join(usrBin, "ls"))
	}
	if _, err := f.Resolve("cp"); !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("Resolve(cp) error = %v, expected ErrNotFound", err)
	}
}

func TestInode(t *testing.T) {
	if Inode("ls") != Inode("ls") {
		t.Error("Inode is not stable")
	}
	if Inode("ls") == Inode("cp") {
		t.Error("Inode(ls) == Inode(cp)")
	}
	for _, name := range []string{"", "a", "ls"} {
		if Inode(name) <= RootInode {
			t.Errorf("Inode(%q) = %d, collides with root", name, Inode(name))
		}
	}
}
