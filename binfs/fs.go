package binfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/dendrascience/runmenu/catalog"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of resolved targets kept in memory.
const DefaultCacheSize = 1024

// RootInode is the inode of the mount root.
const RootInode = 1

// FS implements the flat bin view.
type FS struct {
	sp      catalog.SearchPath
	targets *lru.Cache[string, string] // name -> resolved path
	logger  *log.Logger

	mu      sync.RWMutex // protects cat, present and updated
	cat     *catalog.Catalog
	present map[string]struct{}
	updated time.Time
}

// Options configure a filesystem instance.
type Options struct {
	// CacheSize bounds resolved targets; DefaultCacheSize when zero.
	CacheSize int
	Logger    *log.Logger
}

// New creates a filesystem serving cat, resolving names against sp.
func New(cat *catalog.Catalog, sp catalog.SearchPath, opts Options) (*FS, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	targets, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create target cache: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	f := &FS{sp: sp, targets: targets, logger: logger}
	f.Update(cat)
	return f, nil
}

// Update replaces the served catalog and forgets every resolved target.
func (f *FS) Update(cat *catalog.Catalog) {
	present := make(map[string]struct{}, cat.Len())
	for it := range cat.Iterate {
		present[it.Name] = struct{}{}
	}

	f.mu.Lock()
	f.cat = cat
	f.present = present
	f.updated = time.Now()
	f.mu.Unlock()

	f.targets.Purge()
	f.logger.Debug("bin view updated", "entries", len(present))
}

func (f *FS) has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.present[name]
	return ok
}

// Resolve returns the symlink target for name.
func (f *FS) Resolve(name string) (string, error) {
	if target, ok := f.targets.Get(name); ok {
		return target, nil
	}
	if !f.has(name) {
		return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, name)
	}
	target, err := catalog.LookPath(f.sp, name)
	if err != nil {
		return "", err
	}
	f.targets.Add(name, target)
	return target, nil
}

// Inode derives a stable inode number from a program name.
func Inode(name string) uint64 {
	ino := xxhash.Sum64String(name)
	if ino <= RootInode {
		ino += RootInode + 1
	}
	return ino
}

// Root returns the root directory node.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f}, nil
}

// Dir is the mount root.
type Dir struct {
	fs *FS
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	d.fs.mu.RLock()
	mtime := d.fs.updated
	d.fs.mu.RUnlock()

	a.Inode = RootInode
	a.Mode = os.ModeDir | 0o555
	a.Mtime = mtime
	a.Ctime = mtime
	a.Atime = mtime
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if !d.fs.has(name) {
		return nil, syscall.ENOENT
	}
	return &Link{fs: d.fs, name: name}, nil
}

// ReadDirAll lists one symlink per catalog entry in catalog order.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.RLock()
	cat := d.fs.cat
	d.fs.mu.RUnlock()

	dirents := make([]fuse.Dirent, 0, cat.Len())
	for it := range cat.Iterate {
		dirents = append(dirents, fuse.Dirent{
			Inode: Inode(it.Name),
			Name:  it.Name,
			Type:  fuse.DT_Link,
		})
	}
	return dirents, nil
}

// Link is a catalog entry.
type Link struct {
	fs   *FS
	name string
}

func (l *Link) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = Inode(l.name)
	a.Mode = os.ModeSymlink | 0o777
	if target, err := l.fs.Resolve(l.name); err == nil {
		a.Size = uint64(len(target))
	}
	l.fs.mu.RLock()
	a.Mtime = l.fs.updated
	l.fs.mu.RUnlock()
	return nil
}

func (l *Link) Readlink(ctx context.Context, req *fuse.ReadlinkRequest) (string, error) {
	target, err := l.fs.Resolve(l.name)
	if err != nil {
		l.fs.logger.Debug("readlink failed", "name", l.name, "err", err)
		return "", syscall.ENOENT
	}
	return target, nil
}

// Mount opens a read-only FUSE connection at mountpoint.
func Mount(mountpoint string) (*fuse.Conn, error) {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("runmenu"),
		fuse.Subtype("binfs"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mount %s: %w", mountpoint, err)
	}
	return c, nil
}

var (
	_ fs.FS                 = (*FS)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.NodeReadlinker     = (*Link)(nil)
)
