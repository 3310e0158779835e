package pack

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mogaika/anim_browser/utils"
	"github.com/mogaika/anim_browser/vfs"
)

func TestGetInstanceHandler(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.len"), []byte("12345"), 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.unknown"), []byte("1"), 0666); err != nil {
		t.Fatal(err)
	}

	SetHandler(".len", func(src utils.ResourceSource, r *io.SectionReader) (interface{}, error) {
		return r.Size() + src.Size(), nil
	})

	d := vfs.NewDirectoryDriver(dir)
	inst, err := GetInstanceHandler(d, "b.len")
	if err == nil {
		t.Errorf("GetInstanceHandler(missing file) returned %v", inst)
	}
	if inst, err = GetInstanceHandler(d, "a.len"); err != nil || inst.(int64) != 10 {
		t.Errorf("GetInstanceHandler(%q)=%v, %v; expected 10", "a.len", inst, err)
	}
	if _, err := GetInstanceHandler(d, "a.unknown"); err == nil {
		t.Errorf("GetInstanceHandler(%q) returned no error", "a.unknown")
	}
}
