package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

// constant pose, 3 frames, 1 bone
func idleAnim() []byte {
	b := make([]byte, 0x70+0x38)
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }
	put(0x00, 0x4D494E41)
	put(0x08, 0x38)
	put(0x0C, 3)
	put(0x48, 1)
	for i, v := range []uint32{1, 1, 1, 1, 1, 0, 0x10, 0x14, 0x38} {
		put(0x4C+i*4, v)
	}
	put(0x70+0x0C, 0x38)
	put(0x70+0x10, 0x15)
	for i, f := range []float32{0, 0, 0, 1, 2, 3, 1, 1, 1} {
		put(0x70+0x14+i*4, math.Float32bits(f))
	}
	return b
}

func testDir(t *testing.T) string {
	dir := t.TempDir()
	short := idleAnim()[:0x60]
	for name, data := range map[string][]byte{
		"idle.anim":  idleAnim(),
		"short.anim": short,
		"readme.txt": []byte("skip"),
	} {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	err := check(context.Background(), checkFlags{dir: testDir(t), workers: 2, yaml: true}, &out)

	if errs := multierr.Errors(err); len(errs) != 1 || !strings.HasPrefix(errs[0].Error(), "short.anim: ") {
		t.Errorf("check err=%v; expected one short.anim failure", err)
	}
	for _, line := range []string{
		"idle.anim: ok (3 frames, 1 bones, 0 warnings)\n",
		"short.anim: Truncated at 0x60: ",
		"frame_count: 3",
	} {
		if !strings.Contains(out.String(), line) {
			t.Errorf("output has no %q:\n%s", line, out.String())
		}
	}
	if strings.Contains(out.String(), "readme") {
		t.Errorf("non anim file checked:\n%s", out.String())
	}
}

func TestCheckDump(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "idle.anim"), idleAnim(), 0666); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := check(context.Background(), checkFlags{dir: dir, dump: true}, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "FrameCount: (uint32) 3") {
		t.Errorf("dump output:\n%s", out.String())
	}
}

func TestCheckConfig(t *testing.T) {
	dir := testDir(t)
	cfg := filepath.Join(t.TempDir(), "animcheck.yaml")
	if err := os.WriteFile(cfg, []byte("class_policy: nope\n"), 0666); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := check(context.Background(), checkFlags{dir: dir, config: cfg}, &out); err == nil {
		t.Errorf("check with bad config returned no error")
	}
	if err := check(context.Background(), checkFlags{dir: filepath.Join(dir, "missing")}, &out); err == nil {
		t.Errorf("check of missing dir returned no error")
	}
}
