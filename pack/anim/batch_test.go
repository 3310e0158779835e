package anim

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

func testBatchFiles() []File {
	ta, _, _ := multiSegment()
	good := ta.build()
	bad := append([]byte(nil), good...)
	bad[0] = 'X'
	return []File{
		{Name: "walk.anim", Data: good},
		{Name: "broken.anim", Data: bad},
		{Name: "idle.anim", Data: constantOnly().build()},
		{Name: "short.anim", Data: good[:0x40]},
	}
}

func TestDecodeBatch(t *testing.T) {
	files := testBatchFiles()
	for _, workers := range []int{0, 1, 3} {
		results := NewDecoder(Options{}).DecodeBatch(context.Background(), files, workers)
		if len(results) != len(files) {
			t.Fatalf("workers %d: %d results; expected %d", workers, len(results), len(files))
		}
		for i, r := range results {
			if r.Name != files[i].Name {
				t.Errorf("workers %d: results[%d].Name=%q; expected %q", workers, i, r.Name, files[i].Name)
			}
		}
		if results[0].Err != nil || results[2].Err != nil {
			t.Errorf("workers %d: good files failed: %v, %v", workers, results[0].Err, results[2].Err)
		}
		if !errors.Is(results[1].Err, ErrBadMagic) {
			t.Errorf("workers %d: broken.anim err=%v; expected BadMagic", workers, results[1].Err)
		}
		if !errors.Is(results[3].Err, ErrTruncated) {
			t.Errorf("workers %d: short.anim err=%v; expected Truncated", workers, results[3].Err)
		}
	}
}

func TestDecodeBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, r := range defaultDecoder.DecodeBatch(ctx, testBatchFiles(), 2) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: err=%v; expected context.Canceled", r.Name, r.Err)
		}
	}
}

func TestBatchReport(t *testing.T) {
	results := defaultDecoder.DecodeBatch(context.Background(), testBatchFiles(), 2)

	for i, expect := range []string{
		"walk.anim: ok (5 frames, 3 bones, 0 warnings)",
		"broken.anim: BadMagic at 0x0: ",
		"idle.anim: ok (1 frames, 1 bones, 0 warnings)",
		"short.anim: Truncated at 0x40: ",
	} {
		if report := results[i].Report(); !strings.HasPrefix(report, expect) {
			t.Errorf("Report()=%q; expected prefix %q", report, expect)
		}
	}
	if report := (&Result{Name: "x", Err: context.Canceled}).Report(); report != "x: context canceled" {
		t.Errorf("Report()=%q; expected %q", report, "x: context canceled")
	}
}

func TestBatchErrors(t *testing.T) {
	results := defaultDecoder.DecodeBatch(context.Background(), testBatchFiles(), 0)

	err := BatchErrors(results)
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("BatchErrors has %d errors; expected 2: %v", len(errs), err)
	}
	if !strings.HasPrefix(errs[0].Error(), "broken.anim: ") || !errors.Is(errs[0], ErrBadMagic) {
		t.Errorf("errs[0]=%v; expected wrapped BadMagic", errs[0])
	}
	if !strings.HasPrefix(errs[1].Error(), "short.anim: ") || !errors.Is(errs[1], ErrTruncated) {
		t.Errorf("errs[1]=%v; expected wrapped Truncated", errs[1])
	}

	if err := BatchErrors(results[:1]); err != nil {
		t.Errorf("BatchErrors(ok)=%v; expected nil", err)
	}
}
