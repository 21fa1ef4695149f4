package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// twoRunDesign is a 100x100 design: a horizontal stitch line in color 0 at
// y=0 and one in color 1 at y=100.
func twoRunDesign(t *testing.T) *Design {
	t.Helper()
	buf := dstBytes("LA:Two Runs\rST:      4\rCO:  2\r+X:  100-X:    0+Y:  100-Y:    0\r",
		encodeRecord(0, 0, StitchNormal),
		encodeRecord(100, 0, StitchNormal),
		encodeRecord(-100, 100, StitchColorChange),
		encodeRecord(0, 0, StitchNormal),
		encodeRecord(100, 0, StitchNormal),
		endRecord,
	)
	d, err := loadDesign("two.dst", buf)
	if err != nil {
		t.Fatalf("loadDesign: %v", err)
	}
	return d
}

func writeDST(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	//nolint:gosec // Test file permissions are acceptable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDesign(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		d := twoRunDesign(t)
		if d.FileName != "two.dst" || d.Header.Label != "Two Runs" {
			t.Errorf("got file %q label %q", d.FileName, d.Header.Label)
		}
		if len(d.Points) != 5 || len(d.ColorRuns) != 2 || len(d.Breaks) != 1 {
			t.Errorf("got %d points, %d runs, %d breaks; want 5, 2, 1", len(d.Points), len(d.ColorRuns), len(d.Breaks))
		}
		if d.Stats.TotalStitches != 4 || d.Stats.ColorChanges != 1 || d.Stats.TotalColors != 2 {
			t.Errorf("Stats = %+v", d.Stats)
		}
	})

	t.Run("truncated header", func(t *testing.T) {
		d, err := loadDesign("short.dst", make([]byte, headerSize-1))
		if !errors.Is(err, errTruncatedHeader) {
			t.Fatalf("err = %v, want errTruncatedHeader", err)
		}
		if d != nil {
			t.Errorf("got partial design %+v", d)
		}
	})

	t.Run("header without body is empty, not an error", func(t *testing.T) {
		d, err := loadDesign("empty.dst", testHeader("LA:Empty\r"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(d.Points) != 0 || len(d.ColorRuns) != 0 {
			t.Errorf("got %d points, %d runs", len(d.Points), len(d.ColorRuns))
		}
	})
}

func TestReadDesignFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("upper case extension accepted", func(t *testing.T) {
		path := writeDST(t, dir, "LOGO.DST", dstBytes("LA:Logo\r", encodeRecord(3, 4, StitchNormal), endRecord))
		d, err := readDesignFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.FileName != "LOGO.DST" {
			t.Errorf("FileName = %q", d.FileName)
		}
	})

	t.Run("other extension rejected", func(t *testing.T) {
		path := writeDST(t, dir, "logo.pes", dstBytes(""))
		if _, err := readDesignFile(path); !errors.Is(err, errNotDST) {
			t.Errorf("err = %v, want errNotDST", err)
		}
	})

	t.Run("truncated file", func(t *testing.T) {
		path := writeDST(t, dir, "short.dst", []byte("LA:x"))
		_, err := readDesignFile(path)
		if !errors.Is(err, errTruncatedHeader) {
			t.Fatalf("err = %v, want errTruncatedHeader", err)
		}
		if !strings.Contains(err.Error(), "short.dst") {
			t.Errorf("error %q does not name the file", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := readDesignFile(filepath.Join(dir, "nope.dst")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})
}

func TestSummaryLines(t *testing.T) {
	d := twoRunDesign(t)
	got := strings.Join(d.summaryLines(), "\n")
	for _, want := range []string{"two.dst", "Two Runs", "Stitches: 4", "Colors:   2", "10.0 x 10.0 mm", "0.39 x 0.39 in"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestDesignSizeFallsBackToBounds(t *testing.T) {
	d, err := loadDesign("nohdr.dst", dstBytes("", encodeRecord(0, 0, StitchNormal), encodeRecord(120, 60, StitchNormal)))
	if err != nil {
		t.Fatal(err)
	}
	if d.widthMM() != 12 || d.heightMM() != 6 {
		t.Errorf("size = %.1f x %.1f, want 12.0 x 6.0", d.widthMM(), d.heightMM())
	}
}
