// Copyright © 2026 the icevis authors.
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ramp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/icevis/icevis/colorramp"
)

func setDefaultFlags() {
	minFlag = 0
	maxFlag = 0
	extendFlag = ""
	logFlag = false
	expFlag = 1
	output = ""
}

func TestRun(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "colors.txt")
	table := "0 0 0 0\n100 255 255 255\n"
	if err := os.WriteFile(in, []byte(table), 0644); err != nil {
		t.Fatalf("unable to write color table: %v", err)
	}

	setDefaultFlags()
	minFlag = -5000
	maxFlag = 1400
	if err := run(Command, []string{in}); err != nil {
		t.Fatalf("run %q: unexpected error: %v", in, err)
	}

	// the input color table must be left untouched
	d, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("unable to read color table: %v", err)
	}
	if string(d) != table {
		t.Errorf("color table %q: got %q, want %q", in, d, table)
	}

	prefix := filepath.Join(tmp, "colors-ramp")
	rp, err := colorramp.ReadFile(prefix + ".txt")
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	if min := rp.Min(); min != -5000 {
		t.Errorf("output ramp: got minimum %g, want %g", min, -5000.0)
	}
	if max := rp.Max(); max != 1400 {
		t.Errorf("output ramp: got maximum %g, want %g", max, 1400.0)
	}
	if _, err := os.Stat(prefix + ".png"); err != nil {
		t.Errorf("color bar image: %v", err)
	}
}

func TestRunOverwrite(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "colors.txt")
	table := "0 0 0 0\n100 255 255 255\n"
	if err := os.WriteFile(in, []byte(table), 0644); err != nil {
		t.Fatalf("unable to write color table: %v", err)
	}

	setDefaultFlags()
	minFlag = 0
	maxFlag = 100
	output = strings.TrimSuffix(in, ".txt")
	if err := run(Command, []string{in}); err == nil {
		t.Errorf("run %q: expecting overwrite error", in)
	}

	d, err := os.ReadFile(in)
	if err != nil {
		t.Fatalf("unable to read color table: %v", err)
	}
	if string(d) != table {
		t.Errorf("color table %q: got %q, want %q", in, d, table)
	}
}
