package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStartStopCPU(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	if err := StartCPU(path); err != nil {
		t.Fatalf("StartCPU: %v", err)
	}
	StopCPU()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("profile file is empty")
	}
	// Повторный Stop не должен паниковать.
	StopCPU()
}

func TestStartCPUBadPath(t *testing.T) {
	if err := StartCPU(filepath.Join(t.TempDir(), "no", "such", "dir", "cpu.pprof")); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}

func TestWriteMem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.pprof")
	if err := WriteMem(path); err != nil {
		t.Fatalf("WriteMem: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("profile file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("heap profile is empty")
	}
}
