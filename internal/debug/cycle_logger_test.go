package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakePPUState struct {
	ly    uint8
	mode  int
	frame bool
}

func (f fakePPUState) GetLY() uint8            { return f.ly }
func (f fakePPUState) GetMode() int            { return f.mode }
func (f fakePPUState) GetFrameAvailable() bool { return f.frame }

func newTestCycleLogger(t *testing.T, maxCycles, startCycle uint64) (*CycleLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cycles.log")
	logger, err := NewCycleLogger(path, maxCycles, startCycle, fakePPUState{ly: 10, mode: 2})
	if err != nil {
		t.Fatalf("NewCycleLogger failed: %v", err)
	}
	return logger, path
}

func TestLogCycleWritesOneLinePerTick(t *testing.T) {
	logger, path := newTestCycleLogger(t, 0, 0)
	logger.LogCycle(&CPUStateSnapshot{PC: 0x0100, SP: 0xFFFE})
	logger.LogCycle(&CPUStateSnapshot{PC: 0x0101, SP: 0xFFFE})
	logger.Close()

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if count := strings.Count(string(contents), "\nTick "); count != 2 {
		t.Fatalf("expected 2 Tick lines, found %d", count)
	}
	if !strings.Contains(string(contents), "PC:0100") {
		t.Fatalf("expected a line mentioning PC:0100, got:\n%s", contents)
	}
}

func TestLogCycleStopsAfterMaxCycles(t *testing.T) {
	logger, path := newTestCycleLogger(t, 1, 0)
	logger.LogCycle(&CPUStateSnapshot{PC: 1})
	logger.LogCycle(&CPUStateSnapshot{PC: 2})
	logger.LogCycle(&CPUStateSnapshot{PC: 3})
	logger.Close()

	if logger.IsEnabled() {
		t.Fatalf("expected logger disabled once maxCycles is reached")
	}
	contents, _ := os.ReadFile(path)
	if strings.Count(string(contents), "\nTick ") != 1 {
		t.Fatalf("expected exactly 1 logged tick once maxCycles=1 is hit")
	}
}

func TestLogCycleDelaysUntilStartCycle(t *testing.T) {
	logger, path := newTestCycleLogger(t, 0, 3)
	for i := 0; i < 5; i++ {
		logger.LogCycle(&CPUStateSnapshot{PC: uint16(i)})
	}
	logger.Close()

	contents, _ := os.ReadFile(path)
	if strings.Count(string(contents), "\nTick ") != 3 {
		t.Fatalf("expected 3 logged ticks (totalCycles 3,4,5) with startCycle=3, got:\n%s", contents)
	}
}

func TestSetEnabledAndToggle(t *testing.T) {
	logger, _ := newTestCycleLogger(t, 0, 0)
	logger.SetEnabled(false)
	if logger.IsEnabled() {
		t.Fatalf("expected disabled after SetEnabled(false)")
	}
	logger.Toggle()
	if !logger.IsEnabled() {
		t.Fatalf("expected enabled after Toggle()")
	}
	logger.Close()
}
