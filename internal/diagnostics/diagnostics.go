// Package diagnostics reports process and system memory usage so long
// pipeline runs can be profiled from their debug logs.
package diagnostics

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/tphakala/bbs-go/internal/conf"
)

// Snapshot is one point-in-time view of process and system memory.
type Snapshot struct {
	HeapAllocMiB  uint64
	TotalAllocMiB uint64
	SysMiB        uint64
	NumGC         uint32
	// system figures come from gopsutil and stay zero when unavailable
	SystemUsedPercent float64
	SystemTotalMiB    uint64
}

// Capture reads the Go runtime and system memory counters.
func Capture() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := Snapshot{
		HeapAllocMiB:  bToMb(m.Alloc),
		TotalAllocMiB: bToMb(m.TotalAlloc),
		SysMiB:        bToMb(m.Sys),
		NumGC:         m.NumGC,
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		snap.SystemUsedPercent = vmStat.UsedPercent
		snap.SystemTotalMiB = bToMb(vmStat.Total)
	}
	return snap
}

func (s Snapshot) String() string {
	return fmt.Sprintf("heap %d MiB, total alloc %d MiB, sys %d MiB, gc %d, system ram %.1f%% of %d MiB",
		s.HeapAllocMiB, s.TotalAllocMiB, s.SysMiB, s.NumGC, s.SystemUsedPercent, s.SystemTotalMiB)
}

// LogMemory emits the current snapshot at debug level, tagged with the
// pipeline stage it was taken after.
func LogMemory(logger *slog.Logger, stage string) {
	if logger == nil {
		logger = slog.Default()
	}
	snap := Capture()
	logger.Debug("memory usage",
		"stage", stage,
		"heap_mib", snap.HeapAllocMiB,
		"total_alloc_mib", snap.TotalAllocMiB,
		"sys_mib", snap.SysMiB,
		"num_gc", snap.NumGC,
		"system_used_percent", snap.SystemUsedPercent)
}

// WriteDebugDump writes a debug report next to the active config file
// and returns its path. Called on abnormal exits when debug is enabled.
func WriteDebugDump(errorMessage string) (string, error) {
	var info strings.Builder

	separator := "======== DEBUG INFO START ========"
	info.WriteString(separator + "\n")
	info.WriteString(fmt.Sprintf("Error Occurred: %s\n", errorMessage))

	// CPU sample blocks for a second, acceptable on the failure path
	if cpuPercent, err := cpu.Percent(time.Second, false); err == nil && len(cpuPercent) > 0 {
		info.WriteString(fmt.Sprintf("CPU Utilization: %.2f%%\n", cpuPercent[0]))
	}

	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.WriteString(fmt.Sprintf("RAM Usage: %.2f%%\n", vmStat.UsedPercent))
	}
	if swapStat, err := mem.SwapMemory(); err == nil {
		info.WriteString(fmt.Sprintf("Swap Usage: %.2f%%\n", swapStat.UsedPercent))
	}

	snap := Capture()
	info.WriteString(fmt.Sprintf("Go Runtime: Alloc = %v MiB, TotalAlloc = %v MiB, Sys = %v MiB, NumGC = %v\n",
		snap.HeapAllocMiB, snap.TotalAllocMiB, snap.SysMiB, snap.NumGC))

	info.WriteString(strings.ReplaceAll(separator, "START", "END") + "\n")

	configPath, err := conf.FindConfigFile()
	if err != nil {
		return "", fmt.Errorf("error finding config file: %w", err)
	}

	debugFileName := fmt.Sprintf("debug_%s.txt", time.Now().Format("2006-01-02_15-04-05"))
	debugFilePath := filepath.Join(filepath.Dir(configPath), debugFileName)
	if err := os.WriteFile(debugFilePath, []byte(info.String()), 0o644); err != nil {
		return "", fmt.Errorf("error writing debug file: %w", err)
	}
	return debugFilePath, nil
}

// bToMb converts bytes to megabytes
func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
