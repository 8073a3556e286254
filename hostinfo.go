package rpprof

import (
	"context"
	"fmt"

	gopsutilcpu "github.com/shirou/gopsutil/v4/cpu"
	gopsutilhost "github.com/shirou/gopsutil/v4/host"

	"github.com/tikv/rp-prof/internal/runtime"
	"github.com/tikv/rp-prof/pkg/version"
)

// HostInfo is downstream-facing metadata attached to a report, useful for
// sanity-checking the frequency-bound testable property against the host's
// actual parallelism. It carries no sampling semantics of its own.
type HostInfo struct {
	OSVersion    string
	Kernel       string
	Platform     string
	CPUCount     int
	GoVersion    string
	RpprofCommit string
}

// HostInfo gathers host metadata via gopsutil and the platform-detection
// helpers. Best-effort: any individual lookup failing degrades that field
// to "unknown" (CPUCount to 0) rather than failing the whole report.
func (r *ReportBuilder) HostInfo() HostInfo {
	info := HostInfo{
		GoVersion:    version.GoVersion,
		RpprofCommit: version.GitCommit,
	}

	info.OSVersion, info.Kernel = runtime.DetectOSVersion()

	if hi, err := gopsutilhost.InfoWithContext(context.Background()); err == nil {
		info.Platform = fmt.Sprintf("%s/%s", hi.Platform, hi.PlatformVersion)
	} else {
		info.Platform = "unknown"
	}

	if counts, err := gopsutilcpu.CountsWithContext(context.Background(), true); err == nil {
		info.CPUCount = counts
	}

	return info
}
