package modelselect

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/jaypipes/ghw"
)

// DetectResources gathers a best-effort Resources snapshot for this host.
// Every probe degrades to a zero value on failure; the selection tiers treat
// unknown capacities conservatively.
func DetectResources(ctx context.Context) Resources {
	res := Resources{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if memory, err := ghw.Memory(); err == nil && memory != nil {
		res.MemoryBytes = memory.TotalPhysicalBytes
	}

	if gpu, err := ghw.GPU(); err == nil && gpu != nil {
		for _, card := range gpu.GraphicsCards {
			if card == nil || card.DeviceInfo == nil || card.DeviceInfo.Vendor == nil {
				continue
			}
			if strings.Contains(strings.ToUpper(card.DeviceInfo.Vendor.Name), "NVIDIA") {
				res.NvidiaGPU = true
				break
			}
		}
	}

	if res.NvidiaGPU {
		res.GPUMemoryBytes = queryNvidiaVRAM(ctx)
	}

	return res
}

// queryNvidiaVRAM asks nvidia-smi for the first card's total memory in MiB.
// ghw does not expose VRAM, so this is the practical source of truth when the
// NVIDIA userland is installed.
func queryNvidiaVRAM(ctx context.Context) int64 {
	cmd := exec.CommandContext(ctx, "nvidia-smi", "--query-gpu=memory.total", "--format=csv,noheader,nounits")
	output, err := cmd.Output()
	if err != nil {
		return 0
	}
	first := strings.TrimSpace(strings.SplitN(string(output), "\n", 2)[0])
	mib, err := strconv.ParseInt(first, 10, 64)
	if err != nil || mib <= 0 {
		return 0
	}
	return mib << 20
}
