package modelselect

// Resources is a snapshot of the host capabilities relevant to model choice.
type Resources struct {
	OS             string // runtime.GOOS value, e.g. "darwin", "linux"
	Arch           string // runtime.GOARCH value, e.g. "arm64", "amd64"
	MemoryBytes    int64  // total physical memory
	NvidiaGPU      bool   // an NVIDIA card is present
	GPUMemoryBytes int64  // VRAM of the first NVIDIA card, 0 when unknown
}

// Devices and model classes returned by Choose.
const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"

	ModelTiny    = "tiny"
	ModelBase    = "base"
	ModelSmall   = "small"
	ModelMedium  = "medium"
	ModelLarge   = "large"
	ModelLargeV2 = "large-v2"
	ModelLargeV3 = "large-v3"
)

// ModelClasses lists the supported Whisper model classes from lightest to
// heaviest.
func ModelClasses() []string {
	return []string{ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLarge, ModelLargeV2, ModelLargeV3}
}

const gib = int64(1) << 30

// Choose returns the recommended model class and device for the given
// resources.
//
// Apple Silicon runs on CPU regardless of memory: the Metal backend has a
// history of silently wrong output with these models.
func Choose(res Resources) (model, device string) {
	if res.OS == "darwin" && (res.Arch == "arm64" || res.Arch == "arm") {
		if res.MemoryBytes < 8*gib {
			return ModelSmall, DeviceCPU
		}
		return ModelMedium, DeviceCPU
	}

	if res.NvidiaGPU {
		switch {
		case res.GPUMemoryBytes > 10*gib:
			return ModelLargeV3, DeviceCUDA
		case res.GPUMemoryBytes > 5*gib:
			return ModelMedium, DeviceCUDA
		default:
			return ModelSmall, DeviceCUDA
		}
	}

	if res.MemoryBytes >= 8*gib {
		return ModelSmall, DeviceCPU
	}
	return ModelBase, DeviceCPU
}
