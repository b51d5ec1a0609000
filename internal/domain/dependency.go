package domain

// EdgeKind classifies a dependency edge. Blocks and requires are hard —
// ordering must respect them. Suggests is advisory and recorded for
// diagnostics only.
type EdgeKind string

const (
	EdgeBlocks   EdgeKind = "blocks"
	EdgeRequires EdgeKind = "requires"
	EdgeSuggests EdgeKind = "suggests"
)

// IsHard reports whether the edge must be respected by ordering.
func (k EdgeKind) IsHard() bool {
	return k == EdgeBlocks || k == EdgeRequires
}

// DependencyEdge is a directed dependency: From depends on To.
// Weight is a confidence score in (0,1] used only for reporting.
type DependencyEdge struct {
	From   string   `json:"from_task"`
	To     string   `json:"to_task"`
	Kind   EdgeKind `json:"kind"`
	Weight float64  `json:"weight"`
}

// ResourceCategory names one of the declarative resource classifications
// used for batch admission control. Not an OS resource.
type ResourceCategory string

const (
	ResourceCPU     ResourceCategory = "cpu"
	ResourceMemory  ResourceCategory = "memory"
	ResourceIO      ResourceCategory = "io"
	ResourceNetwork ResourceCategory = "network"
)

// ResourceCategories lists all categories in quota-evaluation order.
var ResourceCategories = []ResourceCategory{
	ResourceCPU, ResourceMemory, ResourceIO, ResourceNetwork,
}

// ResourceProfile is the profiler's classification of one task.
type ResourceProfile struct {
	CPUIntensive     bool `json:"cpu_intensive"`
	MemoryIntensive  bool `json:"memory_intensive"`
	IOIntensive      bool `json:"io_intensive"`
	NetworkIntensive bool `json:"network_intensive"`
	EstimatedMinutes int  `json:"estimated_duration_minutes"`
	MaxParallel      int  `json:"max_parallel"`
}

// Has reports whether the profile sets the given category flag.
func (p ResourceProfile) Has(c ResourceCategory) bool {
	switch c {
	case ResourceCPU:
		return p.CPUIntensive
	case ResourceMemory:
		return p.MemoryIntensive
	case ResourceIO:
		return p.IOIntensive
	case ResourceNetwork:
		return p.NetworkIntensive
	}
	return false
}

// Categories returns the categories the profile flags, in canonical order.
func (p ResourceProfile) Categories() []ResourceCategory {
	var out []ResourceCategory
	for _, c := range ResourceCategories {
		if p.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// CanParallelize reports whether tasks of this profile are safe to run
// alongside arbitrary peers: true iff neither cpu- nor memory-intensive.
func (p ResourceProfile) CanParallelize() bool {
	return !p.CPUIntensive && !p.MemoryIntensive
}
