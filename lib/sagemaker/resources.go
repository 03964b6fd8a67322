package sagemaker

type ComputeResourceRequirements struct {
	NumberOfCPUCoresRequired           float64
	NumberOfAcceleratorDevicesRequired float64
	MinMemoryRequiredInMb              int64
	MaxMemoryRequiredInMb              int64
}

func (c ComputeResourceRequirements) Empty() bool {
	return c == ComputeResourceRequirements{}
}

// ResourceRequirements describes what one copy of a model needs when hosted
// as an inference component.
type ResourceRequirements struct {
	NumCPUs         float64
	NumAccelerators float64
	// MinMemoryMB is the requested memory, MaxMemoryMB the limit.
	MinMemoryMB int64
	MaxMemoryMB int64
	CopyCount   int64
}

// ComputeResourceRequirements returns nil when no compute field is set.
func (r ResourceRequirements) ComputeResourceRequirements() *ComputeResourceRequirements {
	c := ComputeResourceRequirements{
		NumberOfCPUCoresRequired:           r.NumCPUs,
		NumberOfAcceleratorDevicesRequired: r.NumAccelerators,
		MinMemoryRequiredInMb:              r.MinMemoryMB,
		MaxMemoryRequiredInMb:              r.MaxMemoryMB,
	}
	if c.Empty() {
		return nil
	}
	return &c
}
