package sagemaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeResourceRequirements(t *testing.T) {
	assert.Nil(t, ResourceRequirements{CopyCount: 2}.ComputeResourceRequirements())
	assert.Equal(t, &ComputeResourceRequirements{
		NumberOfAcceleratorDevicesRequired: 1,
		MaxMemoryRequiredInMb:              4096,
	}, ResourceRequirements{NumAccelerators: 1, MaxMemoryMB: 4096}.ComputeResourceRequirements())
}

func TestIsDefaultAnalyzer(t *testing.T) {
	assert.True(t, MonitoringJobDefinition{ImageURI: "1.dkr.ecr.us-east-1.amazonaws.com/sagemaker-model-monitor-analyzer"}.IsDefaultAnalyzer())
	assert.False(t, MonitoringJobDefinition{ImageURI: "1.dkr.ecr.us-east-1.amazonaws.com/my-analyzer"}.IsDefaultAnalyzer())
	assert.Equal(t, "DefaultModelMonitor", MonitorKindDataQuality.String())
}

func TestNewDataCaptureConfig(t *testing.T) {
	c := NewDataCaptureConfig(true)
	assert.True(t, c.EnableCapture)
	assert.Equal(t, int64(20), c.SamplingPercentage)
	assert.Equal(t, []string{"REQUEST", "RESPONSE"}, c.CaptureOptions)
	c.CaptureOptions[0] = "changed"
	assert.Equal(t, "REQUEST", DefaultCaptureOptions[0])
	assert.Equal(t, "jumpstart-cache-prod-eu-west-1", PayloadBucket("eu-west-1"))
}
