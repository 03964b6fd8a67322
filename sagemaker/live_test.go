//go:build sagemaker

package sagemaker

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	lib "smpredict/lib/sagemaker"
)

// newLiveClient talks to the endpoint named by SAGEMAKER_TEST_ENDPOINT using
// the admin profile.
func newLiveClient(t *testing.T) (Client, string) {
	endpoint := os.Getenv("SAGEMAKER_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("SAGEMAKER_TEST_ENDPOINT is not set")
	}
	os.Setenv("AWS_PROFILE", "admin")
	os.Setenv("AWS_SDK_LOAD_CONFIG", "1")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	c, err := NewClient(SagemakerArgs{Region: region}, zap.NewNop())
	require.NoError(t, err)
	return c, endpoint
}

func TestLiveDescribeAndInvoke(t *testing.T) {
	c, endpoint := newLiveClient(t)
	ctx := context.Background()

	e, err := c.DescribeEndpoint(ctx, endpoint)
	require.NoError(t, err)
	assert.Equal(t, "InService", e.Status)

	cfg, err := c.DescribeEndpointConfig(ctx, e.EndpointConfigName)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.ProductionVariants)

	resp, err := c.InvokeEndpoint(ctx, &lib.InvokeRequest{
		EndpointName: endpoint,
		ContentType:  "text/csv",
		Body:         []byte("1,2,3,4"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Body)

	_, err = c.ListMonitoringSchedules(ctx, endpoint)
	assert.NoError(t, err)
}
