package sagemaker

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/aws/aws-sdk-go/service/sagemaker/sagemakeriface"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime/sagemakerruntimeiface"
	"github.com/raulk/clock"
	"go.uber.org/zap"

	objects "smpredict/s3"
)

type fakeRuntime struct {
	sagemakerruntimeiface.SageMakerRuntimeAPI

	invoked []*sagemakerruntime.InvokeEndpointInput
	out     *sagemakerruntime.InvokeEndpointOutput
	err     error
}

func (f *fakeRuntime) InvokeEndpointWithContext(_ aws.Context, in *sagemakerruntime.InvokeEndpointInput, _ ...request.Option) (*sagemakerruntime.InvokeEndpointOutput, error) {
	f.invoked = append(f.invoked, in)
	return f.out, f.err
}

type fakeMetadata struct {
	sagemakeriface.SageMakerAPI

	endpoints       map[string]*sagemaker.DescribeEndpointOutput
	configs         map[string]*sagemaker.DescribeEndpointConfigOutput
	tags            map[string][]*sagemaker.Tag
	created         []*sagemaker.CreateEndpointConfigInput
	updated         []*sagemaker.UpdateEndpointInput
	waited          []string
	deleted         []string
	componentStates []*sagemaker.DescribeInferenceComponentOutput
	componentErrs   []error
	componentUpdate *sagemaker.UpdateInferenceComponentInput
	schedules       map[string]*sagemaker.DescribeMonitoringScheduleOutput
	biasJobs        map[string]*sagemaker.DescribeModelBiasJobDefinitionOutput
	contexts        []*sagemaker.ListContextsOutput
	contextDetails  map[string]*sagemaker.DescribeContextOutput
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{
		endpoints:      map[string]*sagemaker.DescribeEndpointOutput{},
		configs:        map[string]*sagemaker.DescribeEndpointConfigOutput{},
		tags:           map[string][]*sagemaker.Tag{},
		schedules:      map[string]*sagemaker.DescribeMonitoringScheduleOutput{},
		biasJobs:       map[string]*sagemaker.DescribeModelBiasJobDefinitionOutput{},
		contextDetails: map[string]*sagemaker.DescribeContextOutput{},
	}
}

var errNotFound = errors.New("not found")

func (f *fakeMetadata) DescribeEndpointWithContext(_ aws.Context, in *sagemaker.DescribeEndpointInput, _ ...request.Option) (*sagemaker.DescribeEndpointOutput, error) {
	out, ok := f.endpoints[*in.EndpointName]
	if !ok {
		return nil, errNotFound
	}
	return out, nil
}

func (f *fakeMetadata) DescribeEndpointConfigWithContext(_ aws.Context, in *sagemaker.DescribeEndpointConfigInput, _ ...request.Option) (*sagemaker.DescribeEndpointConfigOutput, error) {
	out, ok := f.configs[*in.EndpointConfigName]
	if !ok {
		return nil, errNotFound
	}
	return out, nil
}

func (f *fakeMetadata) ListTagsPagesWithContext(_ aws.Context, in *sagemaker.ListTagsInput, fn func(*sagemaker.ListTagsOutput, bool) bool, _ ...request.Option) error {
	fn(&sagemaker.ListTagsOutput{Tags: f.tags[*in.ResourceArn]}, true)
	return nil
}

func (f *fakeMetadata) CreateEndpointConfigWithContext(_ aws.Context, in *sagemaker.CreateEndpointConfigInput, _ ...request.Option) (*sagemaker.CreateEndpointConfigOutput, error) {
	f.created = append(f.created, in)
	return &sagemaker.CreateEndpointConfigOutput{}, nil
}

func (f *fakeMetadata) UpdateEndpointWithContext(_ aws.Context, in *sagemaker.UpdateEndpointInput, _ ...request.Option) (*sagemaker.UpdateEndpointOutput, error) {
	f.updated = append(f.updated, in)
	return &sagemaker.UpdateEndpointOutput{}, nil
}

func (f *fakeMetadata) WaitUntilEndpointInServiceWithContext(_ aws.Context, in *sagemaker.DescribeEndpointInput, _ ...request.WaiterOption) error {
	f.waited = append(f.waited, *in.EndpointName)
	return nil
}

func (f *fakeMetadata) DeleteModelWithContext(_ aws.Context, in *sagemaker.DeleteModelInput, _ ...request.Option) (*sagemaker.DeleteModelOutput, error) {
	f.deleted = append(f.deleted, "model:"+*in.ModelName)
	return &sagemaker.DeleteModelOutput{}, nil
}

func (f *fakeMetadata) DeleteInferenceComponentWithContext(_ aws.Context, in *sagemaker.DeleteInferenceComponentInput, _ ...request.Option) (*sagemaker.DeleteInferenceComponentOutput, error) {
	f.deleted = append(f.deleted, "component:"+*in.InferenceComponentName)
	return &sagemaker.DeleteInferenceComponentOutput{}, nil
}

func (f *fakeMetadata) UpdateInferenceComponentWithContext(_ aws.Context, in *sagemaker.UpdateInferenceComponentInput, _ ...request.Option) (*sagemaker.UpdateInferenceComponentOutput, error) {
	f.componentUpdate = in
	return &sagemaker.UpdateInferenceComponentOutput{}, nil
}

// DescribeInferenceComponentWithContext replays componentStates and
// componentErrs in order, repeating the last entry.
func (f *fakeMetadata) DescribeInferenceComponentWithContext(_ aws.Context, _ *sagemaker.DescribeInferenceComponentInput, _ ...request.Option) (*sagemaker.DescribeInferenceComponentOutput, error) {
	out, err := f.componentStates[0], f.componentErrs[0]
	if len(f.componentStates) > 1 {
		f.componentStates, f.componentErrs = f.componentStates[1:], f.componentErrs[1:]
	}
	return out, err
}

func (f *fakeMetadata) DescribeMonitoringScheduleWithContext(_ aws.Context, in *sagemaker.DescribeMonitoringScheduleInput, _ ...request.Option) (*sagemaker.DescribeMonitoringScheduleOutput, error) {
	out, ok := f.schedules[*in.MonitoringScheduleName]
	if !ok {
		return nil, errNotFound
	}
	return out, nil
}

func (f *fakeMetadata) DescribeModelBiasJobDefinitionWithContext(_ aws.Context, in *sagemaker.DescribeModelBiasJobDefinitionInput, _ ...request.Option) (*sagemaker.DescribeModelBiasJobDefinitionOutput, error) {
	out, ok := f.biasJobs[*in.JobDefinitionName]
	if !ok {
		return nil, errNotFound
	}
	return out, nil
}

func (f *fakeMetadata) ListContextsPagesWithContext(_ aws.Context, _ *sagemaker.ListContextsInput, fn func(*sagemaker.ListContextsOutput, bool) bool, _ ...request.Option) error {
	for i, page := range f.contexts {
		if !fn(page, i == len(f.contexts)-1) {
			break
		}
	}
	return nil
}

func (f *fakeMetadata) DescribeContextWithContext(_ aws.Context, in *sagemaker.DescribeContextInput, _ ...request.Option) (*sagemaker.DescribeContextOutput, error) {
	out, ok := f.contextDetails[*in.ContextName]
	if !ok {
		return nil, errNotFound
	}
	return out, nil
}

type fakeObjects struct {
	s3iface.S3API
	s3manageriface.UploaderAPI
	s3manageriface.DownloaderAPI

	objects map[string][]byte
}

func (f *fakeObjects) UploadWithContext(_ aws.Context, in *s3manager.UploadInput, _ ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = b
	return &s3manager.UploadOutput{}, nil
}

func (f *fakeObjects) DownloadWithContext(_ aws.Context, w io.WriterAt, in *s3.GetObjectInput, _ ...func(*s3manager.Downloader)) (int64, error) {
	b, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return 0, errNotFound
	}
	n, err := w.WriteAt(b, 0)
	return int64(n), err
}

func newTestClient(t *testing.T, args SagemakerArgs) (Client, *fakeRuntime, *fakeMetadata, *fakeObjects) {
	t.Helper()
	if args.Region == "" {
		args.Region = "us-west-2"
	}
	args.PollInterval = time.Millisecond
	rt := &fakeRuntime{}
	md := newFakeMetadata()
	obj := &fakeObjects{objects: map[string][]byte{}}
	c := NewClientWithAPI(args, rt, md, objects.NewClientWithAPI(obj, obj, obj), clock.New(), zap.NewNop())
	return c, rt, md, obj
}
