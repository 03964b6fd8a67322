package predictor

import (
	"context"
	"errors"
	"fmt"

	lib "smpredict/lib/sagemaker"
)

var errRemote = errors.New("remote failure")

type createCall struct {
	existing  string
	newName   string
	overrides lib.EndpointConfigOverrides
}

type updateCall struct {
	endpoint string
	config   string
	wait     bool
}

// fakeSession is an in-memory lib.Session. calls records every method in
// the order it was invoked.
type fakeSession struct {
	calls []string

	endpoints  map[string]lib.Endpoint
	configs    map[string]lib.EndpointConfig
	components map[string]lib.InferenceComponent

	invokeResp *lib.InvokeResponse
	invokeErr  error
	invoked    []*lib.InvokeRequest

	created          []createCall
	updated          []updateCall
	componentUpdates []lib.InferenceComponentUpdate
	deleteModelErrs  map[string]error
	deleted          []string

	related lib.ListInferenceComponentsResult
	queries []lib.ListInferenceComponentsQuery

	schedules   []lib.MonitoringScheduleSummary
	described   map[string]lib.MonitoringSchedule
	attachedAs  map[string]lib.MonitorKind
	contexts    []lib.ContextSummary
	contextByID map[string]lib.EndpointContext
}

var _ lib.Session = (*fakeSession)(nil)

func newFakeSession() *fakeSession {
	return &fakeSession{
		endpoints: map[string]lib.Endpoint{
			"my-endpoint": {Name: "my-endpoint", Arn: "arn:aws:sagemaker:us-west-2:1:endpoint/my-endpoint", EndpointConfigName: "my-config"},
		},
		configs: map[string]lib.EndpointConfig{
			"my-config": {Name: "my-config", ProductionVariants: []lib.ProductionVariant{
				lib.NewProductionVariant("model-a", "ml.m5.large", 1, ""),
			}},
		},
		components:      map[string]lib.InferenceComponent{},
		invokeResp:      &lib.InvokeResponse{},
		deleteModelErrs: map[string]error{},
		described:       map[string]lib.MonitoringSchedule{},
		attachedAs:      map[string]lib.MonitorKind{},
		contextByID:     map[string]lib.EndpointContext{},
	}
}

func (f *fakeSession) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeSession) InvokeEndpoint(_ context.Context, req *lib.InvokeRequest) (*lib.InvokeResponse, error) {
	f.record("InvokeEndpoint")
	f.invoked = append(f.invoked, req)
	return f.invokeResp, f.invokeErr
}

func (f *fakeSession) SerializePayload(_ context.Context, payload *lib.Payload) ([]byte, error) {
	f.record("SerializePayload")
	return []byte(fmt.Sprintf("payload:%v", payload.Body)), nil
}

func (f *fakeSession) DescribeEndpoint(_ context.Context, name string) (lib.Endpoint, error) {
	f.record("DescribeEndpoint:%s", name)
	e, ok := f.endpoints[name]
	if !ok {
		return lib.Endpoint{}, errRemote
	}
	return e, nil
}

func (f *fakeSession) DescribeEndpointConfig(_ context.Context, name string) (lib.EndpointConfig, error) {
	f.record("DescribeEndpointConfig:%s", name)
	c, ok := f.configs[name]
	if !ok {
		return lib.EndpointConfig{}, errRemote
	}
	return c, nil
}

func (f *fakeSession) CreateEndpointConfigFromExisting(_ context.Context, existing, newName string, overrides lib.EndpointConfigOverrides) error {
	f.record("CreateEndpointConfigFromExisting:%s", existing)
	f.created = append(f.created, createCall{existing: existing, newName: newName, overrides: overrides})
	return nil
}

func (f *fakeSession) UpdateEndpoint(_ context.Context, endpoint, config string, wait bool) error {
	f.record("UpdateEndpoint:%s", endpoint)
	f.updated = append(f.updated, updateCall{endpoint: endpoint, config: config, wait: wait})
	return nil
}

func (f *fakeSession) DeleteEndpoint(_ context.Context, name string) error {
	f.record("DeleteEndpoint:%s", name)
	return nil
}

func (f *fakeSession) DeleteEndpointConfig(_ context.Context, name string) error {
	f.record("DeleteEndpointConfig:%s", name)
	return nil
}

func (f *fakeSession) DeleteModel(_ context.Context, name string) error {
	f.record("DeleteModel:%s", name)
	if err := f.deleteModelErrs[name]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeSession) DescribeInferenceComponent(_ context.Context, name string) (lib.InferenceComponent, error) {
	f.record("DescribeInferenceComponent:%s", name)
	ic, ok := f.components[name]
	if !ok {
		return lib.InferenceComponent{}, errRemote
	}
	return ic, nil
}

func (f *fakeSession) UpdateInferenceComponent(_ context.Context, update lib.InferenceComponentUpdate, wait bool) error {
	f.record("UpdateInferenceComponent:%s:%t", update.Name, wait)
	f.componentUpdates = append(f.componentUpdates, update)
	return nil
}

func (f *fakeSession) DeleteInferenceComponent(_ context.Context, name string, wait bool) error {
	f.record("DeleteInferenceComponent:%s:%t", name, wait)
	return nil
}

func (f *fakeSession) ListInferenceComponents(_ context.Context, q lib.ListInferenceComponentsQuery) (lib.ListInferenceComponentsResult, error) {
	f.record("ListInferenceComponents")
	f.queries = append(f.queries, q)
	return f.related, nil
}

func (f *fakeSession) ListMonitoringSchedules(_ context.Context, endpoint string) ([]lib.MonitoringScheduleSummary, error) {
	f.record("ListMonitoringSchedules:%s", endpoint)
	return f.schedules, nil
}

func (f *fakeSession) DescribeMonitoringSchedule(_ context.Context, name string) (lib.MonitoringSchedule, error) {
	f.record("DescribeMonitoringSchedule:%s", name)
	s, ok := f.described[name]
	if !ok {
		return lib.MonitoringSchedule{}, errRemote
	}
	return s, nil
}

func (f *fakeSession) AttachMonitor(_ context.Context, kind lib.MonitorKind, name string) (lib.Monitor, error) {
	f.record("AttachMonitor:%s", name)
	f.attachedAs[name] = kind
	return lib.Monitor{Kind: kind, ScheduleName: name}, nil
}

func (f *fakeSession) ListEndpointContexts(_ context.Context, sourceURI string) ([]lib.ContextSummary, error) {
	f.record("ListEndpointContexts:%s", sourceURI)
	return f.contexts, nil
}

func (f *fakeSession) LoadEndpointContext(_ context.Context, name string) (lib.EndpointContext, error) {
	f.record("LoadEndpointContext:%s", name)
	ec, ok := f.contextByID[name]
	if !ok {
		return lib.EndpointContext{}, errRemote
	}
	return ec, nil
}

func (f *fakeSession) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
