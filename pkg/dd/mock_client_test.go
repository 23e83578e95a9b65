package dd

import (
	"context"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/stretchr/testify/mock"
)

// mockclient is a mock type for the client type
type mockclient struct {
	mock.Mock
}

type mockclient_Expecter struct {
	mock *mock.Mock
}

func (_m *mockclient) EXPECT() *mockclient_Expecter {
	return &mockclient_Expecter{mock: &_m.Mock}
}

// CreateEvent provides a mock function with given fields: ctx, body
func (_m *mockclient) CreateEvent(ctx context.Context, body datadogV1.EventCreateRequest) (datadogV1.EventCreateResponse, *http.Response, error) {
	ret := _m.Called(ctx, body)

	r0, _ := ret.Get(0).(datadogV1.EventCreateResponse)
	r1, _ := ret.Get(1).(*http.Response)
	return r0, r1, ret.Error(2)
}

type mockclient_CreateEvent_Call struct {
	*mock.Call
}

func (_e *mockclient_Expecter) CreateEvent(ctx interface{}, body interface{}) *mockclient_CreateEvent_Call {
	return &mockclient_CreateEvent_Call{Call: _e.mock.On("CreateEvent", ctx, body)}
}

func (_c *mockclient_CreateEvent_Call) Return(_a0 datadogV1.EventCreateResponse, _a1 *http.Response, _a2 error) *mockclient_CreateEvent_Call {
	_c.Call.Return(_a0, _a1, _a2)
	return _c
}

// newMockclient creates a new instance of mockclient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func newMockclient(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockclient {
	m := &mockclient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
