package vault

import (
	"context"

	"github.com/hashicorp/vault-client-go"
	"github.com/stretchr/testify/mock"
)

// mockvaultClient is a mock type for the vaultClient type
type mockvaultClient struct {
	mock.Mock
}

type mockvaultClient_Expecter struct {
	mock *mock.Mock
}

func (_m *mockvaultClient) EXPECT() *mockvaultClient_Expecter {
	return &mockvaultClient_Expecter{mock: &_m.Mock}
}

// Read provides a mock function with given fields: ctx, path, options
func (_m *mockvaultClient) Read(ctx context.Context, path string, options ...vault.RequestOption) (*vault.Response[map[string]interface{}], error) {
	ret := _m.Called(ctx, path)

	r0, _ := ret.Get(0).(*vault.Response[map[string]interface{}])
	return r0, ret.Error(1)
}

type mockvaultClient_Read_Call struct {
	*mock.Call
}

func (_e *mockvaultClient_Expecter) Read(ctx interface{}, path interface{}) *mockvaultClient_Read_Call {
	return &mockvaultClient_Read_Call{Call: _e.mock.On("Read", ctx, path)}
}

func (_c *mockvaultClient_Read_Call) Return(_a0 *vault.Response[map[string]interface{}], _a1 error) *mockvaultClient_Read_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// newMockvaultClient creates a new instance of mockvaultClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func newMockvaultClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockvaultClient {
	m := &mockvaultClient{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
