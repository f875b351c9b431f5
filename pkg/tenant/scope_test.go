package tenant_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func newHeaderRequest(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.Header.Set("X-Tenant-ID", value)
	}
	return req
}

func TestScope_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("repeated calls run the chain once", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme", true)
		dir := newMockDirectory(acme)
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"))
		scope := tenant.NewScope(res, newHeaderRequest("acme"))

		assert.Equal(t, tenant.StateUnresolved, scope.State())

		for range 10 {
			got, err := scope.Resolve(context.Background())
			require.NoError(t, err)
			assert.Same(t, acme, got)
		}

		assert.Equal(t, 1, dir.lookupCount())
		assert.Equal(t, tenant.StateResolved, scope.State())
	})

	t.Run("none is cached as terminal state", func(t *testing.T) {
		t.Parallel()

		dir := newMockDirectory()
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"), tenant.NewQueryParser("tenant"))
		scope := tenant.NewScope(res, newHeaderRequest("ghost"))

		for range 5 {
			got, err := scope.Resolve(context.Background())
			require.NoError(t, err)
			assert.Nil(t, got)
		}

		assert.Equal(t, []string{"ghost"}, dir.getLookups())
		assert.Equal(t, tenant.StateNone, scope.State())
		_, ok := scope.Tenant()
		assert.False(t, ok)
	})

	t.Run("concurrent callers share one resolution", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme", true)
		dir := newMockDirectory(acme)
		dir.delay = 20 * time.Millisecond
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"))
		scope := tenant.NewScope(res, newHeaderRequest("acme"))

		const numGoroutines = 50

		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		start := make(chan struct{})

		for range numGoroutines {
			go func() {
				defer wg.Done()
				<-start

				got, err := scope.Resolve(context.Background())
				assert.NoError(t, err)
				assert.Same(t, acme, got)
			}()
		}

		close(start)
		wg.Wait()

		assert.Equal(t, 1, dir.lookupCount())
	})

	t.Run("cancellation leaves scope unresolved and retry reruns the chain", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme", true)
		dir := newMockDirectory(acme)
		block := make(chan struct{})
		dir.setBlock(block)
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"))
		scope := tenant.NewScope(res, newHeaderRequest("acme"))

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() {
			_, err := scope.Resolve(ctx)
			errCh <- err
		}()

		require.Eventually(t, func() bool { return dir.lookupCount() == 1 }, time.Second, time.Millisecond)
		cancel()

		require.ErrorIs(t, <-errCh, context.Canceled)
		assert.Equal(t, tenant.StateUnresolved, scope.State())

		close(block)

		got, err := scope.Resolve(context.Background())
		require.NoError(t, err)
		assert.Same(t, acme, got)
		assert.Equal(t, 2, dir.lookupCount())
		assert.Equal(t, tenant.StateResolved, scope.State())
	})

	t.Run("waiting caller honours its own deadline", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme", true)
		dir := newMockDirectory(acme)
		block := make(chan struct{})
		dir.setBlock(block)
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"))
		scope := tenant.NewScope(res, newHeaderRequest("acme"))

		firstDone := make(chan *tenant.Tenant, 1)
		go func() {
			got, _ := scope.Resolve(context.Background())
			firstDone <- got
		}()
		require.Eventually(t, func() bool { return dir.lookupCount() == 1 }, time.Second, time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := scope.Resolve(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		close(block)
		assert.Same(t, acme, <-firstDone)
		assert.Equal(t, 1, dir.lookupCount())
	})

	t.Run("directory failure is not cached", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("timeout talking to db")
		acme := createTestTenant("acme", true)
		dir := newMockDirectory(acme)
		dir.failWith("acme", boom)
		res := newResolver(t, dir, tenant.NewHeaderParser("X-Tenant-ID"))
		scope := tenant.NewScope(res, newHeaderRequest("acme"))

		_, err := scope.Resolve(context.Background())
		require.ErrorIs(t, err, boom)
		assert.Equal(t, tenant.StateUnresolved, scope.State())

		dir.failWith("acme", nil)

		got, err := scope.Resolve(context.Background())
		require.NoError(t, err)
		assert.Same(t, acme, got)
	})

	t.Run("nil resolver resolves to none", func(t *testing.T) {
		t.Parallel()

		scope := tenant.NewScope(nil, newHeaderRequest("acme"))

		got, err := scope.Resolve(context.Background())
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, tenant.StateNone, scope.State())
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unresolved", tenant.StateUnresolved.String())
	assert.Equal(t, "resolved", tenant.StateResolved.String())
	assert.Equal(t, "none", tenant.StateNone.String())
}
