// Copyright 2016 The Galileo Glass UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	disposed int
}

func (h *fakeHandle) Dispose() { h.disposed++ }

func TestHooksMountMemoizesPerElement(t *testing.T) {

	h := NewHooks()
	calls := 0
	factory := func() (Disposable, error) {
		calls++
		return &fakeHandle{}, nil
	}

	first, err := h.Mount("card-1", factory)
	require.NoError(t, err)

	second, err := h.Mount("card-1", factory)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls, "a second Mount for the same element id should not reconstruct the handle")
}

func TestHooksUnmountDisposesAndForgetsBinding(t *testing.T) {

	h := NewHooks()
	handle := &fakeHandle{}
	_, err := h.Mount("card-1", func() (Disposable, error) { return handle, nil })
	require.NoError(t, err)

	h.Unmount("card-1")
	assert.Equal(t, 1, handle.disposed)

	// unmounting again, or an id never mounted, is a no-op.
	h.Unmount("card-1")
	h.Unmount("never-mounted")
	assert.Equal(t, 1, handle.disposed)
}

func TestHooksMountAfterUnmountReconstructs(t *testing.T) {

	h := NewHooks()
	calls := 0
	factory := func() (Disposable, error) {
		calls++
		return &fakeHandle{}, nil
	}

	_, err := h.Mount("card-1", factory)
	require.NoError(t, err)
	h.Unmount("card-1")

	_, err = h.Mount("card-1", factory)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestHooksMountPropagatesFactoryError(t *testing.T) {

	h := NewHooks()
	wantErr := errors.New("construction failed")

	handle, err := h.Mount("card-1", func() (Disposable, error) { return nil, wantErr })
	assert.Nil(t, handle)
	assert.Equal(t, wantErr, err)
}

func TestHooksUnmountAllDisposesEveryBinding(t *testing.T) {

	h := NewHooks()
	a := &fakeHandle{}
	b := &fakeHandle{}
	_, err := h.Mount("a", func() (Disposable, error) { return a, nil })
	require.NoError(t, err)
	_, err = h.Mount("b", func() (Disposable, error) { return b, nil })
	require.NoError(t, err)

	h.UnmountAll()

	assert.Equal(t, 1, a.disposed)
	assert.Equal(t, 1, b.disposed)
}
