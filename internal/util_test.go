package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type closer struct {
	closed int
	err    error
}

func (c *closer) Close() error {
	c.closed++
	return c.err
}

func TestHandleClose(t *testing.T) {
	c := &closer{}
	HandleClose(c)
	assert.Equal(t, 1, c.closed)

	failing := &closer{err: errors.New("already closed")}
	assert.NotPanics(t, func() { HandleClose(failing) })
	assert.Equal(t, 1, failing.closed)

	assert.NotPanics(t, func() { HandleClose(nil) })
}
