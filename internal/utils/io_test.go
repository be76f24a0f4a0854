package utils

import (
	"errors"
	"testing"
)

type closer struct {
	calls int
	err   error
}

func (c *closer) Close() error {
	c.calls++
	return c.err
}

func TestCloseWithLog(t *testing.T) {
	ok := &closer{}
	CloseWithLog(ok)
	failing := &closer{err: errors.New("disk full")}
	CloseWithLog(failing)
	CloseWithLog(nil)

	if ok.calls != 1 || failing.calls != 1 {
		t.Errorf("Close calls = %d, %d; want 1, 1", ok.calls, failing.calls)
	}
}
