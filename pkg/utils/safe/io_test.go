package safe_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/utils/safe"
)

type failingCloser struct{}

func (failingCloser) Close() error { return goerr.New("close failed") }

func TestCloseNil(t *testing.T) {
	safe.Close(context.Background(), nil)
}

func TestCloseFailure(t *testing.T) {
	// The failure is logged, not raised
	safe.Close(context.Background(), failingCloser{})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	safe.Write(context.Background(), &buf, []byte("OK"))
	if buf.String() != "OK" {
		t.Errorf("unexpected buffer content: %q", buf.String())
	}
}

func TestWriteNil(t *testing.T) {
	safe.Write(context.Background(), nil, []byte("OK"))
}
