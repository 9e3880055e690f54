package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	f := NoopFormatHooks{}
	f.OnParseStart(ctx, "json", 128)
	f.OnParseComplete(ctx, "json", time.Millisecond, nil)
	f.OnPrintStart(ctx, "json")
	f.OnPrintComplete(ctx, "json", 130, time.Millisecond)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "toml")
	c.OnCacheMiss(ctx, "toml")
	c.OnCacheSet(ctx, "toml", 1024)
	c.OnCacheError(ctx, "get", errors.New("boom"))

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/format")
	s.OnResponse(ctx, "POST", "/v1/format", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Format().(NoopFormatHooks); !ok {
		t.Error("Format() should return NoopFormatHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customFormat := &testFormatHooks{}
	SetFormatHooks(customFormat)
	if Format() != customFormat {
		t.Error("SetFormatHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Format().(NoopFormatHooks); !ok {
		t.Error("Reset() should restore NoopFormatHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testFormatHooks{}
	SetFormatHooks(custom)
	SetFormatHooks(nil)

	if Format() != custom {
		t.Error("SetFormatHooks(nil) should be ignored")
	}

	Reset()
}

type testFormatHooks struct{ NoopFormatHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
