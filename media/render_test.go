package media

import (
	"testing"
	"time"

	"github.com/nhhollander/matrix-media-client/common"
	"github.com/nhhollander/matrix-media-client/common/rcontext"
)

type countingPolicy struct {
	calls int
	mode  common.RenderMode
}

func (p *countingPolicy) RenderMode(ctx rcontext.RequestContext, m *Media) (common.RenderMode, error) {
	p.calls++
	return p.mode, nil
}

func TestCachedPolicyMemoizes(t *testing.T) {
	ctx := testContext()
	inner := &countingPolicy{mode: common.RenderModeBlocked}
	policy := NewCachedPolicy(inner, 1*time.Minute)

	m, err := FromMxc(&fakeClient{}, "mxc://s/cached", WithRenderPolicy(policy))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		mode, err := m.RenderMode(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if mode != common.RenderModeBlocked {
			t.Errorf("expected blocked render mode, got %s", mode)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream policy call, got %d", inner.calls)
	}

	policy.Forget(m.SrcMxc())
	if _, err := m.RenderMode(ctx); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected forget to force a second upstream call, got %d", inner.calls)
	}
}

func TestRenderModeRejectsUnknownMode(t *testing.T) {
	ctx := testContext()
	inner := &countingPolicy{mode: common.RenderMode("sideways")}

	m, err := FromMxc(&fakeClient{}, "mxc://s/odd", WithRenderPolicy(inner))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.RenderMode(ctx); err == nil {
		t.Error("expected an error for a render mode outside AllRenderModes")
	}
}

func TestCachedPolicyIsPerSource(t *testing.T) {
	ctx := testContext()
	inner := &countingPolicy{mode: common.RenderModeNormal}
	policy := NewCachedPolicy(inner, 1*time.Minute)

	m1, err := FromMxc(&fakeClient{}, "mxc://s/one", WithRenderPolicy(policy))
	if err != nil {
		t.Fatal(err)
	}
	m2, err := FromMxc(&fakeClient{}, "mxc://s/two", WithRenderPolicy(policy))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m1.RenderMode(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := m2.RenderMode(ctx); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected separate cache entries per source, got %d calls", inner.calls)
	}
}
