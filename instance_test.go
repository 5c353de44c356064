package cogcmp

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cogstack/cogcmp/lib/tabular"
)

func declareTestComponent(t *testing.T, ctx *Context) *Component {
	t.Helper()
	c, err := Declare(ctx.Registry(), "test", "widget", WithPath("frontend/public"))
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	return c
}

func TestInvokeUsageErrors(t *testing.T) {
	ctx, _ := NewTestContext()
	c := declareTestComponent(t, ctx)

	cases := []struct {
		name string
		args *Args
		spec CallSpec
	}{
		{"unlabeled argument", NewArgs().Set("", JSON(1)), CallSpec{}},
		{"reserved default", NewArgs().Set("default", JSON(1)), CallSpec{}},
		{"reserved key", NewArgs().Set("key", JSON(1)), CallSpec{}},
		{"tab index out of range", NewArgs(), CallSpec{TabIndex: intPtr(-2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Invoke(ctx, tc.args, tc.spec)
			if !IsUsageError(err) {
				t.Fatalf("expected usage error, got: %v", err)
			}
		})
	}
}

func TestInvokeFailsBeforeEncoding(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	_, err := c.Invoke(ctx, NewArgs().Set("", JSON(1)), CallSpec{})
	if !IsUsageError(err) {
		t.Fatalf("expected usage error, got: %v", err)
	}
	if len(rec.Elements) != 0 {
		t.Error("nothing should be enqueued for a malformed call")
	}
}

func TestInvokeEnqueuesExactlyOnce(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	if _, err := c.Invoke(ctx, NewArgs().Set("text", JSON("hi")), CallSpec{}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	comps := rec.Components()
	if len(comps) != 1 {
		t.Fatalf("enqueued %d component elements, want 1", len(comps))
	}

	el := comps[0]
	if el.Name != "test.widget" {
		t.Errorf("element name = %q, want test.widget", el.Name)
	}
	if el.Source != "/_components/test.widget" {
		t.Errorf("element source = %q", el.Source)
	}
	if want := `{"text":"hi","default":null,"key":null}`; el.JSONArgs != want {
		t.Errorf("json args = %s, want %s", el.JSONArgs, want)
	}
	if el.ID == "" {
		t.Error("element has no identity")
	}
}

func TestInvokeDefaultVerbatim(t *testing.T) {
	ctx, _ := NewTestContext()
	c := declareTestComponent(t, ctx)

	def := []map[string]any{{"start": 0, "end": 4, "label": "X"}}
	v, err := c.Invoke(ctx, NewArgs(), CallSpec{Default: JSON(def)})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if diff := cmp.Diff(def, v); diff != "" {
		t.Errorf("default not returned verbatim (-want +got):\n%s", diff)
	}

	blob := []byte{9, 9, 9}
	v, err = c.Invoke(ctx, NewArgs().Set("n", JSON(1)), CallSpec{Default: Bytes(blob)})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if diff := cmp.Diff(blob, v); diff != "" {
		t.Errorf("bytes default not returned verbatim (-want +got):\n%s", diff)
	}
}

func TestInvokeReturnsReportedValue(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	if _, err := c.Invoke(ctx, NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("d")}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	id := rec.LastComponent().ID
	ctx.Session().SetWidgetValue(id, map[string]any{"picked": "A"})

	v, err := c.Invoke(ctx, NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("d")})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"picked": "A"}, v); diff != "" {
		t.Errorf("reported value mismatch (-want +got):\n%s", diff)
	}
}

func TestFullFingerprintIdentityPerCall(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	invoke := func(args *Args, spec CallSpec) string {
		t.Helper()
		rec.Reset()
		if _, err := c.Invoke(ctx, args, spec); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
		return rec.LastComponent().ID
	}

	base := invoke(NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("d")})

	if again := invoke(NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("d")}); again != base {
		t.Error("identical calls resolved different identities")
	}
	if changed := invoke(NewArgs().Set("n", JSON(2)), CallSpec{Default: JSON("d")}); changed == base {
		t.Error("changing an argument should change the identity (remount)")
	}
	// default travels in json_args, so without a key it fingerprints too
	if changed := invoke(NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("e")}); changed == base {
		t.Error("changing the default should change a full-fingerprint identity")
	}
	if scoped := func() string {
		rec.Reset()
		if _, err := c.Invoke(ctx.WithScope("form-1"), NewArgs().Set("n", JSON(1)), CallSpec{Default: JSON("d")}); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
		return rec.LastComponent().ID
	}(); scoped == base {
		t.Error("scope id should participate in identity")
	}
}

func TestStableIdentityPerCall(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	invoke := func(args *Args, spec CallSpec) *ComponentInstance {
		t.Helper()
		rec.Reset()
		if _, err := c.Invoke(ctx, args, spec); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
		return rec.LastComponent()
	}

	a := invoke(NewArgs().Set("n", JSON(1)), CallSpec{Key: "k", Default: JSON("d")})
	b := invoke(NewArgs().Set("n", JSON(2)).Set("extra", JSON(true)), CallSpec{Key: "k", Default: JSON("e")})

	if a.ID != b.ID {
		t.Error("stable identity changed when arguments changed")
	}
	// args still travel on the wire element in stable mode
	if b.JSONArgs == "" {
		t.Error("stable-mode element is missing its json args")
	}
	if want := `{"n":2,"extra":true,"default":"e","key":"k"}`; b.JSONArgs != want {
		t.Errorf("json args = %s, want %s", b.JSONArgs, want)
	}

	if other := invoke(NewArgs(), CallSpec{Key: "k2"}); other.ID == a.ID {
		t.Error("different keys resolved the same identity")
	}
}

func TestInvokeDecodesTablePayload(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	if _, err := c.Invoke(ctx, NewArgs(), CallSpec{Key: "k"}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	id := rec.LastComponent().ID

	want := &tabular.Table{Columns: []tabular.Column{
		{Name: "code", Values: []any{"A", "B"}},
		{Name: "rank", Values: []any{int64(1), nil}},
	}}
	buf, err := tabular.Codec{}.Encode(want)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	ctx.Session().SetWidgetValue(id, &TablePayload{Data: buf})

	v, err := c.Invoke(ctx, NewArgs(), CallSpec{Key: "k"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	got, ok := v.(*tabular.Table)
	if !ok {
		t.Fatalf("value is %T, want *tabular.Table", v)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decoded table mismatch (-want +got):\n%s", diff)
	}
}

func TestInvokeTableArgWithoutCodec(t *testing.T) {
	rec := &SinkRecorder{}
	ctx := NewContext(NewSession(), NewRegistry(nil), rec, WithTableCodec(nil))
	c := declareTestComponent(t, ctx)

	_, err := c.Invoke(ctx, NewArgs().Set("rows", Table(&tabular.Table{})), CallSpec{})
	if !IsMissingDependency(err) {
		t.Fatalf("expected missing-dependency error, got: %v", err)
	}
}

func TestInvokeChangeCallbackOrdering(t *testing.T) {
	ctx, rec := NewTestContext()
	c := declareTestComponent(t, ctx)

	if _, err := c.Invoke(ctx, NewArgs(), CallSpec{Key: "k", Default: JSON(0)}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	ctx.Session().SetWidgetValue(rec.LastComponent().ID, 5)

	var order []string
	v, err := c.Invoke(ctx, NewArgs(), CallSpec{
		Key:     "k",
		Default: JSON(0),
		OnChange: func(args CallbackArgs, kwargs CallbackKwargs) {
			order = append(order, "callback")
		},
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	order = append(order, "observed")

	if v != 5 {
		t.Errorf("value = %v, want 5", v)
	}
	if diff := cmp.Diff([]string{"callback", "observed"}, order); diff != "" {
		t.Errorf("callback must fire before the script observes the value (-want +got):\n%s", diff)
	}
}

func intPtr(n int) *int { return &n }
