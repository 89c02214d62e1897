package geoconform_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	geoconform "github.com/geoapi/geoconform"
)

func TestReport_CollectVsFailFast(t *testing.T) {
	add := func(r *geoconform.Report) {
		r.Add(geoconform.Root().Field("a").Issue(geoconform.CodeMandatoryMissing, "a missing"))
		r.Add(geoconform.WarningAt(geoconform.Root().Field("b"), geoconform.CodeInvalidName, "b odd", nil))
		r.Add(geoconform.Root().Field("c").Issue(geoconform.CodeInvalidRange, "c out of range"))
	}

	r := geoconform.NewReport(context.Background())
	add(r)
	require.Len(t, r.Issues(), 3)
	require.Len(t, r.Issues().Errors(), 2)
	require.Len(t, r.Issues().Warnings(), 1)
	require.False(t, r.Done())

	iss, ok := geoconform.AsIssues(r.Err())
	require.True(t, ok)
	require.Len(t, iss, 2)

	ff := geoconform.NewReport(geoconform.WithFailFast(context.Background(), true))
	add(ff)
	require.Len(t, ff.Issues(), 1)
	require.True(t, ff.Done())
	require.True(t, geoconform.IsFailFast(ff.Context()))
}

func TestReport_IgnoreDropped(t *testing.T) {
	r := geoconform.NewReport(nil)
	it := geoconform.Root().Issue(geoconform.CodeInvalidName, "ignored")
	it.Severity = geoconform.Ignore
	r.Add(it)
	require.Empty(t, r.Issues())
	require.NoError(t, r.Err())
}

func TestReport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := geoconform.NewReport(ctx)
	cancel()
	require.True(t, r.Done())
	require.ErrorIs(t, r.Err(), context.Canceled)
}

func TestReport_Concurrent(t *testing.T) {
	r := geoconform.NewReport(context.Background())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(geoconform.Root().Index(i).Issue(geoconform.CodeInvalidRange, "x"))
		}()
	}
	wg.Wait()
	require.Len(t, r.Issues(), 16)
}

func TestPathRef(t *testing.T) {
	p := geoconform.Root().Field("coordinateSystem").Field("axis").Index(1).Field("direction")
	require.Equal(t, "/coordinateSystem/axis/1/direction", p.Pointer())
	require.Equal(t, "/", geoconform.Root().Pointer())
	require.Equal(t, "/a~1b/c~0d", geoconform.Root().Field("a/b").Field("c~d").Pointer())
	require.Equal(t, "/datum/ellipsoid", geoconform.At("/datum/ellipsoid").Pointer())
	require.Equal(t, "/", geoconform.At("").Pointer())

	// Branching from a common parent does not alias.
	base := geoconform.Root().Field("axis")
	a, b := base.Index(0), base.Index(1)
	require.Equal(t, "/axis/0", a.Pointer())
	require.Equal(t, "/axis/1", b.Pointer())

	it := p.Issue(geoconform.CodeAxisDirection, "bad", "expected", "north", "actual", 3)
	want := geoconform.Issue{
		Path:     "/coordinateSystem/axis/1/direction",
		Code:     geoconform.CodeAxisDirection,
		Message:  "bad",
		Severity: geoconform.Error,
		Params:   map[string]any{"expected": "north", "actual": 3},
	}
	if diff := cmp.Diff(want, it); diff != "" {
		t.Fatalf("issue mismatch (-want +got):\n%s", diff)
	}
}

func TestIssues_Error(t *testing.T) {
	var iss geoconform.Issues
	for i := 0; i < 5; i++ {
		iss = geoconform.AppendIssues(iss, geoconform.IssueAt(geoconform.Root().Index(i), geoconform.CodeInvalidRange, "m", nil))
	}
	msg := iss.Error()
	require.Contains(t, msg, "invalid_range at /0: m")
	require.Contains(t, msg, "(total 5)")
	require.True(t, iss.HasCode(geoconform.CodeInvalidRange))
	require.False(t, iss.HasCode(geoconform.CodeInvalidName))

	wrapped := fmt.Errorf("validate: %w", iss)
	got, ok := geoconform.AsIssues(wrapped)
	require.True(t, ok)
	require.Len(t, got, 5)

	_, ok = geoconform.AsIssues(errors.New("plain"))
	require.False(t, ok)
	_, ok = geoconform.AsIssues(nil)
	require.False(t, ok)
}

type absentText string

func (a absentText) IsAbsent() bool { return a == "" }

func TestIsAbsent(t *testing.T) {
	var nilPtr *int
	var nilIface error
	cases := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"typed nil", nilPtr, true},
		{"nil interface", nilIface, true},
		{"empty string", "", true},
		{"string", "x", false},
		{"empty slice", []int{}, true},
		{"slice", []int{1}, false},
		{"empty map", map[string]int{}, true},
		{"zero time", time.Time{}, true},
		{"time", time.Unix(0, 0), false},
		{"zero number", 0, false},
		{"absent method", absentText(""), true},
		{"present method", absentText("x"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, geoconform.IsAbsent(tc.v))
		})
	}
	require.False(t, geoconform.IsNil([]int{}))
	require.True(t, geoconform.IsNil(nilPtr))
}

func TestSeverity(t *testing.T) {
	require.Equal(t, "error", geoconform.Error.String())
	require.Equal(t, "warn", geoconform.Warn.String())
	require.Equal(t, "ignore", geoconform.Ignore.String())
	b, err := geoconform.Warn.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "warn", string(b))
}
