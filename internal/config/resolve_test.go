package config

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testEntries = []Entry{
	{Key: "name", Default: "default", Env: "TEST_NAME", Flag: "name"},
	{Key: "enabled", Default: "false", Env: "TEST_ENABLED", Flag: "enabled", Kind: KindBool},
	{Key: "count", Default: "1", Env: "TEST_COUNT", Flag: "count", Kind: KindInt},
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	// Every permutation of which layers carry a value.
	for mask := 0; mask < 8; mask++ {
		hasFile, hasEnv, hasCLI := mask&1 != 0, mask&2 != 0, mask&4 != 0
		t.Run(fmt.Sprintf("file=%t/env=%t/cli=%t", hasFile, hasEnv, hasCLI), func(t *testing.T) {
			src := Sources{
				File:      map[string]string{},
				CLI:       map[string]string{},
				LookupEnv: envMap(nil),
			}
			want := "default"
			if hasFile {
				src.File["name"] = "file"
				want = "file"
			}
			if hasEnv {
				src.LookupEnv = envMap(map[string]string{"TEST_NAME": "env"})
				want = "env"
			}
			if hasCLI {
				src.CLI["name"] = "cli"
				want = "cli"
			}

			got, err := Resolve(testEntries, src)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got["name"] != want {
				t.Fatalf("expected %q, got %q", want, got["name"])
			}
		})
	}
}

func TestResolveEmptyValuesNeverOverride(t *testing.T) {
	t.Parallel()

	src := Sources{
		File:      map[string]string{"name": "file"},
		LookupEnv: envMap(map[string]string{"TEST_NAME": ""}),
		CLI:       map[string]string{"name": ""},
	}

	got, err := Resolve(testEntries, src)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got["name"] != "file" {
		t.Fatalf("expected file value to survive empty overrides, got %v", got["name"])
	}
}

func TestResolveCoercesBooleans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"t", true},
		{"T", true},
		{"y", true},
		{"Yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"on", false},
		{"enabled", false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			got, err := Resolve(testEntries, Sources{CLI: map[string]string{"enabled": tc.in}})
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got["enabled"] != tc.want {
				t.Fatalf("ParseBool(%q): expected %t, got %v", tc.in, tc.want, got["enabled"])
			}
		})
	}
}

func TestResolveCoercesIntegers(t *testing.T) {
	t.Parallel()

	got, err := Resolve(testEntries, Sources{LookupEnv: envMap(map[string]string{"TEST_COUNT": " 42 "})})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got["count"] != 42 {
		t.Fatalf("expected 42, got %v", got["count"])
	}

	_, err = Resolve(testEntries, Sources{CLI: map[string]string{"count": "4x2"}})
	var coercionErr *CoercionError
	if !errors.As(err, &coercionErr) {
		t.Fatalf("expected CoercionError, got %v", err)
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Fatalf("expected wrapped strconv.ErrSyntax, got %v", err)
	}
}

func TestResolvePassesThroughUnknownKeys(t *testing.T) {
	t.Parallel()

	got, err := Resolve(testEntries, Sources{CLI: map[string]string{"extra": "value"}})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	want := map[string]any{
		"name":    "default",
		"enabled": false,
		"count":   1,
		"extra":   "value",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected resolution (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	e, ok := Lookup(KeySleepTimeInSeconds)
	if !ok || e.Env != "SENZING_SLEEP_TIME_IN_SECONDS" || e.Kind != KindInt {
		t.Fatalf("unexpected entry: %+v (%v)", e, ok)
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatalf("expected missing key lookup to fail")
	}
}
