package parser

import (
	"errors"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: " 资源 名称\n", want: "资源名称"},
		{in: "增量推账金额（元）", want: "增量推账金额(元)"},
		{in: "3层", want: "3层"},
		{in: "\t３层 ", want: "3层"},
	}
	for _, tc := range cases {
		if got := NormalizeText(tc.in); got != tc.want {
			t.Fatalf("NormalizeText(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestFoldWidth_KeepsSpaces(t *testing.T) {
	t.Parallel()

	if got := FoldWidth("住宅１２－03 01"); got != "住宅12-03 01" {
		t.Fatalf("FoldWidth=%q", got)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	if a := ParseAmount(""); a.Present() {
		t.Fatalf("empty should be absent: %+v", a)
	}
	if a := ParseAmount("   "); a.Present() {
		t.Fatalf("blank should be absent: %+v", a)
	}

	a := ParseAmount("150.005")
	if !a.Valid || a.Value.String() != "150.005" {
		t.Fatalf("unexpected amount: %+v", a)
	}

	a = ParseAmount("1,234.5")
	if !a.Valid || a.Value.String() != "1234.5" {
		t.Fatalf("thousand separator: %+v", a)
	}

	a = ParseAmount("1.5E2")
	if !a.Valid || a.Value.String() != "150" {
		t.Fatalf("exponent: %+v", a)
	}

	for _, bad := range []string{"abc", "NaN", "Inf", "12元"} {
		a := ParseAmount(bad)
		if a.Valid || !a.Malformed() {
			t.Fatalf("ParseAmount(%q) should be malformed: %+v", bad, a)
		}
	}
}

func TestValidateBillingHeader(t *testing.T) {
	t.Parallel()

	header := []string{"序号", "资源名称", "备注", "增量推账金额（元）"}
	schema, err := ValidateBillingHeader("账单数据", header, "资源名称", "增量推账金额(元)")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if schema.NameIndex != 1 || schema.AmountIndex != 3 {
		t.Fatalf("unexpected schema: %+v", schema)
	}

	_, err = ValidateBillingHeader("账单数据", []string{"资源名称"}, "资源名称", "增量推账金额(元)")
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(se.Missing) != 1 || se.Missing[0] != "增量推账金额(元)" {
		t.Fatalf("unexpected missing: %v", se.Missing)
	}

	_, err = ValidateBillingHeader("账单数据", nil, "资源名称", "增量推账金额(元)")
	if !errors.As(err, &se) || len(se.Missing) != 2 {
		t.Fatalf("expected both columns missing, got %v", err)
	}
}
