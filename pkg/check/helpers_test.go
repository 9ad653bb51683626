package check

import (
	"errors"
	"testing"
)

func TestResult_Fail(t *testing.T) {
	r := &Result{Name: "test"}
	err := errors.New("test error")

	result := r.Fail("something failed", err)

	if result.Status != StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, StatusFail)
	}
	if len(result.Details) != 1 || result.Details[0] != "something failed" {
		t.Errorf("Details = %v, want [something failed]", result.Details)
	}
	if result.Err != err {
		t.Errorf("Err = %v, want %v", result.Err, err)
	}
}

func TestResult_Failf(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.Failf("exit code %d, want %d", 1, 0)

	if result.Status != StatusFail {
		t.Errorf("Status = %v, want %v", result.Status, StatusFail)
	}
	if len(result.Details) != 1 || result.Details[0] != "exit code 1, want 0" {
		t.Errorf("Details = %v, want [exit code 1, want 0]", result.Details)
	}
	if result.Err == nil || result.Err.Error() != "exit code 1, want 0" {
		t.Errorf("Err = %v, want error with message 'exit code 1, want 0'", result.Err)
	}
}

func TestResult_AddDetail(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.AddDetail("first detail").AddDetail("second detail")

	if len(result.Details) != 2 {
		t.Errorf("len(Details) = %d, want 2", len(result.Details))
	}
	if result.Details[0] != "first detail" || result.Details[1] != "second detail" {
		t.Errorf("Details = %v, want [first detail, second detail]", result.Details)
	}
	if result != r {
		t.Error("AddDetail should return the same Result pointer")
	}
}

func TestResult_AddDetailf(t *testing.T) {
	r := &Result{Name: "test"}

	result := r.AddDetailf("home: %s", "/var/lib/mongo")

	if len(result.Details) != 1 || result.Details[0] != "home: /var/lib/mongo" {
		t.Errorf("Details = %v, want [home: /var/lib/mongo]", result.Details)
	}
}

func TestCompileRegex(t *testing.T) {
	re, err := CompileRegex("")
	if err != nil || re != nil {
		t.Errorf("CompileRegex(\"\") = %v, %v, want nil, nil", re, err)
	}

	re, err = CompileRegex(`Max open files\s+64000`)
	if err != nil {
		t.Fatalf("CompileRegex error = %v", err)
	}
	if !re.MatchString("Max open files            64000                64000                files") {
		t.Error("expected pattern to match limits line")
	}

	if _, err := CompileRegex("("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
