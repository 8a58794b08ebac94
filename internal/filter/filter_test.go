package filter

import "testing"

func TestApply_EmptyExpressionPassesThrough(t *testing.T) {
	got, err := Apply(`{"a":1}`, "")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("got %q", got)
	}
}

func TestApply_SelectsField(t *testing.T) {
	value := `{"owner":"ki1abc","total_supply":"1000000"}`
	got, err := Apply(value, "owner")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != "ki1abc" {
		t.Errorf("got %q, want ki1abc", got)
	}
}

func TestApply_ProjectsArray(t *testing.T) {
	value := `{"holders":[{"addr":"a","amt":1},{"addr":"b","amt":2}]}`
	got, err := Apply(value, "holders[].addr")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := "[\n  \"a\",\n  \"b\"\n]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApply_MissingFieldIsNull(t *testing.T) {
	got, err := Apply(`{"a":1}`, "b")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got != "null" {
		t.Errorf("got %q, want null", got)
	}
}

func TestApply_NonJSONValue(t *testing.T) {
	if _, err := Apply("plain text", "a"); err == nil {
		t.Error("Apply accepted non-JSON value")
	}
}

func TestApply_InvalidExpression(t *testing.T) {
	if _, err := Apply(`{"a":1}`, "a["); err == nil {
		t.Error("Apply accepted invalid expression")
	}
}
