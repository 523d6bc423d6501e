package support

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("PREDATOR_TEST_ENV", "value")
	if got := GetEnv("PREDATOR_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("GetEnv returned %s, want value", got)
	}

	if got := GetEnv("PREDATOR_TEST_ENV_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv returned %s, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PREDATOR_TEST_INT", " 8 ")
	t.Setenv("PREDATOR_TEST_INT_BAD", "eight")

	if got := GetEnvInt("PREDATOR_TEST_INT", 1); got != 8 {
		t.Fatalf("GetEnvInt returned %d, want 8", got)
	}
	if got := GetEnvInt("PREDATOR_TEST_INT_BAD", 1); got != 1 {
		t.Fatalf("GetEnvInt with garbage returned %d, want fallback 1", got)
	}
	if got := GetEnvInt("PREDATOR_TEST_INT_MISSING", 3); got != 3 {
		t.Fatalf("GetEnvInt for missing key returned %d, want 3", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("PREDATOR_TEST_BOOL", "TRUE")
	t.Setenv("PREDATOR_TEST_BOOL_BAD", "maybe")

	if !GetEnvBool("PREDATOR_TEST_BOOL", false) {
		t.Fatal("GetEnvBool returned false, want true")
	}
	if GetEnvBool("PREDATOR_TEST_BOOL_BAD", false) {
		t.Fatal("GetEnvBool with garbage should return the fallback")
	}
}
