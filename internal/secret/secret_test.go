package secret

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

type call struct {
	stdin string
	cmd   string
}

func fakeRunner(calls *[]call, out string, err error) runner {
	return func(stdin []byte, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{stdin: string(stdin), cmd: name + " " + strings.Join(args, " ")})
		return []byte(out), err
	}
}

func TestKeychainStore_LinuxUsesSecretTool(t *testing.T) {
	var calls []call
	k := &KeychainStore{goos: "linux", run: fakeRunner(&calls, "hunter2\n", nil)}

	if err := k.Set("target-1", []byte("hunter2")); err != nil {
		t.Fatal(err)
	}
	if calls[0].stdin != "hunter2" || strings.Contains(calls[0].cmd, "hunter2") {
		t.Errorf("secret must go through stdin only, got %+v", calls[0])
	}
	got, err := k.Get("target-1")
	if err != nil || string(got) != "hunter2" {
		t.Errorf("Get = %q, %v", got, err)
	}
	if !strings.HasPrefix(calls[1].cmd, "secret-tool lookup service "+keychainService) {
		t.Errorf("unexpected lookup: %s", calls[1].cmd)
	}
}

func TestKeychainStore_MacUsesSecurity(t *testing.T) {
	var calls []call
	k := &KeychainStore{goos: "darwin", run: fakeRunner(&calls, "", nil)}
	_ = k.Set("a", []byte("pw"))
	_ = k.Delete("a")
	if !strings.HasPrefix(calls[0].cmd, "security add-generic-password -a a") {
		t.Errorf("set: %s", calls[0].cmd)
	}
	if !strings.HasPrefix(calls[1].cmd, "security delete-generic-password") {
		t.Errorf("delete: %s", calls[1].cmd)
	}
}

func TestKeychainStore_GetMissingAndFailures(t *testing.T) {
	var calls []call
	k := &KeychainStore{goos: "linux", run: fakeRunner(&calls, "", nil)}
	if got, err := k.Get("none"); got != nil || err != nil {
		t.Errorf("empty output should read as missing, got %q, %v", got, err)
	}

	k.run = fakeRunner(&calls, "", errors.New("secret-tool: not installed"))
	if _, err := k.Get("x"); err == nil {
		t.Error("a failure to run the tool should surface")
	}

	k.run = fakeRunner(&calls, "", &exec.ExitError{})
	if got, err := k.Get("x"); got != nil || err != nil {
		t.Errorf("non-zero exit means missing, got %q, %v", got, err)
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	v := []byte("secret")
	_ = m.Set("k", v)
	v[0] = 'X'
	got, _ := m.Get("k")
	if string(got) != "secret" {
		t.Errorf("store must copy values, got %q", got)
	}
	_ = m.Delete("k")
	if got, _ := m.Get("k"); got != nil {
		t.Errorf("after delete got %q", got)
	}
}
