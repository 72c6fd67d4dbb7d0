package secret

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

const keychainService = "gridboard-mirror"

// runner executes a credential CLI. stdin may be nil.
type runner func(stdin []byte, name string, args ...string) ([]byte, error)

func execRunner(stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("%s: %s: %w", name, strings.TrimSpace(stderr.String()), err)
	}
	return out, nil
}

// KeychainStore implements SecretStore with the OS credential store: the
// macOS Keychain through `security`, or the freedesktop Secret Service
// through `secret-tool` elsewhere.
type KeychainStore struct {
	goos string
	run  runner
}

// NewKeychainStore creates a KeychainStore for the running OS.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{goos: runtime.GOOS, run: execRunner}
}

func (k *KeychainStore) mac() bool { return k.goos == "darwin" }

// Set stores a secret, replacing any previous value for key.
func (k *KeychainStore) Set(key string, value []byte) error {
	var err error
	if k.mac() {
		_, err = k.run(nil, "security", "add-generic-password",
			"-a", key, "-s", keychainService, "-w", string(value), "-U")
	} else {
		// secret-tool reads the secret from stdin so it never shows up in ps.
		_, err = k.run(value, "secret-tool", "store",
			"--label", keychainService+" "+key, "service", keychainService, "account", key)
	}
	if err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

// Get returns the secret for key, or nil when there is none.
func (k *KeychainStore) Get(key string) ([]byte, error) {
	var out []byte
	var err error
	if k.mac() {
		out, err = k.run(nil, "security", "find-generic-password", "-a", key, "-s", keychainService, "-w")
	} else {
		out, err = k.run(nil, "secret-tool", "lookup", "service", keychainService, "account", key)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Missing items exit non-zero (44 for security, 1 for secret-tool).
			return nil, nil
		}
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	out = bytes.TrimRight(out, "\r\n")
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Delete removes the secret for key. Deleting a missing key is not an error.
func (k *KeychainStore) Delete(key string) error {
	if k.mac() {
		_, _ = k.run(nil, "security", "delete-generic-password", "-a", key, "-s", keychainService)
	} else {
		_, _ = k.run(nil, "secret-tool", "clear", "service", keychainService, "account", key)
	}
	return nil
}
