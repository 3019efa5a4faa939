package model

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"os/user"
	"sort"
	"strings"

	"github.com/provkit/provkit/attr"
)

// Environment is a snapshot of the process environment a project was
// handled under: the user, the host, and the environment variables at
// capture time. Signature is a stable digest of the variables and serves
// as the environment's map key on Project.
type Environment struct {
	// User is the login name the snapshot was captured as.
	User string

	// Hostname is the machine the snapshot was captured on.
	Hostname string

	// Signature is a short content-derived digest of the variables.
	// Equal variable sets always produce equal signatures.
	Signature string

	// Variables holds the captured environment variables in sorted key
	// order.
	Variables *attr.Map
}

// NewEnvironment builds an environment snapshot from an explicit variable
// set. Variables are stored in sorted key order and the signature is
// derived from them, so the result is fully deterministic.
func NewEnvironment(userName, hostname string, vars map[string]string) *Environment {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := attr.NewMap()
	for _, k := range keys {
		m.Set(k, attr.String(vars[k]))
	}

	return &Environment{
		User:      userName,
		Hostname:  hostname,
		Signature: signature(keys, vars),
		Variables: m,
	}
}

// CaptureEnvironment snapshots the current process: os.Environ, the
// current user, and the hostname.
func CaptureEnvironment() (*Environment, error) {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}

	u, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("model: resolve current user: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("model: resolve hostname: %w", err)
	}

	return NewEnvironment(u.Username, hostname, vars), nil
}

// String returns the environment signature.
func (e *Environment) String() string {
	return e.Signature
}

// AttributeMap builds the attribute bag encoded onto the environment
// entity: user and hostname followed by the captured variables.
func (e *Environment) AttributeMap() *attr.Map {
	m := attr.NewMap().
		Set("user", attr.String(e.User)).
		Set("hostname", attr.String(e.Hostname))
	for _, key := range e.Variables.Keys() {
		v, _ := e.Variables.Get(key)
		m.Set(key, v)
	}
	return m
}

// signature digests the sorted variable list with SHA-256 and encodes the
// first 12 bytes as base64url, giving a short, stable, URL-safe id.
func signature(sortedKeys []string, vars map[string]string) string {
	pairs := make([]string, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		pairs = append(pairs, k+"="+vars[k])
	}
	sum := sha256.Sum256([]byte(strings.Join(pairs, "|")))
	return "env-" + base64.RawURLEncoding.EncodeToString(sum[:12])
}
