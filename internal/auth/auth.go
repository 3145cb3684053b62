// Package auth gates entry behind a PIN. One PIN opens a local garden, an
// optional second one opens the shared garden.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"garden/internal/config"
)

// ErrWrongPIN is returned for a PIN that matches neither configured value.
var ErrWrongPIN = errors.New("auth: wrong PIN")

// Mode selects where the garden is stored.
type Mode uint8

const (
	Local Mode = iota
	Shared
)

func (m Mode) String() string {
	if m == Shared {
		return "shared"
	}
	return "local"
}

// Result is all the rest of the program learns from the gate.
type Result struct {
	Authenticated bool
	Mode          Mode
}

// Gate checks PINs.
type Gate struct {
	LocalPIN  string
	SharedPIN string
}

// NewGate builds a gate from configuration.
func NewGate(cfg config.AuthConfig) Gate {
	return Gate{LocalPIN: cfg.LocalPIN, SharedPIN: cfg.SharedPIN}
}

// Open reports whether the gate lets everyone in.
func (g Gate) Open() bool { return g.LocalPIN == "" && g.SharedPIN == "" }

// Check validates pin. Surrounding whitespace is ignored. A gate with no PINs
// configured admits everyone in local mode.
func (g Gate) Check(pin string) (Result, error) {
	if g.Open() {
		return Result{Authenticated: true, Mode: Local}, nil
	}
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return Result{}, ErrWrongPIN
	}
	if g.SharedPIN != "" && equal(pin, g.SharedPIN) {
		return Result{Authenticated: true, Mode: Shared}, nil
	}
	if g.LocalPIN != "" && equal(pin, g.LocalPIN) {
		return Result{Authenticated: true, Mode: Local}, nil
	}
	return Result{}, ErrWrongPIN
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
