package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// servicesSource is a package exercising every setter and factory shape the
// generator distinguishes.
const servicesSource = `package svc

import "time"

//go:generate go run github.com/sghaida/ioc/cmd/beangen -type MailService,UserService

type Sender interface{ Send(to string) error }

type Port int32

type MailService struct {
	protocol string
	port     int32
}

func NewMailService() *MailService { return &MailService{protocol: "SMTP"} }

func (m *MailService) SetProtocol(p string) { m.protocol = p }
func (m *MailService) SetPort(p int32)      { m.port = p }
func (m *MailService) Send(string) error    { return nil }

type UserService struct {
	mail    Sender
	initial rune
	timeout time.Duration
}

func NewUserService() (*UserService, error) { return &UserService{}, nil }

func (u *UserService) SetMailService(s Sender)         { u.mail = s }
func (u *UserService) SetInitial(r rune)               { u.initial = r }
func (u *UserService) SetTimeout(d time.Duration)      { u.timeout = d }
func (u *UserService) SetPair(a, b int)                {}
func (u *UserService) SetNothing()                     {}
func (u *UserService) SetChecked(v int) error          { return nil }
func (u *UserService) SetMany(vs ...int)               {}
func (u *UserService) Setup(v int)                     {}
func (u *UserService) setHidden(v int)                 {}
`

const extraSource = `package svc

type Gauge struct{ limit float64 }

func NewGauge(limit float64) *Gauge { return &Gauge{limit: limit} }

func (g Gauge) SetLimit(v float64) {}
func (g *Gauge) SetPort(p Port)    {}

type Box[T any] struct{ v T }

func (b *Box[T]) SetV(v T) { b.v = v }
`

//
// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// writePackage writes files into a fresh directory and returns it.
func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
// It lets tests force errors on Write and Close without touching real files.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error { return f.closeErr }

// restoreWriteSeams puts the real file seams back when the test ends.
func restoreWriteSeams(t *testing.T) {
	t.Helper()
	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile = origCreate
		removeFile = origRemove
		chmodFile = origChmod
		renameFile = origRename
	})
}
