package beans_test

import (
	"errors"
	"testing"

	"github.com/sghaida/ioc/beans"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Fixture types
// -----------------------------------------------------------------------------

// Sender is implemented by MailService only.
type Sender interface {
	Send(to string) string
}

type MailService struct {
	protocol string
	port     int32
}

func (m *MailService) SetProtocol(p string) { m.protocol = p }
func (m *MailService) SetPort(p int32)      { m.port = p }
func (m *MailService) Send(to string) string { return m.protocol + "://" + to }

type UserService struct {
	mail      Sender
	label     string
	mailCalls int
}

func (u *UserService) SetMailService(s Sender) {
	u.mail = s
	u.mailCalls++
}
func (u *UserService) SetLabel(l string) { u.label = l }

type PaymentService struct {
	mail      *MailService
	maxAmount int
}

func (p *PaymentService) SetMailService(m *MailService) { p.mail = m }
func (p *PaymentService) SetMaxAmount(n int)            { p.maxAmount = n }

// Node references another Node, for forward and mutual reference tests.
type Node struct {
	peer *Node
}

func (n *Node) SetPeer(p *Node) { n.peer = p }

// Primitives carries one setter per coercion kind.
type Primitives struct {
	B   bool
	C   rune
	U8  byte
	I8  int8
	I16 int16
	I32 int32
	I64 int64
	I   int
	F32 float32
	F64 float64
	S   string
}

var errBrokenFactory = errors.New("broken factory")

//
// -----------------------------------------------------------------------------
// Catalog + definitions
// -----------------------------------------------------------------------------

func testCatalog() *beans.Catalog {
	mail := beans.Describe("test.MailService", beans.Zero[MailService]()).
		String("protocol", (*MailService).SetProtocol).
		Int32("port", (*MailService).SetPort)

	user := beans.Describe("test.UserService", beans.Zero[UserService]()).
		String("label", (*UserService).SetLabel)
	beans.WithRef(user, "mailService", (*UserService).SetMailService)

	payment := beans.Describe("test.PaymentService", beans.Zero[PaymentService]()).
		Int("maxAmount", (*PaymentService).SetMaxAmount)
	beans.WithRef(payment, "mailService", (*PaymentService).SetMailService)

	node := beans.WithRef(beans.Describe("test.Node", beans.Zero[Node]()), "peer", (*Node).SetPeer)

	prims := beans.Describe("test.Primitives", beans.Zero[Primitives]()).
		Bool("b", func(p *Primitives, v bool) { p.B = v }).
		Char("c", func(p *Primitives, v rune) { p.C = v }).
		Byte("u8", func(p *Primitives, v byte) { p.U8 = v }).
		Int8("i8", func(p *Primitives, v int8) { p.I8 = v }).
		Int16("i16", func(p *Primitives, v int16) { p.I16 = v }).
		Int32("i32", func(p *Primitives, v int32) { p.I32 = v }).
		Int64("i64", func(p *Primitives, v int64) { p.I64 = v }).
		Int("i", func(p *Primitives, v int) { p.I = v }).
		Float32("f32", func(p *Primitives, v float32) { p.F32 = v }).
		Float64("f64", func(p *Primitives, v float64) { p.F64 = v }).
		String("s", func(p *Primitives, v string) { p.S = v })

	broken := beans.Describe("test.Broken", func() (*Node, error) { return nil, errBrokenFactory })

	return beans.NewCatalog().MustRegister(
		mail.Descriptor(),
		user.Descriptor(),
		payment.Descriptor(),
		node.Descriptor(),
		prims.Descriptor(),
		broken.Descriptor(),
	)
}

// contextDefinitions mirrors the classic mail/user/payment context.
func contextDefinitions() []beans.Definition {
	return []beans.Definition{
		{ID: "mailService", Type: "test.MailService", Properties: []beans.Property{
			{Name: "protocol", Value: beans.Literal("POP3")},
			{Name: "port", Value: beans.Literal("3000")},
		}},
		{ID: "userService", Type: "test.UserService", Properties: []beans.Property{
			{Name: "mailService", Value: beans.Ref("mailService")},
		}},
		{ID: "paymentService", Type: "test.PaymentService", Properties: []beans.Property{
			{Name: "mailService", Value: beans.Ref("mailService")},
		}},
		{ID: "paymentWithMaxService", Type: "test.PaymentService", Properties: []beans.Property{
			{Name: "mailService", Value: beans.Ref("mailService")},
			{Name: "maxAmount", Value: beans.Literal("500")},
		}},
	}
}

// started returns a Ready context over defs.
func started(t *testing.T, defs []beans.Definition) *beans.Context {
	t.Helper()
	c, err := beans.NewFromReader(testCatalog(), beans.StaticReader(defs))
	require.NoError(t, err)
	require.Equal(t, beans.StateReady, c.State())
	return c
}
