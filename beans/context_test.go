package beans_test

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sghaida/ioc/beans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Start
// -----------------------------------------------------------------------------

// TestStart_OneBeanPerDefinition verifies every definition yields exactly one bean
// whose value has the declared type, in definition order.
func TestStart_OneBeanPerDefinition(t *testing.T) {
	t.Parallel()

	defs := contextDefinitions()
	c := started(t, defs)

	require.Equal(t, len(defs), c.Len())
	for i, b := range c.Beans() {
		assert.Equal(t, defs[i].ID, b.ID)
		assert.Equal(t, defs[i].Type, b.Type)

		got, ok := c.Lookup(defs[i].ID)
		require.True(t, ok)
		assert.Equal(t, b, got)
		assert.Same(t, b.Value, got.Value)
	}

	mail, _ := c.Lookup("mailService")
	assert.IsType(t, &MailService{}, mail.Value)
	pay, _ := c.Lookup("paymentWithMaxService")
	assert.IsType(t, &PaymentService{}, pay.Value)
}

// TestStart_CoercesPortToInt32 verifies "3000" reaches an int32 setter as 3000.
func TestStart_CoercesPortToInt32(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	mail, err := beans.GetBean[*MailService](c)
	require.NoError(t, err)
	assert.Equal(t, int32(3000), mail.port)
	assert.Equal(t, "POP3", mail.protocol)

	pay, err := beans.GetNamedBean[*PaymentService](c, "paymentWithMaxService")
	require.Error(t, err, "two payment beans exist, type resolution must fail first")
	assert.Nil(t, pay)

	b, _ := c.Lookup("paymentWithMaxService")
	assert.Equal(t, 500, b.Value.(*PaymentService).maxAmount)
}

// TestStart_AllPrimitiveKinds verifies every coercion kind reaches its typed setter.
func TestStart_AllPrimitiveKinds(t *testing.T) {
	t.Parallel()

	c := started(t, []beans.Definition{{
		ID:   "p",
		Type: "test.Primitives",
		Properties: []beans.Property{
			{Name: "b", Value: beans.Literal("TRUE")},
			{Name: "c", Value: beans.Literal("é")},
			{Name: "u8", Value: beans.Literal("255")},
			{Name: "i8", Value: beans.Literal("-128")},
			{Name: "i16", Value: beans.Literal("32767")},
			{Name: "i32", Value: beans.Literal("-7")},
			{Name: "i64", Value: beans.Literal("9223372036854775807")},
			{Name: "i", Value: beans.Literal("42")},
			{Name: "f32", Value: beans.Literal("1.5")},
			{Name: "f64", Value: beans.Literal("2.25")},
			{Name: "s", Value: beans.Literal("text")},
		},
	}})

	p := beans.MustGetBean[*Primitives](c)
	assert.Equal(t, Primitives{
		B: true, C: 'é', U8: 255, I8: -128, I16: 32767, I32: -7,
		I64: 9223372036854775807, I: 42, F32: 1.5, F64: 2.25, S: "text",
	}, *p)
}

// TestStart_RefsResolveToInstances verifies a Ref injects the target bean's instance
// and records it in Deps.
func TestStart_RefsResolveToInstances(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	mail := beans.MustGetBean[*MailService](c)
	user := beans.MustGetBean[*UserService](c)

	require.NotNil(t, user.mail)
	assert.Same(t, mail, user.mail.(*MailService))
	assert.Equal(t, "POP3://bob", user.mail.Send("bob"))

	for _, id := range []string{"paymentService", "paymentWithMaxService"} {
		b, ok := c.Lookup(id)
		require.True(t, ok)
		assert.Same(t, mail, b.Value.(*PaymentService).mail)

		dep, ok := b.DepID("mailService")
		require.True(t, ok)
		assert.Equal(t, "mailService", dep)
	}

	ub, _ := c.Lookup("userService")
	assert.True(t, ub.HasDep("mailService"))
	assert.False(t, ub.HasDep("label"))
}

// TestStart_SetterCalledOncePerProperty verifies wiring runs in a single pass.
func TestStart_SetterCalledOncePerProperty(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	user := beans.MustGetBean[*UserService](c)
	assert.Equal(t, 1, user.mailCalls)
}

// TestStart_ForwardAndMutualRefs verifies references may point at beans defined later,
// including each other.
func TestStart_ForwardAndMutualRefs(t *testing.T) {
	t.Parallel()

	c := started(t, []beans.Definition{
		{ID: "a", Type: "test.Node", Properties: []beans.Property{{Name: "peer", Value: beans.Ref("b")}}},
		{ID: "b", Type: "test.Node", Properties: []beans.Property{{Name: "peer", Value: beans.Ref("a")}}},
	})

	a, err := c.Bean("a")
	require.NoError(t, err)
	b, err := c.Bean("b")
	require.NoError(t, err)

	assert.Same(t, b, a.(*Node).peer)
	assert.Same(t, a, b.(*Node).peer)
}

// TestStart_LiteralEqualToBeanIDIsNotDereferenced verifies a literal that happens to
// equal another bean's id reaches the setter verbatim.
func TestStart_LiteralEqualToBeanIDIsNotDereferenced(t *testing.T) {
	t.Parallel()

	defs := contextDefinitions()
	defs[1].Properties = []beans.Property{{Name: "label", Value: beans.Literal("mailService")}}

	c := started(t, defs)
	user := beans.MustGetBean[*UserService](c)

	assert.Equal(t, "mailService", user.label)
	assert.Nil(t, user.mail)
	assert.Zero(t, user.mailCalls)
}

// TestStart_EmptyDefinitions verifies an empty source yields a ready, empty context.
func TestStart_EmptyDefinitions(t *testing.T) {
	t.Parallel()

	c := started(t, nil)
	assert.Zero(t, c.Len())

	_, err := beans.GetBean[*MailService](c)
	assert.ErrorIs(t, err, beans.ErrBeanNotFound)
}

// TestStart_RestartBuildsFreshInstances verifies a second Start replaces every bean.
func TestStart_RestartBuildsFreshInstances(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	first := beans.MustGetBean[*MailService](c)

	require.NoError(t, c.Start())
	second := beans.MustGetBean[*MailService](c)

	assert.NotSame(t, first, second)
	assert.Equal(t, *first, *second)
}

// TestStart_Errors covers every fatal startup failure and the resulting Failed state.
func TestStart_Errors(t *testing.T) {
	t.Parallel()

	withProps := func(id, typ string, props ...beans.Property) []beans.Definition {
		defs := contextDefinitions()
		return append(defs, beans.Definition{ID: id, Type: typ, Properties: props})
	}

	cases := []struct {
		name     string
		defs     []beans.Definition
		sentinel error
		check    func(t *testing.T, err error)
	}{
		{
			name:     "unknown type",
			defs:     withProps("x", "test.Missing"),
			sentinel: beans.ErrBeanInstantiation,
			check: func(t *testing.T, err error) {
				var unknown *beans.UnknownTypeError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, "test.Missing", unknown.Type)
			},
		},
		{
			name:     "factory error",
			defs:     withProps("x", "test.Broken"),
			sentinel: beans.ErrBeanInstantiation,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errBrokenFactory)
				var inst *beans.InstantiationError
				require.ErrorAs(t, err, &inst)
				assert.Equal(t, "x", inst.BeanID)
			},
		},
		{
			name:     "duplicate id",
			defs:     withProps("mailService", "test.MailService"),
			sentinel: beans.ErrBeanInstantiation,
			check: func(t *testing.T, err error) {
				var dup *beans.DuplicateBeanError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "mailService", dup.ID)
			},
		},
		{
			name:     "invalid definition",
			defs:     withProps("", "test.MailService"),
			sentinel: beans.ErrBeanInstantiation,
			check: func(t *testing.T, err error) {
				var def *beans.DefinitionError
				require.ErrorAs(t, err, &def)
			},
		},
		{
			name:     "coercion failure",
			defs:     withProps("m2", "test.MailService", beans.Property{Name: "port", Value: beans.Literal("abc")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var coerce *beans.CoercionError
				require.ErrorAs(t, err, &coerce)
				assert.Equal(t, beans.KindInt32, coerce.Kind)
				assert.ErrorIs(t, err, strconv.ErrSyntax)

				var inj *beans.InjectionError
				require.ErrorAs(t, err, &inj)
				assert.Equal(t, "m2", inj.BeanID)
				assert.Equal(t, "port", inj.Property)
			},
		},
		{
			name:     "unknown property",
			defs:     withProps("m2", "test.MailService", beans.Property{Name: "host", Value: beans.Literal("x")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var unknown *beans.UnknownPropertyError
				require.ErrorAs(t, err, &unknown)
				assert.Contains(t, err.Error(), "SetHost")
			},
		},
		{
			name:     "unresolved reference",
			defs:     withProps("u2", "test.UserService", beans.Property{Name: "mailService", Value: beans.Ref("nope")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var unresolved *beans.UnresolvedReferenceError
				require.ErrorAs(t, err, &unresolved)
				assert.Equal(t, "nope", unresolved.Ref)
			},
		},
		{
			name:     "reference type mismatch",
			defs:     withProps("p2", "test.PaymentService", beans.Property{Name: "mailService", Value: beans.Ref("userService")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var mismatch *beans.ReferenceTypeError
				require.ErrorAs(t, err, &mismatch)
				assert.Equal(t, "userService", mismatch.Ref)
				assert.Equal(t, "*beans_test.MailService", mismatch.Want)
				assert.Equal(t, "*beans_test.UserService", mismatch.Got)
			},
		},
		{
			name:     "literal given to reference setter",
			defs:     withProps("u2", "test.UserService", beans.Property{Name: "mailService", Value: beans.Literal("mailService")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var kind *beans.ValueKindError
				require.ErrorAs(t, err, &kind)
				assert.Equal(t, beans.RefValue, kind.Want)
			},
		},
		{
			name:     "ref given to literal setter",
			defs:     withProps("m2", "test.MailService", beans.Property{Name: "protocol", Value: beans.Ref("mailService")}),
			sentinel: beans.ErrInjection,
			check: func(t *testing.T, err error) {
				var kind *beans.ValueKindError
				require.ErrorAs(t, err, &kind)
				assert.Equal(t, beans.LiteralValue, kind.Want)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c, err := beans.NewFromReader(testCatalog(), beans.StaticReader(tc.defs))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.sentinel)
			tc.check(t, err)

			assert.Equal(t, beans.StateFailed, c.State())
			assert.Zero(t, c.Len())
			_, err = c.Bean("mailService")
			assert.ErrorIs(t, err, beans.ErrNotStarted)
		})
	}
}

// TestStart_FailureDropsPreviousBeans verifies a failing restart leaves nothing queryable.
func TestStart_FailureDropsPreviousBeans(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	c.SetReader(beans.StaticReader{{ID: "x", Type: "test.Missing"}})

	require.Error(t, c.Start())
	assert.Equal(t, beans.StateFailed, c.State())
	_, ok := c.Lookup("mailService")
	assert.False(t, ok)
}

// TestStart_QueriesFromFactoryDoNotBlock verifies a factory may query the
// context it is being built by and sees it as not started.
func TestStart_QueriesFromFactoryDoNotBlock(t *testing.T) {
	t.Parallel()

	var (
		c         *beans.Context
		seenState beans.State
		seenErr   error
	)
	cat := beans.NewCatalog().MustRegister(
		beans.Describe("test.Curious", func() (*Node, error) {
			seenState = c.State()
			_, seenErr = beans.GetBean[*Node](c)
			return &Node{}, nil
		}).Descriptor(),
	)
	c = beans.New(cat, beans.WithReader(beans.StaticReader{{ID: "n", Type: "test.Curious"}}))

	require.NoError(t, c.Start())
	assert.Equal(t, beans.StateUninitialized, seenState)
	assert.ErrorIs(t, seenErr, beans.ErrNotStarted)

	// A restart hides the previous beans while it builds.
	require.NoError(t, c.Start())
	assert.Equal(t, beans.StateUninitialized, seenState)
	assert.ErrorIs(t, seenErr, beans.ErrNotStarted)
	assert.Equal(t, beans.StateReady, c.State())
}

// TestStart_ReaderError verifies reader failures propagate unchanged.
func TestStart_ReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := beans.New(testCatalog(), beans.WithReader(beans.ReaderFunc(func() ([]beans.Definition, error) {
		return nil, boom
	})))

	err := c.Start()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, beans.StateFailed, c.State())
}

// TestStart_NoReader verifies Start without a wired reader fails.
func TestStart_NoReader(t *testing.T) {
	t.Parallel()

	c := beans.New(testCatalog())
	assert.ErrorIs(t, c.Start(), beans.ErrNoReader)
}

// TestStart_SetterPanic verifies a panicking setter surfaces as an injection error.
func TestStart_SetterPanic(t *testing.T) {
	t.Parallel()

	cat := beans.NewCatalog().MustRegister(
		beans.Describe("test.Explosive", beans.Zero[Node]()).
			String("fuse", func(*Node, string) { panic("lit") }).
			Descriptor(),
	)
	_, err := beans.NewFromReader(cat, beans.StaticReader{{
		ID: "e", Type: "test.Explosive",
		Properties: []beans.Property{{Name: "fuse", Value: beans.Literal("now")}},
	}})

	require.ErrorIs(t, err, beans.ErrSetterPanic)
	assert.ErrorIs(t, err, beans.ErrInjection)
	assert.Contains(t, err.Error(), "lit")
}

// TestStart_Logs verifies Start reports through the configured zerolog logger.
func TestStart_Logs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := beans.NewFromReader(testCatalog(), beans.StaticReader(contextDefinitions()), beans.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"bean":"mailService"`)
	assert.Contains(t, out, `"message":"bean wired"`)
	assert.Contains(t, out, `"beans":4`)
	assert.Contains(t, out, `"message":"context started"`)
}

//
// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// TestGetBean_ExactlyOne verifies a unique match is returned.
func TestGetBean_ExactlyOne(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	user, err := beans.GetBean[*UserService](c)
	require.NoError(t, err)
	require.NotNil(t, user)
}

// TestGetBean_Interface verifies conformance by interface implementation.
func TestGetBean_Interface(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	s, err := beans.GetBean[Sender](c)
	require.NoError(t, err)
	assert.Same(t, beans.MustGetBean[*MailService](c), s.(*MailService))
}

// TestGetBean_Multiple verifies two beans of one type are ambiguous.
func TestGetBean_Multiple(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	_, err := beans.GetBean[*PaymentService](c)
	require.ErrorIs(t, err, beans.ErrMultipleBeans)

	var multi *beans.MultipleBeansError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, []string{"paymentService", "paymentWithMaxService"}, multi.IDs)
	assert.Equal(t, "*beans_test.PaymentService", multi.Type)

	// any conforms to every bean.
	_, err = beans.GetBean[any](c)
	assert.ErrorIs(t, err, beans.ErrMultipleBeans)
}

// TestGetBean_NotFound verifies zero matches.
func TestGetBean_NotFound(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	_, err := beans.GetBean[*Node](c)
	require.ErrorIs(t, err, beans.ErrBeanNotFound)

	var nf *beans.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "*beans_test.Node", nf.Type)
	assert.Empty(t, nf.Name)
}

// TestGetBean_NotStarted verifies queries before Start fail.
func TestGetBean_NotStarted(t *testing.T) {
	t.Parallel()

	c := beans.New(testCatalog(), beans.WithReader(beans.StaticReader(contextDefinitions())))

	_, err := beans.GetBean[*MailService](c)
	assert.ErrorIs(t, err, beans.ErrNotStarted)
	_, err = beans.GetNamedBean[*MailService](c, "mailService")
	assert.ErrorIs(t, err, beans.ErrNotStarted)
	_, err = c.Bean("mailService")
	assert.ErrorIs(t, err, beans.ErrNotStarted)
	assert.Equal(t, beans.StateUninitialized, c.State())
}

// TestGetNamedBean verifies the name/type cross-check.
func TestGetNamedBean(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	user, err := beans.GetNamedBean[*UserService](c, "userService")
	require.NoError(t, err)
	assert.Same(t, beans.MustGetBean[*UserService](c), user)

	s, err := beans.GetNamedBean[Sender](c, "mailService")
	require.NoError(t, err)
	assert.Same(t, beans.MustGetBean[*MailService](c), s.(*MailService))

	_, err = beans.GetNamedBean[*MailService](c, "userService")
	var nf *beans.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "userService", nf.Name)
	assert.Equal(t, "*beans_test.MailService", nf.Type)

	_, err = beans.GetNamedBean[*MailService](c, "missing")
	assert.ErrorIs(t, err, beans.ErrBeanNotFound)

	_, err = beans.GetNamedBean[*PaymentService](c, "paymentService")
	assert.ErrorIs(t, err, beans.ErrMultipleBeans)
}

// TestBean_ByName verifies the direct id lookup agrees with type lookup.
func TestBean_ByName(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())

	v, err := c.Bean("mailService")
	require.NoError(t, err)
	assert.Same(t, beans.MustGetBean[*MailService](c), v.(*MailService))

	_, err = c.Bean("missingId")
	require.ErrorIs(t, err, beans.ErrBeanNotFound)
	assert.EqualError(t, err, `beans: bean "missingId" not found`)
}

// TestQueries_Idempotent verifies repeated queries return the same instance, and
// independent contexts never share instances.
func TestQueries_Idempotent(t *testing.T) {
	t.Parallel()

	c1 := started(t, contextDefinitions())
	c2 := started(t, contextDefinitions())

	a1 := beans.MustGetBean[*MailService](c1)
	a2 := beans.MustGetBean[*MailService](c1)
	b1, _ := c1.Bean("mailService")
	assert.Same(t, a1, a2)
	assert.Same(t, a1, b1.(*MailService))

	other := beans.MustGetBean[*MailService](c2)
	assert.NotSame(t, a1, other)
	assert.Equal(t, *a1, *other)
}

// TestMustGetBean_Panics verifies MustGetBean panics with the lookup error.
func TestMustGetBean_Panics(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	require.PanicsWithError(t, "beans: no bean of type *beans_test.Node", func() {
		_ = beans.MustGetBean[*Node](c)
	})
}

// TestLookup_ReturnsCopies verifies callers cannot replace a bean's value or deps.
func TestLookup_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	mail := beans.MustGetBean[*MailService](c)

	b, ok := c.Lookup("userService")
	require.True(t, ok)
	b.Value = &UserService{}
	b.Deps["mailService"] = "other"

	for _, listed := range c.Beans() {
		listed.Value = nil
	}

	again, _ := c.Lookup("userService")
	dep, _ := again.DepID("mailService")
	assert.Equal(t, "mailService", dep)

	user := beans.MustGetBean[*UserService](c)
	assert.Same(t, mail, user.mail.(*MailService))
	assert.Same(t, user, again.Value)
}

// TestValueAs verifies typed access to a Bean wrapper.
func TestValueAs(t *testing.T) {
	t.Parallel()

	c := started(t, contextDefinitions())
	b, ok := c.Lookup("mailService")
	require.True(t, ok)

	mail, ok := beans.ValueAs[*MailService](b)
	require.True(t, ok)
	assert.Equal(t, int32(3000), mail.port)

	_, ok = beans.ValueAs[*UserService](b)
	assert.False(t, ok)
	_, ok = beans.ValueAs[*UserService](nil)
	assert.False(t, ok)
}

// TestState_String verifies state names.
func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "uninitialized", beans.StateUninitialized.String())
	assert.Equal(t, "ready", beans.StateReady.String())
	assert.Equal(t, "failed", beans.StateFailed.String())
}
