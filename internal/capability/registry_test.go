package capability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopExec(_ context.Context, _ map[string]any, _ Context) (any, error) {
	return map[string]any{}, nil
}

func testDescriptor(slug string) Descriptor {
	return Descriptor{
		Slug:        slug,
		Name:        "Test " + slug,
		Description: "test capability",
		Schema:      NewSchema(String("q")),
		Execute:     noopExec,
	}
}

func TestRegisterDuplicateSlug(t *testing.T) {
	reg := NewRegistry()

	first := testDescriptor("GMAIL_SEND_EMAIL")
	first.Description = "the original"
	require.NoError(t, reg.Register(first))

	second := testDescriptor("GMAIL_SEND_EMAIL")
	second.Description = "the impostor"
	err := reg.Register(second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSlug))

	// The original registration must be retained unchanged.
	got, ok := reg.Get("GMAIL_SEND_EMAIL")
	require.True(t, ok)
	assert.Equal(t, "the original", got.Description)
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterInvalidDescriptor(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
	}{
		{
			name: "empty slug",
			d:    Descriptor{Name: "x", Execute: noopExec},
		},
		{
			name: "empty name",
			d:    Descriptor{Slug: "X", Execute: noopExec},
		},
		{
			name: "nil executor",
			d:    Descriptor{Slug: "X", Name: "x"},
		},
		{
			name: "enum without values",
			d: Descriptor{
				Slug: "X", Name: "x", Execute: noopExec,
				Schema: NewSchema(Field{Name: "mode", Type: TypeEnum}),
			},
		},
		{
			name: "list without element type",
			d: Descriptor{
				Slug: "X", Name: "x", Execute: noopExec,
				Schema: NewSchema(Field{Name: "ids", Type: TypeList}),
			},
		},
		{
			name: "duplicate field names",
			d: Descriptor{
				Slug: "X", Name: "x", Execute: noopExec,
				Schema: NewSchema(String("a"), String("a")),
			},
		},
		{
			name: "required field with default",
			d: Descriptor{
				Slug: "X", Name: "x", Execute: noopExec,
				Schema: NewSchema(String("a", Required(), Default("b"))),
			},
		},
		{
			name: "default of wrong type",
			d: Descriptor{
				Slug: "X", Name: "x", Execute: noopExec,
				Schema: NewSchema(Integer("n", Default("ten"))),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register(tt.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDescriptor))
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestAllPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	slugs := []string{"DRIVE_UPLOAD_FILE", "GMAIL_SEND_EMAIL", "CALENDAR_CREATE_EVENT"}
	for _, slug := range slugs {
		require.NoError(t, reg.Register(testDescriptor(slug)))
	}

	got := reg.All()
	require.Len(t, got, 3)
	for i, d := range got {
		assert.Equal(t, slugs[i], d.Slug)
	}

	// Idempotence: a second listing returns the identical sequence.
	again := reg.All()
	require.Len(t, again, 3)
	for i := range got {
		assert.Equal(t, got[i].Slug, again[i].Slug)
	}
}

func TestResolvePreservesRequestOrder(t *testing.T) {
	reg := NewRegistry()
	for _, slug := range []string{"A_ONE", "B_TWO", "C_THREE"} {
		require.NoError(t, reg.Register(testDescriptor(slug)))
	}

	got, err := reg.Resolve([]string{"C_THREE", "A_ONE"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C_THREE", got[0].Slug)
	assert.Equal(t, "A_ONE", got[1].Slug)
}

func TestResolveUnknownSlug(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testDescriptor("A_ONE")))

	_, err := reg.Resolve([]string{"A_ONE", "B_MISSING"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSlug))

	var unknown *UnknownSlugError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "B_MISSING", unknown.Slug)

	// No side effect on the registry.
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, []string{"A_ONE"}, reg.Slugs())
}
