package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptors() []Descriptor {
	return []Descriptor{
		{Slug: "shopee", Name: "Shopee", Icon: "SHOP", Color: "#FF6B35", Enabled: true},
		{Slug: "mercadolivre", Name: "Mercado Livre", Icon: "STORE", Color: "#FFE600", Enabled: true},
		{Slug: "shein", Name: "Shein", Icon: "FASHION", Color: "#8B5CF6", Enabled: true},
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("builds from valid descriptors", func(t *testing.T) {
		r, err := NewRegistry(testDescriptors())
		require.NoError(t, err)
		assert.Equal(t, 3, r.Len())
	})

	t.Run("rejects empty slug", func(t *testing.T) {
		_, err := NewRegistry([]Descriptor{{Name: "Nameless"}})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		_, err := NewRegistry([]Descriptor{
			{Slug: "shopee", Name: "Shopee"},
			{Slug: "shopee", Name: "Shopee Again"},
		})
		assert.Error(t, err)
	})

	t.Run("rejects duplicate display name", func(t *testing.T) {
		_, err := NewRegistry([]Descriptor{
			{Slug: "a", Name: "Shopee"},
			{Slug: "b", Name: "Shopee"},
		})
		assert.Error(t, err)
	})
}

func TestRegistryGet(t *testing.T) {
	r, err := NewRegistry(testDescriptors())
	require.NoError(t, err)

	d, ok := r.Get("shopee")
	require.True(t, ok)
	assert.Equal(t, "Shopee", d.Name)

	_, ok = r.Get("amazon")
	assert.False(t, ok)
}

func TestRegistryListEnabled(t *testing.T) {
	t.Run("enumeration order is sorted by slug", func(t *testing.T) {
		r, err := NewRegistry(testDescriptors())
		require.NoError(t, err)

		enabled := r.ListEnabled()
		require.Len(t, enabled, 3)
		assert.Equal(t, "mercadolivre", enabled[0].Slug)
		assert.Equal(t, "shein", enabled[1].Slug)
		assert.Equal(t, "shopee", enabled[2].Slug)
	})

	t.Run("disabled marketplaces are excluded", func(t *testing.T) {
		descriptors := testDescriptors()
		descriptors[0].Enabled = false // shopee
		r, err := NewRegistry(descriptors)
		require.NoError(t, err)

		enabled := r.ListEnabled()
		require.Len(t, enabled, 2)
		for _, d := range enabled {
			assert.NotEqual(t, "shopee", d.Slug)
		}
	})
}

func TestRegistrySlugForName(t *testing.T) {
	r, err := NewRegistry(testDescriptors())
	require.NoError(t, err)

	slug, ok := r.SlugForName("Mercado Livre")
	require.True(t, ok)
	assert.Equal(t, "mercadolivre", slug)

	_, ok = r.SlugForName("Amazon")
	assert.False(t, ok)
}

func TestDescriptorValidateCredentials(t *testing.T) {
	t.Run("no auth required is always valid", func(t *testing.T) {
		d := Descriptor{Slug: "shopee", RequiresAuth: false}
		check := d.ValidateCredentials()
		assert.True(t, check.Valid)
	})

	t.Run("bearer requires a token", func(t *testing.T) {
		d := Descriptor{Slug: "shopee", RequiresAuth: true, AuthType: AuthTypeBearer}
		assert.False(t, d.ValidateCredentials().Valid)

		d.Credentials.Token = "tok"
		assert.True(t, d.ValidateCredentials().Valid)
	})

	t.Run("apikey requires a key", func(t *testing.T) {
		d := Descriptor{Slug: "shein", RequiresAuth: true, AuthType: AuthTypeAPIKey}
		check := d.ValidateCredentials()
		assert.False(t, check.Valid)
		assert.NotEmpty(t, check.Error)

		d.Credentials.APIKey = "key"
		assert.True(t, d.ValidateCredentials().Valid)
	})

	t.Run("basic requires both username and password", func(t *testing.T) {
		d := Descriptor{Slug: "x", RequiresAuth: true, AuthType: AuthTypeBasic}
		d.Credentials.Username = "user"
		assert.False(t, d.ValidateCredentials().Valid)

		d.Credentials.Password = "pass"
		assert.True(t, d.ValidateCredentials().Valid)
	})

	t.Run("unknown auth type is invalid", func(t *testing.T) {
		d := Descriptor{Slug: "x", RequiresAuth: true, AuthType: "oauth2"}
		assert.False(t, d.ValidateCredentials().Valid)
	})
}

func TestDescriptorAPIConfigured(t *testing.T) {
	d := Descriptor{Slug: "mercadolivre"}
	assert.False(t, d.APIConfigured())
	d.APIBaseURL = "https://api.mercadolibre.com"
	assert.True(t, d.APIConfigured())
}
